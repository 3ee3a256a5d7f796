package layout

// Style holds the rendering defaults that scaling decisions are derived
// from. It is a plain value: pass it explicitly and copy it to change it.
// There is no package-level mutable theme.
type Style struct {
	FontSize  int    // Base label font size in points
	FontStyle string // "normal", "bold" or "italic"
	DPI       int    // Raster output resolution

	BaseWidth  float64 // Canvas width at node count 0, in pixels
	BaseHeight float64
	MinWidth   float64
	MaxWidth   float64
	MinHeight  float64
	MaxHeight  float64

	NodeSizeMin float64 // Smallest node glyph diameter, in pixels
	NodeSizeMax float64

	RowHeight float64 // Per-entry height for bar mode, in pixels
	BandWidth float64 // Fixed canvas width for bar mode, in pixels

	LabelThreshold int // Above this node count only hubs are labeled
}

// DefaultStyle returns the standard style.
func DefaultStyle() Style {
	return Style{
		FontSize:       14,
		FontStyle:      "bold",
		DPI:            100,
		BaseWidth:      800,
		BaseHeight:     600,
		MinWidth:       800,
		MaxWidth:       3200,
		MinHeight:      600,
		MaxHeight:      2400,
		NodeSizeMin:    6,
		NodeSizeMax:    24,
		RowHeight:      28,
		BandWidth:      1000,
		LabelThreshold: 200,
	}
}

// Option mutates a Style during construction.
type Option func(*Style)

// NewStyle builds a Style from the defaults with the given overrides.
func NewStyle(opts ...Option) Style {
	s := DefaultStyle()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithFontSize overrides the base label font size.
func WithFontSize(size int) Option {
	return func(s *Style) { s.FontSize = size }
}

// WithFontStyle overrides the label font style.
func WithFontStyle(style string) Option {
	return func(s *Style) { s.FontStyle = style }
}

// WithDPI overrides the raster resolution.
func WithDPI(dpi int) Option {
	return func(s *Style) { s.DPI = dpi }
}

// WithLabelThreshold overrides the node count above which only hubs
// are labeled.
func WithLabelThreshold(n int) Option {
	return func(s *Style) { s.LabelThreshold = n }
}
