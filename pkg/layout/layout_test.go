package layout

import (
	"math"
	"testing"
)

func TestScale_CanvasMonotonicity(t *testing.T) {
	style := DefaultStyle()

	small := Scale(20, 30, ModeNetwork, style)
	large := Scale(200, 300, ModeNetwork, style)

	if large.Width < small.Width {
		t.Errorf("width should not shrink with node count: %v < %v", large.Width, small.Width)
	}
	if large.Height < small.Height {
		t.Errorf("height should not shrink with node count: %v < %v", large.Height, small.Height)
	}
	for _, p := range []Params{small, large} {
		if p.Width < style.MinWidth || p.Width > style.MaxWidth {
			t.Errorf("width %v outside [%v, %v]", p.Width, style.MinWidth, style.MaxWidth)
		}
		if p.Height < style.MinHeight || p.Height > style.MaxHeight {
			t.Errorf("height %v outside [%v, %v]", p.Height, style.MinHeight, style.MaxHeight)
		}
	}
}

func TestScale_WidthClamped(t *testing.T) {
	style := DefaultStyle()

	// Absurd node counts must still land inside the safety range.
	p := Scale(1_000_000, 0, ModeNetwork, style)
	if p.Width != style.MaxWidth {
		t.Errorf("width should clamp to max: got %v", p.Width)
	}
	p = Scale(0, 0, ModeNetwork, style)
	if p.Width != style.MinWidth {
		t.Errorf("width should clamp to min: got %v", p.Width)
	}
}

func TestEdgeAlpha(t *testing.T) {
	tests := []struct {
		name  string
		nodes int
		edges int
		want  float64
	}{
		{"emptyGraph", 0, 0, 0.8},
		{"singleNode", 1, 0, 0.8},
		{"sparse", 100, 10, 0.8},          // density ~0.002, clamped to 0.8
		{"complete", 10, 45, 0.1},         // density 1, clamped to 0.1
		{"half", 4, 3, 0.5},               // density 0.5
		{"overComplete", 5, 100, 0.1},     // multi-edges can exceed N(N-1)/2
		{"mediumDensity", 10, 18, 0.6},    // density 0.4
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := edgeAlpha(tt.nodes, tt.edges)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("edgeAlpha(%d, %d) = %v, want %v", tt.nodes, tt.edges, got, tt.want)
			}
		})
	}
}

func TestLabelSize_Steps(t *testing.T) {
	style := DefaultStyle()

	tests := []struct {
		nodes int
		want  int
	}{
		{10, 14},
		{49, 14},
		{50, 11},
		{200, 11},
		{201, 8},
		{5000, 8},
	}
	for _, tt := range tests {
		p := Scale(tt.nodes, 0, ModeNetwork, style)
		if p.LabelSize != tt.want {
			t.Errorf("labelSize at %d nodes = %d, want %d", tt.nodes, p.LabelSize, tt.want)
		}
	}
}

func TestLabelFilter(t *testing.T) {
	style := DefaultStyle()

	// Below the threshold: degree rule.
	below := LabelFilter(100, 3, style)
	if !below(5, false) {
		t.Error("degree 5 should be labeled below threshold")
	}
	if below(2, true) {
		t.Error("degree 2 should not be labeled even for hubs below threshold")
	}

	// Above the threshold: hubs only.
	above := LabelFilter(500, 3, style)
	if above(50, false) {
		t.Error("non-hub should not be labeled above threshold")
	}
	if !above(1, true) {
		t.Error("hub should be labeled above threshold")
	}
}

func TestScale_BarMode(t *testing.T) {
	style := DefaultStyle()

	p10 := Scale(10, 0, ModeBar, style)
	p30 := Scale(30, 0, ModeBar, style)

	if p10.Width != style.BandWidth || p30.Width != style.BandWidth {
		t.Error("bar mode width should be the fixed band")
	}
	if p30.Height <= p10.Height {
		t.Error("bar mode height should grow linearly with entries")
	}
	want := style.BaseHeight + style.RowHeight*30
	if p30.Height != want {
		t.Errorf("bar height = %v, want %v", p30.Height, want)
	}
}

func TestNodeSizeRange(t *testing.T) {
	style := DefaultStyle()

	small := Scale(10, 0, ModeNetwork, style)
	large := Scale(2000, 0, ModeNetwork, style)

	if small.NodeSizeMax <= large.NodeSizeMax {
		t.Error("node glyphs should shrink as the graph grows")
	}
	for _, p := range []Params{small, large} {
		if p.NodeSizeMax <= p.NodeSizeMin {
			t.Errorf("size range collapsed: [%v, %v]", p.NodeSizeMin, p.NodeSizeMax)
		}
		if p.NodeSizeMax > style.NodeSizeMax {
			t.Errorf("size max %v above configured max", p.NodeSizeMax)
		}
	}
}

func TestNewStyle_Overrides(t *testing.T) {
	s := NewStyle(WithFontSize(20), WithFontStyle("italic"), WithDPI(300), WithLabelThreshold(50))
	if s.FontSize != 20 || s.FontStyle != "italic" || s.DPI != 300 || s.LabelThreshold != 50 {
		t.Errorf("overrides not applied: %+v", s)
	}

	// Defaults untouched elsewhere
	if s.MinWidth != DefaultStyle().MinWidth {
		t.Error("unrelated defaults should be preserved")
	}
}
