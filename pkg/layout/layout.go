// Package layout derives canvas size, node and edge visual scale, and the
// label-display policy from graph size and density. It is a pure function
// of (node count, edge count): it never reads or mutates the graph itself,
// and the rendering backend consumes its output as-is.
package layout

import "math"

// Mode selects the scaling model.
type Mode string

const (
	// ModeNetwork scales a force-directed network canvas. Area grows
	// sub-linearly with node count, so width and height follow sqrt(N).
	ModeNetwork Mode = "network"

	// ModeBar scales a bar/lollipop chart: one row per entry, fixed width.
	ModeBar Mode = "bar"
)

// Params are the derived rendering parameters for one graph.
type Params struct {
	Width       float64 // Canvas width in pixels
	Height      float64 // Canvas height in pixels
	NodeSizeMin float64 // Node glyph diameter range in pixels
	NodeSizeMax float64
	EdgeAlpha   float64 // Edge opacity in [0, 1]
	LabelSize   int     // Label font size in points
}

// Scale computes rendering parameters for a graph with the given node and
// edge counts. All outputs are clamped to the ranges configured in style.
func Scale(nodeCount, edgeCount int, mode Mode, style Style) Params {
	n := float64(nodeCount)

	p := Params{
		NodeSizeMin: style.NodeSizeMin,
		NodeSizeMax: nodeSizeMax(nodeCount, style),
		EdgeAlpha:   edgeAlpha(nodeCount, edgeCount),
		LabelSize:   labelSize(nodeCount, style.FontSize),
	}

	switch mode {
	case ModeBar:
		// One row per entry; width is a fixed band.
		p.Width = style.BandWidth
		p.Height = clamp(style.BaseHeight+style.RowHeight*n, style.MinHeight, style.MaxHeight)
	default:
		p.Width = clamp(style.BaseWidth+math.Sqrt(n)*60, style.MinWidth, style.MaxWidth)
		p.Height = clamp(style.BaseHeight+math.Sqrt(n)*45, style.MinHeight, style.MaxHeight)
	}
	return p
}

// LabelFilter returns the label-display predicate for a graph of the given
// size. Below the style's node threshold any node with degree >= minDegree
// is labeled; above it only hubs are, which bounds the label count
// independent of graph size.
func LabelFilter(nodeCount, minDegree int, style Style) func(degree int, isHub bool) bool {
	if nodeCount > style.LabelThreshold {
		return func(degree int, isHub bool) bool { return isHub }
	}
	return func(degree int, isHub bool) bool { return degree >= minDegree }
}

// edgeAlpha makes denser graphs more transparent so they stay legible.
// density = 2E / (N(N-1)); the result is clamped to [0.1, 0.8].
func edgeAlpha(nodeCount, edgeCount int) float64 {
	if nodeCount < 2 {
		return 0.8
	}
	n := float64(nodeCount)
	density := 2 * float64(edgeCount) / (n * (n - 1))
	return clamp(1-density, 0.1, 0.8)
}

// labelSize degrades in two discrete steps as the graph grows.
func labelSize(nodeCount, fontSize int) int {
	switch {
	case nodeCount < 50:
		return fontSize
	case nodeCount <= 200:
		return scaleFont(fontSize, 0.8)
	default:
		return scaleFont(fontSize, 0.6)
	}
}

func scaleFont(size int, factor float64) int {
	scaled := int(math.Round(float64(size) * factor))
	return max(scaled, 6)
}

// nodeSizeMax shrinks the largest glyph as the graph grows, bottoming out
// just above the configured minimum.
func nodeSizeMax(nodeCount int, style Style) float64 {
	span := style.NodeSizeMax - style.NodeSizeMin
	shrink := span * math.Sqrt(float64(nodeCount)) / 30
	return clamp(style.NodeSizeMax-shrink, style.NodeSizeMin+1, style.NodeSizeMax)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
