package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phytolab/herbnet/pkg/graph"
	"github.com/phytolab/herbnet/pkg/layout"
)

// Options configures network diagram rendering.
type Options struct {
	// LabelMinDegree is the minimum degree for a node to be labeled on
	// small graphs. On large graphs only hubs are labeled regardless.
	LabelMinDegree int

	// Style supplies fonts and scaling ranges. Zero value means
	// [layout.DefaultStyle].
	Style layout.Style
}

// Node fill colors by type.
var typeColors = map[graph.NodeType]string{
	graph.TypeHerb:          "#8fbc8f",
	graph.TypeMolecule:      "#87ceeb",
	graph.TypeTarget:        "#ffa07a",
	graph.TypeDiseaseTarget: "#ba55d3",
	graph.TypeDisease:       "#dc143c",
	graph.TypeProtein:       "#d3d3d3",
}

// Edge stroke colors by type; the density-derived alpha is appended as a
// hex suffix so dense graphs fade their edges.
var edgeColors = map[graph.EdgeType]string{
	graph.EdgeContains:   "#2e8b57",
	graph.EdgeTargets:    "#4682b4",
	graph.EdgeAssociates: "#b22222",
	graph.EdgeInteracts:  "#808080",
}

// ToDOT converts a graph to Graphviz DOT format using the given layout
// parameters. Node iteration is sorted, so output bytes are stable for a
// given graph.
func ToDOT(g *graph.Graph, p layout.Params, opts Options) string {
	style := opts.Style
	if style == (layout.Style{}) {
		style = layout.DefaultStyle()
	}
	labeled := layout.LabelFilter(g.NodeCount(), opts.LabelMinDegree, style)
	maxDegree := 1
	for _, n := range g.Nodes() {
		maxDegree = max(maxDegree, n.Degree)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph herbnet {\n")
	buf.WriteString("  layout=\"sfdp\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  size=\"%.2f,%.2f!\";\n", p.Width/float64(style.DPI), p.Height/float64(style.DPI))
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, fontsize=%d, fontname=\"Helvetica%s\"];\n",
		p.LabelSize, fontSuffix(style.FontStyle))
	buf.WriteString("  edge [arrowsize=0.5];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := nodeAttrs(n, p, maxDegree, labeled(n.Degree, n.IsHub))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	alpha := alphaSuffix(p.EdgeAlpha)
	for _, e := range g.Edges() {
		color, ok := edgeColors[e.Type]
		if !ok {
			color = "#808080"
		}
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", e.From, e.To, color+alpha)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, p layout.Params, maxDegree int, labeled bool) []string {
	label := ""
	if labeled {
		label = n.ID
	}

	// Glyph diameter scales linearly with degree inside the configured range.
	span := p.NodeSizeMax - p.NodeSizeMin
	size := p.NodeSizeMin + span*float64(n.Degree)/float64(maxDegree)

	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("width=%.2f", size/96),
		fmt.Sprintf("fillcolor=%q", fillColor(n.Type)),
	}
	if n.IsHub {
		attrs = append(attrs, "penwidth=2", "color=\"#8b0000\"")
	}
	return attrs
}

func fillColor(t graph.NodeType) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return "#ffffff"
}

func fontSuffix(fontStyle string) string {
	switch fontStyle {
	case "bold":
		return "-Bold"
	case "italic":
		return "-Oblique"
	default:
		return ""
	}
}

func alphaSuffix(alpha float64) string {
	return fmt.Sprintf("%02x", int(alpha*255))
}
