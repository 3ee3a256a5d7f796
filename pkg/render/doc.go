// Package render turns graphs into visual outputs.
//
// # Overview
//
// Rendering happens in two steps: [ToDOT] emits Graphviz DOT text from a
// graph and its layout parameters, and [RenderSVG] / [RenderPNG] rasterize
// that DOT via Graphviz.
//
//	p := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, style)
//	dot := render.ToDOT(g, p, render.Options{LabelMinDegree: 2})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Node fill color encodes node type, edge color encodes edge type, and
// edge opacity follows the density-derived alpha from the layout package.
// Hub nodes get a highlighted outline. On graphs above the label
// threshold only hubs are labeled.
//
// The renderer consumes layout decisions; it never recomputes them and
// never mutates the graph.
package render
