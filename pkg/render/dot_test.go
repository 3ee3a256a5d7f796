package render

import (
	"strings"
	"testing"

	"github.com/phytolab/herbnet/pkg/graph"
	"github.com/phytolab/herbnet/pkg/layout"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for id, typ := range map[string]graph.NodeType{
		"Ginseng":     graph.TypeHerb,
		"ginsenoside": graph.TypeMolecule,
		"TNF":         graph.TypeTarget,
	} {
		if err := g.AddNode(graph.Node{ID: id, Type: typ}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	edges := []graph.Edge{
		{From: "Ginseng", To: "ginsenoside", Type: graph.EdgeContains},
		{From: "ginsenoside", To: "TNF", Type: graph.EdgeTargets, Provenance: "Ginseng"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%+v): %v", e, err)
		}
	}
	return g
}

func TestToDOT_Structure(t *testing.T) {
	g := testGraph(t)
	p := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, layout.DefaultStyle())
	dot := ToDOT(g, p, Options{})

	if !strings.HasPrefix(dot, "digraph herbnet {") {
		t.Errorf("unexpected DOT header: %s", dot[:40])
	}
	for _, want := range []string{
		`"Ginseng"`,
		`"ginsenoside" -> "TNF"`,
		`fillcolor="#8fbc8f"`, // herb
		`fillcolor="#87ceeb"`, // molecule
		`fillcolor="#ffa07a"`, // target
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s", want)
		}
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	g := testGraph(t)
	p := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, layout.DefaultStyle())

	a := ToDOT(g, p, Options{})
	b := ToDOT(g, p, Options{})
	if a != b {
		t.Error("DOT output should be byte-identical across calls")
	}
}

func TestToDOT_LabelPolicy(t *testing.T) {
	g := testGraph(t)
	p := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, layout.DefaultStyle())

	// With min degree 2, only the molecule (degree 2) keeps its label.
	dot := ToDOT(g, p, Options{LabelMinDegree: 2})
	if !strings.Contains(dot, `label="ginsenoside"`) {
		t.Error("degree-2 node should be labeled")
	}
	if !strings.Contains(dot, `"TNF" [label=""`) {
		t.Error("degree-1 node should be unlabeled")
	}
}

func TestToDOT_HubHighlight(t *testing.T) {
	g := testGraph(t)
	g.Node("ginsenoside").IsHub = true
	p := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, layout.DefaultStyle())
	dot := ToDOT(g, p, Options{})

	if !strings.Contains(dot, "penwidth=2") {
		t.Error("hub node should have a highlighted outline")
	}
}

func TestToDOT_EdgeAlpha(t *testing.T) {
	g := testGraph(t)
	p := layout.Scale(g.NodeCount(), g.EdgeCount(), layout.ModeNetwork, layout.DefaultStyle())
	// density for 3 nodes / 2 edges is 2/3, alpha clamps inside [0.1, 0.8]
	dot := ToDOT(g, p, Options{})
	if !strings.Contains(dot, "#4682b4"+alphaSuffix(p.EdgeAlpha)) {
		t.Error("edge color should carry the layout alpha suffix")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">  <g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}

	// SVGs without a viewBox pass through untouched
	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
