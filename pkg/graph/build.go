package graph

import (
	"slices"
	"strings"

	"github.com/phytolab/herbnet/pkg/errors"
)

// Record is one cleaned interaction row: a source entity (herb), an
// intermediate entity (molecule) and a target entity. Role names are caller
// configuration; the builder only cares about the positions.
type Record struct {
	Source       string
	Intermediate string
	Target       string
}

// BuildOptions configures graph construction.
type BuildOptions struct {
	// DiseaseTargets reclassifies matching targets as disease targets.
	// May be nil.
	DiseaseTargets map[string]bool

	// DiseaseLabel, when non-empty and DiseaseTargets is non-empty, adds an
	// explicit disease sink node with "associates" edges to every disease
	// target present in the graph.
	DiseaseLabel string

	// SimplifyThreshold triggers the degree-based readability pass when the
	// node count exceeds it. Zero means DefaultSimplifyThreshold; negative
	// disables simplification.
	SimplifyThreshold int
}

// DefaultSimplifyThreshold is the node count above which the builder also
// produces a degree-simplified rendering graph.
const DefaultSimplifyThreshold = 400

// BuildResult holds the outputs of graph construction.
type BuildResult struct {
	// Graph is the full, unsimplified interaction graph. All analytical set
	// operations run against this graph.
	Graph *Graph

	// Rendering is the graph intended for drawing. It equals Graph unless the
	// simplification pass ran, in which case low-degree intermediates have
	// been removed. Rendering never feeds back into analysis.
	Rendering *Graph

	// Warnings lists data-quality findings (e.g. nodes that could not be
	// classified), each carrying the DATA_QUALITY error code. Warnings are
	// reported, never silently dropped, and never fail the build.
	Warnings []error
}

// CleanRecords normalizes and deduplicates raw interaction rows.
// Rows with any empty field after trimming are dropped. The result is sorted
// by (source, intermediate, target) so that identical inputs always produce
// byte-identical downstream tables.
func CleanRecords(rows []Record) []Record {
	seen := make(map[Record]bool, len(rows))
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		r.Source = Normalize(r.Source)
		r.Intermediate = Normalize(r.Intermediate)
		r.Target = Normalize(r.Target)
		if r.Source == "" || r.Intermediate == "" || r.Target == "" {
			continue
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Record) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		if c := strings.Compare(a.Intermediate, b.Intermediate); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return out
}

// Build converts cleaned interaction records into the typed multigraph.
//
// Two edge layers are produced: "contains" edges (source → intermediate),
// deduplicated on (from, to) since the provenance is the edge's own source
// endpoint, and "targets" edges (intermediate → target) tagged with the
// originating source as provenance and NOT deduplicated across provenance:
// two herbs reaching the same target through the same molecule stay two
// distinct edges so per-source flow remains recoverable.
//
// Returns an EMPTY_GRAPH error when no usable records remain after cleaning.
func Build(rows []Record, opts BuildOptions) (*BuildResult, error) {
	records := CleanRecords(rows)
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGraph, "no usable interaction records after cleaning")
	}

	sources := make(map[string]bool)
	intermediates := make(map[string]bool)
	targets := make(map[string]bool)
	for _, r := range records {
		sources[r.Source] = true
		intermediates[r.Intermediate] = true
		targets[r.Target] = true
	}

	disease := make(map[string]bool, len(opts.DiseaseTargets))
	for id := range opts.DiseaseTargets {
		disease[Normalize(id)] = true
	}

	g := New()
	var warnings []error
	addTyped := func(id string) {
		t := classify(id, sources, intermediates, targets, disease, opts.DiseaseLabel)
		if t == TypeUnknown {
			warnings = append(warnings, errors.New(errors.ErrCodeDataQuality,
				"node %q has no recognizable role", id))
		}
		_ = g.AddNode(Node{ID: id, Type: t})
	}

	for _, r := range records {
		addTyped(r.Source)
		addTyped(r.Intermediate)
		addTyped(r.Target)

		// contains layer: dedup on (from, to)
		contains := Edge{From: r.Source, To: r.Intermediate, Type: EdgeContains, Weight: 1}
		if !g.HasEdge(contains) {
			_ = g.AddEdge(contains)
		}

		// targets layer: provenance-distinct multi-edges
		_ = g.AddEdge(Edge{
			From:       r.Intermediate,
			To:         r.Target,
			Type:       EdgeTargets,
			Provenance: r.Source,
			Weight:     1,
		})
	}

	if opts.DiseaseLabel != "" && len(disease) > 0 {
		label := Normalize(opts.DiseaseLabel)
		_ = g.AddNode(Node{ID: label, Type: TypeDisease})
		for _, id := range g.NodesOfType(TypeDiseaseTarget) {
			_ = g.AddEdge(Edge{From: label, To: id, Type: EdgeAssociates, Weight: 1})
		}
	}

	res := &BuildResult{Graph: g, Rendering: g, Warnings: warnings}

	threshold := opts.SimplifyThreshold
	if threshold == 0 {
		threshold = DefaultSimplifyThreshold
	}
	if threshold > 0 && g.NodeCount() > threshold {
		res.Rendering = Simplify(g)
	}
	return res, nil
}

// classify assigns a node type with a fixed precedence order:
// Disease > DiseaseTarget > Herb > Molecule > Target > Unknown.
// An entity appearing in several role sets takes the highest-precedence type
// (a molecule that is also a predicted target renders as a molecule).
func classify(id string, sources, intermediates, targets, disease map[string]bool, diseaseLabel string) NodeType {
	switch {
	case diseaseLabel != "" && id == Normalize(diseaseLabel):
		return TypeDisease
	case targets[id] && disease[id]:
		return TypeDiseaseTarget
	case sources[id]:
		return TypeHerb
	case intermediates[id]:
		return TypeMolecule
	case targets[id]:
		return TypeTarget
	default:
		return TypeUnknown
	}
}

// Simplify applies the degree-based readability pass: intermediates
// (molecules) are retained only when they hit more than one target over the
// "targets" layer; all privileged node types survive unconditionally. Edges
// whose endpoints were removed are dropped.
//
// The result is a new graph scoped to rendering only - analytical set
// operations always run against the unsimplified input.
func Simplify(g *Graph) *Graph {
	// Distinct target endpoints per molecule: provenance multi-edges to
	// the same target count once, so a molecule kept by the >1 cut really
	// does hit more than one target.
	distinctTargets := make(map[string]map[string]bool)
	for _, e := range g.Edges() {
		if e.Type != EdgeTargets {
			continue
		}
		if distinctTargets[e.From] == nil {
			distinctTargets[e.From] = make(map[string]bool)
		}
		distinctTargets[e.From][e.To] = true
	}

	keep := func(n *Node) bool {
		switch n.Type {
		case TypeHerb, TypeTarget, TypeDiseaseTarget, TypeDisease, TypeProtein:
			return true
		default:
			return len(distinctTargets[n.ID]) > 1
		}
	}

	out := New()
	for _, n := range g.Nodes() {
		if keep(n) {
			_ = out.AddNode(Node{ID: n.ID, Type: n.Type})
		}
	}
	for _, e := range g.Edges() {
		if out.Node(e.From) != nil && out.Node(e.To) != nil {
			_ = out.AddEdge(e)
		}
	}
	return out
}
