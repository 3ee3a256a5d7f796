// Package ppi resolves a set of local target identifiers against a bulk
// protein-protein interaction corpus and extracts the confidence- and
// degree-filtered subnetwork between them.
//
// The corpus is treated as an external, unvalidated source: malformed
// records are discarded during loading, unmapped identifiers degrade the
// result rather than failing it, and only a fully unmappable input is an
// error.
package ppi

import (
	"slices"
	"strings"

	"github.com/phytolab/herbnet/pkg/errors"
	"github.com/phytolab/herbnet/pkg/graph"
)

// Options configures interaction resolution.
type Options struct {
	// MinConfidence drops corpus records scoring below it (0-1000 scale).
	MinConfidence int
	// MinDegree drops nodes whose combined degree in the filtered network
	// falls below it. The prune is a single pass, not a fixed-point
	// iteration: removing a low-degree node does not retrigger degree
	// recomputation for its neighbors.
	MinDegree int
}

// DefaultMinConfidence matches the usual "medium confidence" corpus cutoff.
const DefaultMinConfidence = 400

// Result holds the resolved interaction subnetwork.
type Result struct {
	// Edges are the retained interactions, endpoints mapped back to local
	// identifiers, typed "interacts", weight = confidence/1000.
	Edges []graph.Edge
	// Resolved maps each mappable local identifier to its corpus identifier.
	Resolved map[string]string
	// Unmapped lists local identifiers with no corpus mapping, sorted.
	Unmapped []string
}

// Graph materializes the result as a protein-typed interaction graph.
func (r *Result) Graph() *graph.Graph {
	g := graph.New()
	for _, e := range r.Edges {
		_ = g.AddNode(graph.Node{ID: e.From, Type: graph.TypeProtein})
		_ = g.AddNode(graph.Node{ID: e.To, Type: graph.TypeProtein})
		_ = g.AddEdge(e)
	}
	return g
}

// Resolve maps local identifiers into the corpus identifier space, filters
// the corpus down to high-confidence interactions among them, and prunes
// low-degree nodes.
//
// Mapping policy: an identifier with several corpus mappings keeps the first
// one in alias-file order and discards the rest. Unmapped identifiers are
// excluded and reported.
//
// Returns NO_MAPPABLE_IDS when nothing resolves and NO_EDGES_AFTER_FILTER
// when the confidence filter leaves an empty network. Both are terminal for
// this module only.
func Resolve(localIDs []string, aliases []Alias, corpus []Interaction, opts Options) (*Result, error) {
	if opts.MinConfidence == 0 {
		opts.MinConfidence = DefaultMinConfidence
	}

	// First mapping per local id wins; later duplicates are dropped.
	aliasIndex := make(map[string]string, len(aliases))
	for _, a := range aliases {
		key := graph.Normalize(a.Local)
		if key == "" || a.Corpus == "" {
			continue
		}
		if _, dup := aliasIndex[key]; !dup {
			aliasIndex[key] = a.Corpus
		}
	}

	resolved := make(map[string]string)
	toLocal := make(map[string]string)
	var unmapped []string
	for _, id := range localIDs {
		id = graph.Normalize(id)
		if id == "" {
			continue
		}
		corpusID, ok := aliasIndex[id]
		if !ok {
			unmapped = append(unmapped, id)
			continue
		}
		resolved[id] = corpusID
		if _, dup := toLocal[corpusID]; !dup {
			toLocal[corpusID] = id
		}
	}
	slices.Sort(unmapped)

	if len(resolved) == 0 {
		return nil, errors.New(errors.ErrCodeNoMappableIDs,
			"none of %d local identifiers map into the interaction corpus", len(localIDs))
	}

	// Keep records with both endpoints resolved and confidence above cutoff.
	var kept []Interaction
	for _, in := range corpus {
		if in.A == "" || in.B == "" {
			continue
		}
		if _, ok := toLocal[in.A]; !ok {
			continue
		}
		if _, ok := toLocal[in.B]; !ok {
			continue
		}
		if in.Confidence < opts.MinConfidence {
			continue
		}
		kept = append(kept, in)
	}
	if len(kept) == 0 {
		return nil, errors.New(errors.ErrCodeNoEdgesAfterFilter,
			"no interactions with confidence >= %d between %d resolved identifiers",
			opts.MinConfidence, len(resolved))
	}

	// Combined degree: sum of the two half-edge counts per node. Nodes
	// appearing only as one endpoint simply contribute zero on the other side.
	outDeg := make(map[string]int)
	inDeg := make(map[string]int)
	for _, in := range kept {
		outDeg[in.A]++
		inDeg[in.B]++
	}
	degree := func(id string) int { return outDeg[id] + inDeg[id] }

	// Single-pass prune by combined degree (see Options.MinDegree).
	edges := make([]graph.Edge, 0, len(kept))
	for _, in := range kept {
		if degree(in.A) < opts.MinDegree || degree(in.B) < opts.MinDegree {
			continue
		}
		edges = append(edges, graph.Edge{
			From:   toLocal[in.A],
			To:     toLocal[in.B],
			Type:   graph.EdgeInteracts,
			Weight: float64(in.Confidence) / 1000,
		})
	}

	slices.SortFunc(edges, func(a, b graph.Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})

	return &Result{Edges: edges, Resolved: resolved, Unmapped: unmapped}, nil
}
