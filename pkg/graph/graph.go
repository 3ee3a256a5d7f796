package graph

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty
	// after normalization. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownEndpoint is returned by [Graph.AddEdge] when either endpoint
	// does not exist in the node set. Edges never create nodes implicitly.
	ErrUnknownEndpoint = errors.New("edge endpoint not in node set")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge with the
	// same (from, to, type, provenance) tuple already exists. Edges differing
	// in provenance are not duplicates.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Graph is a directed multigraph of typed interaction edges.
//
// Multiple edges between the same pair of nodes are retained as distinct
// records as long as they differ in type or provenance; this preserves
// which source entity introduced a derived link. Analytical passes that
// need a simple graph use [Graph.Projection] instead of mutating the store.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes map[string]*Node
	edges []Edge
	seen  map[[4]string]bool
}

// New creates an empty interaction graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		seen:  make(map[[4]string]bool),
	}
}

// Normalize canonicalizes an identifier: surrounding whitespace is trimmed
// and interior runs of whitespace are collapsed to single spaces. Case is
// preserved - gene symbols are case-sensitive.
func Normalize(id string) string {
	return strings.Join(strings.Fields(id), " ")
}

// AddNode adds a node to the graph. The ID is normalized first.
// Adding a node that already exists is a no-op that keeps the existing
// record; use [Graph.SetType] to reclassify.
func (g *Graph) AddNode(n Node) error {
	n.ID = Normalize(n.ID)
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return nil
	}
	node := n
	g.nodes[node.ID] = &node
	return nil
}

// SetType reclassifies an existing node. Unknown IDs are ignored.
func (g *Graph) SetType(id string, t NodeType) {
	if n, ok := g.nodes[Normalize(id)]; ok {
		n.Type = t
	}
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownEndpoint if either endpoint is missing, or
// ErrDuplicateEdge when the exact (from, to, type, provenance) tuple is
// already present. Edges are never silently merged across provenance.
func (g *Graph) AddEdge(e Edge) error {
	e.From = Normalize(e.From)
	e.To = Normalize(e.To)
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownEndpoint
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownEndpoint
	}
	key := e.Key()
	if g.seen[key] {
		return ErrDuplicateEdge
	}
	g.seen[key] = true
	g.edges = append(g.edges, e)
	g.nodes[e.From].Degree++
	g.nodes[e.To].Degree++
	return nil
}

// HasEdge reports whether the exact edge tuple is present.
func (g *Graph) HasEdge(e Edge) bool {
	e.From = Normalize(e.From)
	e.To = Normalize(e.To)
	return g.seen[e.Key()]
}

// Node returns the node with the given ID, or nil if absent.
func (g *Graph) Node(id string) *Node {
	return g.nodes[Normalize(id)]
}

// Nodes returns all nodes sorted by ID for deterministic iteration.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *Node) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Edges returns all edges in insertion order.
// The returned slice is shared with the graph; callers must not modify it.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edge records, counting multi-edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodesOfType returns the IDs of all nodes with the given type, sorted.
func (g *Graph) NodesOfType(t NodeType) []string {
	var out []string
	for id, n := range g.nodes {
		if n.Type == t {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.nodes {
		node := *n
		node.Degree = 0
		c.nodes[node.ID] = &node
	}
	for _, e := range g.edges {
		_ = c.AddEdge(e)
	}
	return c
}

// Merge adds all nodes and edges from other into g. Nodes already present
// keep their existing type; duplicate edge tuples are skipped. The PPI layer
// produced by the interaction resolver is disjoint from the herb-origin graph
// and is combined this way for a joint rendering.
func (g *Graph) Merge(other *Graph) {
	for _, n := range other.Nodes() {
		_ = g.AddNode(Node{ID: n.ID, Type: n.Type})
	}
	for _, e := range other.Edges() {
		_ = g.AddEdge(e)
	}
}

// ResetScores clears all derived score fields. Any structural change
// invalidates prior scores; callers re-run the hub scorer afterwards.
func (g *Graph) ResetScores() {
	for _, n := range g.nodes {
		n.Centrality = Centrality{}
		n.HubScore = 0
		n.IsHub = false
	}
}

// Projection is an undirected simple-graph view of a multigraph: multi-edges
// collapsed, self-loops dropped, direction ignored. It is the input shape for
// centrality computation; the originating multigraph is untouched.
type Projection struct {
	IDs       []string            // sorted node IDs
	Neighbors map[string][]string // sorted adjacency lists
}

// EdgePairs returns the number of distinct undirected node pairs with at
// least one edge between them.
func (p Projection) EdgePairs() int {
	total := 0
	for _, nbrs := range p.Neighbors {
		total += len(nbrs)
	}
	return total / 2
}

// Projection collapses the multigraph into an undirected simple graph.
func (g *Graph) Projection() Projection {
	adj := make(map[string]map[string]bool, len(g.nodes))
	for id := range g.nodes {
		adj[id] = make(map[string]bool)
	}
	for _, e := range g.edges {
		if e.From == e.To {
			continue
		}
		adj[e.From][e.To] = true
		adj[e.To][e.From] = true
	}

	p := Projection{
		IDs:       make([]string, 0, len(adj)),
		Neighbors: make(map[string][]string, len(adj)),
	}
	for id, nbrs := range adj {
		p.IDs = append(p.IDs, id)
		list := make([]string, 0, len(nbrs))
		for n := range nbrs {
			list = append(list, n)
		}
		slices.Sort(list)
		p.Neighbors[id] = list
	}
	slices.Sort(p.IDs)
	return p
}
