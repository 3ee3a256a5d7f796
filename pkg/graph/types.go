package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NodeType classifies a node by its role in the interaction network.
// Types are assigned by membership test against role-specific identifier sets,
// with a fixed precedence: Disease > DiseaseTarget > Herb/Molecule/Target.
type NodeType string

// Node types.
const (
	TypeHerb          NodeType = "herb"
	TypeMolecule      NodeType = "molecule"
	TypeTarget        NodeType = "target"
	TypeDiseaseTarget NodeType = "disease_target"
	TypeDisease       NodeType = "disease"
	TypeProtein       NodeType = "protein"
	TypeUnknown       NodeType = "unknown"
)

// EdgeType classifies an edge by the relation it encodes.
type EdgeType string

// Edge types.
const (
	EdgeContains   EdgeType = "contains"   // herb → molecule
	EdgeTargets    EdgeType = "targets"    // molecule → target
	EdgeAssociates EdgeType = "associates" // disease → target
	EdgeInteracts  EdgeType = "interacts"  // protein ↔ protein
)

// Centrality holds the per-node centrality measures computed by the hub scorer.
// All fields are derived values and are reset whenever the graph structure changes.
type Centrality struct {
	Degree      float64 `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	Closeness   float64 `json:"closeness"`
	Eigenvector float64 `json:"eigenvector"`
}

// Node is a vertex in the interaction multigraph.
//
// Identity is the (trimmed) identifier string. Degree, Centrality, HubScore and
// IsHub are derived, not authoritative: they are recomputed after any structural
// change and are zero-valued on a freshly built graph.
type Node struct {
	ID         string     `json:"id"`
	Type       NodeType   `json:"type"`
	Degree     int        `json:"degree,omitempty"`
	Centrality Centrality `json:"centrality"`
	HubScore   float64    `json:"hub_score,omitempty"`
	IsHub      bool       `json:"is_hub,omitempty"`
}

// Edge is a directed, typed edge in the interaction multigraph.
//
// Multi-edges are permitted: two edges with identical endpoints but different
// Provenance are distinct records. Provenance names the originating herb for
// derived molecule→target links and is empty for other edge types.
type Edge struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Type       EdgeType `json:"type"`
	Provenance string   `json:"provenance,omitempty"`
	Weight     float64  `json:"weight,omitempty"`
}

// Key returns the identity tuple distinguishing this edge from all others.
// Edges sharing all four components are duplicates; edges differing only in
// provenance are distinct records.
func (e Edge) Key() [4]string {
	return [4]string{e.From, e.To, string(e.Type), e.Provenance}
}
