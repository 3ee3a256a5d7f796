// Package graph implements the typed interaction multigraph at the core of
// HerbNet: construction from tabular herb→molecule→target records, role-based
// node classification, provenance-preserving multi-edges, a degree-based
// readability simplification pass, and deterministic JSON serialization.
//
// The package keeps two representations of the same data on purpose: the
// multigraph itself (storage, rendering, export) and an undirected
// simple-graph [Projection] (centrality computation). Collapsing multi-edges
// happens only inside the projection; the stored edge table is never merged
// across provenance.
package graph
