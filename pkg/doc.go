// Package pkg provides the core libraries for Herbnet network pharmacology
// analysis.
//
// # Overview
//
// Herbnet builds herb-molecule-target interaction networks from traditional
// Chinese medicine compound tables, overlays disease associations and protein
// interaction data, scores hub targets and renders the result. The pkg
// directory is organized into these areas:
//
//  1. [graph] - Typed provenance-preserving multigraph model
//  2. [centrality], [overlap], [ppi] - Network analysis
//  3. [layout], [render], [export] - Visualization and output
//  4. [opentargets], [httputil], [cache] - External data and caching
//  5. [pipeline] - Orchestration used by both CLI and HTTP server
//
// # Architecture
//
// The typical data flow through Herbnet:
//
//	herb,molecule,target CSV
//	         ↓
//	    [graph] package (build the typed multigraph)
//	         ↓           ← [opentargets] disease associations
//	         ↓           ← [ppi] protein interaction layer
//	    [centrality] package (composite hub scoring)
//	         ↓
//	    [overlap] package (predicted vs disease target sets)
//	         ↓
//	    [layout] + [render] packages (density-aware Graphviz output)
//	         ↓
//	    [export] package (SIF edge list, attribute tables, JSON)
//
// # Quick Start
//
// Run the full pipeline programmatically:
//
//	import (
//	    "context"
//	    "github.com/phytolab/herbnet/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Input:    "compounds.csv",
//	    Diseases: []string{"EFO_0000270"},
//	    Formats:  []string{"svg"},
//	})
//
// Or use the packages directly:
//
//	rows, _ := pipeline.ReadRecords("compounds.csv")
//	res, _ := graph.Build(rows, graph.BuildOptions{})
//	scores := centrality.Compute(res.Graph.Projection())
//
// # Main Packages
//
// [graph] - Directed multigraph with typed nodes (herb, molecule, target,
// disease target, disease, protein) and provenance-distinct edges. Includes
// the builder, render-only simplification and JSON serialization.
//
// [centrality] - Degree, betweenness, closeness and eigenvector centrality
// on a simple-graph projection, combined into a z-score hub score.
//
// [overlap] - N-way set comparison of predicted vs disease target sets with
// insertion-ordered deterministic dumps.
//
// [ppi] - Maps local gene symbols into an external protein interaction
// corpus, filters by confidence and prunes peripheral nodes.
//
// [opentargets] - Cached, retried GraphQL client for the Open Targets
// platform's disease-target associations.
//
// [layout] - Pure density-aware scaling of canvas size, node size, edge
// transparency and label visibility.
//
// [render] - DOT emission and Graphviz SVG/PNG rendering.
//
// [export] - SIF-style edge lists and node/edge attribute tables for
// downstream tools.
//
// [pipeline] - Staged runner with per-module outcome manifest, TOML config
// and concurrent upstream fetches. CLI and server both go through it.
//
// [cache] - Cache interface with file, null and Redis backends plus content
// hashing and cache key construction.
//
// [httputil] - Retry with exponential backoff for upstream clients.
//
// [errors] - Coded errors with user-facing messages.
//
// [buildinfo] - Build-time version information.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/graph/...        # Specific package
//	go test -run Example           # Examples only
//
// [graph]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/graph
// [centrality]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/centrality
// [overlap]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/overlap
// [ppi]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/ppi
// [opentargets]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/opentargets
// [layout]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/layout
// [render]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/render
// [export]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/phytolab/herbnet/pkg/buildinfo
package pkg
