// Package export writes graphs to interchange formats consumed by
// downstream network tools: a SIF-compatible edge list and attribute
// tables for nodes and edges. Column order and row order are fixed, so
// identical graphs always export identical bytes.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/phytolab/herbnet/pkg/graph"
)

// WriteEdgeList writes edges as tab-separated "from<TAB>type<TAB>to"
// triplets, the SIF convention. Multi-edges collapse to one line per
// (from, type, to) tuple.
func WriteEdgeList(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	seen := make(map[[3]string]bool)
	for _, e := range g.Edges() {
		key := [3]string{e.From, string(e.Type), e.To}
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", e.From, e.Type, e.To); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Node attribute CSV header. Changing this order breaks downstream
// consumers; add new columns at the end only.
var nodeHeader = []string{
	"id", "type", "degree",
	"degree_c", "betweenness", "closeness", "eigenvector",
	"hub_score", "is_hub",
}

// WriteNodeAttributes writes one CSV row per node, sorted by id.
func WriteNodeAttributes(w io.Writer, g *graph.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(nodeHeader); err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		row := []string{
			n.ID,
			string(n.Type),
			strconv.Itoa(n.Degree),
			formatFloat(n.Centrality.Degree),
			formatFloat(n.Centrality.Betweenness),
			formatFloat(n.Centrality.Closeness),
			formatFloat(n.Centrality.Eigenvector),
			formatFloat(n.HubScore),
			strconv.FormatBool(n.IsHub),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var edgeHeader = []string{"from", "to", "type", "provenance", "weight"}

// WriteEdgeAttributes writes one CSV row per edge, including provenance,
// so multi-edges stay distinct.
func WriteEdgeAttributes(w io.Writer, g *graph.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(edgeHeader); err != nil {
		return err
	}
	for _, e := range g.Edges() {
		row := []string{e.From, e.To, string(e.Type), e.Provenance, formatFloat(e.Weight)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadEdgeList parses a SIF-style edge list back into (from, type, to)
// tuples. Blank lines are skipped; malformed lines are an error.
func ReadEdgeList(r io.Reader) ([]graph.Edge, error) {
	var edges []graph.Edge
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("edge list line %d: expected 3 fields, got %d", line, len(fields))
		}
		edges = append(edges, graph.Edge{
			From: fields[0],
			Type: graph.EdgeType(fields[1]),
			To:   fields[2],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return edges, nil
}

// WriteFiles exports the edge list and both attribute tables into dir
// using the standard file names.
func WriteFiles(dir string, g *graph.Graph) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	writers := []struct {
		name  string
		write func(io.Writer, *graph.Graph) error
	}{
		{"network.sif", WriteEdgeList},
		{"node_attributes.csv", WriteNodeAttributes},
		{"edge_attributes.csv", WriteEdgeAttributes},
	}
	for _, spec := range writers {
		f, err := os.Create(dir + "/" + spec.name)
		if err != nil {
			return err
		}
		if err := spec.write(f, g); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// formatFloat renders scores compactly: integers without a decimal point,
// everything else with the shortest round-tripping representation.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
