package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phytolab/herbnet/pkg/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	nodes := []graph.Node{
		{ID: "Ginseng", Type: graph.TypeHerb},
		{ID: "Licorice", Type: graph.TypeHerb},
		{ID: "quercetin", Type: graph.TypeMolecule},
		{ID: "TNF", Type: graph.TypeTarget},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	edges := []graph.Edge{
		{From: "Ginseng", To: "quercetin", Type: graph.EdgeContains},
		{From: "Licorice", To: "quercetin", Type: graph.EdgeContains},
		{From: "quercetin", To: "TNF", Type: graph.EdgeTargets, Provenance: "Ginseng"},
		{From: "quercetin", To: "TNF", Type: graph.EdgeTargets, Provenance: "Licorice"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%+v): %v", e, err)
		}
	}
	return g
}

func TestWriteEdgeList_CollapsesMultiEdges(t *testing.T) {
	g := testGraph(t)

	var buf bytes.Buffer
	if err := WriteEdgeList(&buf, g); err != nil {
		t.Fatalf("WriteEdgeList: %v", err)
	}

	want := "Ginseng\tcontains\tquercetin\n" +
		"Licorice\tcontains\tquercetin\n" +
		"quercetin\ttargets\tTNF\n"
	if buf.String() != want {
		t.Errorf("edge list mismatch:\ngot:\n%swant:\n%s", buf.String(), want)
	}
}

func TestWriteNodeAttributes(t *testing.T) {
	g := testGraph(t)
	n := g.Node("quercetin")
	n.Centrality = graph.Centrality{Degree: 1, Betweenness: 0.5, Closeness: 0.75, Eigenvector: 1}
	n.HubScore = 2.5
	n.IsHub = true

	var buf bytes.Buffer
	if err := WriteNodeAttributes(&buf, g); err != nil {
		t.Fatalf("WriteNodeAttributes: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "id,type,degree,degree_c,betweenness,closeness,eigenvector,hub_score,is_hub" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d lines", len(lines))
	}
	// Rows are sorted by id; quercetin has degree 4 from the multigraph.
	if lines[4] != "quercetin,molecule,4,1,0.5,0.75,1,2.5,true" {
		t.Errorf("unexpected scored row: %s", lines[4])
	}
	if !strings.HasPrefix(lines[1], "Ginseng,herb,1,") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestWriteEdgeAttributes_KeepsProvenance(t *testing.T) {
	g := testGraph(t)

	var buf bytes.Buffer
	if err := WriteEdgeAttributes(&buf, g); err != nil {
		t.Fatalf("WriteEdgeAttributes: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "from,to,type,provenance,weight" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 edges, got %d lines", len(lines))
	}
	if !strings.Contains(out, "quercetin,TNF,targets,Ginseng,0") ||
		!strings.Contains(out, "quercetin,TNF,targets,Licorice,0") {
		t.Errorf("provenance-distinct edges should both be present:\n%s", out)
	}
}

func TestReadEdgeList_RoundTrip(t *testing.T) {
	g := testGraph(t)

	var buf bytes.Buffer
	if err := WriteEdgeList(&buf, g); err != nil {
		t.Fatalf("WriteEdgeList: %v", err)
	}

	edges, err := ReadEdgeList(&buf)
	if err != nil {
		t.Fatalf("ReadEdgeList: %v", err)
	}
	if len(edges) != 3 {
		t.Fatalf("expected 3 collapsed tuples, got %d", len(edges))
	}
	if edges[0] != (graph.Edge{From: "Ginseng", Type: graph.EdgeContains, To: "quercetin"}) {
		t.Errorf("unexpected first edge: %+v", edges[0])
	}
}

func TestReadEdgeList_Malformed(t *testing.T) {
	_, err := ReadEdgeList(strings.NewReader("a\tcontains\tb\nbroken line\n"))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestWriteFiles(t *testing.T) {
	g := testGraph(t)
	dir := filepath.Join(t.TempDir(), "exports")

	if err := WriteFiles(dir, g); err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}

	for _, name := range []string{"network.sif", "node_attributes.csv", "edge_attributes.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing export %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("export %s is empty", name)
		}
	}
}

func TestExportDeterminism(t *testing.T) {
	g := testGraph(t)

	var a, b bytes.Buffer
	if err := WriteNodeAttributes(&a, g); err != nil {
		t.Fatal(err)
	}
	if err := WriteNodeAttributes(&b, g); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("node attribute export should be byte-identical across calls")
	}
}
