package graph

import (
	"testing"

	"github.com/phytolab/herbnet/pkg/errors"
)

func TestCleanRecords(t *testing.T) {
	tests := []struct {
		name string
		in   []Record
		want []Record
	}{
		{
			name: "Empty",
			in:   nil,
			want: []Record{},
		},
		{
			name: "TrimsAndDropsBlank",
			in: []Record{
				{"  Curcuma longa ", " Curcumin ", " TNF "},
				{"Curcuma longa", "", "TNF"},
				{"", "Curcumin", "TNF"},
			},
			want: []Record{{"Curcuma longa", "Curcumin", "TNF"}},
		},
		{
			name: "DeduplicatesExactTriples",
			in: []Record{
				{"H1", "M1", "T1"},
				{"H1", "M1", "T1"},
				{"H1", "M1", "T2"},
			},
			want: []Record{{"H1", "M1", "T1"}, {"H1", "M1", "T2"}},
		},
		{
			name: "SortsForDeterminism",
			in: []Record{
				{"H2", "M1", "T1"},
				{"H1", "M2", "T1"},
				{"H1", "M1", "T1"},
			},
			want: []Record{
				{"H1", "M1", "T1"},
				{"H1", "M2", "T1"},
				{"H2", "M1", "T1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanRecords(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("record[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildEmptyInput(t *testing.T) {
	_, err := Build([]Record{{" ", "", ""}}, BuildOptions{})
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !errors.Is(err, errors.ErrCodeEmptyGraph) {
		t.Errorf("error code = %q, want EMPTY_GRAPH", errors.GetCode(err))
	}
}

func TestBuildProvenancePreservation(t *testing.T) {
	// Two herbs reaching the same target through the same molecule must stay
	// two distinct targets edges, never one.
	res, err := Build([]Record{
		{"H1", "M", "T"},
		{"H2", "M", "T"},
	}, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	var targetsEdges []Edge
	for _, e := range res.Graph.Edges() {
		if e.Type == EdgeTargets {
			targetsEdges = append(targetsEdges, e)
		}
	}
	if len(targetsEdges) != 2 {
		t.Fatalf("targets edges = %d, want 2", len(targetsEdges))
	}
	prov := map[string]bool{}
	for _, e := range targetsEdges {
		if e.From != "M" || e.To != "T" {
			t.Errorf("unexpected edge %s→%s", e.From, e.To)
		}
		prov[e.Provenance] = true
	}
	if !prov["H1"] || !prov["H2"] {
		t.Errorf("provenance set = %v, want H1 and H2", prov)
	}
}

func TestBuildContainsDeduplication(t *testing.T) {
	res, err := Build([]Record{
		{"H", "M", "T1"},
		{"H", "M", "T2"},
	}, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	contains := 0
	for _, e := range res.Graph.Edges() {
		if e.Type == EdgeContains {
			contains++
		}
	}
	if contains != 1 {
		t.Errorf("contains edges = %d, want 1 (deduped on endpoints)", contains)
	}
}

func TestBuildTypeAssignment(t *testing.T) {
	res, err := Build([]Record{
		{"Herb", "Mol", "GeneA"},
		{"Herb", "Mol", "GeneB"},
	}, BuildOptions{
		DiseaseTargets: map[string]bool{"GeneB": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	g := res.Graph

	tests := []struct {
		id   string
		want NodeType
	}{
		{"Herb", TypeHerb},
		{"Mol", TypeMolecule},
		{"GeneA", TypeTarget},
		{"GeneB", TypeDiseaseTarget}, // disease membership takes precedence
	}
	for _, tt := range tests {
		if got := g.Node(tt.id).Type; got != tt.want {
			t.Errorf("type(%s) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestBuildDiseaseSink(t *testing.T) {
	res, err := Build([]Record{
		{"H", "M", "G1"},
		{"H", "M", "G2"},
	}, BuildOptions{
		DiseaseTargets: map[string]bool{"G1": true, "G2": true},
		DiseaseLabel:   "breast carcinoma",
	})
	if err != nil {
		t.Fatal(err)
	}
	g := res.Graph
	if n := g.Node("breast carcinoma"); n == nil || n.Type != TypeDisease {
		t.Fatal("disease sink node missing or mistyped")
	}
	assoc := 0
	for _, e := range g.Edges() {
		if e.Type == EdgeAssociates {
			assoc++
			if e.From != "breast carcinoma" {
				t.Errorf("associates edge from %q, want disease sink", e.From)
			}
		}
	}
	if assoc != 2 {
		t.Errorf("associates edges = %d, want 2", assoc)
	}
}

func TestBuildDeterminism(t *testing.T) {
	rows := []Record{
		{"H2", "M2", "T3"},
		{"H1", "M1", "T1"},
		{"H1", "M2", "T2"},
		{"H2", "M1", "T1"},
	}
	a, err := Build(rows, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	// Reversed input order must not change the serialized bytes.
	rev := make([]Record, len(rows))
	for i, r := range rows {
		rev[len(rows)-1-i] = r
	}
	b, err := Build(rev, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	da, err := Marshal(a.Graph)
	if err != nil {
		t.Fatal(err)
	}
	db, err := Marshal(b.Graph)
	if err != nil {
		t.Fatal(err)
	}
	if string(da) != string(db) {
		t.Error("builder output depends on input row order")
	}
}

func TestSimplifyRenderOnly(t *testing.T) {
	// M1 hits two targets, M2 only one: M2 is removed from the rendering
	// graph, but the analytical graph and its target set are untouched.
	rows := []Record{
		{"H", "M1", "T1"},
		{"H", "M1", "T2"},
		{"H", "M2", "T1"},
	}
	res, err := Build(rows, BuildOptions{SimplifyThreshold: 3})
	if err != nil {
		t.Fatal(err)
	}

	if res.Rendering == res.Graph {
		t.Fatal("expected a distinct simplified rendering graph")
	}
	if res.Rendering.Node("M2") != nil {
		t.Error("single-target molecule survived simplification")
	}
	if res.Rendering.Node("M1") == nil {
		t.Error("multi-target molecule was removed")
	}

	// Target identifiers of the analytical graph are identical before and
	// after simplification.
	want := map[string]bool{"T1": true, "T2": true}
	got := res.Graph.NodesOfType(TypeTarget)
	if len(got) != len(want) {
		t.Fatalf("analytical target set = %v, want T1,T2", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected target %q", id)
		}
	}
}

func TestSimplifyCountsDistinctTargets(t *testing.T) {
	// M2 reaches only T1, but through two herbs. The provenance
	// multi-edges must not let it pass the multi-target cut.
	rows := []Record{
		{"H1", "M1", "T1"},
		{"H1", "M1", "T2"},
		{"H1", "M2", "T1"},
		{"H2", "M2", "T1"},
	}
	res, err := Build(rows, BuildOptions{SimplifyThreshold: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Rendering.Node("M2") != nil {
		t.Error("molecule hitting a single target kept despite multiple provenances")
	}
	if res.Rendering.Node("M1") == nil {
		t.Error("molecule hitting two targets removed")
	}
}

func TestSimplifyKeepsPrivilegedTypes(t *testing.T) {
	res, err := Build([]Record{
		{"H", "M", "G"},
	}, BuildOptions{
		DiseaseTargets:    map[string]bool{"G": true},
		SimplifyThreshold: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	r := res.Rendering
	for _, id := range []string{"H", "G"} {
		if r.Node(id) == nil {
			t.Errorf("privileged node %q removed by simplification", id)
		}
	}
	if r.Node("M") != nil {
		t.Error("single-target molecule kept")
	}
}
