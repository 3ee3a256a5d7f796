package ppi

import (
	"strings"
	"testing"

	"github.com/phytolab/herbnet/pkg/errors"
)

var testAliases = []Alias{
	{Local: "TNF", Corpus: "9606.P1"},
	{Local: "IL6", Corpus: "9606.P2"},
	{Local: "EGFR", Corpus: "9606.P3"},
	{Local: "AKT1", Corpus: "9606.P4"},
	{Local: "TNF", Corpus: "9606.P9"}, // ambiguous second mapping, must be ignored
}

var testCorpus = []Interaction{
	{A: "9606.P1", B: "9606.P2", Confidence: 900},
	{A: "9606.P2", B: "9606.P3", Confidence: 700},
	{A: "9606.P3", B: "9606.P4", Confidence: 300}, // below default cutoff
	{A: "9606.P1", B: "9606.P3", Confidence: 500},
	{A: "9606.P1", B: "9606.P8", Confidence: 999}, // endpoint outside resolved set
}

func TestResolveBasic(t *testing.T) {
	res, err := Resolve([]string{"TNF", "IL6", "EGFR", "AKT1", "NOPE"}, testAliases, testCorpus, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if got := len(res.Edges); got != 3 {
		t.Fatalf("edges = %d, want 3", got)
	}
	if got := res.Resolved["TNF"]; got != "9606.P1" {
		t.Errorf("ambiguous mapping: TNF → %s, want first mapping 9606.P1", got)
	}
	if len(res.Unmapped) != 1 || res.Unmapped[0] != "NOPE" {
		t.Errorf("unmapped = %v, want [NOPE]", res.Unmapped)
	}
	for _, e := range res.Edges {
		if e.Weight < 0.4 || e.Weight > 1 {
			t.Errorf("edge weight %v outside expected confidence range", e.Weight)
		}
		if strings.HasPrefix(e.From, "9606.") || strings.HasPrefix(e.To, "9606.") {
			t.Errorf("edge %s→%s not mapped back to local identifiers", e.From, e.To)
		}
	}
}

func TestResolveNoMappableIDs(t *testing.T) {
	_, err := Resolve([]string{"AAA", "BBB"}, testAliases, testCorpus, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeNoMappableIDs) {
		t.Errorf("code = %s, want NO_MAPPABLE_IDS", errors.GetCode(err))
	}
}

func TestResolveNoEdgesAfterFilter(t *testing.T) {
	_, err := Resolve([]string{"EGFR", "AKT1"}, testAliases, testCorpus, Options{MinConfidence: 950})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeNoEdgesAfterFilter) {
		t.Errorf("code = %s, want NO_EDGES_AFTER_FILTER", errors.GetCode(err))
	}
}

func TestResolveDegreePruneSinglePass(t *testing.T) {
	// Chain P1-P2-P3 plus pendant P4: with MinDegree 2 the pendant edge
	// P3-P4 drops, and P3's degree is NOT recomputed afterwards - the
	// single pass keeps P2-P3 even though P3's post-prune degree is 1.
	corpus := []Interaction{
		{A: "9606.P1", B: "9606.P2", Confidence: 900},
		{A: "9606.P2", B: "9606.P3", Confidence: 900},
		{A: "9606.P3", B: "9606.P4", Confidence: 900},
		{A: "9606.P1", B: "9606.P3", Confidence: 900},
	}
	res, err := Resolve([]string{"TNF", "IL6", "EGFR", "AKT1"}, testAliases, corpus, Options{MinDegree: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range res.Edges {
		if e.From == "AKT1" || e.To == "AKT1" {
			t.Errorf("pendant edge %s→%s survived degree prune", e.From, e.To)
		}
	}
	if got := len(res.Edges); got != 3 {
		t.Errorf("edges = %d, want 3 (triangle kept, pendant dropped)", got)
	}
}

func TestResultGraph(t *testing.T) {
	res, err := Resolve([]string{"TNF", "IL6", "EGFR", "AKT1"}, testAliases, testCorpus, Options{})
	if err != nil {
		t.Fatal(err)
	}
	g := res.Graph()
	for _, n := range g.Nodes() {
		if n.Type != "protein" {
			t.Errorf("node %s typed %s, want protein", n.ID, n.Type)
		}
	}
	if g.EdgeCount() != len(res.Edges) {
		t.Errorf("graph edges = %d, want %d", g.EdgeCount(), len(res.Edges))
	}
}

func TestReadInteractions(t *testing.T) {
	input := `# STRING-style bulk export
protein1 protein2 combined_score
9606.P1 9606.P2 900
9606.P3	9606.P4	150
malformed_line
9606.P5 9606.P6 notascore
`
	got, err := ReadInteractions(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("parsed %d interactions, want 2 (header, comment, malformed dropped)", len(got))
	}
	if got[0].Confidence != 900 || got[1].Confidence != 150 {
		t.Errorf("confidences = %d, %d", got[0].Confidence, got[1].Confidence)
	}
}

func TestReadAliases(t *testing.T) {
	input := `TNF	9606.P1
IL6	9606.P2

# comment
BROKEN
`
	got, err := ReadAliases(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("parsed %d aliases, want 2", len(got))
	}
	if got[0].Local != "TNF" || got[0].Corpus != "9606.P1" {
		t.Errorf("first alias = %+v", got[0])
	}
}
