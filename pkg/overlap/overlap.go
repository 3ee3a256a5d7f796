package overlap

import (
	"github.com/phytolab/herbnet/pkg/errors"
)

// Strategy selects how an N-set comparison is presented.
type Strategy string

const (
	// StrategyVenn is the pairwise/ternary Venn-style presentation used for
	// two or three sets.
	StrategyVenn Strategy = "venn"
	// StrategyMatrix is the binary membership matrix (upset-style)
	// presentation used for four or more sets.
	StrategyMatrix Strategy = "matrix"
)

// PairwiseCommonCap bounds the explicit common-identifier list emitted for
// the 2-set summary, keeping the output readable.
const PairwiseCommonCap = 100

// StrategyFor returns the presentation strategy for n sets.
// Two and three sets share the Venn strategy; four or more switch to the
// membership matrix.
func StrategyFor(n int) Strategy {
	if n >= 4 {
		return StrategyMatrix
	}
	return StrategyVenn
}

// PairSummary is the Venn-style summary for exactly two sets.
type PairSummary struct {
	A, B       string   `json:"-"`
	OnlyA      int      `json:"only_a"`
	OnlyB      int      `json:"only_b"`
	Common     int      `json:"common"`
	CommonList []string `json:"common_list"` // capped at PairwiseCommonCap
}

// MatrixRow is one row of the binary membership matrix: an identifier plus
// one indicator per set, in set order.
type MatrixRow struct {
	ID     string `json:"id"`
	Member []bool `json:"member"`
}

// Result holds the full output of an overlap analysis.
type Result struct {
	Sets          []Set        // the input sets, in input order
	Strategy      Strategy     // venn for 2-3 sets, matrix for >= 4
	Intersection  Set          // identifiers present in every set
	PredictedOnly Set          // first set minus the union of the rest
	Pairwise      *PairSummary // populated only for exactly 2 sets
	Matrix        []MatrixRow  // populated only for >= 4 sets
}

// Analyze computes the overlap statistics across the given sets. The first
// set is by convention the locally predicted target set; the remainder are
// externally fetched disease-association sets. At least one set is required.
//
// Output is deterministic: identical inputs produce identical results, with
// all derived sets in first-insertion order.
func Analyze(sets ...Set) (*Result, error) {
	if len(sets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "overlap analysis requires at least one set")
	}

	predicted := sets[0]
	rest := sets[1:]

	res := &Result{
		Sets:          sets,
		Strategy:      StrategyFor(len(sets)),
		Intersection:  predicted.Intersect(rest...),
		PredictedOnly: predicted.Minus(rest...),
	}

	if len(sets) == 2 {
		res.Pairwise = pairSummary(sets[0], sets[1])
	}
	if res.Strategy == StrategyMatrix {
		res.Matrix = membershipMatrix(sets)
	}
	return res, nil
}

func pairSummary(a, b Set) *PairSummary {
	common := a.Intersect(b)
	list := common.Items()
	if len(list) > PairwiseCommonCap {
		list = list[:PairwiseCommonCap]
	}
	return &PairSummary{
		A:          a.Name,
		B:          b.Name,
		OnlyA:      a.Minus(b).Len(),
		OnlyB:      b.Minus(a).Len(),
		Common:     common.Len(),
		CommonList: list,
	}
}

// membershipMatrix emits one row per identifier across the union of all
// sets, with a binary indicator per set. Rows follow union (first-seen)
// order; columns follow input set order.
func membershipMatrix(sets []Set) []MatrixRow {
	union := sets[0].Union(sets[1:]...)
	rows := make([]MatrixRow, 0, union.Len())
	for _, id := range union.Items() {
		row := MatrixRow{ID: id, Member: make([]bool, len(sets))}
		for i, s := range sets {
			row.Member[i] = s.Contains(id)
		}
		rows = append(rows, row)
	}
	return rows
}
