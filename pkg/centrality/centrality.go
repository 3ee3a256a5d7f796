// Package centrality computes node importance scores on an undirected
// simple-graph projection of the interaction network.
//
// Four measures are computed per node - degree, betweenness (Brandes),
// closeness and eigenvector centrality - then standardized to z-scores and
// summed into one composite hub score. The projection collapses multi-edges
// before any computation; the originating multigraph is never modified.
//
// Degenerate graphs are handled explicitly: a projection with fewer than two
// edges yields all-zero measures, and zero-variance standardization yields
// zero z-scores. Scores are therefore always finite.
package centrality

import (
	"math"
	"slices"
	"strings"

	"github.com/phytolab/herbnet/pkg/graph"
)

// Score holds the centrality measures and composite hub score for one node.
type Score struct {
	ID          string  `json:"id"`
	Degree      float64 `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	Closeness   float64 `json:"closeness"`
	Eigenvector float64 `json:"eigenvector"`
	HubScore    float64 `json:"hub_score"`
	IsHub       bool    `json:"is_hub"`
}

// eigenIterations bounds the power iteration for eigenvector centrality.
const eigenIterations = 100

// eigenTolerance is the convergence threshold for power iteration.
const eigenTolerance = 1e-10

// Compute calculates all four centrality measures plus the composite hub
// score for every node in the projection, sorted by hub score descending
// (ties broken by ID for determinism). IsHub is left false; apply a cut with
// [MarkTopK] or [MarkTopPercent].
func Compute(p graph.Projection) []Score {
	n := len(p.IDs)
	if n == 0 {
		return nil
	}

	scores := make([]Score, n)
	index := make(map[string]int, n)
	for i, id := range p.IDs {
		index[id] = i
		scores[i].ID = id
	}

	// A projection with fewer than two edges has no meaningful paths or
	// spectrum; all measures are defined as zero.
	if p.EdgePairs() >= 2 {
		degree := make([]float64, n)
		for i, id := range p.IDs {
			degree[i] = float64(len(p.Neighbors[id]))
		}
		betweenness := brandes(p, index)
		closeness := closenessAll(p, index)
		eigen := eigenvector(p, index)

		for i := range scores {
			scores[i].Degree = degree[i]
			scores[i].Betweenness = betweenness[i]
			scores[i].Closeness = closeness[i]
			scores[i].Eigenvector = eigen[i]
		}

		zd := zscores(degree)
		zb := zscores(betweenness)
		zc := zscores(closeness)
		ze := zscores(eigen)
		for i := range scores {
			scores[i].HubScore = zd[i] + zb[i] + zc[i] + ze[i]
		}
	}

	slices.SortFunc(scores, func(a, b Score) int {
		switch {
		case a.HubScore > b.HubScore:
			return -1
		case a.HubScore < b.HubScore:
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
	return scores
}

// MarkTopK flags the k highest-scoring nodes as hubs.
// The input must already be sorted descending (as returned by [Compute]).
func MarkTopK(scores []Score, k int) {
	for i := range scores {
		scores[i].IsHub = i < k
	}
}

// MarkTopPercent flags the top pct fraction (0,1] of nodes as hubs,
// always at least one when the slice is non-empty.
func MarkTopPercent(scores []Score, pct float64) {
	if len(scores) == 0 || pct <= 0 {
		return
	}
	k := int(math.Ceil(float64(len(scores)) * pct))
	MarkTopK(scores, max(k, 1))
}

// Apply writes computed scores back onto the graph's nodes.
// Nodes absent from the score table are left untouched.
func Apply(g *graph.Graph, scores []Score) {
	for _, s := range scores {
		n := g.Node(s.ID)
		if n == nil {
			continue
		}
		n.Centrality = graph.Centrality{
			Degree:      s.Degree,
			Betweenness: s.Betweenness,
			Closeness:   s.Closeness,
			Eigenvector: s.Eigenvector,
		}
		n.HubScore = s.HubScore
		n.IsHub = s.IsHub
	}
}

// brandes computes betweenness centrality for all nodes, normalized to [0,1]
// by the (n-1)(n-2)/2 undirected pair count.
func brandes(p graph.Projection, index map[string]int) []float64 {
	n := len(p.IDs)
	cb := make([]float64, n)
	if n < 3 {
		return cb
	}

	for _, s := range p.IDs {
		si := index[s]

		stack := make([]int, 0, n)
		pred := make([][]int, n)
		sigma := make([]float64, n)
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		sigma[si] = 1
		dist[si] = 0

		queue := []int{si}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, wid := range p.Neighbors[p.IDs[v]] {
				w := index[wid]
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != si {
				cb[w] += delta[w]
			}
		}
	}

	// Each undirected pair is counted twice across sources.
	norm := float64(n-1) * float64(n-2)
	for i := range cb {
		cb[i] /= norm
	}
	return cb
}

// closenessAll computes closeness centrality per node using the
// Wasserman-Faust component correction, so disconnected graphs yield
// comparable [0,1] values without division by zero.
func closenessAll(p graph.Projection, index map[string]int) []float64 {
	n := len(p.IDs)
	out := make([]float64, n)
	if n < 2 {
		return out
	}

	for _, s := range p.IDs {
		si := index[s]
		dist := bfs(p, index, si)

		total := 0
		reached := 0
		for _, d := range dist {
			if d > 0 {
				total += d
				reached++
			}
		}
		if total == 0 {
			continue
		}
		// (r / (n-1)) * (r / total) where r = reachable nodes.
		r := float64(reached)
		out[si] = (r / float64(n-1)) * (r / float64(total))
	}
	return out
}

func bfs(p graph.Projection, index map[string]int, src int) []int {
	dist := make([]int, len(p.IDs))
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, wid := range p.Neighbors[p.IDs[v]] {
			w := index[wid]
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

// eigenvector computes eigenvector centrality via power iteration on the
// adjacency matrix, scaled so the maximum entry is 1.
func eigenvector(p graph.Projection, index map[string]int) []float64 {
	n := len(p.IDs)
	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / math.Sqrt(float64(n))
	}

	next := make([]float64, n)
	for iter := 0; iter < eigenIterations; iter++ {
		for i := range next {
			next[i] = 0
		}
		for v, id := range p.IDs {
			for _, wid := range p.Neighbors[id] {
				next[index[wid]] += x[v]
			}
		}

		var norm float64
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			// No edges reachable from the start vector; centrality is zero.
			return make([]float64, n)
		}

		var diff float64
		for i := range next {
			next[i] /= norm
			diff += math.Abs(next[i] - x[i])
		}
		copy(x, next)
		if diff < eigenTolerance {
			break
		}
	}

	// Scale to max 1 for readability, matching the usual reporting convention.
	maxV := 0.0
	for _, v := range x {
		if v > maxV {
			maxV = v
		}
	}
	if maxV > 0 {
		for i := range x {
			x[i] /= maxV
		}
	}
	return x
}

// zscores standardizes values to zero mean and unit variance.
// A zero-variance input yields all-zero scores rather than NaN.
func zscores(values []float64) []float64 {
	n := float64(len(values))
	if n == 0 {
		return nil
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= n

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= n

	out := make([]float64, len(values))
	if variance == 0 {
		return out
	}
	sd := math.Sqrt(variance)
	for i, v := range values {
		out[i] = (v - mean) / sd
	}
	return out
}
