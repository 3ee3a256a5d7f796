// Package overlap computes set relations across 2-N labeled identifier sets:
// intersections, unions, differences, a pairwise Venn summary for small N and
// a binary membership matrix for upset-style rendering at larger N.
//
// Sets are deduplicated and insertion-ordered, so re-running on identical
// inputs produces byte-identical dumps - order is not significant to
// correctness but stable order keeps persisted diffs reproducible.
package overlap

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Set is a named collection of unique identifiers, immutable after creation.
type Set struct {
	Name string
	ids  *linkedhashset.Set
}

// NewSet creates a named set from ids, deduplicating while preserving first
// insertion order. Empty strings are dropped.
func NewSet(name string, ids []string) Set {
	s := linkedhashset.New()
	for _, id := range ids {
		if id != "" {
			s.Add(id)
		}
	}
	return Set{Name: name, ids: s}
}

// Len returns the number of identifiers.
func (s Set) Len() int {
	if s.ids == nil {
		return 0
	}
	return s.ids.Size()
}

// Contains reports membership.
func (s Set) Contains(id string) bool {
	return s.ids != nil && s.ids.Contains(id)
}

// Items returns the identifiers in insertion order.
func (s Set) Items() []string {
	if s.ids == nil {
		return nil
	}
	out := make([]string, 0, s.ids.Size())
	s.ids.Each(func(_ int, v any) {
		out = append(out, v.(string))
	})
	return out
}

// Intersect returns the identifiers of s present in every other set,
// keeping s's insertion order.
func (s Set) Intersect(others ...Set) Set {
	keep := func(id string) bool {
		for _, o := range others {
			if !o.Contains(id) {
				return false
			}
		}
		return true
	}
	var out []string
	for _, id := range s.Items() {
		if keep(id) {
			out = append(out, id)
		}
	}
	return NewSet("intersection", out)
}

// Union returns all identifiers across s and others, first-seen order.
func (s Set) Union(others ...Set) Set {
	out := s.Items()
	for _, o := range others {
		out = append(out, o.Items()...)
	}
	return NewSet("union", out)
}

// Minus returns the identifiers of s absent from every other set.
func (s Set) Minus(others ...Set) Set {
	var out []string
	for _, id := range s.Items() {
		found := false
		for _, o := range others {
			if o.Contains(id) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, id)
		}
	}
	return NewSet(s.Name+"_only", out)
}
