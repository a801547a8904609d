/* Copyright 2021, Arkadiusz Zarychta */

package bnb

import (
	"math"

	"git.solver4all.com/azaryc2s/tspcut/engine"
)

// cover is a set of pairwise disjoint exactly-one rows. Exactly one
// variable of every group is 1 in any solution, so the cheapest candidate
// of each group bounds the objective from below.
type cover struct {
	groups  [][]int32
	covered []bool
}

// buildCovers collects the exactly-one rows of m (equalities with rhs 1 and
// unit coefficients over binaries) and greedily packs them into two covers,
// one in model order and one in reverse order.
func buildCovers(m *engine.Model) []*cover {
	var candidates [][]int32
	for _, c := range m.Constrs {
		if m.IsExactlyOne(c) {
			candidates = append(candidates, c.Ind)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	forward := packCover(len(m.Vars), candidates, false)
	backward := packCover(len(m.Vars), candidates, true)
	if len(backward.groups) == 0 || sameGroups(forward, backward) {
		return []*cover{forward}
	}
	return []*cover{forward, backward}
}

func packCover(n int, candidates [][]int32, reverse bool) *cover {
	c := &cover{covered: make([]bool, n)}
	for k := range candidates {
		group := candidates[k]
		if reverse {
			group = candidates[len(candidates)-1-k]
		}
		disjoint := true
		for _, v := range group {
			if c.covered[v] {
				disjoint = false
				break
			}
		}
		if !disjoint {
			continue
		}
		for _, v := range group {
			c.covered[v] = true
		}
		c.groups = append(c.groups, group)
	}
	return c
}

func sameGroups(a, b *cover) bool {
	for v := range a.covered {
		if a.covered[v] != b.covered[v] {
			return false
		}
	}
	return len(a.groups) == len(b.groups)
}

// coverBound is the objective lower bound for the current domains. A nil
// cover bounds every variable by its own domain.
func (s *search) coverBound(c *cover) int64 {
	var lb int64
	if c != nil {
		for _, group := range c.groups {
			cheapest := int64(math.MaxInt64)
			for _, v := range group {
				if s.lo[v] == 1 {
					cheapest = s.obj[v]
					break
				}
				if s.hi[v] == 1 && s.obj[v] < cheapest {
					cheapest = s.obj[v]
				}
			}
			if cheapest == math.MaxInt64 {
				return math.MaxInt64
			}
			lb += cheapest
		}
	}
	for v, o := range s.obj {
		if c != nil && c.covered[v] {
			continue
		}
		if o > 0 {
			lb += o * s.lo[v]
		} else if o < 0 {
			lb += o * s.hi[v]
		}
	}
	return lb
}
