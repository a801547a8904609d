/* Copyright 2021, Arkadiusz Zarychta */

package bnb

import (
	"math"
	"time"

	"go.uber.org/zap"

	"git.solver4all.com/azaryc2s/tspcut/engine"
)

// row is a constraint in the form sum(val[k]*x[ind[k]]) <= rhs without
// zero coefficients.
type row struct {
	ind []int32
	val []int64
	rhs int64
}

// change is a trail entry, the domain of v before it was tightened.
type change struct {
	v      int32
	lo, hi int64
}

type interval struct {
	lo, hi int64
}

type search struct {
	logger *zap.Logger

	lo, hi []int64
	obj    []int64
	hints  map[int32]int64

	rows  []row
	watch [][]int32

	// cutoff is the objective row, rhs is the incumbent minus one. It is
	// not watched and gets propagated after every fixpoint.
	cutoff *row

	covers  []*cover
	primary *cover

	trail   []change
	queue   []int32
	head    int
	inQueue []bool

	best    []int64
	bestObj int64
	hasBest bool

	rootBound int64
	rootDone  bool

	limited  bool
	deadline time.Time
	stopped  bool
	nodes    int64
	visits   int64
}

func newSearch(m *engine.Model, logger *zap.Logger) *search {
	n := len(m.Vars)
	s := &search{
		logger: logger,
		lo:     make([]int64, n),
		hi:     make([]int64, n),
		obj:    make([]int64, n),
		hints:  m.Hints,
		watch:  make([][]int32, n),
	}
	sign := int64(m.Sense)
	for i, v := range m.Vars {
		s.lo[i] = v.Lb
		s.hi[i] = v.Ub
		s.obj[i] = sign * v.Obj
	}

	for _, c := range m.Constrs {
		switch c.Sense {
		case engine.LESS_EQUAL:
			s.addRow(c.Ind, c.Val, c.Rhs, 1)
		case engine.GREATER_EQUAL:
			s.addRow(c.Ind, c.Val, c.Rhs, -1)
		case engine.EQUAL:
			s.addRow(c.Ind, c.Val, c.Rhs, 1)
			s.addRow(c.Ind, c.Val, c.Rhs, -1)
		}
	}
	s.inQueue = make([]bool, len(s.rows))

	cutoff := &row{}
	for i, c := range s.obj {
		if c != 0 {
			cutoff.ind = append(cutoff.ind, int32(i))
			cutoff.val = append(cutoff.val, c)
		}
	}
	if len(cutoff.ind) > 0 {
		s.cutoff = cutoff
	}

	s.covers = buildCovers(m)
	if len(s.covers) > 0 {
		s.primary = s.covers[0]
	}
	return s
}

// addRow stores sign*(sum val*x) <= sign*rhs and registers it with its
// variables.
func (s *search) addRow(ind []int32, val []int64, rhs int64, sign int64) {
	r := row{rhs: sign * rhs}
	for k, v := range ind {
		if val[k] == 0 {
			continue
		}
		r.ind = append(r.ind, v)
		r.val = append(r.val, sign*val[k])
	}
	idx := int32(len(s.rows))
	s.rows = append(s.rows, r)
	for _, v := range r.ind {
		if w := s.watch[v]; len(w) > 0 && w[len(w)-1] == idx {
			continue
		}
		s.watch[v] = append(s.watch[v], idx)
	}
}

// run searches the whole tree and reports whether it finished before the
// deadline.
func (s *search) run() bool {
	for r := range s.rows {
		s.enqueue(int32(r))
	}
	if !s.propagate() {
		return !s.stopped
	}
	s.rootBound = s.lowerBound()
	s.rootDone = true
	s.dfs()
	return !s.stopped
}

func (s *search) dfs() {
	if s.stopped {
		return
	}
	s.nodes++
	if s.nodes%checkEvery == 0 && s.expired() {
		return
	}
	if s.hasBest && s.lowerBound() >= s.bestObj {
		return
	}
	v, val, ok := s.pick()
	if !ok {
		s.record()
		return
	}
	for _, iv := range s.branches(v, val) {
		mark := len(s.trail)
		if !s.restrict(v, iv) {
			s.clearQueue()
		} else if s.propagateAll() {
			s.dfs()
		}
		s.undo(mark)
		if s.stopped {
			return
		}
	}
}

func (s *search) expired() bool {
	if s.limited && time.Now().After(s.deadline) {
		s.stopped = true
	}
	return s.stopped
}

// pick selects the next decision. Open exactly-one rows of the primary
// cover come first, fewest candidates first, and inside a row the hinted
// candidate or else the cheapest one is set to 1. Remaining free variables
// are taken in index order starting from their hint or lower bound.
func (s *search) pick() (int32, int64, bool) {
	if s.primary != nil {
		bestGroup := -1
		bestCount := 0
		for gi, group := range s.primary.groups {
			count := 0
			done := false
			for _, v := range group {
				if s.lo[v] == 1 {
					done = true
					break
				}
				if s.hi[v] == 1 {
					count++
				}
			}
			if done || count == 0 {
				continue
			}
			if bestGroup < 0 || count < bestCount {
				bestGroup, bestCount = gi, count
			}
		}
		if bestGroup >= 0 {
			choice := int32(-1)
			for _, v := range s.primary.groups[bestGroup] {
				if s.hi[v] != 1 {
					continue
				}
				if h, ok := s.hints[v]; ok && h == 1 {
					choice = v
					break
				}
				if choice < 0 || s.obj[v] < s.obj[choice] {
					choice = v
				}
			}
			return choice, 1, true
		}
	}
	for i := range s.lo {
		if s.lo[i] < s.hi[i] {
			v := int32(i)
			val := s.lo[i]
			if h, ok := s.hints[v]; ok && h >= s.lo[i] && h <= s.hi[i] {
				val = h
			}
			return v, val, true
		}
	}
	return -1, 0, false
}

// branches splits the domain of v into v = val and the values left and
// right of it.
func (s *search) branches(v int32, val int64) []interval {
	out := []interval{{val, val}}
	if val < s.hi[v] {
		out = append(out, interval{val + 1, s.hi[v]})
	}
	if val > s.lo[v] {
		out = append(out, interval{s.lo[v], val - 1})
	}
	return out
}

func (s *search) restrict(v int32, iv interval) bool {
	return s.setLo(v, iv.lo) && s.setHi(v, iv.hi)
}

func (s *search) record() {
	var objVal int64
	for i, c := range s.obj {
		objVal += c * s.lo[i]
	}
	if s.hasBest && objVal >= s.bestObj {
		return
	}
	if s.best == nil {
		s.best = make([]int64, len(s.lo))
	}
	copy(s.best, s.lo)
	s.bestObj = objVal
	s.hasBest = true
	if s.cutoff != nil {
		s.cutoff.rhs = objVal - 1
	}
	s.logger.Debug("new incumbent", zap.Int64("objective", objVal), zap.Int64("nodes", s.nodes))
}

func (s *search) setLo(v int32, lo int64) bool {
	if lo <= s.lo[v] {
		return true
	}
	if lo > s.hi[v] {
		return false
	}
	s.trail = append(s.trail, change{v: v, lo: s.lo[v], hi: s.hi[v]})
	s.lo[v] = lo
	s.touch(v)
	return true
}

func (s *search) setHi(v int32, hi int64) bool {
	if hi >= s.hi[v] {
		return true
	}
	if hi < s.lo[v] {
		return false
	}
	s.trail = append(s.trail, change{v: v, lo: s.lo[v], hi: s.hi[v]})
	s.hi[v] = hi
	s.touch(v)
	return true
}

func (s *search) undo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		c := s.trail[i]
		s.lo[c.v] = c.lo
		s.hi[c.v] = c.hi
	}
	s.trail = s.trail[:mark]
}

func (s *search) touch(v int32) {
	for _, r := range s.watch[v] {
		s.enqueue(r)
	}
}

func (s *search) enqueue(r int32) {
	if s.inQueue[r] {
		return
	}
	s.inQueue[r] = true
	s.queue = append(s.queue, r)
}

func (s *search) clearQueue() {
	for _, r := range s.queue[s.head:] {
		s.inQueue[r] = false
	}
	s.queue = s.queue[:0]
	s.head = 0
}

// propagate runs the queued rows to a fixpoint. It returns false on a
// conflict or when the deadline passed.
func (s *search) propagate() bool {
	for s.head < len(s.queue) {
		r := s.queue[s.head]
		s.head++
		s.inQueue[r] = false
		s.visits++
		if s.visits%(checkEvery*16) == 0 && s.expired() {
			s.clearQueue()
			return false
		}
		if !s.propagateRow(&s.rows[r]) {
			s.clearQueue()
			return false
		}
	}
	s.queue = s.queue[:0]
	s.head = 0
	return true
}

// propagateAll propagates the constraints and the objective cutoff until
// neither tightens a domain.
func (s *search) propagateAll() bool {
	for {
		if !s.propagate() {
			return false
		}
		if !s.hasBest || s.cutoff == nil {
			return true
		}
		before := len(s.trail)
		if !s.propagateRow(s.cutoff) {
			s.clearQueue()
			return false
		}
		if len(s.trail) == before {
			return true
		}
	}
}

// propagateRow tightens the domains of a row from its minimal activity.
// For a term a*x the other terms contribute at least minAct-min(a*x), so
// a*x <= rhs - (minAct - min(a*x)).
func (s *search) propagateRow(r *row) bool {
	var minAct int64
	for k, v := range r.ind {
		if a := r.val[k]; a > 0 {
			minAct += a * s.lo[v]
		} else {
			minAct += a * s.hi[v]
		}
	}
	if minAct > r.rhs {
		return false
	}
	for k, v := range r.ind {
		a := r.val[k]
		if a > 0 {
			slack := r.rhs - (minAct - a*s.lo[v])
			if nh := floorDiv(slack, a); nh < s.hi[v] && !s.setHi(v, nh) {
				return false
			}
		} else {
			slack := r.rhs - (minAct - a*s.hi[v])
			if nl := ceilDiv(slack, a); nl > s.lo[v] && !s.setLo(v, nl) {
				return false
			}
		}
	}
	return true
}

func (s *search) lowerBound() int64 {
	if len(s.covers) == 0 {
		return s.coverBound(nil)
	}
	lb := int64(math.MinInt64)
	for _, c := range s.covers {
		if b := s.coverBound(c); b > lb {
			lb = b
		}
	}
	return lb
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}
