/* Copyright 2021, Arkadiusz Zarychta */

// Package tsp builds the integer programming model of the traveling salesman
// problem, solves it and reads back the tour. Every ordered
// pair of cities gets a binary arc variable x_i_j, every city must be left
// and entered exactly once and subtours are eliminated by the
// Miller-Tucker-Zemlin order variables u_i of the cities 1..N-1. City 0
// anchors the tour. Cut edges are removed in both directions by fixing the
// upper bound of their arc variables to 0.
package tsp

import (
	"fmt"

	"go.uber.org/zap"

	"git.solver4all.com/azaryc2s/tspcut"
	"git.solver4all.com/azaryc2s/tspcut/engine"
)

// DistanceScale converts distances to integral objective coefficients.
const DistanceScale = 1000.0

// MaxDistance is the longest edge whose scaled cost fits an engine
// coefficient.
const MaxDistance = float64(engine.MaxTerm) / DistanceScale

type Model struct {
	N      int
	Scale  float64
	Cities []tspcut.City

	// ActiveCuts are enforced, IgnoredCuts were out of range.
	ActiveCuts  []tspcut.Cut
	IgnoredCuts []tspcut.Cut

	mip *engine.Model
}

// ArcIndex is the variable index of x_i_j, i != j.
func (m *Model) ArcIndex(i, j int) int32 {
	return arcIndex(i, j, m.N)
}

// OrderIndex is the variable index of u_i, 1 <= i < N.
func (m *Model) OrderIndex(i int) int32 {
	return int32(m.N*(m.N-1) + i - 1)
}

// NumArcs is the number of arc variables, they occupy the first indices.
func (m *Model) NumArcs() int {
	return m.N * (m.N - 1)
}

// Engine returns the model handed to the solver engine.
func (m *Model) Engine() *engine.Model {
	return m.mip
}

func arcIndex(i, j, n int) int32 {
	if j > i {
		j--
	}
	return int32(i*(n-1) + j)
}

// BuildModel constructs the MTZ model of inst. Instances with fewer than
// tspcut.MinCities cities are rejected. Cuts whose endpoints are not
// distinct cities of the instance are ignored.
func BuildModel(inst *tspcut.Instance, logger *zap.Logger) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	cities := inst.Cities()
	n := len(cities)
	m := &Model{N: n, Scale: DistanceScale, Cities: cities, mip: engine.NewModel(fmt.Sprintf("tsp_%s", inst.Name))}
	mip := m.mip
	mip.SetSense(engine.MINIMIZE)

	logger.Debug("adding arc variables x_i_j", zap.Int("cities", n), zap.Int("vars", n*(n-1)))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if d := tspcut.Distance(cities[i], cities[j]); d > MaxDistance {
				return nil, fmt.Errorf("%w: cities %d and %d are %g apart, at most %g is supported",
					tspcut.ErrInvalidInstance, i, j, d, MaxDistance)
			}
			cost := tspcut.ScaledDistance(cities[i], cities[j], m.Scale)
			if _, err := mip.AddVar(cost, 0, 1, engine.BINARY, fmt.Sprintf("x_%d_%d", i, j)); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("adding order variables u_i")
	for i := 1; i < n; i++ {
		if _, err := mip.AddVar(0, 0, int64(n-1), engine.INTEGER, fmt.Sprintf("u_%d", i)); err != nil {
			return nil, err
		}
	}

	/* Degree constraints - 1 -> and 1 <-, all outgoing rows first */
	logger.Debug("adding degree constraints")
	for i := 0; i < n; i++ {
		ind := make([]int32, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				ind = append(ind, m.ArcIndex(i, j))
			}
		}
		if err := mip.AddConstr(ind, ones(len(ind)), engine.EQUAL, 1, fmt.Sprintf("deg_out_%d", i)); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		ind := make([]int32, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				ind = append(ind, m.ArcIndex(j, i))
			}
		}
		if err := mip.AddConstr(ind, ones(len(ind)), engine.EQUAL, 1, fmt.Sprintf("deg_in_%d", i)); err != nil {
			return nil, err
		}
	}

	/* MTZ: u_i - u_j + N x_i_j <= N-1 */
	logger.Debug("adding subtour elimination constraints", zap.Int("constraints", (n-1)*(n-2)))
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			if i == j {
				continue
			}
			ind := []int32{m.OrderIndex(i), m.OrderIndex(j), m.ArcIndex(i, j)}
			val := []int64{1, -1, int64(n)}
			if err := mip.AddConstr(ind, val, engine.LESS_EQUAL, int64(n-1), fmt.Sprintf("mtz_%d_%d", i, j)); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("forbidding cut edges", zap.Int("cuts", len(inst.Cuts)))
	seen := make(map[tspcut.Cut]bool, len(inst.Cuts))
	for _, c := range inst.Cuts {
		if !c.InRange(n) {
			m.IgnoredCuts = append(m.IgnoredCuts, c)
			continue
		}
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		if err := mip.SetUB(m.ArcIndex(c.A, c.B), 0); err != nil {
			return nil, err
		}
		if err := mip.SetUB(m.ArcIndex(c.B, c.A), 0); err != nil {
			return nil, err
		}
		m.ActiveCuts = append(m.ActiveCuts, c)
	}

	/* Start the search along a tour that avoids the cut edges */
	order, ok := hintOrder(n, seen)
	if !ok {
		logger.Debug("no cut free hint tour found, hinting the allowed arcs of the city order")
	}
	for k, i := range order {
		j := order[(k+1)%n]
		if seen[tspcut.Cut{A: i, B: j}.Key()] {
			continue
		}
		if err := mip.AddHint(m.ArcIndex(i, j), 1); err != nil {
			return nil, err
		}
	}

	logger.Debug("model built",
		zap.String("model", mip.Name),
		zap.Int("vars", mip.NumVars()),
		zap.Int("constraints", mip.NumConstrs()),
		zap.Int("active_cuts", len(m.ActiveCuts)),
		zap.Int("ignored_cuts", len(m.IgnoredCuts)))
	return m, nil
}

// hintOrder returns a visiting order starting at 0 whose closing tour uses
// no cut edge. Cities are inserted one by one at the last position where
// both new edges are allowed, cities that fit nowhere yet are retried once
// the tour has grown. Without cuts this is the order 0, 1, ..., n-1. ok is
// false when some city could not be placed, the order is then 0..n-1.
func hintOrder(n int, cut map[tspcut.Cut]bool) ([]int, bool) {
	allowed := func(a, b int) bool {
		return !cut[tspcut.Cut{A: a, B: b}.Key()]
	}
	tour := []int{0}
	pending := make([]int, 0, n-1)
	for c := 1; c < n; c++ {
		pending = append(pending, c)
	}
	for len(pending) > 0 {
		var left []int
		for _, c := range pending {
			placed := false
			for p := len(tour) - 1; p >= 0; p-- {
				a, b := tour[p], tour[(p+1)%len(tour)]
				if allowed(a, c) && allowed(c, b) {
					tour = append(tour[:p+1], append([]int{c}, tour[p+1:]...)...)
					placed = true
					break
				}
			}
			if !placed {
				left = append(left, c)
			}
		}
		if len(left) == len(pending) {
			identity := make([]int, n)
			for i := range identity {
				identity[i] = i
			}
			return identity, false
		}
		pending = left
	}
	return tour, true
}

func ones(n int) []int64 {
	val := make([]int64, n)
	for i := range val {
		val[i] = 1
	}
	return val
}
