/* Copyright 2021, Arkadiusz Zarychta */

package tsp

import (
	"fmt"

	"git.solver4all.com/azaryc2s/tspcut"
)

// Tour is the visiting order of the cities, starting at city 0. The edge
// from the last city back to 0 is implicit.
type Tour []int

// Length sums the distances along the tour including the closing edge.
func (t Tour) Length(cities []tspcut.City) float64 {
	length := 0.0
	for i := 0; i < len(t); i++ {
		length += tspcut.Distance(cities[t[i]], cities[t[(i+1)%len(t)]])
	}
	return length
}

/* Starting at city 0, follow the selected outgoing arc of every city until
   the tour returns to 0. If a city has more than one selected arc the
   lowest indexed successor is taken. The walk stops after at most N steps:
   a city without successor, a city reached twice, or a return to 0 before
   all cities are visited are reported as ErrModelInconsistency. */

func ExtractTour(m *Model, sol *Solution) (Tour, error) {
	if !sol.HasTour() {
		return nil, fmt.Errorf("%w: no solution for status %s", tspcut.ErrModelInconsistency, sol.Status)
	}
	n := m.N
	if sol.n != n || len(sol.arcs) != m.NumArcs() {
		return nil, fmt.Errorf("%w: solution has %d arcs for %d cities", tspcut.ErrModelInconsistency, len(sol.arcs), n)
	}
	seen := make([]bool, n)
	tour := make(Tour, 0, n)
	node := 0
	for {
		tour = append(tour, node)
		seen[node] = true
		next := successor(sol, node, n)
		if next < 0 {
			return nil, fmt.Errorf("%w: city %d has no selected outgoing arc", tspcut.ErrModelInconsistency, node)
		}
		if next == 0 {
			break
		}
		if seen[next] {
			return nil, fmt.Errorf("%w: city %d is visited twice", tspcut.ErrModelInconsistency, next)
		}
		node = next
	}
	if len(tour) != n {
		return nil, fmt.Errorf("%w: tour returns to 0 after %d of %d cities", tspcut.ErrModelInconsistency, len(tour), n)
	}
	return tour, nil
}

func successor(sol *Solution, node, n int) int {
	for j := 0; j < n; j++ {
		if j != node && sol.Arc(node, j) > 0.5 {
			return j
		}
	}
	return -1
}
