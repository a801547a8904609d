package tsp_test

import (
	"math"

	"git.solver4all.com/azaryc2s/tspcut"
	"git.solver4all.com/azaryc2s/tspcut/engine"
	"git.solver4all.com/azaryc2s/tspcut/tsp"
)

// bruteForce returns the shortest tour avoiding the cut edges by trying
// every permutation of the cities 1..n-1. ok is false when no tour exists.
func bruteForce(inst *tspcut.Instance) (best float64, ok bool) {
	cities := inst.Cities()
	n := len(cities)
	forbidden := make(map[tspcut.Cut]bool)
	for _, c := range inst.Cuts {
		if c.InRange(n) {
			forbidden[c.Key()] = true
		}
	}
	allowed := func(a, b int) bool {
		return !forbidden[tspcut.Cut{A: a, B: b}.Key()]
	}

	best = math.Inf(1)
	perm := make([]int, 0, n)
	used := make([]bool, n)
	perm = append(perm, 0)
	used[0] = true
	var rec func(length float64)
	rec = func(length float64) {
		last := perm[len(perm)-1]
		if len(perm) == n {
			if allowed(last, 0) {
				total := length + tspcut.Distance(cities[last], cities[0])
				if total < best {
					best = total
				}
			}
			return
		}
		for next := 1; next < n; next++ {
			if used[next] || !allowed(last, next) {
				continue
			}
			used[next] = true
			perm = append(perm, next)
			rec(length + tspcut.Distance(cities[last], cities[next]))
			perm = perm[:len(perm)-1]
			used[next] = false
		}
	}
	rec(0)
	return best, !math.IsInf(best, 1)
}

// squareWithCenter is the corners of a 10x10 square and its center.
func squareWithCenter(cuts ...tspcut.Cut) *tspcut.Instance {
	return tspcut.NewInstance("square", [][]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {5, 5}}, cuts)
}

// fakeEngine answers every solve with the configured response or error.
// build, when set, computes the response from the model. params keeps the
// parameters of the last call.
type fakeEngine struct {
	resp   *engine.Response
	err    error
	build  func(m *engine.Model) *engine.Response
	calls  int
	params engine.Params
}

func (f *fakeEngine) Name() string {
	return "fake"
}

func (f *fakeEngine) Solve(m *engine.Model, p engine.Params) (*engine.Response, error) {
	f.calls++
	f.params = p
	if f.build != nil {
		return f.build(m), nil
	}
	return f.resp, f.err
}

// valuesFor returns the variable values of a model whose arcs follow succ,
// succ[i] being the city visited after i. Order variables stay 0.
func valuesFor(m *tsp.Model, succ []int) []float64 {
	x := make([]float64, m.Engine().NumVars())
	for i, j := range succ {
		x[m.ArcIndex(i, j)] = 1
	}
	return x
}
