/* Copyright 2021, Arkadiusz Zarychta */

package tsp

import (
	"git.solver4all.com/azaryc2s/tspcut"
	"git.solver4all.com/azaryc2s/tspcut/engine"
)

// Report summarises a solve. tour may be nil when the status carries no
// solution.
func Report(m *Model, sol *Solution, tour Tour, p Params) *tspcut.Result {
	r := &tspcut.Result{
		RunID:        sol.RunID,
		Engine:       sol.Engine,
		Status:       sol.Status.String(),
		Optimal:      sol.Status == engine.OPTIMAL,
		LBound:       sol.Bound,
		GapTolerance: p.GapTolerance,
		ActiveCuts:   m.ActiveCuts,
		IgnoredCuts:  m.IgnoredCuts,
		TimeLimit:    p.TimeLimit,
		WallTime:     sol.WallTime.Seconds(),
		Time:         sol.WallTime.String(),
	}
	if r.ActiveCuts == nil {
		r.ActiveCuts = []tspcut.Cut{}
	}
	if !sol.HasTour() {
		r.Comment = "no tour: solver stopped with status " + r.Status
		return r
	}
	r.Obj = sol.Objective
	r.Gap = sol.Objective - sol.Bound
	if r.Gap < 0 {
		r.Gap = 0
	}
	if sol.Objective > 0 {
		r.GapPercent = 100 * r.Gap / sol.Objective
	}
	r.WithinTolerance = r.GapPercent <= p.GapTolerance
	if tour != nil {
		r.Route = []int(tour)
		r.RouteCost = tour.Length(m.Cities)
	}
	if sol.Status != engine.OPTIMAL {
		r.Comment = "Time limit reached"
	}
	return r
}
