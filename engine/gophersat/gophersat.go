/* Copyright 2021, Arkadiusz Zarychta */

// Package gophersat solves the integer programs of package engine with the
// pseudo-boolean optimiser of github.com/crillab/gophersat. Binaries map to
// boolean variables, integers to their binary expansion over [lb, ub], and
// every linear row becomes one or two weighted pseudo-boolean constraints.
//
// The solver improves its model until no cheaper one exists, so a run that
// ends before the deadline is optimal. Hints are not used, gophersat picks
// its own phases.
package gophersat

import (
	"time"

	"github.com/crillab/gophersat/solver"
	"go.uber.org/zap"

	"git.solver4all.com/azaryc2s/tspcut/engine"
)

type Engine struct {
	logger *zap.Logger
}

var _ engine.Engine = (*Engine)(nil)

// New returns the engine. A nil logger disables logging.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger.Named("gophersat")}
}

func (e *Engine) Name() string {
	return "gophersat"
}

func (e *Engine) Solve(m *engine.Model, p engine.Params) (*engine.Response, error) {
	start := time.Now()
	if err := m.Validate(); err != nil {
		e.logger.Warn("model rejected", zap.String("model", m.Name), zap.Error(err))
		return &engine.Response{Status: engine.MODEL_INVALID, WallTime: time.Since(start)}, nil
	}
	enc, err := encode(m)
	if err != nil {
		e.logger.Warn("model rejected", zap.String("model", m.Name), zap.Error(err))
		return &engine.Response{Status: engine.MODEL_INVALID, WallTime: time.Since(start)}, nil
	}

	pb := solver.ParsePBConstrs(enc.constrs)
	e.logger.Debug("model encoded",
		zap.String("model", m.Name),
		zap.Int("bool_vars", enc.nbVars),
		zap.Int("pb_constraints", len(enc.constrs)),
		zap.Stringer("status", pb.Status))

	var best []float64
	complete := true
	switch {
	case pb.Status == solver.Unsat:
	case enc.nbVars == 0:
		best = enc.decode(nil)
	default:
		if len(enc.costLits) > 0 {
			pb.SetCostFunc(enc.costLits, enc.costWeights)
		}
		var limit time.Duration
		if p.MaxTimeInSeconds > 0 {
			limit = time.Duration(p.MaxTimeInSeconds*float64(time.Second)) - time.Since(start)
			if limit <= 0 {
				limit = time.Millisecond
			}
		}
		var model []bool
		model, complete = e.optimise(solver.New(pb), limit)
		if model != nil {
			best = enc.decode(model)
		}
	}

	resp := &engine.Response{WallTime: time.Since(start)}
	switch {
	case best != nil && complete:
		resp.Status = engine.OPTIMAL
		resp.ObjectiveValue = m.Objective(best)
		resp.BestObjectiveBound = resp.ObjectiveValue
	case best != nil:
		resp.Status = engine.FEASIBLE
		resp.ObjectiveValue = m.Objective(best)
		resp.BestObjectiveBound = resp.ObjectiveValue
		if bound, ok := m.RootBound(); ok && float64(m.Sense)*bound < float64(m.Sense)*resp.ObjectiveValue {
			resp.BestObjectiveBound = bound
		}
	case complete:
		resp.Status = engine.INFEASIBLE
	default:
		resp.Status = engine.UNKNOWN
		if bound, ok := m.RootBound(); ok {
			resp.BestObjectiveBound = bound
		}
	}
	if best != nil {
		resp.X = best
	}

	e.logger.Debug("search finished",
		zap.String("model", m.Name),
		zap.Stringer("status", resp.Status),
		zap.Duration("wall_time", resp.WallTime))
	return resp, nil
}

// optimise runs s until it proves its last model optimal or limit passes. A
// zero limit waits for the proof. gophersat does not watch stop, a search
// that is still running parks on its next send after the deadline.
func (e *Engine) optimise(s *solver.Solver, limit time.Duration) (model []bool, complete bool) {
	results := make(chan solver.Result)
	stop := make(chan struct{})
	go s.Optimal(results, stop)

	var timeout <-chan time.Time
	if limit > 0 {
		timer := time.NewTimer(limit)
		defer timer.Stop()
		timeout = timer.C
	}
	for {
		select {
		case r, ok := <-results:
			if !ok {
				return model, true
			}
			if r.Status == solver.Sat {
				model = r.Model
				e.logger.Debug("new incumbent", zap.Int("cost", r.Weight))
			}
		case <-timeout:
			close(stop)
			return model, false
		}
	}
}
