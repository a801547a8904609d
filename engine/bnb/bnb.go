/* Copyright 2021, Arkadiusz Zarychta */

// Package bnb is a pure Go engine for the integer programs of package
// engine. It runs a depth first branch and bound with bounds propagation
// on the linear constraints, branching on exactly-one rows, an objective
// cutoff after every incumbent and a lower bound taken from disjoint covers
// of exactly-one rows.
//
// The engine is exact: a search that finishes before the deadline proves
// optimality or infeasibility. It is meant for small and medium models;
// the search tree grows exponentially with the number of free variables.
package bnb

import (
	"math"
	"time"

	"go.uber.org/zap"

	"git.solver4all.com/azaryc2s/tspcut/engine"
)

const (
	// deadline checks happen every checkEvery search nodes and every
	// checkEvery*16 row propagations
	checkEvery = 64
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
	return &Engine{logger: logger.Named("bnb")}
}

func (e *Engine) Name() string {
	return "bnb"
}

// Solve optimises m. All search state is allocated per call, so one Engine
// may serve concurrent solves of different models.
func (e *Engine) Solve(m *engine.Model, p engine.Params) (*engine.Response, error) {
	start := time.Now()
	if err := m.Validate(); err != nil {
		e.logger.Warn("model rejected", zap.String("model", m.Name), zap.Error(err))
		return &engine.Response{Status: engine.MODEL_INVALID, WallTime: time.Since(start)}, nil
	}

	s := newSearch(m, e.logger)
	if p.MaxTimeInSeconds > 0 {
		s.limited = true
		s.deadline = start.Add(time.Duration(p.MaxTimeInSeconds * float64(time.Second)))
	}
	complete := s.run()

	resp := &engine.Response{WallTime: time.Since(start)}
	sign := float64(m.Sense)
	switch {
	case s.hasBest && complete:
		resp.Status = engine.OPTIMAL
		resp.ObjectiveValue = sign * float64(s.bestObj)
		resp.BestObjectiveBound = resp.ObjectiveValue
	case s.hasBest:
		resp.Status = engine.FEASIBLE
		resp.ObjectiveValue = sign * float64(s.bestObj)
		bound := s.bestObj
		if s.rootDone && s.rootBound < bound {
			bound = s.rootBound
		}
		resp.BestObjectiveBound = sign * float64(bound)
	case complete:
		resp.Status = engine.INFEASIBLE
	default:
		resp.Status = engine.UNKNOWN
		if s.rootDone && s.rootBound != math.MaxInt64 {
			resp.BestObjectiveBound = sign * float64(s.rootBound)
		}
	}
	if resp.Status.HasSolution() {
		resp.X = make([]float64, len(s.best))
		for i, v := range s.best {
			resp.X[i] = float64(v)
		}
	}

	e.logger.Debug("search finished",
		zap.String("model", m.Name),
		zap.Stringer("status", resp.Status),
		zap.Int64("nodes", s.nodes),
		zap.Duration("wall_time", resp.WallTime))
	return resp, nil
}
