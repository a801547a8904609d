/* Copyright 2021, Arkadiusz Zarychta */

package tsp

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"git.solver4all.com/azaryc2s/tspcut"
	"git.solver4all.com/azaryc2s/tspcut/engine"
)

// MaxGapTolerance is the largest accepted optimality gap tolerance in
// percent.
const MaxGapTolerance = 20.0

// minBudget is the engine time limit in seconds when model building used up
// the whole budget. Engines read a non-positive limit as no limit.
const minBudget = 0.001

// Params of a solve. TimeLimit is the wall clock budget in seconds and is
// the only termination criterion handed to the engine. GapTolerance (in
// percent) is reported against the observed gap, it does not stop the
// search.
type Params struct {
	TimeLimit    float64
	GapTolerance float64
}

func (p Params) Validate() error {
	if math.IsNaN(p.TimeLimit) || p.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be positive, got %v", tspcut.ErrInvalidInstance, p.TimeLimit)
	}
	if math.IsNaN(p.GapTolerance) || p.GapTolerance < 0 || p.GapTolerance > MaxGapTolerance {
		return fmt.Errorf("%w: gap tolerance must be within [0,%v], got %v", tspcut.ErrInvalidInstance, MaxGapTolerance, p.GapTolerance)
	}
	return nil
}

// Solution is the engine outcome of one solve, rescaled to distance units.
type Solution struct {
	RunID     string
	Engine    string
	Status    engine.Status
	Objective float64
	Bound     float64
	WallTime  time.Duration

	n    int
	arcs []float64
}

// HasTour reports whether a tour can be extracted.
func (s *Solution) HasTour() bool {
	return s.Status.HasSolution()
}

// Arc returns the value of x_i_j.
func (s *Solution) Arc(i, j int) float64 {
	return s.arcs[arcIndex(i, j, s.n)]
}

// Solver runs models on an engine. It holds no state between solves.
type Solver struct {
	engine engine.Engine
	logger *zap.Logger
}

func NewSolver(e engine.Engine, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{engine: e, logger: logger}
}

// Run solves m. Engine errors are returned as tspcut.ErrEngineFailure and
// are not retried; INFEASIBLE, UNKNOWN and other statuses without a
// solution are valid outcomes.
func (s *Solver) Run(m *Model, p Params) (*Solution, error) {
	return s.run(m, p, time.Now())
}

// run hands the engine what is left of the time limit counted from start.
func (s *Solver) run(m *Model, p Params, start time.Time) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	budget := p.TimeLimit - time.Since(start).Seconds()
	if budget < minBudget {
		budget = minBudget
	}
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID), zap.String("engine", s.engine.Name()))
	log.Info("solving",
		zap.Int("cities", m.N),
		zap.Int("active_cuts", len(m.ActiveCuts)),
		zap.Float64("time_limit", p.TimeLimit),
		zap.Float64("engine_budget", budget))

	resp, err := s.engine.Solve(m.mip, engine.Params{MaxTimeInSeconds: budget})
	if err != nil {
		log.Error("engine failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", tspcut.ErrEngineFailure, s.engine.Name(), err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %s returned no response", tspcut.ErrEngineFailure, s.engine.Name())
	}

	sol := &Solution{
		RunID:    runID,
		Engine:   s.engine.Name(),
		Status:   resp.Status,
		WallTime: resp.WallTime,
		n:        m.N,
	}
	if resp.Status.HasSolution() {
		if len(resp.X) != m.mip.NumVars() {
			return nil, fmt.Errorf("%w: %s returned %d values for %d variables",
				tspcut.ErrModelInconsistency, s.engine.Name(), len(resp.X), m.mip.NumVars())
		}
		sol.Objective = resp.ObjectiveValue / m.Scale
		sol.Bound = resp.BestObjectiveBound / m.Scale
		sol.arcs = resp.X[:m.NumArcs()]
	} else {
		sol.Bound = resp.BestObjectiveBound / m.Scale
	}

	log.Info("solve finished",
		zap.Stringer("status", sol.Status),
		zap.Float64("objective", sol.Objective),
		zap.Float64("bound", sol.Bound),
		zap.Duration("wall_time", sol.WallTime))
	return sol, nil
}

// Solve builds the model of inst, runs it and reports the outcome. The time
// limit covers model building and the engine run. The tour is only
// extracted for OPTIMAL and FEASIBLE results.
func (s *Solver) Solve(inst *tspcut.Instance, p Params) (*tspcut.Result, error) {
	start := time.Now()
	m, err := BuildModel(inst, s.logger)
	if err != nil {
		return nil, err
	}
	sol, err := s.run(m, p, start)
	if err != nil {
		return nil, err
	}
	var tour Tour
	if sol.HasTour() {
		tour, err = ExtractTour(m, sol)
		if err != nil {
			s.logger.Error("tour extraction failed", zap.String("run_id", sol.RunID), zap.Error(err))
			return nil, err
		}
	}
	return Report(m, sol, tour, p), nil
}
