/* Copyright 2021, Arkadiusz Zarychta */

// Package engine is the boundary between the TSP model and the solver that
// optimises it. A Model is a plain description of integer variables, linear
// constraints and a linear objective; an Engine solves it within a time
// limit and reports a terminal status, the objective, the best bound and
// the variable values.
//
// The calls mirror the C APIs of commercial MIP solvers (AddVar, AddConstr,
// an upper-bound attribute, a model sense), all coefficients are integral so
// that constraint programming engines can consume the model as is.
package engine

import (
	"time"
)

// Variable types
const (
	BINARY  int8 = 'B'
	INTEGER int8 = 'I'
)

// Constraint senses
const (
	LESS_EQUAL    int8 = '<'
	GREATER_EQUAL int8 = '>'
	EQUAL         int8 = '='
)

// Model senses
const (
	MINIMIZE int32 = 1
	MAXIMIZE int32 = -1
)

// Status is the terminal state of a solve.
type Status int32

const (
	UNKNOWN Status = iota
	MODEL_INVALID
	FEASIBLE
	INFEASIBLE
	OPTIMAL
)

func (s Status) String() string {
	switch s {
	case UNKNOWN:
		return "UNKNOWN"
	case MODEL_INVALID:
		return "MODEL_INVALID"
	case FEASIBLE:
		return "FEASIBLE"
	case INFEASIBLE:
		return "INFEASIBLE"
	case OPTIMAL:
		return "OPTIMAL"
	}
	return "UNDEFINED"
}

// HasSolution reports whether the response carries variable values.
func (s Status) HasSolution() bool {
	return s == OPTIMAL || s == FEASIBLE
}

// Params configures a solve. A non-positive MaxTimeInSeconds means no limit.
type Params struct {
	MaxTimeInSeconds float64 `yaml:"max_time_in_seconds" json:"max_time_in_seconds"`
}

// Response is what an engine returns for a terminal status. X is indexed by
// variable and only set when Status.HasSolution().
type Response struct {
	Status             Status
	ObjectiveValue     float64
	BestObjectiveBound float64
	WallTime           time.Duration
	X                  []float64
}

// Engine solves models. Implementations must not keep state between Solve
// calls. An error means the engine failed, not that the model has no
// solution.
type Engine interface {
	Name() string
	Solve(m *Model, p Params) (*Response, error)
}
