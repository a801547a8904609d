/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import "errors"

var (
	// ErrInvalidInstance is returned for instances or solve parameters that
	// are rejected before a model is built (fewer than 3 cities, a
	// non-positive time budget, a gap tolerance outside [0,20]).
	ErrInvalidInstance = errors.New("tspcut: invalid instance")

	// ErrEngineFailure wraps an error returned by the solver engine instead
	// of a terminal status. The solve is not retried.
	ErrEngineFailure = errors.New("tspcut: engine failure")

	// ErrModelInconsistency means the engine returned a solution that does
	// not describe a single tour through all cities.
	ErrModelInconsistency = errors.New("tspcut: model inconsistency")

	// ErrInvalidTour is returned by CheckTour.
	ErrInvalidTour = errors.New("tspcut: invalid tour")
)
