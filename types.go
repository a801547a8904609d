/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"fmt"
	"math"
)

// City is a point of an instance. Index is its position in the instance.
type City struct {
	Index int
	X     float64
	Y     float64
}

type Instance struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Type    string `json:"type"`

	Dimension       int         `json:"dimension"`
	EdgeWeightType  string      `json:"edge_weight_type"`
	NodeCoordinates [][]float64 `json:"node_coordinates"`
	Cuts            []Cut       `json:"cuts"`

	Solution *Result `json:"solution,omitempty"`
}

// NewInstance builds a TSP instance from raw coordinates.
func NewInstance(name string, coords [][]float64, cuts []Cut) *Instance {
	return &Instance{
		Name:            name,
		Type:            "TSP",
		Dimension:       len(coords),
		EdgeWeightType:  "EUC_2D",
		NodeCoordinates: coords,
		Cuts:            cuts,
	}
}

// N returns the number of cities.
func (inst *Instance) N() int {
	return len(inst.NodeCoordinates)
}

// Cities returns the ordered city list of the instance.
func (inst *Instance) Cities() []City {
	cities := make([]City, len(inst.NodeCoordinates))
	for i, c := range inst.NodeCoordinates {
		cities[i] = City{Index: i, X: c[0], Y: c[1]}
	}
	return cities
}

// MinCities is the smallest instance with a tour. Two cities only admit
// the degenerate cycle that uses the same edge twice.
const MinCities = 3

// Validate rejects degenerate instances. Cuts are not checked here, out of
// range cuts are ignored when the model is built.
func (inst *Instance) Validate() error {
	n := len(inst.NodeCoordinates)
	if n < MinCities {
		return fmt.Errorf("%w: %d cities, at least %d are required", ErrInvalidInstance, n, MinCities)
	}
	if inst.Dimension != 0 && inst.Dimension != n {
		return fmt.Errorf("%w: dimension %d does not match %d coordinates", ErrInvalidInstance, inst.Dimension, n)
	}
	for i, c := range inst.NodeCoordinates {
		if len(c) != 2 {
			return fmt.Errorf("%w: city %d has %d coordinates", ErrInvalidInstance, i, len(c))
		}
		for _, v := range c {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: city %d has a non-finite coordinate", ErrInvalidInstance, i)
			}
		}
	}
	return nil
}

// Result is the summary of one solve, written next to the instance.
type Result struct {
	RunID  string `json:"run_id"`
	Engine string `json:"engine"`
	Status string `json:"status"`

	Obj             float64 `json:"obj"`
	LBound          float64 `json:"lbound"`
	Gap             float64 `json:"gap"`
	GapPercent      float64 `json:"gap_percent"`
	GapTolerance    float64 `json:"gap_tolerance"`
	WithinTolerance bool    `json:"within_tolerance"`
	Optimal         bool    `json:"optimal"`

	Route     []int   `json:"route"`
	RouteCost float64 `json:"route_cost"`

	ActiveCuts  []Cut `json:"active_cuts"`
	IgnoredCuts []Cut `json:"ignored_cuts,omitempty"`

	TimeLimit float64 `json:"time_limit"`
	WallTime  float64 `json:"wall_time"`
	Time      string  `json:"time"`
	System    SysInfo `json:"system"`
	Comment   string  `json:"comment"`
}

// HasTour reports whether the solve produced a route.
func (r *Result) HasTour() bool {
	return len(r.Route) > 0
}

// SysInfo saves the basic system information
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}
