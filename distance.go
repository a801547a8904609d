/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"fmt"
	"math"
)

// Distance returns the euclidean distance between two cities.
func Distance(a, b City) float64 {
	xDist := a.X - b.X
	yDist := a.Y - b.Y
	return math.Sqrt(xDist*xDist + yDist*yDist)
}

// ScaledDistance returns the distance multiplied by scale and truncated, the
// integral objective coefficient handed to the engine.
func ScaledDistance(a, b City, scale float64) int64 {
	return int64(Distance(a, b) * scale)
}

func DistanceMatrix(cities []City) [][]float64 {
	n := len(cities)
	result := make([][]float64, n)
	for node := 0; node < n; node++ {
		result[node] = make([]float64, n)
	}
	for node := 0; node < n; node++ {
		for node2 := 0; node2 < node; node2++ {
			d := Distance(cities[node], cities[node2])
			result[node][node2] = d
			result[node2][node] = d
		}
	}
	return result
}

// GetTourLength sums the distances along the route including the closing
// edge back to the first city.
func GetTourLength(tour []int, d [][]float64) float64 {
	length := 0.0
	for i := 0; i < len(tour); i++ {
		j := (i + 1) % len(tour)
		length += d[tour[i]][tour[j]]
	}
	return length
}

// CheckTour verifies that route visits every city of inst exactly once and
// never uses a cut edge. It returns the route length.
func CheckTour(inst *Instance, route []int) (float64, error) {
	if err := inst.Validate(); err != nil {
		return 0, err
	}
	n := inst.N()
	if len(route) != n {
		return 0, fmt.Errorf("%w: route has %d cities, instance has %d", ErrInvalidTour, len(route), n)
	}
	used := make([]bool, n)
	for _, c := range route {
		if c < 0 || c >= n {
			return 0, fmt.Errorf("%w: city %d out of range", ErrInvalidTour, c)
		}
		if used[c] {
			return 0, fmt.Errorf("%w: city %d visited twice", ErrInvalidTour, c)
		}
		used[c] = true
	}
	forbidden := make(map[Cut]bool, len(inst.Cuts))
	for _, c := range inst.Cuts {
		forbidden[c.Key()] = true
	}
	for i := 0; i < n; i++ {
		e := Cut{A: route[i], B: route[(i+1)%n]}
		if forbidden[e.Key()] {
			return 0, fmt.Errorf("%w: route uses cut edge %s", ErrInvalidTour, e)
		}
	}
	return GetTourLength(route, DistanceMatrix(inst.Cities())), nil
}
