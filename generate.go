/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"fmt"
	"math/rand"
)

// RandomInstance places n cities uniformly in [0,xTo) x [0,yTo) with
// integral coordinates.
func RandomInstance(name string, n int, xTo, yTo int, rng *rand.Rand) *Instance {
	coordinatesArray := make([][]float64, n)
	for node := 0; node < n; node++ {
		x := rng.Intn(xTo)
		y := rng.Intn(yTo)
		coordinatesArray[node] = []float64{float64(x), float64(y)}
	}
	inst := NewInstance(name, coordinatesArray, nil)
	inst.Comment = fmt.Sprintf("%s random instance with %d nodes on a %dx%d grid", name, n, xTo, yTo)
	return inst
}
