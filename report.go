/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"fmt"
	"strings"
)

// String renders the summary shown after a solve.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Solver status: %s\n", r.Status)
	fmt.Fprintf(&b, "Objective value: %.2f\n", r.Obj)
	fmt.Fprintf(&b, "Is optimal: %t\n", r.Optimal)
	fmt.Fprintf(&b, "Optimality gap: %.2f (%.2f%%, tolerance %.2f%%)\n", r.Gap, r.GapPercent, r.GapTolerance)
	fmt.Fprintf(&b, "Time: %.3f seconds\n", r.WallTime)
	if r.HasTour() {
		fmt.Fprintf(&b, "Tour: %v (length %.2f)\n", r.Route, r.RouteCost)
	}
	if len(r.ActiveCuts) > 0 {
		b.WriteString("\nActive cuts:\n")
		for _, c := range r.ActiveCuts {
			fmt.Fprintf(&b, "  %s\n", c)
		}
	}
	if len(r.IgnoredCuts) > 0 {
		b.WriteString("\nIgnored cuts (out of range):\n")
		for _, c := range r.IgnoredCuts {
			fmt.Fprintf(&b, "  %s\n", c)
		}
	}
	return b.String()
}
