/* Copyright 2021, Arkadiusz Zarychta */

package engine

// RootBound bounds the objective of m over all its solutions, from below
// for MINIMIZE and from above for MAXIMIZE. Exactly-one rows are packed
// greedily into disjoint groups, each group contributes its cheapest
// candidate and every other variable its cheapest bound. ok is false when
// an exactly-one row has no candidate left, the model is then infeasible.
func (m *Model) RootBound() (bound float64, ok bool) {
	sign := int64(m.Sense)
	covered := make([]bool, len(m.Vars))
	var lb int64
	for _, c := range m.Constrs {
		if !m.IsExactlyOne(c) {
			continue
		}
		disjoint := true
		for _, v := range c.Ind {
			if covered[v] {
				disjoint = false
				break
			}
		}
		if !disjoint {
			continue
		}
		cheapest, found := int64(0), false
		for _, v := range c.Ind {
			covered[v] = true
			vr := m.Vars[v]
			if vr.Ub < 1 {
				continue
			}
			if o := sign * vr.Obj; !found || o < cheapest {
				cheapest, found = o, true
			}
		}
		if !found {
			return 0, false
		}
		lb += cheapest
	}
	for i, v := range m.Vars {
		if covered[i] {
			continue
		}
		if o := sign * v.Obj; o > 0 {
			lb += o * v.Lb
		} else if o < 0 {
			lb += o * v.Ub
		}
	}
	return float64(sign * lb), true
}
