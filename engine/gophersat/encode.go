/* Copyright 2021, Arkadiusz Zarychta */

package gophersat

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/crillab/gophersat/solver"

	"git.solver4all.com/azaryc2s/tspcut/engine"
)

// maxWeight bounds the weight sum of a single pseudo-boolean row.
const maxWeight = 1 << 62

// encoding is a model rewritten over boolean variables. Variable i of the
// model is lb_i + sum_k 2^k b_{first_i+k} for k < width_i, the b are
// numbered from 1 like gophersat literals.
type encoding struct {
	first []int
	width []int
	lb    []int64

	nbVars  int
	constrs []solver.PBConstr

	costLits    []solver.Lit
	costWeights []int
}

// pbRow accumulates the terms of one row, merging repeated literals.
type pbRow struct {
	lits    []int
	weights []int
	pos     map[int]int
	sum     float64
}

func (r *pbRow) add(lit int, w int64) {
	if w == 0 {
		return
	}
	if r.pos == nil {
		r.pos = make(map[int]int)
	}
	r.sum += math.Abs(float64(w))
	if k, ok := r.pos[lit]; ok {
		r.weights[k] += int(w)
		return
	}
	r.pos[lit] = len(r.lits)
	r.lits = append(r.lits, lit)
	r.weights = append(r.weights, int(w))
}

func encode(m *engine.Model) (*encoding, error) {
	n := len(m.Vars)
	enc := &encoding{first: make([]int, n), width: make([]int, n), lb: make([]int64, n)}
	next := 1
	for i, v := range m.Vars {
		span := uint64(v.Ub - v.Lb)
		enc.first[i] = next
		enc.width[i] = bits.Len64(span)
		enc.lb[i] = v.Lb
		next += enc.width[i]

		// the bits can count past the range unless it is a power of two minus one
		if w := enc.width[i]; w > 0 && span != 1<<uint(w)-1 {
			var r pbRow
			enc.addTerms(&r, int32(i), 1)
			if err := enc.addRow(&r, engine.LESS_EQUAL, int64(span), v.Name); err != nil {
				return nil, err
			}
		}
	}
	enc.nbVars = next - 1

	for _, c := range m.Constrs {
		var r pbRow
		rhs := c.Rhs
		for k, v := range c.Ind {
			rhs -= c.Val[k] * enc.lb[v]
			enc.addTerms(&r, v, c.Val[k])
		}
		if err := enc.addRow(&r, c.Sense, rhs, c.Name); err != nil {
			return nil, err
		}
	}

	var cost pbRow
	sign := int64(m.Sense)
	for i, v := range m.Vars {
		enc.addTerms(&cost, int32(i), sign*v.Obj)
	}
	if cost.sum > maxWeight {
		return nil, fmt.Errorf("%w: objective weights exceed %d", engine.ErrInvalidModel, int64(maxWeight))
	}
	for k, lit := range cost.lits {
		w := cost.weights[k]
		switch {
		case w > 0:
			enc.costLits = append(enc.costLits, solver.IntToLit(int32(lit)))
			enc.costWeights = append(enc.costWeights, w)
		case w < 0:
			// w*b = w + |w|*not(b), the constant does not change the optimum
			enc.costLits = append(enc.costLits, solver.IntToLit(int32(-lit)))
			enc.costWeights = append(enc.costWeights, -w)
		}
	}

	// gophersat sizes its problem from the literals it sees, declare the last one
	if enc.nbVars > 0 {
		enc.constrs = append(enc.constrs, solver.PBConstr{Lits: []int{enc.nbVars}, AtLeast: 0})
	}
	return enc, nil
}

// addTerms adds coef*(x_v - lb_v) to r.
func (enc *encoding) addTerms(r *pbRow, v int32, coef int64) {
	for k := 0; k < enc.width[v]; k++ {
		r.add(enc.first[v]+k, coef<<uint(k))
	}
}

func (enc *encoding) addRow(r *pbRow, sense int8, rhs int64, name string) error {
	if r.sum > maxWeight {
		return fmt.Errorf("%w: row %s has weights above %d", engine.ErrInvalidModel, name, int64(maxWeight))
	}
	switch sense {
	case engine.LESS_EQUAL:
		enc.constrs = append(enc.constrs, solver.LtEq(r.lits, r.weights, int(rhs)))
	case engine.GREATER_EQUAL:
		enc.constrs = append(enc.constrs, solver.GtEq(r.lits, r.weights, int(rhs)))
	case engine.EQUAL:
		enc.constrs = append(enc.constrs, solver.Eq(r.lits, r.weights, int(rhs))...)
	default:
		return fmt.Errorf("%w: row %s has unknown sense %q", engine.ErrInvalidModel, name, sense)
	}
	return nil
}

// decode maps a gophersat model back to variable values.
func (enc *encoding) decode(model []bool) []float64 {
	x := make([]float64, len(enc.first))
	for i := range x {
		val := enc.lb[i]
		for k := 0; k < enc.width[i]; k++ {
			if model[enc.first[i]+k-1] {
				val += 1 << uint(k)
			}
		}
		x[i] = float64(val)
	}
	return x
}
