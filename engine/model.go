/* Copyright 2021, Arkadiusz Zarychta */

package engine

import (
	"errors"
	"fmt"
)

// MaxMagnitude bounds variable bounds and right hand sides. MaxTerm bounds
// every coefficient and its product with the bounds of its variable, so
// rows of up to 2^20 terms keep their activities inside int64.
const (
	MaxMagnitude int64 = 1 << 31
	MaxTerm      int64 = 1 << 42
)

var ErrInvalidModel = errors.New("engine: invalid model")

type Var struct {
	Name  string
	Obj   int64
	Lb    int64
	Ub    int64
	VType int8
}

type Constr struct {
	Name  string
	Ind   []int32
	Val   []int64
	Sense int8
	Rhs   int64
}

// Model is an integer program. It is built once and read by engines, it
// must not be modified while a solve is running.
type Model struct {
	Name    string
	Sense   int32
	Vars    []Var
	Constrs []Constr
	Hints   map[int32]int64
}

func NewModel(name string) *Model {
	return &Model{Name: name, Sense: MINIMIZE, Hints: make(map[int32]int64)}
}

// AddVar appends a variable and returns its index.
func (m *Model) AddVar(obj int64, lb, ub int64, vtype int8, name string) (int32, error) {
	if vtype == BINARY {
		if lb < 0 {
			lb = 0
		}
		if ub > 1 {
			ub = 1
		}
	} else if vtype != INTEGER {
		return -1, fmt.Errorf("%w: variable %s has unknown type %q", ErrInvalidModel, name, vtype)
	}
	m.Vars = append(m.Vars, Var{Name: name, Obj: obj, Lb: lb, Ub: ub, VType: vtype})
	return int32(len(m.Vars) - 1), nil
}

// AddConstr appends the linear constraint sum(val[k]*x[ind[k]]) <sense> rhs.
func (m *Model) AddConstr(ind []int32, val []int64, sense int8, rhs int64, name string) error {
	if len(ind) != len(val) {
		return fmt.Errorf("%w: constraint %s has %d indices and %d values", ErrInvalidModel, name, len(ind), len(val))
	}
	for _, v := range ind {
		if v < 0 || int(v) >= len(m.Vars) {
			return fmt.Errorf("%w: constraint %s references variable %d", ErrInvalidModel, name, v)
		}
	}
	m.Constrs = append(m.Constrs, Constr{Name: name, Ind: ind, Val: val, Sense: sense, Rhs: rhs})
	return nil
}

// SetUB tightens or replaces the upper bound of variable v.
func (m *Model) SetUB(v int32, ub int64) error {
	if v < 0 || int(v) >= len(m.Vars) {
		return fmt.Errorf("%w: no variable %d", ErrInvalidModel, v)
	}
	m.Vars[v].Ub = ub
	return nil
}

func (m *Model) SetSense(sense int32) {
	m.Sense = sense
}

// AddHint suggests a value for v. Hints guide the search, they are not
// constraints and may be infeasible.
func (m *Model) AddHint(v int32, val int64) error {
	if v < 0 || int(v) >= len(m.Vars) {
		return fmt.Errorf("%w: no variable %d", ErrInvalidModel, v)
	}
	if m.Hints == nil {
		m.Hints = make(map[int32]int64)
	}
	m.Hints[v] = val
	return nil
}

func (m *Model) NumVars() int {
	return len(m.Vars)
}

func (m *Model) NumConstrs() int {
	return len(m.Constrs)
}

// Validate checks the whole model. Engines report a failed validation as
// MODEL_INVALID.
func (m *Model) Validate() error {
	if m.Sense != MINIMIZE && m.Sense != MAXIMIZE {
		return fmt.Errorf("%w: unknown model sense %d", ErrInvalidModel, m.Sense)
	}
	for i, v := range m.Vars {
		if v.Lb > v.Ub {
			return fmt.Errorf("%w: variable %d (%s) has lb %d > ub %d", ErrInvalidModel, i, v.Name, v.Lb, v.Ub)
		}
		if abs(v.Lb) > MaxMagnitude || abs(v.Ub) > MaxMagnitude || !termFits(v.Obj, v) {
			return fmt.Errorf("%w: variable %d (%s) exceeds the supported magnitude", ErrInvalidModel, i, v.Name)
		}
	}
	for _, c := range m.Constrs {
		if c.Sense != LESS_EQUAL && c.Sense != GREATER_EQUAL && c.Sense != EQUAL {
			return fmt.Errorf("%w: constraint %s has unknown sense %q", ErrInvalidModel, c.Name, c.Sense)
		}
		if len(c.Ind) != len(c.Val) {
			return fmt.Errorf("%w: constraint %s has %d indices and %d values", ErrInvalidModel, c.Name, len(c.Ind), len(c.Val))
		}
		if abs(c.Rhs) > MaxMagnitude {
			return fmt.Errorf("%w: constraint %s rhs exceeds the supported magnitude", ErrInvalidModel, c.Name)
		}
		for k, v := range c.Ind {
			if v < 0 || int(v) >= len(m.Vars) {
				return fmt.Errorf("%w: constraint %s references variable %d", ErrInvalidModel, c.Name, v)
			}
			if !termFits(c.Val[k], m.Vars[v]) {
				return fmt.Errorf("%w: constraint %s coefficient exceeds the supported magnitude", ErrInvalidModel, c.Name)
			}
		}
	}
	return nil
}

// Objective evaluates the objective for the values x.
func (m *Model) Objective(x []float64) float64 {
	obj := 0.0
	for i, v := range m.Vars {
		obj += float64(v.Obj) * x[i]
	}
	return obj
}

// IsExactlyOne reports whether c forces exactly one of its binaries to 1:
// an equality with rhs 1 and unit coefficients over distinct binaries.
func (m *Model) IsExactlyOne(c Constr) bool {
	if c.Sense != EQUAL || c.Rhs != 1 || len(c.Ind) == 0 {
		return false
	}
	seen := make(map[int32]bool, len(c.Ind))
	for k, v := range c.Ind {
		if c.Val[k] != 1 || seen[v] {
			return false
		}
		seen[v] = true
		if vr := m.Vars[v]; vr.Lb < 0 || vr.Ub > 1 {
			return false
		}
	}
	return true
}

func termFits(coef int64, v Var) bool {
	a := abs(coef)
	if a > MaxTerm {
		return false
	}
	span := abs(v.Lb)
	if u := abs(v.Ub); u > span {
		span = u
	}
	return span == 0 || a <= MaxTerm/span
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}
