package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/tspcut/engine"
)

func TestAddVarClampsBinaries(t *testing.T) {
	m := engine.NewModel("vars")
	v, err := m.AddVar(3, -5, 9, engine.BINARY, "b")
	require.NoError(t, err)
	assert.Equal(t, int32(0), v)
	assert.Equal(t, int64(0), m.Vars[v].Lb)
	assert.Equal(t, int64(1), m.Vars[v].Ub)

	_, err = m.AddVar(0, 0, 1, 'C', "continuous")
	assert.ErrorIs(t, err, engine.ErrInvalidModel)
	assert.Equal(t, 1, m.NumVars())
}

func TestAddConstrChecksIndices(t *testing.T) {
	m := engine.NewModel("constrs")
	_, err := m.AddVar(0, 0, 4, engine.INTEGER, "x")
	require.NoError(t, err)

	assert.ErrorIs(t, m.AddConstr([]int32{0}, []int64{1, 2}, engine.LESS_EQUAL, 1, "lengths"), engine.ErrInvalidModel)
	assert.ErrorIs(t, m.AddConstr([]int32{1}, []int64{1}, engine.LESS_EQUAL, 1, "index"), engine.ErrInvalidModel)
	require.NoError(t, m.AddConstr([]int32{0}, []int64{2}, engine.LESS_EQUAL, 5, "ok"))
	assert.Equal(t, 1, m.NumConstrs())

	assert.ErrorIs(t, m.SetUB(3, 0), engine.ErrInvalidModel)
	assert.ErrorIs(t, m.AddHint(-1, 0), engine.ErrInvalidModel)
}

func TestValidate(t *testing.T) {
	valid := func() *engine.Model {
		m := engine.NewModel("valid")
		_, _ = m.AddVar(1, 0, 3, engine.INTEGER, "x")
		_ = m.AddConstr([]int32{0}, []int64{1}, engine.GREATER_EQUAL, 1, "c")
		return m
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(m *engine.Model){
		"sense":       func(m *engine.Model) { m.SetSense(0) },
		"empty range": func(m *engine.Model) { _ = m.SetUB(0, -1) },
		"magnitude":   func(m *engine.Model) { _ = m.SetUB(0, engine.MaxMagnitude+1) },
		"constr sense": func(m *engine.Model) {
			m.Constrs[0].Sense = '!'
		},
		"rhs": func(m *engine.Model) {
			m.Constrs[0].Rhs = -engine.MaxMagnitude - 1
		},
		"objective": func(m *engine.Model) { m.Vars[0].Obj = engine.MaxTerm },
		"coefficient": func(m *engine.Model) {
			m.Constrs[0].Val[0] = engine.MaxTerm
		},
	}
	for name, mutate := range cases {
		m := valid()
		mutate(m)
		assert.ErrorIsf(t, m.Validate(), engine.ErrInvalidModel, name)
	}
}

// coefficients above 2^31 are fine as long as coefficient times bound fits
func TestValidateLargeCoefficients(t *testing.T) {
	m := engine.NewModel("large")
	_, _ = m.AddVar(engine.MaxTerm, 0, 1, engine.BINARY, "b")
	_, _ = m.AddVar(1<<30, 0, 1<<12, engine.INTEGER, "x")
	require.NoError(t, m.AddConstr([]int32{0, 1}, []int64{1 << 40, 1}, engine.LESS_EQUAL, 1<<20, "row"))
	require.NoError(t, m.Validate())

	require.NoError(t, m.SetUB(1, 1<<13))
	assert.ErrorIs(t, m.Validate(), engine.ErrInvalidModel)
}

func TestIsExactlyOne(t *testing.T) {
	m := engine.NewModel("rows")
	_, _ = m.AddVar(0, 0, 1, engine.BINARY, "a")
	_, _ = m.AddVar(0, 0, 1, engine.BINARY, "b")
	_, _ = m.AddVar(0, 0, 3, engine.INTEGER, "x")
	assert.True(t, m.IsExactlyOne(engine.Constr{Ind: []int32{0, 1}, Val: []int64{1, 1}, Sense: engine.EQUAL, Rhs: 1}))
	assert.False(t, m.IsExactlyOne(engine.Constr{Ind: []int32{0, 1}, Val: []int64{1, 1}, Sense: engine.LESS_EQUAL, Rhs: 1}))
	assert.False(t, m.IsExactlyOne(engine.Constr{Ind: []int32{0, 1}, Val: []int64{1, 2}, Sense: engine.EQUAL, Rhs: 1}))
	assert.False(t, m.IsExactlyOne(engine.Constr{Ind: []int32{0, 0}, Val: []int64{1, 1}, Sense: engine.EQUAL, Rhs: 1}))
	assert.False(t, m.IsExactlyOne(engine.Constr{Ind: []int32{0, 2}, Val: []int64{1, 1}, Sense: engine.EQUAL, Rhs: 1}))
}

// two disjoint exactly-one rows and a free integer
func TestRootBound(t *testing.T) {
	m := engine.NewModel("bound")
	for _, c := range []int64{4, 2, 7, 3} {
		_, _ = m.AddVar(c, 0, 1, engine.BINARY, "")
	}
	_, _ = m.AddVar(-1, 0, 5, engine.INTEGER, "x")
	require.NoError(t, m.AddConstr([]int32{0, 1}, []int64{1, 1}, engine.EQUAL, 1, "first"))
	require.NoError(t, m.AddConstr([]int32{2, 3}, []int64{1, 1}, engine.EQUAL, 1, "second"))
	// overlaps both rows and is skipped
	require.NoError(t, m.AddConstr([]int32{1, 3}, []int64{1, 1}, engine.EQUAL, 1, "across"))

	bound, ok := m.RootBound()
	require.True(t, ok)
	assert.Equal(t, 2.0+3.0-5.0, bound)

	require.NoError(t, m.SetUB(1, 0))
	bound, ok = m.RootBound()
	require.True(t, ok)
	assert.Equal(t, 4.0+3.0-5.0, bound)

	require.NoError(t, m.SetUB(0, 0))
	_, ok = m.RootBound()
	assert.False(t, ok)

	m.SetSense(engine.MAXIMIZE)
	require.NoError(t, m.SetUB(0, 1))
	require.NoError(t, m.SetUB(1, 1))
	bound, ok = m.RootBound()
	require.True(t, ok)
	assert.Equal(t, 4.0+7.0+0.0, bound)
}

func TestObjective(t *testing.T) {
	m := engine.NewModel("obj")
	_, _ = m.AddVar(2, 0, 5, engine.INTEGER, "x")
	_, _ = m.AddVar(-3, 0, 1, engine.BINARY, "y")
	assert.Equal(t, 4.0-3.0, m.Objective([]float64{2, 1}))
}

func TestStatus(t *testing.T) {
	assert.True(t, engine.OPTIMAL.HasSolution())
	assert.True(t, engine.FEASIBLE.HasSolution())
	assert.False(t, engine.INFEASIBLE.HasSolution())
	assert.False(t, engine.UNKNOWN.HasSolution())
	assert.False(t, engine.MODEL_INVALID.HasSolution())
	assert.Equal(t, "INFEASIBLE", engine.INFEASIBLE.String())
	assert.Equal(t, "UNDEFINED", engine.Status(42).String())
}
