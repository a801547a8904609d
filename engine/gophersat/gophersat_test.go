package gophersat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"git.solver4all.com/azaryc2s/tspcut/engine"
	"git.solver4all.com/azaryc2s/tspcut/engine/gophersat"
)

type GophersatSuite struct {
	suite.Suite
	engine *gophersat.Engine
}

func (s *GophersatSuite) SetupTest() {
	s.engine = gophersat.New(zaptest.NewLogger(s.T()))
}

func (s *GophersatSuite) solve(m *engine.Model) *engine.Response {
	resp, err := s.engine.Solve(m, engine.Params{MaxTimeInSeconds: 10})
	require.NoError(s.T(), err)
	require.NotNil(s.T(), resp)
	return resp
}

func (s *GophersatSuite) TestExactlyOne() {
	m := engine.NewModel("pick")
	for _, c := range []int64{3, 1, 2} {
		_, err := m.AddVar(c, 0, 1, engine.BINARY, "")
		require.NoError(s.T(), err)
	}
	require.NoError(s.T(), m.AddConstr([]int32{0, 1, 2}, []int64{1, 1, 1}, engine.EQUAL, 1, "one"))

	resp := s.solve(m)
	require.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), 1.0, resp.ObjectiveValue)
	assert.Equal(s.T(), 1.0, resp.BestObjectiveBound)
	assert.Equal(s.T(), []float64{0, 1, 0}, resp.X)

	require.NoError(s.T(), m.SetUB(1, 0))
	resp = s.solve(m)
	require.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), 2.0, resp.ObjectiveValue)
	assert.Equal(s.T(), []float64{0, 0, 1}, resp.X)
}

// 0/1 knapsack: max 5a+4b+3c s.t. 2a+3b+c <= 5
func (s *GophersatSuite) TestKnapsackMaximize() {
	m := engine.NewModel("knapsack")
	m.SetSense(engine.MAXIMIZE)
	for _, p := range []int64{5, 4, 3} {
		_, err := m.AddVar(p, 0, 1, engine.BINARY, "")
		require.NoError(s.T(), err)
	}
	require.NoError(s.T(), m.AddConstr([]int32{0, 1, 2}, []int64{2, 3, 1}, engine.LESS_EQUAL, 5, "capacity"))

	resp := s.solve(m)
	require.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), 9.0, resp.ObjectiveValue)
	assert.Equal(s.T(), []float64{1, 1, 0}, resp.X)
}

// y takes four bits for [0,10], the bits alone could reach 15
func (s *GophersatSuite) TestIntegerExpansion() {
	m := engine.NewModel("int")
	m.SetSense(engine.MAXIMIZE)
	_, err := m.AddVar(1, 0, 10, engine.INTEGER, "y")
	require.NoError(s.T(), err)

	resp := s.solve(m)
	require.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), 10.0, resp.ObjectiveValue)
	assert.Equal(s.T(), []float64{10}, resp.X)

	require.NoError(s.T(), m.AddConstr([]int32{0}, []int64{2}, engine.LESS_EQUAL, 7, "half"))
	resp = s.solve(m)
	require.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), []float64{3}, resp.X)
}

// min x + y s.t. x - y >= 2, x + y >= 4, x,y in [0,5]
func (s *GophersatSuite) TestGreaterEqualRows() {
	m := engine.NewModel("ge")
	_, _ = m.AddVar(1, 0, 5, engine.INTEGER, "x")
	_, _ = m.AddVar(1, 0, 5, engine.INTEGER, "y")
	require.NoError(s.T(), m.AddConstr([]int32{0, 1}, []int64{1, -1}, engine.GREATER_EQUAL, 2, "diff"))
	require.NoError(s.T(), m.AddConstr([]int32{0, 1}, []int64{1, 1}, engine.GREATER_EQUAL, 4, "sum"))

	resp := s.solve(m)
	require.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), 4.0, resp.ObjectiveValue)
	require.Len(s.T(), resp.X, 2)
	assert.GreaterOrEqual(s.T(), resp.X[0]-resp.X[1], 2.0)
	assert.Equal(s.T(), 4.0, resp.X[0]+resp.X[1])
}

// a fixed variable has no bits, its value shifts the rows
func (s *GophersatSuite) TestShiftedBounds() {
	m := engine.NewModel("shift")
	_, _ = m.AddVar(0, 2, 2, engine.INTEGER, "x")
	_, _ = m.AddVar(1, 1, 6, engine.INTEGER, "y")
	require.NoError(s.T(), m.AddConstr([]int32{0, 1}, []int64{1, 1}, engine.GREATER_EQUAL, 5, "sum"))

	resp := s.solve(m)
	require.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), 3.0, resp.ObjectiveValue)
	assert.Equal(s.T(), []float64{2, 3}, resp.X)
}

func (s *GophersatSuite) TestInfeasible() {
	m := engine.NewModel("infeasible")
	_, _ = m.AddVar(1, 0, 1, engine.BINARY, "a")
	_, _ = m.AddVar(1, 0, 1, engine.BINARY, "b")
	require.NoError(s.T(), m.AddConstr([]int32{0, 1}, []int64{1, 1}, engine.GREATER_EQUAL, 3, "too much"))

	resp := s.solve(m)
	assert.Equal(s.T(), engine.INFEASIBLE, resp.Status)
	assert.Nil(s.T(), resp.X)
}

// 2x + 2y = 3 has no integral solution
func (s *GophersatSuite) TestInfeasibleAfterSearch() {
	m := engine.NewModel("parity")
	_, _ = m.AddVar(1, 0, 3, engine.INTEGER, "x")
	_, _ = m.AddVar(1, 0, 3, engine.INTEGER, "y")
	require.NoError(s.T(), m.AddConstr([]int32{0, 1}, []int64{2, 2}, engine.EQUAL, 3, "odd"))

	resp := s.solve(m)
	assert.Equal(s.T(), engine.INFEASIBLE, resp.Status)
}

func (s *GophersatSuite) TestInvalidModel() {
	m := engine.NewModel("invalid")
	_, _ = m.AddVar(1, 0, 3, engine.INTEGER, "x")
	require.NoError(s.T(), m.SetUB(0, -1))

	resp := s.solve(m)
	assert.Equal(s.T(), engine.MODEL_INVALID, resp.Status)
	assert.Nil(s.T(), resp.X)
}

func (s *GophersatSuite) TestEmptyModel() {
	resp := s.solve(engine.NewModel("empty"))
	assert.Equal(s.T(), engine.OPTIMAL, resp.Status)
	assert.Equal(s.T(), 0.0, resp.ObjectiveValue)
	assert.Empty(s.T(), resp.X)
}

func TestGophersatSuite(t *testing.T) {
	suite.Run(t, new(GophersatSuite))
}

func TestName(t *testing.T) {
	assert.Equal(t, "gophersat", gophersat.New(nil).Name())
}
