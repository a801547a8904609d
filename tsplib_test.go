package tspcut_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/tspcut"
)

const tiny5 = `NAME : tiny5
COMMENT : five cities
TYPE : TSP
DIMENSION : 5
EDGE_WEIGHT_TYPE : EUC_2D
NODE_COORD_SECTION
1 0 0
2 0 10
3   10 10
4 10 0
5 5.5 5e0
EOF
`

func TestParseTSPLIB(t *testing.T) {
	inst, err := tspcut.ParseTSPLIB(strings.NewReader(tiny5))
	require.NoError(t, err)
	assert.Equal(t, "tiny5", inst.Name)
	assert.Equal(t, "five cities", inst.Comment)
	assert.Equal(t, "TSP", inst.Type)
	assert.Equal(t, 5, inst.Dimension)
	assert.Equal(t, "EUC_2D", inst.EdgeWeightType)
	assert.Equal(t, [][]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {5.5, 5}}, inst.NodeCoordinates)
}

func TestParseTSPLIBErrors(t *testing.T) {
	cases := map[string]string{
		"no coordinates":     "NAME : x\nTYPE : TSP\n",
		"unsupported type":   "NAME : x\nTYPE : ATSP\nNODE_COORD_SECTION\n1 0 0\n",
		"unsupported weight": "EDGE_WEIGHT_TYPE : GEO\nNODE_COORD_SECTION\n1 0 0\n",
		"bad header":         "NAME x\nNODE_COORD_SECTION\n",
		"bad coordinate":     "NODE_COORD_SECTION\n1 0 a\n2 1 1\n3 2 2\n",
		"short line":         "NODE_COORD_SECTION\n1 0\n",
		"too few cities":     "NODE_COORD_SECTION\n1 0 0\n2 1 1\nEOF\n",
		"dimension mismatch": "DIMENSION : 4\nNODE_COORD_SECTION\n1 0 0\n2 1 1\n3 2 2\n",
	}
	for name, data := range cases {
		_, err := tspcut.ParseTSPLIB(strings.NewReader(data))
		assert.Errorf(t, err, name)
	}

	_, err := tspcut.ParseTSPLIB(strings.NewReader("NODE_COORD_SECTION\n1 0 0\n2 1 1\n"))
	assert.ErrorIs(t, err, tspcut.ErrInvalidInstance)
}
