package mps

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireVec compares two float slices element by element.
func requireVec(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsInf(want[i], 0) {
			require.Equalf(t, want[i], got[i], "element %d", i)
			continue
		}
		require.InDeltaf(t, want[i], got[i], 1e-9, "element %d", i)
	}
}

func TestTableau(t *testing.T) {
	prob, err := ParseMps(strings.NewReader(exampleMps), Options{Fill: true})
	require.NoError(t, err)

	tab := prob.Tableau()

	assert.Equal(t, []string{"R01", "R02", "R03", "R04", "COST"}, tab.Rows)
	assert.Equal(t, []string{"C01", "C02", "C03"}, tab.Cols)

	requireVec(t, []float64{math.Inf(-1), 0, 0}, tab.LB)
	requireVec(t, []float64{0, 0, math.Inf(1)}, tab.UB)

	// Ranged rows use their derived interval; the free objective row spans
	// the whole line and surfaces its RHS as an offset.
	requireVec(t, []float64{1486, 200, 12, -14, math.Inf(-1)}, tab.LHS)
	requireVec(t, []float64{1500, 214, 26, 0, math.Inf(1)}, tab.RHS)
	assert.Contains(t, tab.RowOffset, "COST")

	wantA := [][]float64{
		{30, -10, 50},
		{5000, 0, -3},
		{0.2, 0.1, 0},
		{0, 0.2, 0.3},
		{10, 5, 5.5},
	}
	require.Len(t, tab.A, len(wantA))
	for m := range wantA {
		requireVec(t, wantA[m], tab.A[m])
	}
}

// TestTableauObjectiveLast checks that an objective row declared first is
// swapped to the last position.
func TestTableauObjectiveLast(t *testing.T) {
	prob, err := ParseMps(strings.NewReader(tinyMps), Options{Fill: true})
	require.NoError(t, err)

	tab := prob.Tableau()
	assert.Equal(t, []string{"R1", "COST"}, tab.Rows)

	requireVec(t, []float64{6, math.Inf(-1)}, tab.LHS)
	requireVec(t, []float64{math.Inf(1), math.Inf(1)}, tab.RHS)
	requireVec(t, []float64{2, 3}, tab.A[0])
	requireVec(t, []float64{1, 0}, tab.A[1])
}

// TestTableauSenses checks the interval derived for each plain (unranged)
// row sense.
func TestTableauSenses(t *testing.T) {
	src := `NAME          SENSES
ROWS
 G  RG
 L  RL
 E  RE
 N  COST
COLUMNS
    X         RG        1.0       RL        2.0
    X         RE        3.0       COST      4.0
RHS
    B         RG        5.0       RL        6.0
    B         RE        7.0
ENDATA
`
	prob, err := ParseMps(strings.NewReader(src), Options{Fill: true})
	require.NoError(t, err)

	tab := prob.Tableau()
	assert.Equal(t, []string{"RG", "RL", "RE", "COST"}, tab.Rows)
	requireVec(t, []float64{5, math.Inf(-1), 7, math.Inf(-1)}, tab.LHS)
	requireVec(t, []float64{math.Inf(1), 6, 7, math.Inf(1)}, tab.RHS)
}
