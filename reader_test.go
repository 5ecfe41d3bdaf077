package mps

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exampleMps exercises every section of the format, including FORTRAN-style
// exponents, records carrying one and two pairs, skipped later vectors, and a
// comment in the middle of a section.
const exampleMps = `* Small model touching every section of the format.
NAME          EXAMPLE
ROWS
 L  R01
 E  R02
 G  R03
 E  R04
 N  COST
COLUMNS
    C01       R01       30.0      R02       5.0E3
    C01       R03       0.2       COST      10.0
    C02       R01       -10.0     R02       0.0
* a comment inside a section must not disturb it
    C02       R03       0.1       R04       0.2
    C02       COST      5.0
    C03       R01       50.0      R02       -3.0
    C03       R03       0.0       R04       3.0D-1
    C03       COST      5.5
RHS
    B         R01       1500.0    R02       200.0
    B         R03       12.0
    B         R04       0.0
    B2        R01       999.0
RANGES
    rhs       R01       14.0      R02       14.0
    rhs       R03       14.0
    rhs       R04       -14.0
    rg2       R02       5.0
BOUNDS
 UP BOUND     C01       0.0
 FX BOUND     C02       0.0
 LO BOUND     C03       0.0
 UP BND2      C03       99.0
ENDATA
`

// boundSpec is the expected shape of one bound entry.
type boundSpec struct {
	lower, upper       float64
	hasLower, hasUpper bool
}

func lowerOnly(v float64) boundSpec { return boundSpec{lower: v, hasLower: true} }
func upperOnly(v float64) boundSpec { return boundSpec{upper: v, hasUpper: true} }
func interval(l, u float64) boundSpec {
	return boundSpec{lower: l, upper: u, hasLower: true, hasUpper: true}
}

// requireMatrix compares two row-major coefficient maps entry by entry.
func requireMatrix(t *testing.T, want, got map[string]map[string]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for row, entries := range want {
		require.Contains(t, got, row)
		require.Lenf(t, got[row], len(entries), "row %s", row)
		for col, v := range entries {
			require.InDeltaf(t, v, got[row][col], 1e-9, "row %s column %s", row, col)
		}
	}
}

// requireFloatMap compares two name -> value maps entry by entry.
func requireFloatMap(t *testing.T, want, got map[string]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for name, v := range want {
		require.Contains(t, got, name)
		require.InDeltaf(t, v, got[name], 1e-9, "entry %s", name)
	}
}

// requireBounds compares a bounds map against its expected shape, treating
// infinite ends exactly.
func requireBounds(t *testing.T, want map[string]boundSpec, got map[string]*Bound) {
	t.Helper()
	require.Len(t, got, len(want))
	for col, spec := range want {
		b, ok := got[col]
		require.Truef(t, ok, "column %s has no bound", col)
		require.Equalf(t, spec.hasLower, b.HasLower, "column %s lower presence", col)
		require.Equalf(t, spec.hasUpper, b.HasUpper, "column %s upper presence", col)
		if spec.hasLower {
			require.Equalf(t, spec.lower, b.Lower, "column %s lower", col)
		}
		if spec.hasUpper {
			require.Equalf(t, spec.upper, b.Upper, "column %s upper", col)
		}
	}
}

//==============================================================================

func TestParseMpsNoFill(t *testing.T) {
	prob, err := ParseMps(strings.NewReader(exampleMps), Options{})
	require.NoError(t, err)

	assert.Equal(t, "EXAMPLE", prob.Name)
	assert.Equal(t, "COST", prob.ObjRow)
	wantRows := []Row{
		{Name: "R01", Sense: SenseLE},
		{Name: "R02", Sense: SenseEQ},
		{Name: "R03", Sense: SenseGE},
		{Name: "R04", Sense: SenseEQ},
		{Name: "COST", Sense: SenseFree},
	}
	assert.Empty(t, cmp.Diff(wantRows, prob.Rows))
	assert.Empty(t, cmp.Diff([]string{"C01", "C02", "C03"}, prob.Columns()))

	// Without filling, R04 keeps only the coefficients the file declared.
	requireMatrix(t, map[string]map[string]float64{
		"R01":  {"C01": 30, "C02": -10, "C03": 50},
		"R02":  {"C01": 5000, "C02": 0, "C03": -3},
		"R03":  {"C01": 0.2, "C02": 0.1, "C03": 0},
		"R04":  {"C02": 0.2, "C03": 0.3},
		"COST": {"C01": 10, "C02": 5, "C03": 5.5},
	}, prob.Coef)

	requireFloatMap(t, map[string]float64{
		"R01": 1500, "R02": 200, "R03": 12, "R04": 0,
	}, prob.RHS)
	assert.Equal(t, "B", prob.RHSID)

	assert.Empty(t, cmp.Diff(map[string]Range{
		"R01": {Lower: 1486, Upper: 1500},
		"R02": {Lower: 200, Upper: 214},
		"R03": {Lower: 12, Upper: 26},
		"R04": {Lower: -14, Upper: 0},
	}, prob.Ranges))
	assert.Equal(t, "rhs", prob.RangesID)

	requireBounds(t, map[string]boundSpec{
		"C01": upperOnly(0),
		"C02": interval(0, 0),
		"C03": lowerOnly(0),
	}, prob.Bounds)
	assert.Equal(t, "BOUND", prob.BoundsID)

	assert.Equal(t, BoundTally{LO: 1, UP: 1, FX: 1}, prob.Tally)
}

func TestParseMpsFill(t *testing.T) {
	prob, err := ParseMps(strings.NewReader(exampleMps), Options{Fill: true})
	require.NoError(t, err)

	// Filling densifies the matrix; R04 gains its missing C01 entry.
	requireMatrix(t, map[string]map[string]float64{
		"R01":  {"C01": 30, "C02": -10, "C03": 50},
		"R02":  {"C01": 5000, "C02": 0, "C03": -3},
		"R03":  {"C01": 0.2, "C02": 0.1, "C03": 0},
		"R04":  {"C01": 0, "C02": 0.2, "C03": 0.3},
		"COST": {"C01": 10, "C02": 5, "C03": 5.5},
	}, prob.Coef)

	// A sole upper bound of 0 pulls the lower end down to -Inf; a sole lower
	// bound gets +Inf above it.
	requireBounds(t, map[string]boundSpec{
		"C01": interval(math.Inf(-1), 0),
		"C02": interval(0, 0),
		"C03": interval(0, math.Inf(1)),
	}, prob.Bounds)

	assert.Empty(t, cmp.Diff([]string{"C01", "C02", "C03"}, prob.AllColumns))
}

func TestParseMpsStopsAtEndata(t *testing.T) {
	src := exampleMps + "this is not MPS at all\nNOR IS THIS\n"
	_, err := ParseMps(strings.NewReader(src), Options{})
	require.NoError(t, err)
}

func TestParseMpsSecondFreeRowSkipped(t *testing.T) {
	src := `NAME          TWOFREE
ROWS
 N  COST
 N  COST2
 G  R1
COLUMNS
    X         R1        1.0       COST      2.0
ENDATA
`
	prob, err := ParseMps(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, "COST", prob.ObjRow)
	assert.Len(t, prob.Rows, 2)
	assert.False(t, prob.HasRow("COST2"))
}

func TestParseMpsObjSense(t *testing.T) {
	src := `NAME          DUALISH
OBJSENSE
  MAX
OBJNAME
  DL
ROWS
 N  DL
 L  C01
COLUMNS
    R01       C01       1.0       DL        2.0
ENDATA
`
	prob, err := ParseMps(strings.NewReader(src), Options{})
	require.NoError(t, err)
	assert.Equal(t, SenseMax, prob.ObjSense)
	assert.Equal(t, "DL", prob.ObjName)
	assert.Equal(t, "DL", prob.ObjRow)
}

func TestReadMpsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example.mps")
	require.NoError(t, os.WriteFile(path, []byte(exampleMps), 0o644))

	prob, err := ReadMpsFile(path, Options{Fill: true})
	require.NoError(t, err)
	assert.Equal(t, "EXAMPLE", prob.Name)

	_, err = ReadMpsFile(filepath.Join(dir, "no-such-file.mps"), Options{})
	require.Error(t, err)
}

//==============================================================================

func TestParseMpsErrors(t *testing.T) {
	// A valid prefix that cases below extend with the offending section.
	const base = `NAME          T
ROWS
 N  COST
 G  R1
 E  R2
COLUMNS
    X         R1        1.0       COST      2.0
    X         R2        3.0
    Y         R1        4.0       R2        5.0
    Y         COST      6.0
`

	cases := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "unknown indicator",
			src:  "NAME          T\nCATS\n ...\nENDATA\n",
			want: ErrUnknownIndicator,
		},
		{
			name: "data before any section",
			src:  "    X         R1        1.0\n",
			want: ErrUnknownIndicator,
		},
		{
			name: "data after NAME",
			src:  "NAME          T\n    stray     record\nENDATA\n",
			want: ErrMalformedRecord,
		},
		{
			name: "NAME without a problem name",
			src:  "NAME\nROWS\n N  COST\nENDATA\n",
			want: ErrMalformedRecord,
		},
		{
			name: "duplicate NAME",
			src:  "NAME          T\nNAME          U\nENDATA\n",
			want: ErrDuplicateEntry,
		},
		{
			name: "missing NAME section",
			src:  "ROWS\n N  COST\nCOLUMNS\n    X         COST      1.0\nENDATA\n",
			want: ErrMissingRequiredSection,
		},
		{
			name: "missing ROWS section",
			src:  "NAME          T\nCOLUMNS\n    X         COST      1.0\nENDATA\n",
			want: ErrMissingRequiredSection,
		},
		{
			name: "missing COLUMNS section",
			src:  "NAME          T\nROWS\n N  COST\nENDATA\n",
			want: ErrMissingRequiredSection,
		},
		{
			name: "missing objective row",
			src:  "NAME          T\nROWS\n G  R1\nCOLUMNS\n    X         R1        1.0\nENDATA\n",
			want: ErrMissingObjective,
		},
		{
			name: "duplicate row name",
			src:  "NAME          T\nROWS\n N  COST\n G  R1\n L  R1\nENDATA\n",
			want: ErrDuplicateEntry,
		},
		{
			name: "malformed ROWS record",
			src:  "NAME          T\nROWS\n G  R1  EXTRA\nENDATA\n",
			want: ErrMalformedRecord,
		},
		{
			name: "invalid row sense",
			src:  "NAME          T\nROWS\n Q  R1\nENDATA\n",
			want: ErrMalformedRecord,
		},
		{
			name: "COLUMNS record without a column name",
			src:  base + "    R1        7.0\nENDATA\n",
			want: ErrMalformedRecord,
		},
		{
			name: "COLUMNS value not numeric",
			src:  base + "    Z         R1        moo\nENDATA\n",
			want: ErrCoefficientFormat,
		},
		{
			name: "duplicate coefficient",
			src:  base + "    X         R1        9.0\nENDATA\n",
			want: ErrDuplicateEntry,
		},
		{
			name: "COLUMNS references undeclared row",
			src:  base + "    X         R9        1.0\nENDATA\n",
			want: ErrOrphanColumnRow,
		},
		{
			name: "RHS value not numeric",
			src:  base + "RHS\n    B         R1        moo\nENDATA\n",
			want: ErrCoefficientFormat,
		},
		{
			name: "RANGES before RHS",
			src:  base + "RANGES\n    rng       R1        4.0\nENDATA\n",
			want: ErrMissingRhs,
		},
		{
			name: "RANGES on a row without RHS",
			src:  base + "RHS\n    B         R1        6.0\nRANGES\n    rng       R2        4.0\nENDATA\n",
			want: ErrMissingRhs,
		},
		{
			name: "RANGES on the free row",
			src:  base + "RHS\n    B         COST      1.0\nRANGES\n    rng       COST      4.0\nENDATA\n",
			want: ErrInvalidRange,
		},
		{
			name: "RANGES with zero magnitude on an E row",
			src:  base + "RHS\n    B         R2        6.0\nRANGES\n    rng       R2        0.0\nENDATA\n",
			want: ErrInvalidRange,
		},
		{
			name: "duplicate range",
			src:  base + "RHS\n    B         R1        6.0\nRANGES\n    rng       R1        4.0\n    rng       R1        5.0\nENDATA\n",
			want: ErrDuplicateEntry,
		},
		{
			name: "ambiguous bound",
			src:  base + "BOUNDS\n UP 01 2\nENDATA\n",
			want: ErrAmbiguousBound,
		},
		{
			name: "unknown bound type",
			src:  base + "BOUNDS\n XX BND       X         2.0\nENDATA\n",
			want: ErrMalformedRecord,
		},
		{
			name: "duplicate upper bound",
			src:  base + "BOUNDS\n UP BND       X         2.0\n UP BND       X         3.0\nENDATA\n",
			want: ErrDuplicateBound,
		},
		{
			name: "respecified fixed bound",
			src:  base + "BOUNDS\n FX BND       X         2.0\n LO BND       X         1.0\nENDATA\n",
			want: ErrDuplicateBound,
		},
		{
			name: "bound on undeclared column",
			src:  base + "BOUNDS\n UP BND       Z         2.0\nENDATA\n",
			want: ErrOrphanBound,
		},
		{
			name: "lower bound above upper bound",
			src:  base + "BOUNDS\n LO BND       X         10.0\n UP BND       X         2.0\nENDATA\n",
			want: ErrBoundOrder,
		},
		{
			name: "bound value not numeric",
			src:  base + "BOUNDS\n UP BND       X         1.2.3\nENDATA\n",
			want: ErrNumericFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMps(strings.NewReader(tc.src), Options{})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

//==============================================================================

func TestSplitVector(t *testing.T) {
	// Two or four tokens: the vector id was omitted.
	id, pairs, err := splitVector([]string{"R1", "1.0"}, secRHS)
	require.NoError(t, err)
	assert.Equal(t, "", id)
	assert.Equal(t, [][2]string{{"R1", "1.0"}}, pairs)

	// Three or five tokens: the first token is the id.
	id, pairs, err = splitVector([]string{"B", "R1", "1.0", "R2", "2.0"}, secRHS)
	require.NoError(t, err)
	assert.Equal(t, "B", id)
	assert.Equal(t, [][2]string{{"R1", "1.0"}, {"R2", "2.0"}}, pairs)

	// The column name is mandatory in the COLUMNS section.
	_, _, err = splitVector([]string{"R1", "1.0"}, secCols)
	require.ErrorIs(t, err, ErrMalformedRecord)

	_, _, err = splitVector([]string{"B"}, secRHS)
	require.ErrorIs(t, err, ErrMalformedRecord)
	_, _, err = splitVector([]string{"a", "b", "c", "d", "e", "f"}, secRHS)
	require.ErrorIs(t, err, ErrMalformedRecord)
}
