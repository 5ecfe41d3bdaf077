package mps

// dual: transformation of a conformed model into its LP dual.
//
// Before the dual is generated, every 'L' row constraint is rewritten as
// '>=' ('G') by multiplying the row and its RHS through by -1, so that no
// dual variable of the form y <= 0 is produced. The primal variables are
// then reformulated into standard canonical form (x >= 0):
//
//	x = a (fixed):      eliminate the column, folding coefficient*a into
//	                    every row's RHS.
//	x <= a:             shift every row constraint by a: x' = a - x.
//	x >= a:             shift every row constraint by a: x' = x - a.
//	a <= x <= b:        add a new 'G' row with a unit coefficient on x and
//	                    an RHS of a, then shift everything by b.
//
// Shifting accumulates an offset in the objective row's RHS; a non-zero
// offset surfaces as the dual RHS of the synthetic objective column.

import (
	"math"

	"github.com/pkg/errors"
)

// dualObjName is the name announced for the dual's objective row and for the
// synthetic objective column carrying the shift offset.
const dualObjName = "DL"

// Optimization senses accepted by MakeDual.
const (
	SenseMax = "MAX"
	SenseMin = "MIN"
)

// shift kinds used by shiftVar.
const (
	shiftLo = iota // plain shift, no sign flip
	shiftUp        // shift, then negate the column
	shiftFx        // shift, then eliminate the column
)

// MakeDual converts a conformed model into its LP dual and returns it as a
// new Problem; the primal is never mutated. The model must have been
// conformed with filling enabled (dense matrix, fully specified bounds) and
// must carry no RANGES section. The supplied sense (MAX or MIN) becomes the
// dual's announced optimization sense.
func MakeDual(p *Problem, sense string) (*Problem, error) {
	if sense != SenseMax && sense != SenseMin {
		return nil, errors.Errorf("wrong sense %q supplied, must be %s or %s", sense, SenseMax, SenseMin)
	}
	if len(p.Ranges) > 0 {
		return nil, errors.Wrap(ErrUnsupportedRanges, "MakeDual requires a model without RANGES")
	}
	numCols := len(p.Columns())
	for _, row := range p.Rows {
		if len(p.Coef[row.Name]) != numCols {
			return nil, errors.Errorf("MakeDual requires a dense model, conform with Fill enabled")
		}
	}

	cp := p.clone()
	obj := cp.ObjRow

	// Shifting variables generates an offset in the objective row's RHS;
	// make sure there is a slot to absorb it.
	if _, ok := cp.RHS[obj]; !ok {
		cp.RHS[obj] = 0
	}

	// Convert every 'L' row constraint into 'G'.
	for i, row := range cp.Rows {
		if row.Sense != SenseLE {
			continue
		}
		cp.Rows[i].Sense = SenseGE
		entries := cp.Coef[row.Name]
		for col, v := range entries {
			entries[col] = -v
		}
		cp.RHS[row.Name] = -cp.RHS[row.Name]
	}

	dual := NewProblem(p.Name + "_DUAL")
	dual.ObjSense = sense
	dual.ObjName = dualObjName

	// Reformulate each variable into standard canonical form; each surviving
	// variable contributes one dual constraint row.
	for _, col := range append([]string(nil), cp.Columns()...) {
		b := cp.Bounds[col]
		if b == nil || !b.HasLower || !b.HasUpper {
			return nil, errors.Wrapf(ErrInfeasibleBoundShape, "bound for column %s is not fully specified", col)
		}
		lb, ub := b.Lower, b.Upper

		switch {
		case lb == 0 && math.IsInf(ub, 1):
			// x >= 0: already canonical.
			if err := dual.AddRow(col, SenseLE); err != nil {
				return nil, err
			}

		case math.IsInf(lb, -1) && ub == 0:
			// x <= 0: negate the column everywhere.
			if err := dual.AddRow(col, SenseLE); err != nil {
				return nil, err
			}
			for _, row := range cp.Rows {
				cp.Coef[row.Name][col] = -cp.Coef[row.Name][col]
			}

		case math.IsInf(lb, -1) && math.IsInf(ub, 1):
			// x free.
			if err := dual.AddRow(col, SenseEQ); err != nil {
				return nil, err
			}

		case lb == ub:
			// x = a: evaluate the column into the RHS and drop it.
			shiftVar(cp, col, lb, shiftFx)

		case !math.IsInf(lb, -1) && lb != 0 && math.IsInf(ub, 1):
			// a <= x <= +Inf.
			if err := dual.AddRow(col, SenseLE); err != nil {
				return nil, err
			}
			shiftVar(cp, col, lb, shiftLo)

		case math.IsInf(lb, -1) && !math.IsInf(ub, 1):
			// -Inf <= x <= a: the shift converts the variable into a lower
			// bounded one, so its dual row is still an 'L'.
			if err := dual.AddRow(col, SenseLE); err != nil {
				return nil, err
			}
			shiftVar(cp, col, ub, shiftUp)

		case !math.IsInf(lb, -1) && !math.IsInf(ub, 1):
			// a <= x <= b: add a new 'G' row for the lower end, then shift
			// everything (the new row included) by the upper end.
			label := col + "_db"
			if err := cp.AddRow(label, SenseGE); err != nil {
				return nil, err
			}
			cp.RHS[label] = lb
			entries := make(map[string]float64, numCols)
			for _, c := range cp.Columns() {
				entries[c] = 0
			}
			entries[col] = 1
			cp.Coef[label] = entries

			if err := dual.AddRow(col, SenseLE); err != nil {
				return nil, err
			}
			shiftVar(cp, col, ub, shiftUp)

		default:
			return nil, errors.Wrapf(ErrInfeasibleBoundShape,
				"cannot reformulate bound [%v, %v] on column %s", lb, ub, col)
		}
	}

	// The dual RHS vector is the (possibly shifted) objective row.
	for col, v := range cp.Coef[obj] {
		dual.RHS[col] = v
	}

	// Move the accumulated objective offset to the RHS of the synthetic
	// objective column.
	offset := cp.RHS[obj]
	delete(cp.RHS, obj)
	if offset != 0 {
		dual.RHS[dualObjName] = offset
	}

	// Transpose the coefficient matrix, excluding the objective row: primal
	// rows become dual columns, primal columns become dual rows.
	for _, row := range cp.Rows {
		if row.Name == obj {
			continue
		}
		for col, v := range cp.Coef[row.Name] {
			if err := dual.SetCoef(col, row.Name, v); err != nil {
				return nil, err
			}
		}
	}

	// The dual objective row is the shifted primal RHS vector.
	for row, v := range cp.RHS {
		if err := dual.SetCoef(dualObjName, row, v); err != nil {
			return nil, err
		}
	}
	if err := dual.AddRow(dualObjName, SenseFree); err != nil {
		return nil, err
	}

	// Dual bounds follow the (converted) primal row senses.
	for _, row := range cp.Rows {
		switch row.Sense {
		case SenseLE:
			dual.Bounds[row.Name] = &Bound{Upper: 0, HasUpper: true}
		case SenseGE:
			dual.Bounds[row.Name] = &Bound{Lower: 0, HasLower: true}
		case SenseEQ:
			dual.Bounds[row.Name] = &Bound{
				Lower: math.Inf(-1), HasLower: true,
				Upper: math.Inf(1), HasUpper: true,
			}
		}
	}

	return dual, nil
}

// shiftVar shifts the variable col by val, folding coefficient*val out of
// every row's RHS. A shiftUp additionally negates the column, and a shiftFx
// eliminates it from the matrix and the column universe.
func shiftVar(cp *Problem, col string, val float64, kind int) {
	for _, row := range cp.Rows {
		entries := cp.Coef[row.Name]
		coef := entries[col]
		cp.RHS[row.Name] -= coef * val
		switch kind {
		case shiftUp:
			entries[col] = -coef
		case shiftFx:
			delete(entries, col)
		}
	}
	if kind == shiftFx {
		cp.removeColumn(col)
	}
}
