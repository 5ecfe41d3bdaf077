package mps

// tableau: dense matrix-style export of a model for algorithmic consumers.
// Each constraint is presented as a two-sided interval lhs <= a.x <= rhs,
// with ranges folded in and the objective row moved to the last position.

import (
	"math"
)

// Tableau is the dense snapshot of a model. Slices are indexed positionally:
// LB and UB per column, LHS and RHS per row, and A as row-major coefficients.
type Tableau struct {
	Rows      []string           // row names, objective last
	Cols      []string           // column names in deterministic order
	LB        []float64          // per-column lower bounds, default 0
	UB        []float64          // per-column upper bounds, default +Inf
	LHS       []float64          // per-row interval lower ends
	RHS       []float64          // per-row interval upper ends
	A         [][]float64        // coefficient matrix, objective row last
	RowOffset map[string]float64 // RHS offsets captured from free rows
}

// Tableau converts the model into its dense two-sided form. Row senses map
// onto intervals as: L -> (-Inf, b], G -> [b, +Inf), E -> [b, b], and a free
// row becomes (-Inf, +Inf) with its RHS captured as an offset. Ranged rows
// use their derived interval directly.
func (p *Problem) Tableau() *Tableau {
	cols := p.Columns()
	rows := make([]string, len(p.Rows))
	for i, row := range p.Rows {
		rows[i] = row.Name
	}

	// Swap the objective row to the bottom.
	for i, name := range rows {
		if name == p.ObjRow {
			rows[i], rows[len(rows)-1] = rows[len(rows)-1], rows[i]
			break
		}
	}

	t := &Tableau{
		Rows:      rows,
		Cols:      cols,
		LB:        make([]float64, len(cols)),
		UB:        make([]float64, len(cols)),
		LHS:       make([]float64, len(rows)),
		RHS:       make([]float64, len(rows)),
		A:         make([][]float64, len(rows)),
		RowOffset: make(map[string]float64),
	}

	for n := range cols {
		t.LB[n] = 0
		t.UB[n] = math.Inf(1)
		if b, ok := p.Bounds[cols[n]]; ok {
			if b.HasLower {
				t.LB[n] = b.Lower
			}
			if b.HasUpper {
				t.UB[n] = b.Upper
			}
		}
	}

	for m, name := range rows {
		t.A[m] = make([]float64, len(cols))
		for n, col := range cols {
			t.A[m][n] = p.Coef[name][col]
		}

		if r, ok := p.Ranges[name]; ok {
			t.LHS[m] = r.Lower
			t.RHS[m] = r.Upper
			continue
		}

		b := p.RHS[name]
		sense, _ := p.RowSense(name)
		switch sense {
		case SenseGE:
			t.LHS[m], t.RHS[m] = b, math.Inf(1)
		case SenseLE:
			t.LHS[m], t.RHS[m] = math.Inf(-1), b
		case SenseEQ:
			t.LHS[m], t.RHS[m] = b, b
		case SenseFree:
			t.LHS[m], t.RHS[m] = math.Inf(-1), math.Inf(1)
			t.RowOffset[name] = b
		}
	}

	return t
}
