package mps

// conform: the post-parse normalization pass. Validates the parsed model
// and, when filling is enabled, makes the format-implicit defaults explicit
// so that downstream consumers (and in particular the dual transformer) see
// a dense, fully bounded model.

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/go-opt/mps/logger"
)

// conform runs the conforming passes in order: bounds, RHS, columns,
// objective. It is called by ParseMps after the required sections have been
// checked.
func conform(p *Problem, opt Options) error {
	if err := conformBounds(p, opt); err != nil {
		return err
	}
	conformRhs(p, opt)
	if err := conformCols(p, opt); err != nil {
		return err
	}
	if err := conformObjective(p); err != nil {
		return err
	}
	p.filled = opt.Fill
	return nil
}

// conformBounds fills missing bound ends and validates bound ordering.
//
// If no bound is specified for a column, it defaults to 0 <= x <= +Inf.
// If only a single end is specified, the other defaults per the table below;
// the NETLIB exception is that a sole upper bound of at most 0 pulls the
// lower bound down to -Inf instead of 0.
//
//	Upper |  Lower   | Result
//	--------------------------
//	> 0   |   none   | lower = 0
//	<= 0  |   none   | lower = -Inf
//	none  |   any    | upper = +Inf
//	none  |   none   | lower = 0, upper = +Inf
func conformBounds(p *Problem, opt Options) error {
	log := logger.Logger()

	for _, col := range p.Columns() {
		b, ok := p.Bounds[col]
		if !ok {
			if opt.Verbose {
				log.Debug().Str("column", col).Bool("fill", opt.Fill).
					Msg("BOUND unspecified")
			}
			if opt.Fill {
				p.Bounds[col] = &Bound{Lower: 0, HasLower: true, Upper: math.Inf(1), HasUpper: true}
			}
			continue
		}

		if opt.Fill {
			switch {
			case !b.HasLower && b.HasUpper:
				if b.Upper > 0 {
					b.Lower = 0
				} else {
					b.Lower = math.Inf(-1)
				}
				b.HasLower = true
				if opt.Verbose {
					log.Debug().Str("column", col).Float64("lower", b.Lower).
						Msg("lower bound unspecified, filled")
				}
			case b.HasLower && !b.HasUpper:
				b.Upper = math.Inf(1)
				b.HasUpper = true
				if opt.Verbose {
					log.Debug().Str("column", col).Msg("upper bound unspecified, set to +Inf")
				}
			case !b.HasLower && !b.HasUpper:
				return errors.Errorf("conformBounds found an empty bound entry for %s", col)
			}
		}

		if b.HasLower && b.HasUpper && b.Lower > b.Upper {
			return errors.Wrapf(ErrBoundOrder, "lower -> %v, upper -> %v", b.Lower, b.Upper)
		}
	}

	// Every bounded column must exist in the column universe.
	var orphans []string
	for col := range p.Bounds {
		if !p.HasColumn(col) {
			orphans = append(orphans, col)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return errors.Wrapf(ErrOrphanBound, "BOUNDS specified for which no COLUMNS exist: %v", orphans)
	}
	return nil
}

// conformRhs gives every non-free row an RHS entry of 0 when filling is
// enabled, and reports rows lacking one either way.
func conformRhs(p *Problem, opt Options) {
	log := logger.Logger()

	for _, row := range p.Rows {
		if row.Sense == SenseFree {
			continue
		}
		if _, ok := p.RHS[row.Name]; ok {
			continue
		}
		if opt.Verbose {
			log.Debug().Str("row", row.Name).Bool("fill", opt.Fill).
				Msg("row has no RHS value")
		}
		if opt.Fill {
			p.RHS[row.Name] = 0
		}
	}
}

// conformCols asserts that every row referenced by the COLUMNS section was
// declared, densifies the coefficient matrix when filling is enabled, and
// finalizes the column universe into its deterministic (sorted) order.
func conformCols(p *Problem, opt Options) error {
	var orphans []string
	for row := range p.Coef {
		if !p.HasRow(row) {
			orphans = append(orphans, row)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return errors.Wrapf(ErrOrphanColumnRow, "COLUMNS makes reference to non-existent ROW(s) %v", orphans)
	}

	cols := p.Columns()
	if opt.Fill {
		for _, row := range p.Rows {
			entries := p.Coef[row.Name]
			if entries == nil {
				entries = make(map[string]float64, len(cols))
				p.Coef[row.Name] = entries
			}
			for _, col := range cols {
				if _, ok := entries[col]; !ok {
					entries[col] = 0
				}
			}
		}
	}

	p.AllColumns = cols
	return nil
}

// conformObjective asserts that a free (N) row was declared; the first one
// seen is the objective function.
func conformObjective(p *Problem) error {
	if p.ObjRow == "" {
		return errors.Wrap(ErrMissingObjective, "no free row in the ROWS section")
	}
	return nil
}
