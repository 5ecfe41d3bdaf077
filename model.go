package mps

// model: the typed in-memory representation of a linear program read from an
// MPS file. The Problem aggregate is built incrementally by the reader, is
// validated (and optionally filled) by the conformer, and is treated as
// read-only by every consumer after that. The dual transformer always works
// on a deep copy and never mutates the model it was given.

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Sense identifies the constraint type of a row. Exactly one row per model
// may have the free sense; that row is the objective function.
type Sense string

const (
	SenseFree Sense = "N" // free row, used as the objective
	SenseGE   Sense = "G" // greater than or equal
	SenseLE   Sense = "L" // less than or equal
	SenseEQ   Sense = "E" // equality
)

// validSense reports whether s is one of the four senses the ROWS section
// accepts.
func validSense(s Sense) bool {
	switch s {
	case SenseFree, SenseGE, SenseLE, SenseEQ:
		return true
	}
	return false
}

// Row is a single entry of the ROWS section. Rows keep their first-seen
// order; the objective row is only moved last by the tableau export, never
// in storage.
type Row struct {
	Name  string // row name, unique within the model
	Sense Sense  // constraint type
}

// Bound is the permissible interval of one decision variable. Either end may
// be absent (unspecified in the file and not yet filled by the conformer) or
// may hold an infinity.
type Bound struct {
	Lower    float64 // lower end, meaningful only when HasLower is set
	Upper    float64 // upper end, meaningful only when HasUpper is set
	HasLower bool    // lower end was specified or filled
	HasUpper bool    // upper end was specified or filled
}

// free reports whether the bound spans the whole extended real line.
func (b *Bound) free() bool {
	return b.HasLower && b.HasUpper &&
		math.IsInf(b.Lower, -1) && math.IsInf(b.Upper, 1)
}

// fixed reports whether both ends are present and equal.
func (b *Bound) fixed() bool {
	return b.HasLower && b.HasUpper && b.Lower == b.Upper
}

// Range is the constraint interval derived for a ranged row from its RHS
// value, its sense, and the signed range magnitude.
type Range struct {
	Lower float64
	Upper float64
}

// BoundTally counts how often each bound type appeared in the BOUNDS
// section. It is accumulated on the Problem during parsing and consumed by
// the statistics collaborator; it is owned by the model, not by the process.
type BoundTally struct {
	LO int
	UP int
	FX int
	FR int
	MI int
	PL int
}

// Problem is the aggregate model of one linear program. All maps are keyed
// by row or column name; the coefficient matrix is stored row-major and
// sparse until the conformer fills it.
type Problem struct {
	Name   string // problem name from the NAME indicator
	ObjRow string // name of the objective (free) row

	Rows   []Row                         // rows in first-seen order
	Coef   map[string]map[string]float64 // row name -> column name -> value
	RHS    map[string]float64            // row name -> RHS value
	Bounds map[string]*Bound             // column name -> bound interval
	Ranges map[string]Range              // row name -> range interval

	// AllColumns is the deterministic (sorted) column universe. It is
	// populated by the conformer; before that, Columns() derives it on
	// demand from the entries seen so far.
	AllColumns []string

	// First-vector identifiers, retained so they can be echoed back by the
	// JSON emitter. An empty identifier is a legitimate first vector.
	RHSID    string
	BoundsID string
	RangesID string

	// ObjSense and ObjName are set only on models produced by MakeDual and
	// drive the OBJSENSE/OBJNAME blocks of the serializer.
	ObjSense string
	ObjName  string

	Tally BoundTally // bound-type usage accumulated during parsing

	rowIndex   map[string]int
	colSet     map[string]struct{}
	rhsIDSet   bool
	boundIDSet bool
	rangeIDSet bool
	filled     bool // conformer ran with filling enabled
}

// NewProblem returns an empty model ready to be populated record by record.
func NewProblem(name string) *Problem {
	return &Problem{
		Name:     name,
		Coef:     make(map[string]map[string]float64),
		RHS:      make(map[string]float64),
		Bounds:   make(map[string]*Bound),
		Ranges:   make(map[string]Range),
		rowIndex: make(map[string]int),
		colSet:   make(map[string]struct{}),
	}
}

// AddRow appends a row to the model. The row name must be unique and the
// sense must be one of N, G, L, E. The first free row becomes the objective
// row; the caller is responsible for dropping later free rows.
func (p *Problem) AddRow(name string, sense Sense) error {
	if !validSense(sense) {
		return errors.Wrapf(ErrMalformedRecord, "row sense must be one of N, G, L, E, found %q", sense)
	}
	if _, dup := p.rowIndex[name]; dup {
		return errors.Wrapf(ErrDuplicateEntry, "row name %s is duplicated", name)
	}
	p.rowIndex[name] = len(p.Rows)
	p.Rows = append(p.Rows, Row{Name: name, Sense: sense})
	if sense == SenseFree && p.ObjRow == "" {
		p.ObjRow = name
	}
	return nil
}

// HasRow reports whether a row with the given name was declared.
func (p *Problem) HasRow(name string) bool {
	_, ok := p.rowIndex[name]
	return ok
}

// RowSense returns the sense of a declared row.
func (p *Problem) RowSense(name string) (Sense, bool) {
	i, ok := p.rowIndex[name]
	if !ok {
		return "", false
	}
	return p.Rows[i].Sense, true
}

// SetCoef stores one coefficient matrix element and registers the column in
// the column universe. Re-specifying a (row, column) pair is an error.
func (p *Problem) SetCoef(row, col string, val float64) error {
	entries := p.Coef[row]
	if entries == nil {
		entries = make(map[string]float64)
		p.Coef[row] = entries
	}
	if _, dup := entries[col]; dup {
		return errors.Wrapf(ErrDuplicateEntry, "column %s specified twice in row %s", col, row)
	}
	entries[col] = val
	if _, known := p.colSet[col]; !known {
		p.colSet[col] = struct{}{}
		p.AllColumns = nil // invalidate any finalized ordering
	}
	return nil
}

// SetRHS stores one RHS entry. Re-specifying a row is an error.
func (p *Problem) SetRHS(row string, val float64) error {
	if _, dup := p.RHS[row]; dup {
		return errors.Wrapf(ErrDuplicateEntry, "RHS for row %s specified twice", row)
	}
	p.RHS[row] = val
	return nil
}

// bound returns the bound entry for a column, creating it on first use.
func (p *Problem) bound(col string) *Bound {
	b := p.Bounds[col]
	if b == nil {
		b = &Bound{}
		p.Bounds[col] = b
	}
	return b
}

// HasColumn reports whether the column appears in the column universe.
func (p *Problem) HasColumn(col string) bool {
	_, ok := p.colSet[col]
	return ok
}

// Columns returns the deterministic column ordering: the finalized
// AllColumns slice when the conformer has run, otherwise a sorted snapshot
// of the columns seen so far.
func (p *Problem) Columns() []string {
	if p.AllColumns != nil {
		return p.AllColumns
	}
	cols := make([]string, 0, len(p.colSet))
	for c := range p.colSet {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// removeColumn drops a column from the column universe. Matrix entries are
// the caller's responsibility; this is used by the dual transformer when a
// fixed variable is eliminated.
func (p *Problem) removeColumn(col string) {
	delete(p.colSet, col)
	if p.AllColumns == nil {
		return
	}
	kept := p.AllColumns[:0]
	for _, c := range p.AllColumns {
		if c != col {
			kept = append(kept, c)
		}
	}
	p.AllColumns = kept
}

// clone returns a deep, independent copy of the model.
func (p *Problem) clone() *Problem {
	cp := NewProblem(p.Name)
	cp.ObjRow = p.ObjRow
	cp.ObjSense = p.ObjSense
	cp.ObjName = p.ObjName
	cp.RHSID = p.RHSID
	cp.BoundsID = p.BoundsID
	cp.RangesID = p.RangesID
	cp.rhsIDSet = p.rhsIDSet
	cp.boundIDSet = p.boundIDSet
	cp.rangeIDSet = p.rangeIDSet
	cp.filled = p.filled
	cp.Tally = p.Tally

	cp.Rows = make([]Row, len(p.Rows))
	copy(cp.Rows, p.Rows)
	for name, i := range p.rowIndex {
		cp.rowIndex[name] = i
	}
	for row, entries := range p.Coef {
		m := make(map[string]float64, len(entries))
		for col, v := range entries {
			m[col] = v
		}
		cp.Coef[row] = m
	}
	for row, v := range p.RHS {
		cp.RHS[row] = v
	}
	for col, b := range p.Bounds {
		bc := *b
		cp.Bounds[col] = &bc
	}
	for row, r := range p.Ranges {
		cp.Ranges[row] = r
	}
	for col := range p.colSet {
		cp.colSet[col] = struct{}{}
	}
	if p.AllColumns != nil {
		cp.AllColumns = make([]string, len(p.AllColumns))
		copy(cp.AllColumns, p.AllColumns)
	}
	return cp
}
