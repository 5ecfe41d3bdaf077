package mps

// reader: the MPS file reader. A small state machine classifies each raw
// line as a comment, an indicator transition, or a data record belonging to
// the section opened by the last indicator. Data records are disambiguated
// into a fixed-arity form (vector id plus one or two name/value pairs) and
// handed to the section builders, which populate the Problem incrementally.
//
// Make sure that none of the data values matches a keyword. A favourite
// problem is a RHS set named "RHS", or a bounds set named "BOUNDS".
//
// Reads only the first bounds set, first RHS set, first ranges set.

import (
	"bufio"
	"io"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/go-opt/mps/logger"
)

// Options controls how a model is read and conformed. It is passed by value
// to the parse call; the zero value reads strictly with no filling and no
// diagnostics.
type Options struct {
	Fill    bool // fill format-implicit defaults during conforming
	Verbose bool // report skipped records and filled defaults via the package logger
}

// Section indicator names accepted by the classifier.
const (
	secName     = "NAME"
	secObjSense = "OBJSENSE"
	secObjName  = "OBJNAME"
	secRows     = "ROWS"
	secCols     = "COLUMNS"
	secRHS      = "RHS"
	secBounds   = "BOUNDS"
	secRanges   = "RANGES"
	secEnd      = "ENDATA"
)

// parser holds the in-progress model and the classifier state for one parse
// call. It is never shared between calls.
type parser struct {
	prob     *Problem
	opt      Options
	log      zerolog.Logger
	section  string // currently active section, "" before the first indicator
	nameSeen bool
}

//==============================================================================
// ENTRY POINTS
//==============================================================================

// ReadMpsFile reads a fixed-format MPS file, conforms the resulting model,
// and returns it. The file handle is released before the function returns.
// In case of failure, it returns an error.
func ReadMpsFile(fileName string, opt Options) (*Problem, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "ReadMpsFile failed to open %s", fileName)
	}
	defer file.Close()

	prob, err := ParseMps(file, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "ReadMpsFile failed parsing %s", fileName)
	}
	return prob, nil
}

// ParseMps reads fixed-format MPS text from rd, conforms the resulting
// model, and returns it. Parsing stops at ENDATA or at end of input,
// whichever comes first. In case of failure, it returns an error naming the
// offending line.
func ParseMps(rd io.Reader, opt Options) (*Problem, error) {
	ps := &parser{
		prob: NewProblem(""),
		opt:  opt,
		log:  logger.Logger(),
	}

	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		done, err := ps.handleLine(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		if done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "ParseMps failed reading input")
	}

	// Ensure all required sections exist before conforming.
	if !ps.nameSeen {
		return nil, errors.Wrapf(ErrMissingRequiredSection, "indicator record %q is missing", secName)
	}
	if len(ps.prob.Rows) == 0 {
		return nil, errors.Wrapf(ErrMissingRequiredSection, "indicator record %q is missing", secRows)
	}
	if len(ps.prob.Coef) == 0 {
		return nil, errors.Wrapf(ErrMissingRequiredSection, "indicator record %q is missing", secCols)
	}

	if err := conform(ps.prob, opt); err != nil {
		return nil, err
	}
	return ps.prob, nil
}

//==============================================================================
// LINE CLASSIFIER
//==============================================================================

// handleLine classifies one raw line and dispatches it. It returns done=true
// when the ENDATA terminator is reached.
func (ps *parser) handleLine(line string) (bool, error) {
	if line == "" || strings.HasPrefix(line, "*") || strings.TrimSpace(line) == "" {
		return false, nil
	}

	// A non-blank first character marks an indicator line.
	if line[0] != ' ' && line[0] != '\t' {
		fields := strings.Fields(line)
		switch fields[0] {
		case secEnd:
			return true, nil
		case secName:
			if ps.nameSeen {
				return false, errors.Wrapf(ErrDuplicateEntry, "NAME already specified as %s", ps.prob.Name)
			}
			if len(fields) < 2 {
				return false, errors.Wrap(ErrMalformedRecord, "NAME indicator carries no problem name")
			}
			ps.prob.Name = fields[1]
			ps.nameSeen = true
			ps.section = secName
		case secRows, secCols, secRHS, secBounds, secRanges, secObjSense, secObjName:
			ps.section = fields[0]
		default:
			return false, errors.Wrapf(ErrUnknownIndicator, "unknown indicator %s found", fields[0])
		}
		return false, nil
	}

	// A blank first character marks a data record of the current section.
	fields := strings.Fields(line)
	switch ps.section {
	case secRows:
		return false, ps.addRow(fields)
	case secCols:
		return false, ps.addCol(fields)
	case secRHS:
		return false, ps.addRhs(fields)
	case secBounds:
		return false, ps.addBound(fields)
	case secRanges:
		return false, ps.addRange(fields)
	case secObjSense:
		if fields[0] != SenseMax && fields[0] != SenseMin {
			return false, errors.Wrapf(ErrMalformedRecord, "OBJSENSE must be %s or %s, found %s", SenseMax, SenseMin, fields[0])
		}
		ps.prob.ObjSense = fields[0]
		return false, nil
	case secObjName:
		ps.prob.ObjName = fields[0]
		return false, nil
	case secName:
		return false, errors.Wrapf(ErrMalformedRecord, "unexpected data record %v after NAME", fields)
	default:
		return false, errors.Wrapf(ErrUnknownIndicator, "data record %v found before any section", fields)
	}
}

//==============================================================================
// FIELD DISAMBIGUATOR
//==============================================================================

// splitVector resolves the optional vector-identifier field of a COLUMNS,
// RHS, or RANGES record. A record carries 2 to 5 tokens; with 2 or 4 tokens
// the id field was omitted, with 3 or 5 tokens the first token is the id.
// The remaining tokens form one or two (name, value) pairs. For the COLUMNS
// section the id (the column name) is mandatory.
func splitVector(fields []string, section string) (string, [][2]string, error) {
	var id string
	var pairs [][2]string

	switch len(fields) {
	case 2, 4:
		if section == secCols {
			return "", nil, errors.Wrap(ErrMalformedRecord, "field 2 is required in the COLUMNS section")
		}
		pairs = append(pairs, [2]string{fields[0], fields[1]})
		if len(fields) == 4 {
			pairs = append(pairs, [2]string{fields[2], fields[3]})
		}
	case 3, 5:
		id = fields[0]
		pairs = append(pairs, [2]string{fields[1], fields[2]})
		if len(fields) == 5 {
			pairs = append(pairs, [2]string{fields[3], fields[4]})
		}
	default:
		return "", nil, errors.Wrapf(ErrMalformedRecord,
			"%s data record must contain 2, 3, 4 or 5 fields, found %v", section, fields)
	}
	return id, pairs, nil
}

//==============================================================================
// SECTION BUILDERS
//==============================================================================

// addRow consumes one ROWS record of exactly two tokens (sense, name). Row
// names must be unique. If a second free (N) row is seen it is dropped; the
// first free row stays the objective.
func (ps *parser) addRow(fields []string) error {
	if len(fields) != 2 {
		return errors.Wrapf(ErrMalformedRecord, "ROW data record must contain two fields, found %v", fields)
	}
	sense, name := Sense(fields[0]), fields[1]

	if ps.prob.HasRow(name) {
		return errors.Wrapf(ErrDuplicateEntry, "row name %s is duplicated", name)
	}
	if sense == SenseFree && ps.prob.ObjRow != "" {
		if ps.opt.Verbose {
			ps.log.Warn().Str("row", name).Msg("free row already specified, skipping record")
		}
		return nil
	}
	return ps.prob.AddRow(name, sense)
}

// addCol consumes one COLUMNS record: a mandatory column name followed by
// one or two (row, value) pairs.
func (ps *parser) addCol(fields []string) error {
	col, pairs, err := splitVector(fields, secCols)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		val, err := MakeNumeric(pair[1])
		if err != nil {
			return errors.Wrapf(ErrCoefficientFormat, "ROW value must be a float, found %s", pair[1])
		}
		if err := ps.prob.SetCoef(pair[0], col, val); err != nil {
			return err
		}
	}
	return nil
}

// addRhs consumes one RHS record. Only the first RHS vector id encountered
// is honored; records of any later vector are skipped.
func (ps *parser) addRhs(fields []string) error {
	id, pairs, err := splitVector(fields, secRHS)
	if err != nil {
		return err
	}
	if !ps.prob.rhsIDSet {
		ps.prob.rhsIDSet = true
		ps.prob.RHSID = id
	} else if id != ps.prob.RHSID {
		if ps.opt.Verbose {
			ps.log.Warn().Str("vector", id).Msg("more than one RHS vector specified, skipping record")
		}
		return nil
	}
	for _, pair := range pairs {
		val, err := MakeNumeric(pair[1])
		if err != nil {
			return errors.Wrapf(ErrCoefficientFormat, "RHS value must be a float, found %s", pair[1])
		}
		if err := ps.prob.SetRHS(pair[0], val); err != nil {
			return err
		}
	}
	return nil
}

// addRange consumes one RANGES record. The referenced rows must already have
// a declared sense and an RHS entry; the (lower, upper) interval is derived
// from the RHS value b, the row sense, and the signed range magnitude r:
//
//	row sense      sign of r       lower        upper
//	---------------------------------------------------
//	   G            + or -           b          b + |r|
//	   L            + or -         b - |r|        b
//	   E              +              b          b + |r|
//	   E              -            b - |r|        b
func (ps *parser) addRange(fields []string) error {
	id, pairs, err := splitVector(fields, secRanges)
	if err != nil {
		return err
	}
	if len(ps.prob.RHS) == 0 {
		return errors.Wrap(ErrMissingRhs, "RHS must be provided before RANGES")
	}
	if len(ps.prob.Rows) == 0 {
		return errors.Wrap(ErrMissingRow, "ROWS must be provided before RANGES")
	}

	if !ps.prob.rangeIDSet {
		ps.prob.rangeIDSet = true
		ps.prob.RangesID = id
	} else if id != ps.prob.RangesID {
		if ps.opt.Verbose {
			ps.log.Warn().Str("vector", id).Msg("more than one RANGES vector specified, skipping record")
		}
		return nil
	}

	for _, pair := range pairs {
		row := pair[0]
		if _, dup := ps.prob.Ranges[row]; dup {
			return errors.Wrapf(ErrDuplicateEntry, "RANGE for row %s specified twice", row)
		}
		r, err := MakeNumeric(pair[1])
		if err != nil {
			return err
		}
		b, ok := ps.prob.RHS[row]
		if !ok {
			return errors.Wrapf(ErrMissingRhs, "row %s needs an RHS entry before a RANGE can be set on it", row)
		}
		sense, ok := ps.prob.RowSense(row)
		if !ok {
			return errors.Wrapf(ErrMissingRow, "row %s must be declared before a RANGE can be set on it", row)
		}

		var lower, upper float64
		switch sense {
		case SenseGE:
			lower, upper = b, b+math.Abs(r)
		case SenseLE:
			lower, upper = b-math.Abs(r), b
		case SenseEQ:
			if r > 0 {
				lower, upper = b, b+math.Abs(r)
			} else {
				lower, upper = b-math.Abs(r), b
			}
		default:
			return errors.Wrapf(ErrInvalidRange, "row %s is a free row and cannot be ranged", row)
		}
		if lower >= upper {
			return errors.Wrapf(ErrInvalidRange, "lower %v must be less than upper %v for row %s", lower, upper, row)
		}
		ps.prob.Ranges[row] = Range{Lower: lower, Upper: upper}
	}
	return nil
}

// addBound consumes one BOUNDS record of 3 or 4 tokens. With 4 tokens the
// layout is unambiguous (type, id, column, value). With 3 tokens either the
// value or the vector id was omitted; the record is resolved by the decision
// table below, and a record in which both readings are numeric is rejected
// as ambiguous rather than guessed at. A missing value defaults to 0 for the
// LO, UP, and FX types.
func (ps *parser) addBound(fields []string) error {
	if len(fields) != 3 && len(fields) != 4 {
		return errors.Wrapf(ErrMalformedRecord, "BOUND data record must contain 3 or 4 fields, found %v", fields)
	}

	var (
		typ, id, col string
		valTok       string
		val          float64
		hasVal       bool
	)

	if len(fields) == 4 {
		typ, id, col, valTok = fields[0], fields[1], fields[2], fields[3]
		hasVal = true
	} else {
		switch {
		case fields[0] == "FR":
			// e.g. capri.mps has "FR BNDS1     RVAD72" (no value field)
			typ, id, col = fields[0], fields[1], fields[2]
		case !isNumeric(fields[2]):
			// The value was omitted, e.g. "MI BND C01". LO, UP, and FX
			// default the missing value to 0.
			typ, id, col = fields[0], fields[1], fields[2]
			if typ == "LO" || typ == "UP" || typ == "FX" {
				val, hasVal = 0, true
			}
		case isNumeric(fields[1]):
			// Both the vector-id reading and the value reading parse as
			// numbers; refuse to guess.
			return errors.Wrapf(ErrAmbiguousBound, "the BOUND %v is ambiguous", fields)
		default:
			// The vector id was omitted, e.g. "UP           C03609   14."
			// (seen in dfl001, gfrd-pnc, greenbeb, and other NETLIB files).
			typ, id, col, valTok = fields[0], "", fields[1], fields[2]
			hasVal = true
		}
	}

	if valTok != "" {
		var err error
		if val, err = MakeNumeric(valTok); err != nil {
			return err
		}
	}

	switch typ {
	case "LO", "UP", "FX", "FR", "MI", "PL":
	default:
		return errors.Wrapf(ErrMalformedRecord, "supplied BOUND type %s is not accepted", typ)
	}

	// Only the first bounds vector id is honored.
	if !ps.prob.boundIDSet {
		ps.prob.boundIDSet = true
		ps.prob.BoundsID = id
	} else if id != ps.prob.BoundsID {
		if ps.opt.Verbose {
			ps.log.Warn().Str("vector", id).Msg("more than one BOUND vector specified, skipping record")
		}
		return nil
	}

	if prev, exists := ps.prob.Bounds[col]; exists {
		respec := typ == "FX" || typ == "MI" || typ == "PL" || typ == "FR"
		if (prev.HasUpper && typ == "UP") || (prev.HasLower && typ == "LO") || respec {
			return errors.Wrapf(ErrDuplicateBound, "BOUND on COLUMN %s specified twice", col)
		}
	}

	b := ps.prob.bound(col)
	switch typ {
	case "UP":
		ps.prob.Tally.UP++
		b.Upper, b.HasUpper = val, true
	case "LO":
		ps.prob.Tally.LO++
		b.Lower, b.HasLower = val, true
	case "FX":
		ps.prob.Tally.FX++
		b.Lower, b.HasLower = val, true
		b.Upper, b.HasUpper = val, true
	case "FR":
		ps.prob.Tally.FR++
		ps.ignoredBoundValue(typ, col, hasVal, val)
		b.Lower, b.HasLower = math.Inf(-1), true
		b.Upper, b.HasUpper = math.Inf(1), true
	case "MI":
		ps.prob.Tally.MI++
		ps.ignoredBoundValue(typ, col, hasVal, val)
		// the upper bound cannot be assumed to be 0
		b.Lower, b.HasLower = math.Inf(-1), true
	case "PL":
		ps.prob.Tally.PL++
		ps.ignoredBoundValue(typ, col, hasVal, val)
		b.Lower, b.HasLower = 0, true
		b.Upper, b.HasUpper = math.Inf(1), true
	}
	return nil
}

// ignoredBoundValue reports a value supplied on a bound type that takes none.
func (ps *parser) ignoredBoundValue(typ, col string, hasVal bool, val float64) {
	if hasVal && ps.opt.Verbose {
		ps.log.Warn().Str("column", col).Str("type", typ).Float64("value", val).
			Msg("BOUNDS value was ignored")
	}
}
