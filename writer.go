package mps

// writer: renders a model, primal or dual, back into fixed-format MPS text.
// Field starts follow the classic MPS column layout (indent 4, second field
// at offset 14, third at 24, bound values at 39) so the output round-trips
// through other MPS consumers. All of the entries for one column are emitted
// consecutively in the COLUMNS block; MPS does not allow a column's entries
// to be interleaved with another column's.

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Fixed character offsets of the MPS column layout.
const (
	mpsIndent = 4  // indent of every data record
	mpsField2 = 14 // second name field
	mpsField3 = 24 // third name / value field
	mpsField4 = 39 // bound value field
)

// WriteMpsFile renders the model as fixed-format MPS text and writes it to
// the named file. In case of failure, it returns an error.
func (p *Problem) WriteMpsFile(fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "WriteMpsFile failed to create %s", fileName)
	}
	defer file.Close()

	if err := p.WriteMps(file); err != nil {
		return errors.Wrap(err, "WriteMpsFile failed")
	}
	return nil
}

// WriteMps renders the model as fixed-format MPS text onto w.
func (p *Problem) WriteMps(w io.Writer) error {
	if _, err := io.WriteString(w, p.MpsString()); err != nil {
		return errors.Wrap(err, "WriteMps failed")
	}
	return nil
}

// MpsString renders the model as a single fixed-format MPS string.
func (p *Problem) MpsString() string {
	var sb strings.Builder

	sb.WriteString(pad("NAME", mpsField2))
	sb.WriteString(p.Name)
	sb.WriteByte('\n')

	if p.ObjSense != "" {
		sb.WriteString("OBJSENSE\n  ")
		sb.WriteString(p.ObjSense)
		sb.WriteString("\nOBJNAME\n  ")
		sb.WriteString(p.ObjName)
		sb.WriteByte('\n')
	}

	sb.WriteString("ROWS\n")
	for _, row := range p.Rows {
		sb.WriteString(" " + string(row.Sense) + "  " + row.Name + "\n")
	}

	sb.WriteString("COLUMNS\n")
	for _, col := range p.Columns() {
		for _, row := range p.Rows {
			val, ok := p.Coef[row.Name][col]
			if !ok {
				continue
			}
			line := pad(pad(strings.Repeat(" ", mpsIndent)+col, mpsField2)+row.Name, mpsField3)
			sb.WriteString(line + formatValue(val) + "\n")
		}
	}

	sb.WriteString("RHS\n")
	for _, row := range p.Rows {
		val, ok := p.RHS[row.Name]
		if !ok {
			continue
		}
		line := pad(pad(strings.Repeat(" ", mpsIndent)+"RHS", mpsField2)+row.Name, mpsField3)
		sb.WriteString(line + formatValue(val) + "\n")
	}

	sb.WriteString("BOUNDS\n")
	for _, col := range p.Columns() {
		b, ok := p.Bounds[col]
		if !ok {
			continue
		}
		switch {
		case b.free():
			sb.WriteString(boundLine("FR", col, 0, false))
		case b.fixed():
			sb.WriteString(boundLine("FX", col, b.Lower, true))
		default:
			// An infinite end is implied by the label and carries no value;
			// a lone -Inf lower end is announced as MI so the text stays
			// parseable. Both finite ends yield an LO and an UP record.
			if b.HasLower && math.IsInf(b.Lower, -1) {
				sb.WriteString(boundLine("MI", col, 0, false))
			} else if b.HasLower {
				sb.WriteString(boundLine("LO", col, b.Lower, true))
			}
			if b.HasUpper && !math.IsInf(b.Upper, 1) {
				sb.WriteString(boundLine("UP", col, b.Upper, true))
			}
		}
	}

	sb.WriteString("ENDATA\n")
	return sb.String()
}

// boundLine renders one BOUNDS record with the fixed vector label "BOUND".
func boundLine(label, col string, val float64, hasVal bool) string {
	line := pad(pad(strings.Repeat(" ", mpsIndent)+label, mpsField2)+"BOUND", mpsField3) + col
	if !hasVal {
		return line + "\n"
	}
	return pad(line, mpsField4) + formatValue(val) + "\n"
}

// pad appends spaces until the line reaches the target offset, always
// keeping at least one separator space when a field overruns its slot.
func pad(line string, target int) string {
	if len(line) >= target {
		return line + " "
	}
	return line + strings.Repeat(" ", target-len(line))
}

// formatValue renders a coefficient with the shortest representation that
// survives a round trip.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
