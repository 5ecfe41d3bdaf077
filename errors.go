package mps

// errors: the failure taxonomy shared by the reader, the conformer, and the
// dual transformer. All failures are terminal for the current parse or
// transform call; callers match them with errors.Is. Conditions that are
// merely suspicious (extra RHS/BOUNDS/RANGES vectors, ignored values on
// FR/MI/PL bounds) are not errors and are reported through the package
// logger instead.

import (
	"github.com/pkg/errors"
)

var (
	// ErrNumericFormat is returned when a token cannot be read as a number.
	ErrNumericFormat = errors.New("token is not numeric")

	// ErrUnknownIndicator is returned for an indicator line naming a section
	// outside NAME, OBJSENSE, OBJNAME, ROWS, COLUMNS, RHS, BOUNDS, RANGES,
	// ENDATA, or for a data record encountered before any section was opened.
	ErrUnknownIndicator = errors.New("unknown indicator")

	// ErrMalformedRecord is returned when a data record has a field count
	// the section cannot accept.
	ErrMalformedRecord = errors.New("malformed data record")

	// ErrCoefficientFormat is returned when a COLUMNS or RHS value field is
	// not numeric.
	ErrCoefficientFormat = errors.New("value field is not numeric")

	// ErrDuplicateEntry is returned when a matrix element, RHS entry, range,
	// or row name is specified twice.
	ErrDuplicateEntry = errors.New("entry specified twice")

	// ErrDuplicateBound is returned when a bound field that was already set
	// is specified again for the same column.
	ErrDuplicateBound = errors.New("bound specified twice")

	// ErrAmbiguousBound is returned for a 3-field bound record in which both
	// the vector-id reading and the value reading are numeric, so the record
	// cannot be disambiguated.
	ErrAmbiguousBound = errors.New("bound record is ambiguous")

	// ErrMissingRhs is returned when a range references a row with no RHS.
	ErrMissingRhs = errors.New("no RHS entry for ranged row")

	// ErrMissingRow is returned when a range references an undeclared row.
	ErrMissingRow = errors.New("no such row")

	// ErrInvalidRange is returned when a range resolves to an empty interval.
	ErrInvalidRange = errors.New("range interval is empty")

	// ErrBoundOrder is returned when a fully specified bound has its lower
	// end above its upper end.
	ErrBoundOrder = errors.New("lower bound is greater than upper bound")

	// ErrOrphanBound is returned when a bound references a column that never
	// appears in the COLUMNS section.
	ErrOrphanBound = errors.New("bound references unknown column")

	// ErrOrphanColumnRow is returned when a COLUMNS entry references a row
	// that never appears in the ROWS section.
	ErrOrphanColumnRow = errors.New("column entry references unknown row")

	// ErrMissingObjective is returned when no free (N) row was declared.
	ErrMissingObjective = errors.New("no objective row was specified")

	// ErrMissingRequiredSection is returned when NAME, ROWS, or COLUMNS is
	// absent from the input.
	ErrMissingRequiredSection = errors.New("required section is missing")

	// ErrUnsupportedRanges is returned by MakeDual when the model carries a
	// RANGES section.
	ErrUnsupportedRanges = errors.New("dual transformation does not support ranges")

	// ErrInfeasibleBoundShape is returned by MakeDual for a bound interval
	// that cannot be reformulated into standard canonical form.
	ErrInfeasibleBoundShape = errors.New("bound interval cannot be reformulated")
)
