package mps

// numeric: reader for the numeric literals found in MPS files. NETLIB files
// carry FORTRAN-style exponents ('1D-3') and occasionally a truncated
// exponent with no digits after the marker ('1E'), both of which must be
// accepted.

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MakeNumeric converts an MPS numeric token into a float64. The token is
// treated case-insensitively, a FORTRAN 'D' exponent marker is read as 'E',
// and a token ending in a bare exponent marker is read as exponent 0, so
// "1D-3" yields 0.001 and "1E" yields 1.0. Any other non-numeric token fails
// with ErrNumericFormat.
func MakeNumeric(token string) (float64, error) {
	n := strings.ToLower(token)
	n = strings.ReplaceAll(n, "d", "e")
	if strings.Contains(n, "e") && strings.HasSuffix(n, "e") {
		n += "0"
	}
	val, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrNumericFormat, "cannot convert %q to a float", token)
	}
	return val, nil
}

// isNumeric reports whether MakeNumeric would accept the token. The bound
// disambiguation rules only need the yes/no answer.
func isNumeric(token string) bool {
	_, err := MakeNumeric(token)
	return err == nil
}
