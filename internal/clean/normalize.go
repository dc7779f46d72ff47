package clean

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crunchbyte/creditprep/internal/frame"
)

// CoerceNumeric converts a column that is numeric in meaning but stored
// as text into a true numeric column. Per value: nulls stay null, every
// underscore is stripped, and the remainder is parsed as a float; parse
// failures become nulls rather than errors, so the column's null count
// can grow. A column that is already numeric is a no-op.
//
// A kind mismatch (the column exists but is neither text nor numeric)
// or a missing column is returned as an error with the column name and
// kind; the caller logs it and continues, since the failure is recoverable
// and the column is left unmodified.
func CoerceNumeric(f *frame.Frame, column string) (converted, failed int, err error) {
	col, found := f.Col(column)
	if !found {
		return 0, 0, fmt.Errorf("coerce %s: column not found", column)
	}
	switch col.Kind() {
	case frame.Numeric:
		return 0, 0, nil
	case frame.Text:
	default:
		return 0, 0, fmt.Errorf("coerce %s: cannot convert %s column to numeric", column, col.Kind())
	}

	n := col.Len()
	vals := make([]float64, n)
	nulls := make([]bool, n)
	for i := 0; i < n; i++ {
		if col.IsNull(i) {
			nulls[i] = true
			continue
		}
		raw := strings.ReplaceAll(col.Text(i), "_", "")
		x, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			nulls[i] = true
			failed++
			continue
		}
		vals[i] = x
		converted++
	}
	if err := f.Replace(frame.NewNumeric(column, vals, nulls)); err != nil {
		return 0, 0, fmt.Errorf("coerce %s: %w", column, err)
	}
	return converted, failed, nil
}
