package clean

import (
	"fmt"

	"github.com/crunchbyte/creditprep/internal/frame"
)

// ImputeMedian fills every null in the column with the median of its
// currently-present values. The median is fixed before any filling
// begins, so imputed values never feed back into it. Non-null entries
// are unchanged.
func ImputeMedian(f *frame.Frame, column string) (filled int, median float64, err error) {
	col, found := f.Col(column)
	if !found {
		return 0, 0, fmt.Errorf("impute %s: column not found", column)
	}
	if col.Kind() != frame.Numeric {
		return 0, 0, fmt.Errorf("impute %s: expected numeric column, got %s", column, col.Kind())
	}
	median, ok := col.Median()
	if !ok {
		return 0, 0, fmt.Errorf("impute %s: no present values to take a median over", column)
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			col.SetFloat(i, median)
			filled++
		}
	}
	return filled, median, nil
}

// ImputeColumns applies ImputeMedian to each column independently, in
// order, and returns per-column fill counts keyed by name.
func ImputeColumns(f *frame.Frame, columns []string) (map[string]int, error) {
	filled := make(map[string]int, len(columns))
	for _, name := range columns {
		n, _, err := ImputeMedian(f, name)
		if err != nil {
			return filled, err
		}
		filled[name] = n
	}
	return filled, nil
}
