// Package clean implements the dataset cleaning stages: categorical
// encoding, column redaction, numeric-text coercion, and median
// imputation. Each stage operates on an exclusively-owned frame and is
// applied in explicit sequence by the caller.
package clean

import (
	"fmt"

	"github.com/crunchbyte/creditprep/internal/frame"
)

// EncodeLabel replaces a categorical text column with one boolean
// indicator column per known category, named via nameFormat (one %s
// verb, e.g. "Is_%s_Credit"). A row's indicator is true iff its label
// equals the category, case-sensitive. Rows whose label is outside the
// category set (or null) get false in every indicator; that information
// loss is deliberate: the label set is closed for this dataset.
//
// If the column is absent the frame is returned untouched and ok is
// false; the caller decides whether that deserves a warning.
func EncodeLabel(f *frame.Frame, column string, categories []string, nameFormat string) (added []string, ok bool, err error) {
	col, found := f.Col(column)
	if !found {
		return nil, false, nil
	}
	if col.Kind() != frame.Text {
		return nil, false, fmt.Errorf("encode %s: expected text column, got %s", column, col.Kind())
	}

	n := col.Len()
	for _, cat := range categories {
		name := fmt.Sprintf(nameFormat, cat)
		vals := make([]bool, n)
		for i := 0; i < n; i++ {
			vals[i] = !col.IsNull(i) && col.Text(i) == cat
		}
		if err := f.Add(frame.NewBoolean(name, vals, nil)); err != nil {
			return added, true, fmt.Errorf("encode %s: %w", column, err)
		}
		added = append(added, name)
	}
	f.Drop(column)
	return added, true, nil
}

// Redact removes the given columns from the frame, ignoring names that
// do not exist, and returns the names actually removed.
func Redact(f *frame.Frame, columns []string) []string {
	return f.Drop(columns...)
}
