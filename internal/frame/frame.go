// Package frame implements the in-memory tabular dataset the pipeline
// stages operate on: an ordered collection of equal-length, named columns,
// each a closed tagged variant over numeric, boolean, or text values with
// per-row nullability.
package frame

import (
	"fmt"
	"math"
	"sort"
)

// Kind identifies the underlying type of a column. The set is closed:
// every column is exactly one of these, and dispatch happens on Kind
// rather than open-ended runtime inspection.
type Kind int

const (
	Text Kind = iota
	Numeric
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Boolean:
		return "boolean"
	case Text:
		return "text"
	}
	return "unknown"
}

// Column is a homogeneous typed sequence of values, each either present
// or null. Only the backing slice matching Kind is populated.
type Column struct {
	Name string

	kind   Kind
	floats []float64
	bools  []bool
	texts  []string
	null   []bool
}

// NewNumeric builds a numeric column. nulls may be nil for a fully
// present column; otherwise it must match len(vals).
func NewNumeric(name string, vals []float64, nulls []bool) *Column {
	return &Column{Name: name, kind: Numeric, floats: vals, null: fitNulls(nulls, len(vals))}
}

// NewBoolean builds a boolean column.
func NewBoolean(name string, vals []bool, nulls []bool) *Column {
	return &Column{Name: name, kind: Boolean, bools: vals, null: fitNulls(nulls, len(vals))}
}

// NewText builds a text column.
func NewText(name string, vals []string, nulls []bool) *Column {
	return &Column{Name: name, kind: Text, texts: vals, null: fitNulls(nulls, len(vals))}
}

func fitNulls(nulls []bool, n int) []bool {
	if nulls == nil {
		return make([]bool, n)
	}
	return nulls
}

// Kind returns the column's variant tag.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.null) }

// IsNull reports whether row i is missing.
func (c *Column) IsNull(i int) bool { return c.null[i] }

// NullCount returns the number of missing rows.
func (c *Column) NullCount() int {
	n := 0
	for _, miss := range c.null {
		if miss {
			n++
		}
	}
	return n
}

// Float returns the numeric value at row i. Only valid for Numeric columns.
func (c *Column) Float(i int) float64 { return c.floats[i] }

// Bool returns the boolean value at row i. Only valid for Boolean columns.
func (c *Column) Bool(i int) bool { return c.bools[i] }

// Text returns the text value at row i. Only valid for Text columns.
func (c *Column) Text(i int) string { return c.texts[i] }

// Number coerces row i to a real number. Numeric values map directly
// (a null numeric maps to NaN), booleans map null and false to 0 and
// true to 1, and text maps to NaN. The coercion is total: every row
// yields a value, so row alignment across columns is preserved.
func (c *Column) Number(i int) float64 {
	switch c.kind {
	case Numeric:
		if c.null[i] {
			return math.NaN()
		}
		return c.floats[i]
	case Boolean:
		if c.null[i] || !c.bools[i] {
			return 0
		}
		return 1
	}
	return math.NaN()
}

// Numbers returns the full coerced value sequence, one entry per row.
func (c *Column) Numbers() []float64 {
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.Number(i)
	}
	return out
}

// Present returns the non-null numeric values in row order. Only valid
// for Numeric columns.
func (c *Column) Present() []float64 {
	out := make([]float64, 0, len(c.floats))
	for i, v := range c.floats {
		if !c.null[i] {
			out = append(out, v)
		}
	}
	return out
}

// Median returns the median of the column's present values. ok is false
// for non-numeric columns and for columns with no present values.
func (c *Column) Median() (median float64, ok bool) {
	if c.kind != Numeric {
		return 0, false
	}
	vals := c.Present()
	if len(vals) == 0 {
		return 0, false
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2, true
	}
	return vals[mid], true
}

// SetFloat overwrites row i of a Numeric column and clears its null flag.
func (c *Column) SetFloat(i int, v float64) {
	c.floats[i] = v
	c.null[i] = false
}

// ValueCount is one distinct text value and its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts returns the distinct present values of a Text column with
// their counts, most frequent first, ties broken by value.
func (c *Column) ValueCounts() []ValueCount {
	if c.kind != Text {
		return nil
	}
	counts := make(map[string]int)
	for i, v := range c.texts {
		if !c.null[i] {
			counts[v]++
		}
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// filter keeps only the rows where keep is true.
func (c *Column) filter(keep []bool) {
	w := 0
	for i := range c.null {
		if !keep[i] {
			continue
		}
		switch c.kind {
		case Numeric:
			c.floats[w] = c.floats[i]
		case Boolean:
			c.bools[w] = c.bools[i]
		case Text:
			c.texts[w] = c.texts[i]
		}
		c.null[w] = c.null[i]
		w++
	}
	switch c.kind {
	case Numeric:
		c.floats = c.floats[:w]
	case Boolean:
		c.bools = c.bools[:w]
	case Text:
		c.texts = c.texts[:w]
	}
	c.null = c.null[:w]
}

// Frame is an ordered set of equal-length columns. Row i across columns
// represents one record. A Frame is exclusively owned by the stage
// operating on it; there is no internal locking.
type Frame struct {
	cols  []*Column
	index map[string]int
}

// New builds a Frame from columns, validating equal lengths and unique
// names.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := f.Add(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// NumRows returns the row count (0 for an empty frame).
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns the column names in frame order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.Name
	}
	return out
}

// Columns returns the columns in frame order. The slice is shared; do
// not reorder it.
func (f *Frame) Columns() []*Column { return f.cols }

// Col returns the named column, if present.
func (f *Frame) Col(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Add appends a column, validating length and name uniqueness.
func (f *Frame) Add(c *Column) error {
	if _, exists := f.index[c.Name]; exists {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(f.cols) > 0 && c.Len() != f.NumRows() {
		return fmt.Errorf("column %q has %d rows, frame has %d", c.Name, c.Len(), f.NumRows())
	}
	f.index[c.Name] = len(f.cols)
	f.cols = append(f.cols, c)
	return nil
}

// Replace swaps the named column for c in place, preserving its position.
// The replacement must have the same name and length.
func (f *Frame) Replace(c *Column) error {
	i, ok := f.index[c.Name]
	if !ok {
		return fmt.Errorf("column %q not found", c.Name)
	}
	if c.Len() != f.NumRows() {
		return fmt.Errorf("column %q has %d rows, frame has %d", c.Name, c.Len(), f.NumRows())
	}
	f.cols[i] = c
	return nil
}

// Drop removes the named columns. Unknown names are ignored. It returns
// the names actually removed, in frame order.
func (f *Frame) Drop(names ...string) []string {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var removed []string
	kept := f.cols[:0]
	for _, c := range f.cols {
		if drop[c.Name] {
			removed = append(removed, c.Name)
			continue
		}
		kept = append(kept, c)
	}
	f.cols = kept
	f.reindex()
	return removed
}

// DropNullRows removes every row containing a null in any column and
// returns the number of rows removed.
func (f *Frame) DropNullRows() int {
	n := f.NumRows()
	keep := make([]bool, n)
	removed := 0
	for i := 0; i < n; i++ {
		keep[i] = true
		for _, c := range f.cols {
			if c.IsNull(i) {
				keep[i] = false
				removed++
				break
			}
		}
	}
	if removed == 0 {
		return 0
	}
	for _, c := range f.cols {
		c.filter(keep)
	}
	return removed
}

func (f *Frame) reindex() {
	f.index = make(map[string]int, len(f.cols))
	for i, c := range f.cols {
		f.index[c.Name] = i
	}
}
