package frame

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Summary captures per-column descriptive statistics for human review.
type Summary struct {
	Name    string
	Kind    Kind
	NonNull int
	Nulls   int

	// Numeric statistics (present values only)
	Min    float64
	Max    float64
	Mean   float64
	Std    float64
	Median float64

	// Boolean statistics
	TrueCount int

	// Text statistics
	Unique    int
	TopValues []ValueCount
}

// Describe summarizes every column in frame order.
func (f *Frame) Describe() []Summary {
	out := make([]Summary, 0, len(f.cols))
	for _, c := range f.cols {
		s := Summary{Name: c.Name, Kind: c.Kind(), Nulls: c.NullCount()}
		s.NonNull = c.Len() - s.Nulls
		switch c.Kind() {
		case Numeric:
			vals := c.Present()
			if len(vals) > 0 {
				sorted := make([]float64, len(vals))
				copy(sorted, vals)
				sort.Float64s(sorted)
				s.Min = sorted[0]
				s.Max = sorted[len(sorted)-1]
				s.Mean = stat.Mean(vals, nil)
				s.Std = stat.StdDev(vals, nil)
				s.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
			}
		case Boolean:
			for i := 0; i < c.Len(); i++ {
				if !c.IsNull(i) && c.Bool(i) {
					s.TrueCount++
				}
			}
		case Text:
			counts := c.ValueCounts()
			s.Unique = len(counts)
			if len(counts) > 8 {
				counts = counts[:8]
			}
			s.TopValues = counts
		}
		out = append(out, s)
	}
	return out
}

// DescribeMarkdown renders the summaries as a compact schema report.
func (f *Frame) DescribeMarkdown() string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	b.WriteString(fmt.Sprintf("Rows: %d\nColumns: %d\n\n", f.NumRows(), f.NumCols()))
	b.WriteString("[SCHEMA]\n")
	for _, s := range f.Describe() {
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, nulls %d)", s.Name, s.Kind, s.NonNull, s.Nulls))
		switch s.Kind {
		case Numeric:
			if s.NonNull > 0 {
				b.WriteString(fmt.Sprintf(" - min %.4g, max %.4g, mean %.4g, std %.4g, median %.4g",
					s.Min, s.Max, s.Mean, s.Std, s.Median))
			}
		case Boolean:
			b.WriteString(fmt.Sprintf(" - true %d", s.TrueCount))
		case Text:
			if len(s.TopValues) > 0 {
				b.WriteString(" - top: ")
				for i, kv := range s.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", kv.Value, kv.Count))
				}
				if s.Unique > len(s.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", s.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
