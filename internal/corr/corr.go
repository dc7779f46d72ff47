// Package corr computes the pairwise Pearson correlation matrix over a
// dataset's analyzable columns and renders it for human inspection.
package corr

import (
	"math"
	"sort"

	"github.com/crunchbyte/creditprep/internal/frame"
)

// Matrix is the lower-triangle Pearson correlation matrix. Values is
// square with side len(Columns); Values[y][x] holds the coefficient for
// column pair (x, y) when x <= y. Entries above the diagonal are never
// computed and hold NaN, the sentinel for "undefined". Zero would read
// as a false signal of no correlation.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// Analyzable reports whether a column kind participates in the matrix:
// numeric and boolean columns do, text columns do not.
func Analyzable(k frame.Kind) bool {
	return k == frame.Numeric || k == frame.Boolean
}

// Compute builds the correlation matrix for the frame's analyzable
// columns, in frame order. Each column is projected to a dense real
// vector first (numeric as-is; boolean null and false to 0, true to 1)
// so row alignment holds across every pair. Only pairs with x <= y are
// computed; each unordered pair is visited once.
//
// The caller is expected to have dropped null rows already; numeric
// nulls surviving to this point project as NaN and poison the affected
// coefficients, which is visible rather than silently wrong.
func Compute(f *frame.Frame) Matrix {
	var names []string
	var vecs [][]float64
	for _, c := range f.Columns() {
		if Analyzable(c.Kind()) {
			names = append(names, c.Name)
			vecs = append(vecs, c.Numbers())
		}
	}

	n := len(names)
	values := make([][]float64, n)
	for y := 0; y < n; y++ {
		values[y] = make([]float64, n)
		for x := range values[y] {
			values[y][x] = math.NaN()
		}
		for x := 0; x <= y; x++ {
			values[y][x] = Pearson(vecs[x], vecs[y])
		}
	}
	return Matrix{Columns: names, Values: values}
}

// Pearson returns the Pearson correlation coefficient of x and y:
// covariance over the product of standard deviations, in single-pass
// sum form. A zero-variance input makes the coefficient undefined and
// yields NaN, which callers must preserve rather than coerce to zero.
func Pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 || len(x) != len(y) {
		return math.NaN()
	}
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range x {
		xi, yi := x[i], y[i]
		sumX += xi
		sumY += yi
		sumXY += xi * yi
		sumXX += xi * xi
		sumYY += yi * yi
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return math.NaN()
	}
	return (n*sumXY - sumX*sumY) / denom
}

// Pair is one off-diagonal coefficient, for ranked reporting.
type Pair struct {
	A, B string
	R    float64
}

// TopPairs returns up to limit off-diagonal pairs ranked by |r|
// descending, ties broken by name. Undefined coefficients are skipped.
func (m Matrix) TopPairs(limit int) []Pair {
	var pairs []Pair
	for y := 1; y < len(m.Columns); y++ {
		for x := 0; x < y; x++ {
			r := m.Values[y][x]
			if math.IsNaN(r) || math.IsInf(r, 0) {
				continue
			}
			pairs = append(pairs, Pair{A: m.Columns[x], B: m.Columns[y], R: r})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
