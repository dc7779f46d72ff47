package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadOptions controls CSV ingestion.
type ReadOptions struct {
	// SampleRows bounds how many leading rows drive column type
	// inference; 0 means sample every row. The default of 6000 exists
	// because malformed numeric tokens further down otherwise skew
	// detection on real exports.
	SampleRows int
	// Comma is the field delimiter. If 0, ',' is used.
	Comma rune
}

// DefaultReadOptions returns the documented defaults.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{SampleRows: 6000}
}

// Input cells treated as missing.
func isNullToken(s string) bool {
	return s == "" || s == "NA" || s == "NaN"
}

// ReadCSV loads a CSV with a header row into a Frame. Column types are
// inferred from up to SampleRows leading rows: a column is Numeric if
// every sampled non-null value parses as a float, Boolean if every
// sampled non-null value parses as a bool, and Text otherwise. Values
// outside the sample that fail the inferred parse become nulls.
func ReadCSV(r io.Reader, opt ReadOptions) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty input: missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make([]string, ncol)
		for j := range row {
			if j < len(rec) {
				row[j] = strings.TrimSpace(rec[j])
			}
		}
		rows = append(rows, row)
	}

	sample := len(rows)
	if opt.SampleRows > 0 && opt.SampleRows < sample {
		sample = opt.SampleRows
	}

	f := &Frame{index: make(map[string]int, ncol)}
	for j := 0; j < ncol; j++ {
		name := strings.TrimSpace(header[j])
		kind := inferKind(rows, j, sample)
		col := buildColumn(name, kind, rows, j)
		if err := f.Add(col); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ReadFile loads a CSV file into a Frame.
func ReadFile(path string, opt ReadOptions) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer fh.Close()
	return ReadCSV(fh, opt)
}

func inferKind(rows [][]string, col, sample int) Kind {
	seen := false
	numeric := true
	boolean := true
	for i := 0; i < sample; i++ {
		v := rows[i][col]
		if isNullToken(v) {
			continue
		}
		seen = true
		if numeric {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
			}
		}
		if boolean {
			if !isBoolToken(v) {
				boolean = false
			}
		}
		if !numeric && !boolean {
			return Text
		}
	}
	if !seen {
		return Text
	}
	if numeric {
		return Numeric
	}
	if boolean {
		return Boolean
	}
	return Text
}

func isBoolToken(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}

func buildColumn(name string, kind Kind, rows [][]string, col int) *Column {
	n := len(rows)
	nulls := make([]bool, n)
	switch kind {
	case Numeric:
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			v := rows[i][col]
			if isNullToken(v) {
				nulls[i] = true
				continue
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				nulls[i] = true
				continue
			}
			vals[i] = x
		}
		return NewNumeric(name, vals, nulls)
	case Boolean:
		vals := make([]bool, n)
		for i := 0; i < n; i++ {
			v := rows[i][col]
			if isNullToken(v) {
				nulls[i] = true
				continue
			}
			if !isBoolToken(v) {
				nulls[i] = true
				continue
			}
			vals[i] = strings.EqualFold(v, "true")
		}
		return NewBoolean(name, vals, nulls)
	default:
		vals := make([]string, n)
		for i := 0; i < n; i++ {
			v := rows[i][col]
			if isNullToken(v) {
				nulls[i] = true
				continue
			}
			vals[i] = v
		}
		return NewText(name, vals, nulls)
	}
}

// WriteCSV serializes the frame with a header row. Floats use the
// shortest round-trippable decimal form, booleans write as true/false,
// and nulls write as empty cells, so a reload preserves names, values
// to float tolerance, and null positions.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	n := f.NumRows()
	row := make([]string, f.NumCols())
	for i := 0; i < n; i++ {
		for j, c := range f.cols {
			row[j] = cellString(c, i)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile serializes the frame to a CSV file.
func (f *Frame) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := f.WriteCSV(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func cellString(c *Column, i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.Kind() {
	case Numeric:
		return strconv.FormatFloat(c.Float(i), 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(c.Bool(i))
	default:
		return c.Text(i)
	}
}
