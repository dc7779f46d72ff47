package frame

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func mustCol(t *testing.T, f *Frame, name string) *Column {
	t.Helper()
	c, ok := f.Col(name)
	if !ok {
		t.Fatalf("column %q not found (have %v)", name, f.Names())
	}
	return c
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestReadCSVInference(t *testing.T) {
	path := writeCSV(t,
		"score,flag,note,empty",
		"1.5,true,alpha,",
		"2,false,beta,",
		"NA,true,NaN,",
	)
	f, err := ReadFile(path, DefaultReadOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.NumRows() != 3 || f.NumCols() != 4 {
		t.Fatalf("dims = %dx%d, want 3x4", f.NumRows(), f.NumCols())
	}

	score := mustCol(t, f, "score")
	if score.Kind() != Numeric {
		t.Fatalf("score kind = %s, want numeric", score.Kind())
	}
	if score.NullCount() != 1 || !score.IsNull(2) {
		t.Fatalf("score nulls wrong: count=%d", score.NullCount())
	}
	if score.Float(0) != 1.5 || score.Float(1) != 2 {
		t.Fatalf("score values = %v, %v", score.Float(0), score.Float(1))
	}

	flag := mustCol(t, f, "flag")
	if flag.Kind() != Boolean {
		t.Fatalf("flag kind = %s, want boolean", flag.Kind())
	}
	if !flag.Bool(0) || flag.Bool(1) || !flag.Bool(2) {
		t.Fatalf("flag values wrong")
	}

	note := mustCol(t, f, "note")
	if note.Kind() != Text {
		t.Fatalf("note kind = %s, want text", note.Kind())
	}
	if note.NullCount() != 1 {
		t.Fatalf("note nulls = %d, want 1 (NaN marker)", note.NullCount())
	}

	// A column with no present values stays text.
	empty := mustCol(t, f, "empty")
	if empty.Kind() != Text || empty.NullCount() != 3 {
		t.Fatalf("empty column kind=%s nulls=%d", empty.Kind(), empty.NullCount())
	}
}

func TestReadCSVSampleBound(t *testing.T) {
	// The malformed token sits past the sample window, so the column
	// still infers numeric and the bad value becomes a null.
	path := writeCSV(t,
		"v",
		"1",
		"2",
		"not-a-number",
	)
	f, err := ReadFile(path, ReadOptions{SampleRows: 2})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	v := mustCol(t, f, "v")
	if v.Kind() != Numeric {
		t.Fatalf("kind = %s, want numeric", v.Kind())
	}
	if !v.IsNull(2) {
		t.Fatalf("unparseable value past sample should become null")
	}

	// With the full file sampled, the same column is text.
	f2, err := ReadFile(path, ReadOptions{SampleRows: 0})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if mustCol(t, f2, "v").Kind() != Text {
		t.Fatalf("full sample should infer text")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := writeCSV(t,
		"income,active,city",
		"1234.5625,true,Oslo",
		",false,",
		"-7,true,Lagos",
	)
	f, err := ReadFile(path, DefaultReadOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := f.WriteFile(out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	g, err := ReadFile(out, DefaultReadOptions())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if !equalStrings(g.Names(), f.Names()) {
		t.Fatalf("names = %v, want %v", g.Names(), f.Names())
	}
	income := mustCol(t, g, "income")
	if income.Kind() != Numeric {
		t.Fatalf("income kind = %s", income.Kind())
	}
	if !income.IsNull(1) {
		t.Fatalf("null position lost in round trip")
	}
	if !almostEqual(income.Float(0), 1234.5625, 1e-9) || !almostEqual(income.Float(2), -7, 1e-9) {
		t.Fatalf("income values = %v, %v", income.Float(0), income.Float(2))
	}
	active := mustCol(t, g, "active")
	if active.Kind() != Boolean || !active.Bool(0) || active.Bool(1) {
		t.Fatalf("active column lost in round trip")
	}
	city := mustCol(t, g, "city")
	if city.Kind() != Text || !city.IsNull(1) || city.Text(2) != "Lagos" {
		t.Fatalf("city column lost in round trip")
	}
}

func TestDropNullRows(t *testing.T) {
	f, err := New(
		NewNumeric("a", []float64{1, 2, 3, 4}, []bool{false, true, false, false}),
		NewText("b", []string{"x", "y", "", "w"}, []bool{false, false, true, false}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	removed := f.DropNullRows()
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if f.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2", f.NumRows())
	}
	a := mustCol(t, f, "a")
	if a.Float(0) != 1 || a.Float(1) != 4 {
		t.Fatalf("surviving values = %v, %v", a.Float(0), a.Float(1))
	}
}

func TestColumnMedian(t *testing.T) {
	c := NewNumeric("m", []float64{1, 2, 0, 4}, []bool{false, false, true, false})
	med, ok := c.Median()
	if !ok {
		t.Fatalf("median not ok")
	}
	if !almostEqual(med, 2, 1e-9) {
		t.Fatalf("median = %v, want 2", med)
	}

	even := NewNumeric("e", []float64{1, 2, 3, 4}, nil)
	med, ok = even.Median()
	if !ok || !almostEqual(med, 2.5, 1e-9) {
		t.Fatalf("even median = %v, want 2.5", med)
	}

	if _, ok := NewText("t", []string{"a"}, nil).Median(); ok {
		t.Fatalf("text median should not be ok")
	}
}

func TestNumberCoercion(t *testing.T) {
	b := NewBoolean("f", []bool{true, false, false}, []bool{false, false, true})
	want := []float64{1, 0, 0}
	got := b.Numbers()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bool coercion[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	n := NewNumeric("n", []float64{3.5, 0}, []bool{false, true})
	if n.Number(0) != 3.5 || !math.IsNaN(n.Number(1)) {
		t.Fatalf("numeric coercion wrong: %v, %v", n.Number(0), n.Number(1))
	}
}

func TestDescribe(t *testing.T) {
	f, err := New(
		NewNumeric("x", []float64{1, 2, 3, 0}, []bool{false, false, false, true}),
		NewText("cat", []string{"a", "a", "b", "a"}, nil),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sums := f.Describe()
	if len(sums) != 2 {
		t.Fatalf("summaries = %d", len(sums))
	}
	x := sums[0]
	if x.NonNull != 3 || x.Nulls != 1 {
		t.Fatalf("x counts = %d/%d", x.NonNull, x.Nulls)
	}
	if !almostEqual(x.Mean, 2, 1e-9) || !almostEqual(x.Median, 2, 1e-9) || !almostEqual(x.Min, 1, 1e-9) || !almostEqual(x.Max, 3, 1e-9) {
		t.Fatalf("x stats = %+v", x)
	}
	cat := sums[1]
	if cat.Unique != 2 || cat.TopValues[0].Value != "a" || cat.TopValues[0].Count != 3 {
		t.Fatalf("cat stats = %+v", cat)
	}

	md := f.DescribeMarkdown()
	if !strings.Contains(md, "[SCHEMA]") || !strings.Contains(md, "- x: numeric") {
		t.Fatalf("markdown missing schema: %s", md)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
