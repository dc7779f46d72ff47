package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crunchbyte/creditprep/internal/config"
	"github.com/crunchbyte/creditprep/internal/frame"
	"github.com/crunchbyte/creditprep/internal/run"
)

var fixtureRows = []string{
	"ID,Name,Credit_Score,Age,Monthly_Inhand_Salary,Num_Credit_Inquiries",
	"1,Alice,Good,23_,1000,2",
	"2,Bob,Poor,24_,,4",
	"3,Cara,Standard,25_,3000,",
	"4,Dan,Gold,26_,4000,6",
	"5,Eve,Good,not_an_age,5000,8",
}

func testConfig() *config.Global {
	return &config.Global{
		SampleRows:      6000,
		LabelColumn:     "Credit_Score",
		Categories:      []string{"Good", "Standard", "Poor"},
		IndicatorFormat: "Is_%s_Credit",
		RedactColumns:   []string{"ID", "Name"},
		NumericColumns:  []string{"Age"},
		ImputeColumns:   []string{"Monthly_Inhand_Salary", "Num_Credit_Inquiries"},
		HeatmapTitle:    "test correlations",
		HeatmapWidth:    320,
		HeatmapHeight:   320,
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "train.csv")
	if err := os.WriteFile(input, []byte(strings.Join(fixtureRows, "\n")), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var warnings bytes.Buffer
	res, err := Run(testConfig(), input, filepath.Join(dir, "out"), &warnings)
	if err != nil {
		t.Fatalf("Run: %v\nwarnings: %s", err, warnings.String())
	}

	// Intermediate CSV: encoded, redacted, coerced; no rows dropped yet.
	cleaned, err := frame.ReadFile(res.CleanedCSV, frame.DefaultReadOptions())
	if err != nil {
		t.Fatalf("reload cleaned: %v", err)
	}
	if cleaned.NumRows() != 5 {
		t.Fatalf("cleaned rows = %d, want 5", cleaned.NumRows())
	}
	for _, gone := range []string{"ID", "Name", "Credit_Score"} {
		if _, ok := cleaned.Col(gone); ok {
			t.Fatalf("column %s should not survive cleaning", gone)
		}
	}
	good, ok := cleaned.Col("Is_Good_Credit")
	if !ok || good.Kind() != frame.Boolean {
		t.Fatalf("indicator column missing or mistyped")
	}
	// Dan's out-of-vocabulary label "Gold" is false everywhere.
	for _, name := range []string{"Is_Good_Credit", "Is_Standard_Credit", "Is_Poor_Credit"} {
		c, ok := cleaned.Col(name)
		if !ok {
			t.Fatalf("indicator %s missing", name)
		}
		if c.Bool(3) {
			t.Fatalf("%s true for unknown label", name)
		}
	}
	age, ok := cleaned.Col("Age")
	if !ok || age.Kind() != frame.Numeric {
		t.Fatalf("Age not coerced to numeric")
	}
	if age.Float(0) != 23 {
		t.Fatalf("Age[0] = %v, want 23", age.Float(0))
	}
	if !age.IsNull(4) {
		t.Fatalf("unparseable Age should be null")
	}

	// Correlation ran over the reloaded copy with nulls dropped.
	if len(res.Matrix.Columns) == 0 {
		t.Fatalf("no analyzable columns correlated")
	}
	if _, err := os.Stat(res.HeatmapPNG); err != nil {
		t.Fatalf("heatmap artifact: %v", err)
	}

	// Final CSV: imputed designated columns, residual-null rows gone.
	// Only Eve's row (null Age) should be removed.
	prepared, err := frame.ReadFile(res.PreparedCSV, frame.DefaultReadOptions())
	if err != nil {
		t.Fatalf("reload prepared: %v", err)
	}
	if prepared.NumRows() != 4 {
		t.Fatalf("prepared rows = %d, want 4", prepared.NumRows())
	}
	salary, ok := prepared.Col("Monthly_Inhand_Salary")
	if !ok {
		t.Fatalf("salary column missing")
	}
	if salary.NullCount() != 0 {
		t.Fatalf("salary still has nulls after imputation")
	}
	// Median of [1000, 3000, 4000, 5000] is 3500; Bob's null got it.
	if salary.Float(1) != 3500 {
		t.Fatalf("imputed salary = %v, want 3500", salary.Float(1))
	}

	// Manifest records the run end to end.
	m, err := run.Load(res.ManifestPath)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if m.ID == "" || m.Input != input {
		t.Fatalf("manifest identity: %+v", m)
	}
	if len(m.Stages) == 0 || m.Stages[0].Name != "load" {
		t.Fatalf("manifest stages: %+v", m.Stages)
	}
	last := m.Stages[len(m.Stages)-1]
	if last.Name != "drop-nulls" || last.Rows != 4 {
		t.Fatalf("final stage: %+v", last)
	}
	if len(m.Artifacts) != 3 {
		t.Fatalf("artifacts = %v", m.Artifacts)
	}
}

func TestRunMissingLabelIsRecoverable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "nolabel.csv")
	csv := "Age,Score\n30,1\n40,2\n50,3\n"
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := testConfig()
	cfg.NumericColumns = nil
	cfg.ImputeColumns = nil

	var warnings bytes.Buffer
	res, err := Run(cfg, input, filepath.Join(dir, "out"), &warnings)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(warnings.String(), "encoding skipped") {
		t.Fatalf("expected label warning, got: %s", warnings.String())
	}
	if len(res.Matrix.Columns) != 2 {
		t.Fatalf("matrix columns = %v", res.Matrix.Columns)
	}
}
