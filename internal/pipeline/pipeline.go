// Package pipeline sequences the cleaning, correlation, and preparation
// stages end to end. Control flows strictly forward; each stage takes
// the frame from the previous one, and the only persistence boundary is
// the intermediate CSV written between cleaning and correlation.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/crunchbyte/creditprep/internal/clean"
	"github.com/crunchbyte/creditprep/internal/config"
	"github.com/crunchbyte/creditprep/internal/corr"
	"github.com/crunchbyte/creditprep/internal/frame"
	"github.com/crunchbyte/creditprep/internal/run"
	"github.com/crunchbyte/creditprep/internal/utils"
)

// Result collects the artifact paths a full run produces.
type Result struct {
	Manifest     *run.Manifest
	CleanedCSV   string
	HeatmapPNG   string
	PreparedCSV  string
	ManifestPath string
	Matrix       corr.Matrix
}

// Run executes the whole pipeline: load with sampled inference, encode
// the label, redact, coerce numeric-text columns, write the
// intermediate CSV, reload it for the correlation context, render the
// heatmap, then impute the designated columns and drop residual null
// rows into the final CSV. Warnings for recoverable stage failures go
// to warnOut; nothing here is fatal except I/O and configuration
// errors.
func Run(cfg *config.Global, input, outDir string, warnOut io.Writer) (*Result, error) {
	if err := utils.EnsureDir(outDir); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}

	m := run.New(input)
	res := &Result{
		Manifest:     m,
		CleanedCSV:   filepath.Join(outDir, "cleaned.csv"),
		HeatmapPNG:   filepath.Join(outDir, "correlation.png"),
		PreparedCSV:  filepath.Join(outDir, "prepared.csv"),
		ManifestPath: filepath.Join(outDir, "run.yaml"),
	}

	opt := frame.DefaultReadOptions()
	if cfg.SampleRows > 0 {
		opt.SampleRows = cfg.SampleRows
	}
	f, err := frame.ReadFile(input, opt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", input, err)
	}
	m.Record("load", f.NumRows(), f.NumCols())

	// Clean: encode label, redact, coerce numeric-text columns.
	added, ok, err := clean.EncodeLabel(f, cfg.LabelColumn, cfg.Categories, cfg.IndicatorFormat)
	if err != nil {
		return nil, err
	}
	if !ok {
		fmt.Fprintf(warnOut, "⚠ Warning: label column %s not found; encoding skipped\n", cfg.LabelColumn)
	}
	m.Record("encode", f.NumRows(), f.NumCols(), fmt.Sprintf("indicators: %d", len(added)))

	removed := clean.Redact(f, cfg.RedactColumns)
	m.Record("redact", f.NumRows(), f.NumCols(), fmt.Sprintf("removed: %d", len(removed)))

	for _, name := range cfg.NumericColumns {
		if _, _, err := clean.CoerceNumeric(f, name); err != nil {
			fmt.Fprintf(warnOut, "⚠ Warning: %v\n", err)
		}
	}
	m.Record("coerce", f.NumRows(), f.NumCols())

	if err := f.WriteFile(res.CleanedCSV); err != nil {
		return nil, fmt.Errorf("write cleaned csv: %w", err)
	}
	m.AddArtifact(res.CleanedCSV)

	// Correlation context: an independent reload of the intermediate
	// CSV, so the analysis sees exactly what the file round-trip
	// preserves. Null rows are dropped only in this derived copy.
	cf, err := frame.ReadFile(res.CleanedCSV, opt)
	if err != nil {
		return nil, fmt.Errorf("reload cleaned csv: %w", err)
	}
	dropped := cf.DropNullRows()
	matrix := corr.Compute(cf)
	res.Matrix = matrix
	m.Record("correlate", cf.NumRows(), cf.NumCols(),
		fmt.Sprintf("null rows dropped: %d", dropped),
		fmt.Sprintf("analyzable columns: %d", len(matrix.Columns)))

	hm := corr.HeatmapOptions{Title: cfg.HeatmapTitle, Width: cfg.HeatmapWidth, Height: cfg.HeatmapHeight}
	if err := matrix.SavePNG(res.HeatmapPNG, hm); err != nil {
		fmt.Fprintf(warnOut, "⚠ Warning: %v\n", err)
	} else {
		m.AddArtifact(res.HeatmapPNG)
	}

	// Prepare: impute the designated columns, then drop every row still
	// holding a null anywhere.
	for _, name := range cfg.ImputeColumns {
		filled, _, err := clean.ImputeMedian(f, name)
		if err != nil {
			fmt.Fprintf(warnOut, "⚠ Warning: %v\n", err)
			continue
		}
		m.Record("impute "+name, f.NumRows(), f.NumCols(), fmt.Sprintf("filled: %d", filled))
	}
	residual := f.DropNullRows()
	m.Record("drop-nulls", f.NumRows(), f.NumCols(), fmt.Sprintf("rows removed: %d", residual))

	if err := f.WriteFile(res.PreparedCSV); err != nil {
		return nil, fmt.Errorf("write prepared csv: %w", err)
	}
	m.AddArtifact(res.PreparedCSV)

	if err := m.Save(res.ManifestPath); err != nil {
		return nil, err
	}
	return res, nil
}
