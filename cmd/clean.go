package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crunchbyte/creditprep/internal/clean"
	"github.com/crunchbyte/creditprep/internal/frame"
)

var (
	cleanOutput     string
	cleanSampleRows int
	cleanLabel      string
	cleanCategories []string
	cleanRedact     []string
	cleanNumeric    []string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Encode the label, redact columns, and coerce numeric text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		path := args[0]

		label := c.LabelColumn
		if cmd.Flags().Changed("label") {
			label = cleanLabel
		}
		categories := c.Categories
		if cmd.Flags().Changed("categories") {
			categories = cleanCategories
		}
		redact := c.RedactColumns
		if cmd.Flags().Changed("redact") {
			redact = cleanRedact
		}
		numeric := c.NumericColumns
		if cmd.Flags().Changed("numeric") {
			numeric = cleanNumeric
		}

		opt := frame.DefaultReadOptions()
		if cleanSampleRows > 0 {
			opt.SampleRows = cleanSampleRows
		} else if c.SampleRows > 0 {
			opt.SampleRows = c.SampleRows
		}

		f, err := frame.ReadFile(path, opt)
		if err != nil {
			return err
		}
		debugf("loaded %d rows x %d columns from %s\n", f.NumRows(), f.NumCols(), path)

		added, ok, err := clean.EncodeLabel(f, label, categories, c.IndicatorFormat)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "⚠ Warning: label column %s not found; encoding skipped\n", label)
		} else {
			fmt.Printf("✓ Encoded %s into %s\n", label, strings.Join(added, ", "))
		}

		if removed := clean.Redact(f, redact); len(removed) > 0 {
			fmt.Printf("✓ Redacted %s\n", strings.Join(removed, ", "))
		}

		for _, name := range numeric {
			converted, failed, err := clean.CoerceNumeric(f, name)
			if err != nil {
				// Recoverable: report and leave the column unmodified.
				fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
				continue
			}
			debugf("coerced %s: %d converted, %d unparseable -> null\n", name, converted, failed)
		}

		out := cleanOutput
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			out = base + ".cleaned.csv"
		}
		if err := f.WriteFile(out); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d rows x %d columns to %s\n", f.NumRows(), f.NumCols(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output CSV path (default <input>.cleaned.csv)")
	cleanCmd.Flags().IntVar(&cleanSampleRows, "sample-rows", 0, "leading rows sampled for type inference (default from config)")
	cleanCmd.Flags().StringVar(&cleanLabel, "label", "", "categorical label column to encode")
	cleanCmd.Flags().StringSliceVar(&cleanCategories, "categories", nil, "known label categories")
	cleanCmd.Flags().StringSliceVar(&cleanRedact, "redact", nil, "columns to remove")
	cleanCmd.Flags().StringSliceVar(&cleanNumeric, "numeric", nil, "text columns to coerce to numeric")
}
