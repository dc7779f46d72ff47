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
	prepOutput     string
	prepImpute     []string
	prepSampleRows int
)

var prepareCmd = &cobra.Command{
	Use:   "prepare <file>",
	Short: "Median-impute designated columns and drop residual null rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		path := args[0]

		impute := c.ImputeColumns
		if cmd.Flags().Changed("impute") {
			impute = prepImpute
		}

		opt := frame.DefaultReadOptions()
		if prepSampleRows > 0 {
			opt.SampleRows = prepSampleRows
		} else if c.SampleRows > 0 {
			opt.SampleRows = c.SampleRows
		}
		f, err := frame.ReadFile(path, opt)
		if err != nil {
			return err
		}

		for _, name := range impute {
			filled, median, err := clean.ImputeMedian(f, name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
				continue
			}
			fmt.Printf("✓ Imputed %s: %d nulls filled with median %.4g\n", name, filled, median)
		}

		removed := f.DropNullRows()
		fmt.Printf("✓ Dropped %d rows with residual nulls\n", removed)

		out := prepOutput
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			out = base + ".prepared.csv"
		}
		if err := f.WriteFile(out); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d rows x %d columns to %s\n", f.NumRows(), f.NumCols(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
	prepareCmd.Flags().StringVarP(&prepOutput, "output", "o", "", "output CSV path (default <input>.prepared.csv)")
	prepareCmd.Flags().StringSliceVar(&prepImpute, "impute", nil, "columns to median-impute before the null-row drop")
	prepareCmd.Flags().IntVar(&prepSampleRows, "sample-rows", 0, "leading rows sampled for type inference (default from config)")
}
