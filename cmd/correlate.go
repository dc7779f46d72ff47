package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/crunchbyte/creditprep/internal/corr"
	"github.com/crunchbyte/creditprep/internal/frame"
)

var (
	corrPlot       string
	corrTitle      string
	corrWidth      int
	corrHeight     int
	corrTop        int
	corrSampleRows int
)

var correlateCmd = &cobra.Command{
	Use:   "correlate <file>",
	Short: "Compute the Pearson correlation matrix and render a heatmap",
	Long: `Correlate loads a cleaned CSV, drops rows containing nulls, and computes
the pairwise Pearson correlation matrix over the numeric and boolean columns.
Only the lower triangle (including the diagonal) is computed; entries above
the diagonal stay NaN, meaning "not computed". Zero-variance columns produce
NaN coefficients, which are reported as undefined rather than zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}

		opt := frame.DefaultReadOptions()
		if corrSampleRows > 0 {
			opt.SampleRows = corrSampleRows
		} else if c.SampleRows > 0 {
			opt.SampleRows = c.SampleRows
		}
		f, err := frame.ReadFile(args[0], opt)
		if err != nil {
			return err
		}
		dropped := f.DropNullRows()
		debugf("dropped %d null rows before correlation\n", dropped)

		m := corr.Compute(f)
		if len(m.Columns) == 0 {
			return fmt.Errorf("no numeric or boolean columns to correlate")
		}
		fmt.Printf("✓ Correlated %d columns over %d rows\n", len(m.Columns), f.NumRows())

		undefined := 0
		for y := range m.Values {
			for x := 0; x <= y; x++ {
				if math.IsNaN(m.Values[y][x]) {
					undefined++
				}
			}
		}
		if undefined > 0 {
			fmt.Printf("  %d coefficients undefined (zero-variance input)\n", undefined)
		}

		for _, p := range m.TopPairs(corrTop) {
			fmt.Printf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R)
		}

		if corrPlot != "" {
			hm := corr.HeatmapOptions{Title: c.HeatmapTitle, Width: c.HeatmapWidth, Height: c.HeatmapHeight}
			if cmd.Flags().Changed("title") {
				hm.Title = corrTitle
			}
			if corrWidth > 0 {
				hm.Width = corrWidth
			}
			if corrHeight > 0 {
				hm.Height = corrHeight
			}
			if err := m.SavePNG(corrPlot, hm); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote heatmap to %s\n", corrPlot)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(correlateCmd)
	correlateCmd.Flags().StringVar(&corrPlot, "plot", "", "write a heatmap PNG to this path")
	correlateCmd.Flags().StringVar(&corrTitle, "title", "", "heatmap title (default from config)")
	correlateCmd.Flags().IntVar(&corrWidth, "width", 0, "heatmap width in pixels (default from config)")
	correlateCmd.Flags().IntVar(&corrHeight, "height", 0, "heatmap height in pixels (default from config)")
	correlateCmd.Flags().IntVar(&corrTop, "top", 10, "number of top pairs to print")
	correlateCmd.Flags().IntVar(&corrSampleRows, "sample-rows", 0, "leading rows sampled for type inference (default from config)")
}
