package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crunchbyte/creditprep/internal/pipeline"
)

var runOutDir string

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run the full pipeline: clean, correlate, prepare",
	Long: `Run executes every stage over the input CSV: cleaning writes the
intermediate CSV, an independent reload of that file feeds the correlation
heatmap, and imputation plus the final null-row drop produce the
model-ready CSV. A run manifest recording each stage is saved alongside.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		outDir := runOutDir
		if outDir == "" {
			outDir = c.OutputDir
		}
		res, err := pipeline.Run(c, args[0], outDir, os.Stderr)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Run %s complete\n", res.Manifest.ID)
		for _, a := range res.Manifest.Artifacts {
			fmt.Printf("  %s\n", a)
		}
		fmt.Printf("  manifest: %s\n", res.ManifestPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runOutDir, "out-dir", "", "directory for run artifacts (default from config)")
}
