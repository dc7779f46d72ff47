package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crunchbyte/creditprep/internal/frame"
)

var (
	inspectOutput     string
	inspectSampleRows int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a CSV: column kinds, null counts, and statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		opt := frame.DefaultReadOptions()
		if inspectSampleRows > 0 {
			opt.SampleRows = inspectSampleRows
		} else if c.SampleRows > 0 {
			opt.SampleRows = c.SampleRows
		}
		f, err := frame.ReadFile(args[0], opt)
		if err != nil {
			return err
		}
		md := f.DescribeMarkdown()
		if inspectOutput != "" {
			if err := os.WriteFile(inspectOutput, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", inspectOutput)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "optional path to write the summary")
	inspectCmd.Flags().IntVar(&inspectSampleRows, "sample-rows", 0, "leading rows sampled for type inference (default from config)")
}
