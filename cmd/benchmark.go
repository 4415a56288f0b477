package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cropplan/app"
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Measure how the search scales over growing sub-problems",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			rep, err := svc.Benchmark(ctx)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "\nResults saved to %s\n", rep.File); err != nil {
				return err
			}
			if rep.Chart != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Chart saved to %s\n", rep.Chart)
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)
}
