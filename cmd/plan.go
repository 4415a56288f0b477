package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cropplan/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the optimal crop plan for the configured year",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			rep, err := svc.Plan(ctx)
			if err != nil {
				return err
			}
			if rep.File != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nPlan %s saved to %s\n", rep.RunID, rep.File)
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
