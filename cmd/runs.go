package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kilianp07/cropplan/app"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs stored in the SQLite database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(ctx context.Context, svc *app.Service) error {
			st := svc.Store()
			if st == nil {
				return fmt.Errorf("output.sqlite_path is not configured")
			}
			runs, err := st.Runs(ctx)
			if err != nil {
				return err
			}
			t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "KIND", "YEAR", "CREATED", "TOTAL")
			for _, r := range runs {
				year, total := "", ""
				if r.Kind == "plan" {
					year, total = strconv.Itoa(r.Year), strconv.FormatFloat(r.TotalCost, 'f', 1, 64)
				}
				t.Row(r.ID, r.Kind, year, r.Created.Format(time.RFC3339), total)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
