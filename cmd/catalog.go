package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kilianp07/cropplan/app"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the crops of the configured catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd, func(_ context.Context, svc *app.Service) error {
			crops, err := svc.Catalog()
			if err != nil {
				return err
			}
			t := table.New().Border(lipgloss.NormalBorder()).Headers("NAME", "DAYS", "IDEAL °C")
			for _, c := range crops {
				t.Row(c.Name, strconv.Itoa(c.Duration), strconv.FormatFloat(c.IdealTemperature, 'f', 1, 64))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
