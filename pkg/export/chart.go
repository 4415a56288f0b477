package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/cropplan/core/benchmark"
)

// WriteBenchmarkChart renders the node counts and time per node of every
// scenario as an HTML line chart. Infeasible scenarios have no ms/node point.
func WriteBenchmarkChart(w io.Writer, rows []benchmark.Row) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "A* scaling", Subtitle: "scenarios as locations x crops"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Scenario"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Nodes"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Right: "10%"}),
	)

	xAxis := make([]string, 0, len(rows))
	expanded := make([]opts.LineData, 0, len(rows))
	generated := make([]opts.LineData, 0, len(rows))
	msPerNode := make([]opts.LineData, 0, len(rows))
	for _, r := range rows {
		xAxis = append(xAxis, r.Scenario())
		expanded = append(expanded, opts.LineData{Value: r.NodesExpanded})
		generated = append(generated, opts.LineData{Value: r.NodesGenerated})
		if r.Feasible {
			msPerNode = append(msPerNode, opts.LineData{Value: r.MsPerNode})
		} else {
			msPerNode = append(msPerNode, opts.LineData{Value: "-"})
		}
	}

	line.SetXAxis(xAxis).
		AddSeries("Expanded", expanded).
		AddSeries("Generated", generated).
		AddSeries("ms/node", msPerNode)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
