package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kilianp07/cropplan/core/benchmark"
	"github.com/kilianp07/cropplan/core/planner"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
)

// benchmarkLegend explains the console columns.
var benchmarkLegend = []string{
	"L        = number of locations",
	"C        = number of crops",
	"Exp.     = states expanded (visited-set insertions)",
	"Gen.     = states pushed on the frontier, duplicates included",
	"L.Bound  = heuristic of the initial state",
	"Gap%     = distance of the plan from the lower bound (ideally close to 0)",
	"ms/node  = milliseconds per expanded state (should stay flat)",
	"Gen/Exp  = states generated per expanded state (heuristic quality, lower is better)",
	"N/A      = no plan exists for the scenario",
	"BUDGET   = search budget exhausted before a plan was proven or ruled out",
}

// DayLabel formats a zero-based day index of year as "02 January".
func DayLabel(year, day int) string {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day).Format("02 January")
}

// RenderPlan prints the plan grouped by location, then in start-day order,
// with calendar dates. The last day shown is the last growing day, End-1.
func RenderPlan(w io.Writer, year int, res planner.Result) error {
	for _, warn := range res.Warnings {
		if _, err := fmt.Fprintln(w, warningStyle.Render("warning: "+warn)); err != nil {
			return err
		}
	}
	if !res.Feasible {
		_, err := fmt.Fprintln(w, "No feasible plan: the crops do not fit in the available greenhouse time.")
		return err
	}

	_, err := fmt.Fprintf(w, "%s\n  year: %d\n  total energy: %.1f thermal units\n\n%s\n%s\n\n%s\n%s\n",
		titleStyle.Render("Optimal plan"), year, res.Plan.TotalCost,
		titleStyle.Render("By location"), planTable(year, res.Plan.ByLocation()).Render(),
		titleStyle.Render("By start day"), planTable(year, res.Plan.Chronological()).Render())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d expanded, %d generated in %s",
		res.Stats.Expanded, res.Stats.Generated, res.Stats.Elapsed.Round(time.Microsecond))))
	return err
}

func planTable(year int, actions []planner.Action) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CROP", "LOCATION", "FROM", "TO", "COST").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 4:
				return numberStyle
			default:
				return cellStyle
			}
		})
	for _, a := range actions {
		t.Row(a.Crop, a.Location, DayLabel(year, a.Start), DayLabel(year, a.End-1), strconv.FormatFloat(a.Cost, 'f', 1, 64))
	}
	return t
}

// RenderBenchmark prints the console table of a benchmark run followed by a
// legend and a short summary.
func RenderBenchmark(w io.Writer, rows []benchmark.Row) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("L", "C", "Time(s)", "Exp.", "Gen.", "Energy", "L.Bound", "Gap%", "ms/node", "Gen/Exp").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return numberStyle
		})
	for _, r := range rows {
		m := missing(r)
		energy, gap, ms, ratio := m, m, m, m
		if r.Feasible {
			energy = formatFloat(r.Energy, 1)
			gap = formatFloat(r.GapPercent, 2)
			ms = formatFloat(r.MsPerNode, 4)
			ratio = formatFloat(r.GeneratedOverExpanded, 2)
		}
		t.Row(
			strconv.Itoa(r.NLocations), strconv.Itoa(r.NCrops),
			formatFloat(r.ElapsedSeconds, 4),
			strconv.Itoa(r.NodesExpanded), strconv.Itoa(r.NodesGenerated),
			energy, formatFloat(r.LowerBound, 1), gap, ms, ratio,
		)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\nColumns:"); err != nil {
		return err
	}
	for _, l := range benchmarkLegend {
		if _, err := fmt.Fprintln(w, "  "+l); err != nil {
			return err
		}
	}
	s := benchmark.Summarize(rows)
	_, err := fmt.Fprintf(w, "\n%d scenarios, %d feasible, %d over budget, %.4fs total, mean %.4f ms/node (sd %.4f), mean gen/exp %.2f\n",
		s.Scenarios, s.Feasible, s.CapacityExceeded, s.TotalElapsed, s.MeanMsPerNode, s.StdMsPerNode, s.MeanGenPerExp)
	return err
}
