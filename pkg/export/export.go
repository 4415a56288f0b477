package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/cropplan/core/benchmark"
	"github.com/kilianp07/cropplan/core/planner"
)

// NA marks figures that do not exist for infeasible scenarios.
const NA = "N/A"

// Budget replaces those figures when a search budget stopped the scenario,
// so an unfinished search is not read as "no solution".
const Budget = "BUDGET"

// missing returns the marker for the result cells of an unsolved row.
func missing(r benchmark.Row) string {
	if r.CapacityExceeded() {
		return Budget
	}
	return NA
}

// BenchmarkHeader lists the columns of the benchmark table.
var BenchmarkHeader = []string{
	"n_locations", "n_crops", "crop_names", "location_names",
	"elapsed_seconds", "nodes_expanded", "nodes_generated",
	"energy", "lower_bound", "gap_percent",
	"ms_per_node", "generated_over_expanded",
}

// WritePlanJSON writes the plan to w in JSON format.
func WritePlanJSON(w io.Writer, p planner.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// WritePlanCSV writes the plan actions in chronological order.
func WritePlanCSV(w io.Writer, p planner.Plan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"location", "crop", "start_day", "end_day", "cost"}); err != nil {
		return err
	}
	for _, a := range p.Chronological() {
		rec := []string{
			a.Location,
			a.Crop,
			strconv.Itoa(a.Start),
			strconv.Itoa(a.End),
			strconv.FormatFloat(a.Cost, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBenchmarkCSV writes the rows as a ';'-delimited table. Infeasible rows
// carry N/A for energy, gap and per-node figures; rows stopped by a search
// budget carry BUDGET instead.
func WriteBenchmarkCSV(w io.Writer, rows []benchmark.Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(BenchmarkHeader); err != nil {
		return err
	}
	for _, r := range rows {
		m := missing(r)
		rec := []string{
			strconv.Itoa(r.NLocations),
			strconv.Itoa(r.NCrops),
			strings.Join(r.CropNames, " | "),
			strings.Join(r.LocationNames, " | "),
			formatFloat(r.ElapsedSeconds, 5),
			strconv.Itoa(r.NodesExpanded),
			strconv.Itoa(r.NodesGenerated),
			m,
			formatFloat(r.LowerBound, 2),
			m,
			m,
			m,
		}
		if r.Feasible {
			rec[7] = formatFloat(r.Energy, 2)
			rec[9] = formatFloat(r.GapPercent, 3)
			rec[10] = formatFloat(r.MsPerNode, 5)
			rec[11] = formatFloat(r.GeneratedOverExpanded, 3)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}
