package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/cropplan/core/benchmark"
	"github.com/kilianp07/cropplan/core/planner"
)

func samplePlan() planner.Plan {
	return planner.Plan{
		Actions: []planner.Action{
			{Location: "south", Crop: "tomato", Start: 31, End: 59, Cost: 4.25},
			{Location: "north", Crop: "basil", Start: 0, End: 10, Cost: 1},
		},
		TotalCost: 5.25,
	}
}

func sampleRows() []benchmark.Row {
	return []benchmark.Row{
		{
			NLocations: 1, NCrops: 2, CropNames: []string{"a", "b"}, LocationNames: []string{"l"},
			ElapsedSeconds: 0.001234567, NodesExpanded: 3, NodesGenerated: 5, Energy: 11, LowerBound: 10,
			GapPercent: 10, MsPerNode: 0.411522, GeneratedOverExpanded: 5.0 / 3, Feasible: true,
		},
		{
			NLocations: 1, NCrops: 3, CropNames: []string{"a", "b", "c"}, LocationNames: []string{"l"},
			ElapsedSeconds: 0.5, NodesExpanded: 9, NodesGenerated: 12, LowerBound: 12,
		},
	}
}

func TestWritePlanCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlanCSV(&buf, samplePlan()))
	want := "location,crop,start_day,end_day,cost\nnorth,basil,0,10,1\nsouth,tomato,31,59,4.25\n"
	assert.Equal(t, want, buf.String())
}

func TestWritePlanJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlanJSON(&buf, samplePlan()))
	var got planner.Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, samplePlan(), got)
	assert.Contains(t, buf.String(), `"start_day": 31`)
}

func TestWriteBenchmarkCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBenchmarkCSV(&buf, sampleRows()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(BenchmarkHeader, ";"), lines[0])
	assert.Equal(t, "1;2;a | b;l;0.00123;3;5;11.00;10.00;10.000;0.41152;1.667", lines[1])
	assert.Equal(t, "1;3;a | b | c;l;0.50000;9;12;N/A;12.00;N/A;N/A;N/A", lines[2])
}

func cappedRow() benchmark.Row {
	return benchmark.Row{
		NLocations: 2, NCrops: 3, CropNames: []string{"a", "b", "c"}, LocationNames: []string{"l", "m"},
		ElapsedSeconds: 0.25, NodesExpanded: 1, NodesGenerated: 3, LowerBound: 7,
		Status: benchmark.StatusCapacityExceeded,
	}
}

func TestWriteBenchmarkCSV_CapacityExceeded(t *testing.T) {
	var buf bytes.Buffer
	rows := append(sampleRows(), cappedRow())
	require.NoError(t, WriteBenchmarkCSV(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1;3;a | b | c;l;0.50000;9;12;N/A;12.00;N/A;N/A;N/A", lines[2])
	assert.Equal(t, "2;3;a | b | c;l | m;0.25000;1;3;BUDGET;7.00;BUDGET;BUDGET;BUDGET", lines[3])
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "01 January", DayLabel(2026, 0))
	assert.Equal(t, "01 March", DayLabel(2026, 59))
	assert.Equal(t, "29 February", DayLabel(2028, 59))
	assert.Equal(t, "31 December", DayLabel(2026, 364))
}

func TestRenderPlan(t *testing.T) {
	var buf bytes.Buffer
	res := planner.Result{
		Plan:     samplePlan(),
		Feasible: true,
		Stats:    planner.Stats{Expanded: 3, Generated: 7, Elapsed: time.Millisecond},
		Warnings: []string{"location south: 2 of 365 days had no source data and were filled with 0.0"},
	}
	require.NoError(t, RenderPlan(&buf, 2026, res))
	out := buf.String()
	assert.Contains(t, out, "total energy: 5.")
	assert.Contains(t, out, "01 February")
	assert.Contains(t, out, "28 February")
	assert.Contains(t, out, "10 January")
	assert.Contains(t, out, "warning: location south")
	assert.Less(t, strings.Index(out, "basil"), strings.Index(out, "tomato"))
	assert.Contains(t, out, "3 expanded, 7 generated")
}

func TestRenderPlan_LocationAndStartDayOrders(t *testing.T) {
	plan := planner.Plan{
		Actions: []planner.Action{
			{Location: "north", Crop: "tomato", Start: 50, End: 80, Cost: 2},
			{Location: "south", Crop: "basil", Start: 0, End: 10, Cost: 1},
		},
		TotalCost: 3,
	}
	var buf bytes.Buffer
	require.NoError(t, RenderPlan(&buf, 2026, planner.Result{Plan: plan, Feasible: true}))
	out := buf.String()

	byLoc := strings.Index(out, "By location")
	byDay := strings.Index(out, "By start day")
	require.GreaterOrEqual(t, byLoc, 0)
	require.Greater(t, byDay, byLoc)

	locSection, daySection := out[byLoc:byDay], out[byDay:]
	assert.Less(t, strings.Index(locSection, "tomato"), strings.Index(locSection, "basil"))
	assert.Less(t, strings.Index(daySection, "basil"), strings.Index(daySection, "tomato"))
}

func TestRenderPlan_Infeasible(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlan(&buf, 2026, planner.Result{}))
	assert.Contains(t, buf.String(), "No feasible plan")
}

func TestRenderBenchmark(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBenchmark(&buf, sampleRows()))
	out := buf.String()
	assert.Contains(t, out, "Gen/Exp")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "10.00")
	assert.Contains(t, out, "Columns:")
	assert.Contains(t, out, "2 scenarios, 1 feasible, 0 over budget")
	assert.Equal(t, 1, strings.Count(out, Budget), "only the legend mentions the budget marker")
}

func TestRenderBenchmark_CapacityExceeded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBenchmark(&buf, append(sampleRows(), cappedRow())))
	out := buf.String()
	assert.Equal(t, 5, strings.Count(out, Budget))
	assert.Contains(t, out, "3 scenarios, 1 feasible, 1 over budget")
}

func TestWriteBenchmarkChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBenchmarkChart(&buf, sampleRows()))
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "1x2")
	assert.Contains(t, html, "1x3")
	assert.Contains(t, html, "Generated")
}
