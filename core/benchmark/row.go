package benchmark

import (
	"time"

	"github.com/kilianp07/cropplan/core/planner"
)

// Status is the outcome of one scenario.
type Status string

const (
	// StatusSolved means an optimal plan was found.
	StatusSolved Status = "solved"
	// StatusInfeasible means the frontier emptied without reaching a goal.
	StatusInfeasible Status = "infeasible"
	// StatusCapacityExceeded means a search budget ran out first. The
	// instance may still have a plan.
	StatusCapacityExceeded Status = "capacity_exceeded"
)

// Row is the report line of one scenario. Energy, GapPercent, MsPerNode and
// GeneratedOverExpanded are only meaningful when Feasible is true.
type Row struct {
	NLocations            int      `json:"n_locations"`
	NCrops                int      `json:"n_crops"`
	CropNames             []string `json:"crop_names"`
	LocationNames         []string `json:"location_names"`
	ElapsedSeconds        float64  `json:"elapsed_seconds"`
	NodesExpanded         int      `json:"nodes_expanded"`
	NodesGenerated        int      `json:"nodes_generated"`
	Energy                float64  `json:"energy"`
	LowerBound            float64  `json:"lower_bound"`
	GapPercent            float64  `json:"gap_percent"`
	MsPerNode             float64  `json:"ms_per_node"`
	GeneratedOverExpanded float64  `json:"generated_over_expanded"`
	Feasible              bool     `json:"feasible"`
	Status                Status   `json:"status"`
}

// Scenario returns the "<locations>x<crops>" label of the row.
func (r Row) Scenario() string {
	return scenarioName(r.NLocations, r.NCrops)
}

// CapacityExceeded reports whether the scenario stopped on a search budget.
func (r Row) CapacityExceeded() bool {
	return r.Status == StatusCapacityExceeded
}

func newRow(sc Scenario, res planner.Result) Row {
	r := Row{
		NLocations:     len(sc.Locations),
		NCrops:         len(sc.Crops),
		CropNames:      make([]string, len(sc.Crops)),
		LocationNames:  make([]string, len(sc.Locations)),
		ElapsedSeconds: res.Stats.Elapsed.Seconds(),
		NodesExpanded:  res.Stats.Expanded,
		NodesGenerated: res.Stats.Generated,
		LowerBound:     res.Stats.LowerBound,
		Feasible:       res.Feasible,
		Status:         StatusInfeasible,
	}
	for i, c := range sc.Crops {
		r.CropNames[i] = c.Name
	}
	for i, l := range sc.Locations {
		r.LocationNames[i] = l.Name
	}
	if !res.Feasible {
		return r
	}
	r.Status = StatusSolved
	r.Energy = res.Plan.TotalCost
	r.GapPercent = gapPercent(r.Energy, r.LowerBound)
	if r.NodesExpanded > 0 {
		r.MsPerNode = float64(res.Stats.Elapsed) / float64(time.Millisecond) / float64(r.NodesExpanded)
		r.GeneratedOverExpanded = float64(r.NodesGenerated) / float64(r.NodesExpanded)
	}
	return r
}

// gapPercent is (energy-lb)/lb*100, or 0 when the lower bound is not positive.
func gapPercent(energy, lb float64) float64 {
	if lb <= 0 {
		return 0
	}
	return (energy - lb) / lb * 100
}
