package benchmark

import (
	"fmt"

	"github.com/kilianp07/cropplan/core/model"
)

// Scenario is one sub-problem of the benchmark grid.
type Scenario struct {
	Crops     []model.Crop
	Locations []model.Location
}

// Name identifies the scenario as "<locations>x<crops>".
func (s Scenario) Name() string {
	return scenarioName(len(s.Locations), len(s.Crops))
}

func scenarioName(locations, crops int) string {
	return fmt.Sprintf("%dx%d", locations, crops)
}

// Scenarios builds the grid: location counts 1..len(locs) in the outer loop,
// crop counts 1..len(crops) in the inner one, each a prefix of the input.
func Scenarios(crops []model.Crop, locs []model.Location) []Scenario {
	out := make([]Scenario, 0, len(crops)*len(locs))
	for nl := 1; nl <= len(locs); nl++ {
		for nc := 1; nc <= len(crops); nc++ {
			out = append(out, Scenario{Crops: crops[:nc:nc], Locations: locs[:nl:nl]})
		}
	}
	return out
}
