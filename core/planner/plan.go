package planner

import (
	"fmt"
	"sort"
)

// Action places one crop at one location for [Start, End).
type Action struct {
	Location string  `json:"location"`
	Crop     string  `json:"crop"`
	Start    int     `json:"start_day"`
	End      int     `json:"end_day"`
	Cost     float64 `json:"cost"`
}

// Plan is a complete assignment in the order the search made its decisions.
type Plan struct {
	Actions   []Action `json:"actions"`
	TotalCost float64  `json:"total_cost"`
}

// Chronological returns the actions sorted by start day, then location.
func (p Plan) Chronological() []Action {
	out := append([]Action(nil), p.Actions...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Location < out[j].Location
	})
	return out
}

// ByLocation returns the actions grouped by location name, each group in
// chronological order.
func (p Plan) ByLocation() []Action {
	out := append([]Action(nil), p.Actions...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location != out[j].Location {
			return out[i].Location < out[j].Location
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// CheckOverlap returns an error if two actions at the same location share a day.
func (p Plan) CheckOverlap() error {
	byLoc := make(map[string][]Action)
	for _, a := range p.Actions {
		byLoc[a.Location] = append(byLoc[a.Location], a)
	}
	for loc, acts := range byLoc {
		for i := range acts {
			for j := i + 1; j < len(acts); j++ {
				a, b := acts[i], acts[j]
				if a.Start < b.End && b.Start < a.End {
					return fmt.Errorf("location %s: %s [%d,%d) overlaps %s [%d,%d)",
						loc, a.Crop, a.Start, a.End, b.Crop, b.Start, b.End)
				}
			}
		}
	}
	return nil
}
