package planner

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/cropplan/core/model"
)

// NoSlot is returned by BestSlot when no finite start day exists.
const NoSlot = -1

// MaxCrops bounds the catalog size so a remaining set fits in a uint64 mask.
const MaxCrops = 64

// CostMatrix holds cost[crop][location][start] for one planning run. Crops are
// indexed in name order, locations in the order they were supplied. A matrix
// is never modified after BuildCostMatrix returns.
type CostMatrix struct {
	crops     []model.Crop
	locations []model.Location
	cropIdx   map[string]int
	locIdx    map[string]int
	days      int

	costs [][][]float64
	// cheapest[c] is the minimum cost of crop c over every location and day,
	// +Inf when the crop fits nowhere.
	cheapest []float64
	warnings []string
}

// BuildCostMatrix validates the inputs and precomputes every start-day cost.
// The cost of starting crop c on day s at location l is the sum of
// |ideal − t[d]| for d in [s, s+duration), or +Inf when the window runs past
// the end of the series.
func BuildCostMatrix(crops []model.Crop, locations []model.Location) (*CostMatrix, error) {
	if len(crops) == 0 {
		return nil, fmt.Errorf("%w: no crops", ErrInvalidConfig)
	}
	if len(crops) > MaxCrops {
		return nil, fmt.Errorf("%w: %d crops, at most %d supported", ErrInvalidConfig, len(crops), MaxCrops)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: no locations", ErrInvalidConfig)
	}
	catalog := model.Catalog(crops)
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m := &CostMatrix{
		crops:     catalog.Sorted(),
		locations: make([]model.Location, len(locations)),
		cropIdx:   make(map[string]int, len(crops)),
		locIdx:    make(map[string]int, len(locations)),
	}
	for i, c := range m.crops {
		m.cropIdx[c.Name] = i
	}
	for i, l := range locations {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if _, dup := m.locIdx[l.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate location %s", ErrInvalidConfig, l.Name)
		}
		if i == 0 {
			m.days = l.Days()
		} else if l.Days() != m.days {
			return nil, fmt.Errorf("%w: location %s has %d days, expected %d", ErrInvalidConfig, l.Name, l.Days(), m.days)
		}
		for d, t := range l.Temperatures {
			if math.IsNaN(t) || math.IsInf(t, 0) {
				return nil, fmt.Errorf("%w: location %s day %d: temperature %v", ErrInvalidConfig, l.Name, d, t)
			}
		}
		m.locIdx[l.Name] = i
		m.locations[i] = l
		if l.HasGaps() {
			m.warnings = append(m.warnings, fmt.Sprintf(
				"location %s: %d of %d days had no source data and were filled with 0.0", l.Name, len(l.Missing), l.Days()))
		}
	}

	m.costs = make([][][]float64, len(m.crops))
	m.cheapest = make([]float64, len(m.crops))
	dev := make([]float64, m.days)
	for c, crop := range m.crops {
		m.costs[c] = make([][]float64, len(m.locations))
		m.cheapest[c] = math.Inf(1)
		for l, loc := range m.locations {
			for d, t := range loc.Temperatures {
				dev[d] = math.Abs(crop.IdealTemperature - t)
			}
			row := windowCosts(dev, crop.Duration)
			m.costs[c][l] = row
			m.cheapest[c] = math.Min(m.cheapest[c], floats.Min(row))
		}
	}
	return m, nil
}

func windowCosts(dev []float64, duration int) []float64 {
	row := make([]float64, len(dev))
	for s := range row {
		if s+duration > len(dev) {
			row[s] = math.Inf(1)
			continue
		}
		row[s] = floats.Sum(dev[s : s+duration])
	}
	return row
}

// Crops returns the crops in search order (sorted by name).
func (m *CostMatrix) Crops() []model.Crop {
	out := make([]model.Crop, len(m.crops))
	copy(out, m.crops)
	return out
}

// Locations returns the locations in their fixed order.
func (m *CostMatrix) Locations() []model.Location {
	out := make([]model.Location, len(m.locations))
	copy(out, m.locations)
	return out
}

// NumCrops returns the number of crops.
func (m *CostMatrix) NumCrops() int { return len(m.crops) }

// NumLocations returns the number of locations.
func (m *CostMatrix) NumLocations() int { return len(m.locations) }

// Days returns the series length shared by every location.
func (m *CostMatrix) Days() int { return m.days }

// Warnings lists data quality issues found while building the matrix.
func (m *CostMatrix) Warnings() []string {
	out := make([]string, len(m.warnings))
	copy(out, m.warnings)
	return out
}

// CropIndex returns the search index of the named crop.
func (m *CostMatrix) CropIndex(name string) (int, bool) {
	i, ok := m.cropIdx[name]
	return i, ok
}

// LocationIndex returns the index of the named location.
func (m *CostMatrix) LocationIndex(name string) (int, bool) {
	i, ok := m.locIdx[name]
	return i, ok
}

// Costs returns a copy of the start-day cost row for a crop at a location.
func (m *CostMatrix) Costs(crop, location int) []float64 {
	row := m.costs[crop][location]
	out := make([]float64, len(row))
	copy(out, row)
	return out
}

// Heuristic returns the admissible lower bound for scheduling the given crops:
// the sum of each crop's cheapest slot over every location and day. Crops with
// no finite slot anywhere contribute nothing.
func (m *CostMatrix) Heuristic(remaining []int) float64 {
	h := 0.0
	for _, c := range remaining {
		if v := m.cheapest[c]; !math.IsInf(v, 1) {
			h += v
		}
	}
	return h
}

// LowerBound is the heuristic for the full crop set.
func (m *CostMatrix) LowerBound() float64 {
	all := make([]int, len(m.crops))
	for i := range all {
		all[i] = i
	}
	return m.Heuristic(all)
}

// BestSlot returns the cheapest start day for crop at location on or after
// earliest, and its cost. Ties go to the earliest day. When every remaining day
// is infeasible it returns NoSlot and +Inf.
func (m *CostMatrix) BestSlot(crop, location, earliest int) (int, float64) {
	row := m.costs[crop][location]
	if earliest < 0 {
		earliest = 0
	}
	if earliest >= len(row) {
		return NoSlot, math.Inf(1)
	}
	suffix := row[earliest:]
	// MinIdx keeps the first minimum it meets.
	i := floats.MinIdx(suffix)
	if math.IsInf(suffix[i], 1) {
		return NoSlot, math.Inf(1)
	}
	return earliest + i, suffix[i]
}
