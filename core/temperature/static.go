package temperature

import (
	"context"
	"fmt"
)

// StaticProvider serves fixed day-indexed series, mainly for tests and for
// configurations that inline their temperatures.
type StaticProvider struct {
	Series map[string][]float64
}

// DailyMeans maps the configured series onto the calendar of year. Values
// beyond the year are dropped; a short series leaves the tail missing.
func (s StaticProvider) DailyMeans(_ context.Context, location string, year int) (map[DayKey]float64, error) {
	vals, ok := s.Series[location]
	if !ok {
		return nil, fmt.Errorf("unknown location %s", location)
	}
	n := min(len(vals), DaysIn(year))
	out := make(map[DayKey]float64, n)
	for i := 0; i < n; i++ {
		out[DayKeyOf(year, i)] = vals[i]
	}
	return out, nil
}
