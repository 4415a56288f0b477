package temperature

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/cropplan/core/logger"
	"github.com/kilianp07/cropplan/core/model"
)

// Sentinel is the value stored for days the provider has no data for.
const Sentinel = 0.0

// DayKey identifies a calendar day independently of the year.
type DayKey struct {
	Month time.Month
	Day   int
}

// Provider returns daily mean temperatures for a location and year. The map
// may be sparse; keys outside the calendar of that year are ignored.
type Provider interface {
	DailyMeans(ctx context.Context, location string, year int) (map[DayKey]float64, error)
}

// DaysIn returns 365 or 366.
func DaysIn(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// DayKeyOf returns the calendar key of a zero-based day index in year.
func DayKeyOf(year, index int) DayKey {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, index)
	return DayKey{Month: d.Month(), Day: d.Day()}
}

// Densify builds a Location with one value per calendar day of year.
func Densify(name string, year int, readings map[DayKey]float64) model.Location {
	n := DaysIn(year)
	loc := model.Location{Name: name, Temperatures: make([]float64, n)}
	for i := 0; i < n; i++ {
		if t, ok := readings[DayKeyOf(year, i)]; ok {
			loc.Temperatures[i] = t
			continue
		}
		loc.Temperatures[i] = Sentinel
		loc.Missing = append(loc.Missing, i)
	}
	return loc
}

// LoadLocations fetches and densifies the series of every named location, in
// order. Gaps are logged as warnings and kept on the returned locations.
func LoadLocations(ctx context.Context, p Provider, names []string, year int, log logger.Logger) ([]model.Location, error) {
	if log == nil {
		log = logger.Nop{}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no locations requested")
	}
	out := make([]model.Location, 0, len(names))
	for _, name := range names {
		readings, err := p.DailyMeans(ctx, name, year)
		if err != nil {
			return nil, fmt.Errorf("temperatures for %s/%d: %w", name, year, err)
		}
		loc := Densify(name, year, readings)
		if loc.HasGaps() {
			log.Warnf("location %s: %d days without data in %d, filled with %.1f", name, len(loc.Missing), year, Sentinel)
		}
		log.Infof("loaded %d days of temperatures for %s", loc.Days(), name)
		out = append(out, loc)
	}
	return out, nil
}
