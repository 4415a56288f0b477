package model

import "fmt"

// Location is a single greenhouse timeline with its daily mean temperatures
// for the target year. Temperatures is dense: one value per calendar day.
type Location struct {
	Name         string
	Temperatures []float64
	// Missing lists the day indices the provider had no data for. Those days
	// hold the 0.0 sentinel in Temperatures.
	Missing []int
}

// Days returns the length of the temperature series.
func (l Location) Days() int { return len(l.Temperatures) }

// HasGaps reports whether any day was filled with the sentinel value.
func (l Location) HasGaps() bool { return len(l.Missing) > 0 }

// Validate checks that the series can be used to build costs.
func (l Location) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("location name is required")
	}
	if len(l.Temperatures) == 0 {
		return fmt.Errorf("location %s: empty temperature series", l.Name)
	}
	return nil
}
