package config

import (
	"fmt"
	"time"
)

// PlannerConfig describes the planning problem.
type PlannerConfig struct {
	// Year whose calendar the plan covers. Defaults to the current year.
	Year int `json:"year"`
	// Locations in the order used by the benchmark grid.
	Locations []string `json:"locations"`
	// Catalog is the path of the crop catalog file.
	Catalog string `json:"catalog"`
	// MaxExpansions and MaxFrontier bound the search; zero means unlimited.
	MaxExpansions int `json:"max_expansions"`
	MaxFrontier   int `json:"max_frontier"`
}

// SetDefaults applies defaults.
func (c *PlannerConfig) SetDefaults() {
	if c.Year == 0 {
		c.Year = time.Now().Year()
	}
}

// Validate checks mandatory fields.
func (c PlannerConfig) Validate() error {
	if c.Year < 1 || c.Year > 9999 {
		return fmt.Errorf("invalid year %d", c.Year)
	}
	if len(c.Locations) == 0 {
		return fmt.Errorf("at least one location is required")
	}
	seen := make(map[string]struct{}, len(c.Locations))
	for _, l := range c.Locations {
		if l == "" {
			return fmt.Errorf("empty location name")
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("duplicate location %s", l)
		}
		seen[l] = struct{}{}
	}
	if c.Catalog == "" {
		return fmt.Errorf("catalog is required")
	}
	if c.MaxExpansions < 0 || c.MaxFrontier < 0 {
		return fmt.Errorf("search budgets must not be negative")
	}
	return nil
}
