package model

import (
	"fmt"
	"sort"
)

// Crop is a plantable cultivar with a growing window and a preferred temperature.
type Crop struct {
	Name             string  `json:"name" yaml:"name"`
	Duration         int     `json:"duration" yaml:"duration"`                   // growing days, contiguous
	IdealTemperature float64 `json:"ideal_temperature" yaml:"ideal_temperature"` // degrees Celsius
}

// Validate checks that the crop can be scheduled at all.
func (c Crop) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("crop name is required")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("crop %s: duration must be positive, got %d", c.Name, c.Duration)
	}
	return nil
}

// Catalog is an ordered list of crops. The order is the one supplied by the
// user and is kept for scenario generation; the search itself always works
// on Sorted().
type Catalog []Crop

// Names returns the crop names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, crop := range c {
		names[i] = crop.Name
	}
	return names
}

// Sorted returns a copy of the catalog ordered by crop name.
func (c Catalog) Sorted() Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the crop with the given name.
func (c Catalog) Lookup(name string) (Crop, bool) {
	for _, crop := range c {
		if crop.Name == name {
			return crop, true
		}
	}
	return Crop{}, false
}

// Validate checks every crop and rejects duplicate names.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("crop catalog is empty")
	}
	seen := make(map[string]struct{}, len(c))
	for _, crop := range c {
		if err := crop.Validate(); err != nil {
			return err
		}
		if _, dup := seen[crop.Name]; dup {
			return fmt.Errorf("duplicate crop %s", crop.Name)
		}
		seen[crop.Name] = struct{}{}
	}
	return nil
}
