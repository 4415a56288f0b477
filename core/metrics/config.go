package metrics

import "github.com/kilianp07/cropplan/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PushgatewayURL, when set, receives the Prometheus registry once a batch
	// run finishes.
	PushgatewayURL string `json:"pushgateway_url"`
	// Job is the pushgateway job label.
	Job string `json:"job"`
}

// SetDefaults applies defaults.
func (c *Config) SetDefaults() {
	if c.Job == "" {
		c.Job = "cropplan"
	}
}
