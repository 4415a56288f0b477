package config

import (
	"fmt"
	"path/filepath"
)

// OutputConfig defines where results are written.
type OutputConfig struct {
	Dir string `json:"dir"`
	// BenchmarkFile is the ';'-delimited benchmark table, relative to Dir.
	BenchmarkFile string `json:"benchmark_file"`
	// PlanFormat is "csv" or "json".
	PlanFormat string `json:"plan_format"`
	// SQLitePath enables persistence of plans and benchmark rows.
	SQLitePath string `json:"sqlite_path"`
	// ChartFile, relative to Dir, enables the HTML benchmark chart.
	ChartFile string        `json:"chart_file"`
	Journal   JournalConfig `json:"journal"`
}

// JournalConfig enables the rotating JSONL run journal when Path is set.
type JournalConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// SetDefaults applies defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.BenchmarkFile == "" {
		c.BenchmarkFile = "benchmark_results.csv"
	}
	if c.PlanFormat == "" {
		c.PlanFormat = "csv"
	}
	if c.Journal.MaxSizeMB == 0 {
		c.Journal.MaxSizeMB = 10
	}
	if c.Journal.MaxBackups == 0 {
		c.Journal.MaxBackups = 3
	}
	if c.Journal.MaxAgeDays == 0 {
		c.Journal.MaxAgeDays = 30
	}
}

// Validate checks the plan format.
func (c OutputConfig) Validate() error {
	if c.PlanFormat != "csv" && c.PlanFormat != "json" {
		return fmt.Errorf("unknown plan format %s", c.PlanFormat)
	}
	if c.Journal.MaxSizeMB < 0 || c.Journal.MaxBackups < 0 || c.Journal.MaxAgeDays < 0 {
		return fmt.Errorf("journal rotation limits must be >= 0")
	}
	return nil
}

// BenchmarkPath returns the benchmark table location.
func (c OutputConfig) BenchmarkPath() string {
	return filepath.Join(c.Dir, c.BenchmarkFile)
}

// ChartPath returns the benchmark chart location, empty when disabled.
func (c OutputConfig) ChartPath() string {
	if c.ChartFile == "" {
		return ""
	}
	return filepath.Join(c.Dir, c.ChartFile)
}

// PlanPath returns the plan file location for year.
func (c OutputConfig) PlanPath(year int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("plan_%d.%s", year, c.PlanFormat))
}
