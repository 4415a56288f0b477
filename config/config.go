package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/cropplan/core/factory"
	"github.com/kilianp07/cropplan/core/metrics"
	"github.com/kilianp07/cropplan/infra/mqtt"
)

type Config struct {
	Planner     PlannerConfig        `json:"planner"`
	Temperature factory.ModuleConfig `json:"temperature"`
	Output      OutputConfig         `json:"output"`
	Metrics     metrics.Config       `json:"metrics"`
	MQTT        mqtt.Config          `json:"mqtt"`
	Logging     LoggingConfig        `json:"logging"`
}

// Load reads a YAML or JSON file, applies K_-prefixed environment overrides
// (K_PLANNER__YEAR=2027 sets planner.year), fills defaults and validates.
// A relative catalog path is resolved against the directory of the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if cfg.Planner.Catalog != "" && !filepath.IsAbs(cfg.Planner.Catalog) {
		cfg.Planner.Catalog = filepath.Join(filepath.Dir(path), cfg.Planner.Catalog)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Planner.SetDefaults()
	c.Output.SetDefaults()
	c.Metrics.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Planner.Validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	if c.Temperature.Type == "" {
		return fmt.Errorf("temperature: type is required")
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
