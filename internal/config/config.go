package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config holds the vsbasin command configuration.
type Config struct {
	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Exported files
	Output OutputConfig `yaml:"output"`

	// Iso-velocity surfaces
	IsoVelocity IsoVelocityConfig `yaml:"isovelocity"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error
	File       string `yaml:"file"`  // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// OutputConfig configures where and how frames are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // csv, msgpack, netcdf
}

// IsoVelocityConfig lists the velocities (km/s) whose depth surfaces are
// extracted when none are given on the command line.
type IsoVelocityConfig struct {
	Targets []float64 `yaml:"targets"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  32,
			MaxBackups: 1,
		},
		Output: OutputConfig{
			Dir:    ".",
			Prefix: "basin",
			Format: "csv",
		},
		IsoVelocity: IsoVelocityConfig{
			Targets: []float64{1.0, 2.5},
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

var levels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for values the command cannot use.
func (c *Config) Validate() error {
	if !slices.Contains(levels, c.Logging.Level) {
		return fmt.Errorf("logging.level %q: want one of %v", c.Logging.Level, levels)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging: negative rotation limits")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is empty")
	}
	if c.Output.Format == "" {
		return fmt.Errorf("output.format is empty")
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
