package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the optional configuration file passed with --config.
type Config struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
	// Output controls how the generated declaration is written.
	Output OutputConfig `yaml:"output"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty means stderr.
	Path string `yaml:"path"`
}

// OutputConfig configures the generated file.
type OutputConfig struct {
	// Atomic writes to a temporary file and renames it over the output.
	Atomic *bool `yaml:"atomic"`
	// WrapWidth is the character tally that starts a new string segment.
	WrapWidth int `yaml:"wrap_width"`
}

const (
	defaultLogLevel  = "warn"
	defaultWrapWidth = 160

	// minWrapWidth is the smallest width that fits one \xHH escape.
	minWrapWidth = 5
)

// Load reads and parses the configuration file at path.
// Defaults are applied and the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for configuration fields that are missing.
func ApplyDefaults(config *Config) {
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	if config.Output.Atomic == nil {
		t := true
		config.Output.Atomic = &t
	}
	if config.Output.WrapWidth == 0 {
		config.Output.WrapWidth = defaultWrapWidth
	}
}

// Validate checks the configuration for errors.
func Validate(config *Config) error {
	if config.Logging.Level != "" {
		switch strings.ToLower(config.Logging.Level) {
		case "debug", "info", "warn", "error":
			// ok
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
		}
	}

	if config.Output.WrapWidth != 0 && config.Output.WrapWidth < minWrapWidth {
		return fmt.Errorf("invalid wrap_width: %d (must be at least %d)", config.Output.WrapWidth, minWrapWidth)
	}

	return nil
}

// IsAtomic reports whether output should be written atomically.
func (c *Config) IsAtomic() bool {
	return c.Output.Atomic == nil || *c.Output.Atomic
}
