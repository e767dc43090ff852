// Package config loads the sfbootcfg CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all sfbootcfg configuration.
type Config struct {
	Sfboot  SfbootConfig  `yaml:"sfboot"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// SfbootConfig configures how the sfboot utility is run.
type SfbootConfig struct {
	Binary  string `yaml:"binary"`  // path or name looked up in PATH
	Shell   string `yaml:"shell"`   // empty runs the binary directly
	Timeout string `yaml:"timeout"` // Go duration, e.g. "2m"
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // table, json, yaml
}

// DefaultTimeout is used when the configured timeout is empty or invalid.
const DefaultTimeout = 2 * time.Minute

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sfboot: SfbootConfig{
			Binary:  "sfboot",
			Shell:   "/bin/sh",
			Timeout: "2m",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// DefaultPath returns ~/.config/sfbootcfg/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sfbootcfg", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SFBOOT_BINARY"); v != "" {
		c.Sfboot.Binary = v
	}
	if v := os.Getenv("SFBOOT_TIMEOUT"); v != "" {
		c.Sfboot.Timeout = v
	}
	if v := os.Getenv("SFBOOT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// TimeoutDuration returns the sfboot timeout as a duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Sfboot.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

var (
	ValidLevels  = []string{"debug", "info", "warn", "error"}
	ValidFormats = []string{"json", "console"}
	ValidOutputs = []string{"table", "json", "yaml"}
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Sfboot.Binary == "" {
		return fmt.Errorf("sfboot binary not configured (set sfboot.binary or SFBOOT_BINARY)")
	}
	if c.Sfboot.Timeout != "" {
		if d, err := time.ParseDuration(c.Sfboot.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid sfboot timeout: %q", c.Sfboot.Timeout)
		}
	}
	if !contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}
	if !contains(ValidOutputs, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidOutputs)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
