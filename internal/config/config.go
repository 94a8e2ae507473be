// Package config provides configuration management for topobloom.
//
// Config file locations (priority order):
//  1. $TOPOBLOOM_CONFIG
//  2. ./topobloom.yaml
//  3. $XDG_CONFIG_HOME/topobloom/config.yaml
//  4. ~/.config/topobloom/config.yaml
//  5. /etc/topobloom/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"topobloom/internal/bloom"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCapacity    = 1024
	DefaultHashCount   = 3
	DefaultDOTPath     = "topology.dot"
	DefaultCanvasWidth = 2048
	DefaultDebounce    = 500 * time.Millisecond
)

// ErrConflictingInputs is returned when more than one link source is configured
var ErrConflictingInputs = errors.New("links_file and sqlite_path are mutually exclusive")

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := ensureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Filter: FilterConfig{
			Capacity:  intPtr(DefaultCapacity),
			HashCount: intPtr(DefaultHashCount),
		},
		Output: OutputConfig{
			DOTPath:     DefaultDOTPath,
			CanvasWidth: DefaultCanvasWidth,
			Format:      "text",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{Debounce: Duration(DefaultDebounce)},
	}
}

// applyDefaults fills in missing values with defaults. Filter sizing is
// resolved by FilterParams instead so unset and zero stay distinct.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Output.CanvasWidth == 0 {
		c.Output.CanvasWidth = DefaultCanvasWidth
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(DefaultDebounce)
	}
}

// FilterParams returns the bit array size and hash count to build the
// filter with
func (c *Config) FilterParams() (m, k int) {
	m, k = DefaultCapacity, DefaultHashCount
	if c.Filter.ExpectedLinks > 0 {
		m, k = bloom.OptimalParameters(c.Filter.ExpectedLinks, c.Filter.TargetFPRate)
	}
	if c.Filter.Capacity != nil {
		m = *c.Filter.Capacity
	}
	if c.Filter.HashCount != nil {
		k = *c.Filter.HashCount
	}
	return m, k
}

func intPtr(v int) *int {
	return &v
}

// Validate checks settings that would otherwise fail later in the run
func (c *Config) Validate() error {
	m, k := c.FilterParams()
	if m <= 0 {
		return fmt.Errorf("filter.capacity: %w", bloom.ErrInvalidCapacity)
	}
	if k <= 0 {
		return fmt.Errorf("filter.hash_count: %w", bloom.ErrInvalidHashCount)
	}
	if c.Filter.TargetFPRate < 0 || c.Filter.TargetFPRate >= 1 {
		return fmt.Errorf("filter.target_fp_rate must be in [0, 1), got %v", c.Filter.TargetFPRate)
	}
	if c.Input.LinksFile != "" && c.Input.SQLitePath != "" {
		return ErrConflictingInputs
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	m, k := c.FilterParams()
	summary := fmt.Sprintf("Filter: %d bits, %d hashes, exact fallback: %v\n", m, k, c.Filter.ExactFallback)

	switch {
	case c.Input.LinksFile != "":
		summary += fmt.Sprintf("Input: file %s\n", c.Input.LinksFile)
	case c.Input.SQLitePath != "":
		summary += fmt.Sprintf("Input: sqlite %s\n", c.Input.SQLitePath)
	default:
		summary += "Input: built-in sample\n"
	}

	dot := c.Output.DOTPath
	if dot == "" {
		dot = "disabled"
	}
	summary += fmt.Sprintf("Output: %s, DOT: %s", c.Output.Format, dot)

	return summary
}
