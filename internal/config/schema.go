package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version int          `yaml:"version"`
	Filter  FilterConfig `yaml:"filter"`
	Input   InputConfig  `yaml:"input"`
	Output  OutputConfig `yaml:"output"`
	Log     LogConfig    `yaml:"log"`
	Watch   WatchConfig  `yaml:"watch"`
}

// FilterConfig sizes the bloom pre-filter. An explicit Capacity or HashCount
// always wins; unset values come from ExpectedLinks and TargetFPRate when
// those are given, else from the defaults. Nil means unset, so an explicit
// zero is kept and rejected by Validate.
type FilterConfig struct {
	Capacity      *int    `yaml:"capacity,omitempty"`
	HashCount     *int    `yaml:"hash_count,omitempty"`
	ExpectedLinks int     `yaml:"expected_links,omitempty"`
	TargetFPRate  float64 `yaml:"target_fp_rate,omitempty"`
	// ExactFallback sends filter-rejected links through the exact check
	ExactFallback bool `yaml:"exact_fallback"`
}

// InputConfig selects the link source. An empty config uses the built-in sample.
type InputConfig struct {
	LinksFile   string `yaml:"links_file,omitempty"`
	SQLitePath  string `yaml:"sqlite_path,omitempty"`
	SQLiteTable string `yaml:"sqlite_table,omitempty"`
}

// OutputConfig controls rendering and the summary format
type OutputConfig struct {
	DOTPath     string `yaml:"dot_path"` // empty disables rendering
	CanvasWidth int    `yaml:"canvas_width"`
	Format      string `yaml:"format"`
}

// LogConfig controls the logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// WatchConfig controls the watch command
type WatchConfig struct {
	Debounce Duration `yaml:"debounce"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
