package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"topobloom/internal/bloom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	m, k := cfg.FilterParams()
	assert.Equal(t, 1024, m)
	assert.Equal(t, 3, k)
	assert.False(t, cfg.Filter.ExactFallback)
	assert.Equal(t, "topology.dot", cfg.Output.DOTPath)
	assert.Equal(t, 2048, cfg.Output.CanvasWidth)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce.Duration())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	t.Run("applies defaults to partial file", func(t *testing.T) {
		path := writeConfig(t, "filter:\n  exact_fallback: true\ninput:\n  links_file: links.yaml\n")

		cfg, got, err := LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
		assert.True(t, cfg.Filter.ExactFallback)
		assert.Equal(t, "links.yaml", cfg.Input.LinksFile)
		assert.Nil(t, cfg.Filter.Capacity)
		m, k := cfg.FilterParams()
		assert.Equal(t, 1024, m)
		assert.Equal(t, 3, k)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("expected links sizes the filter", func(t *testing.T) {
		path := writeConfig(t, "filter:\n  expected_links: 1000\n  target_fp_rate: 0.01\n")

		cfg, _, err := LoadFromPath(path)
		require.NoError(t, err)
		m, k := cfg.FilterParams()
		wantM, wantK := bloom.OptimalParameters(1000, 0.01)
		assert.Equal(t, wantM, m)
		assert.Equal(t, wantK, k)
	})

	t.Run("explicit hash count overrides derived one", func(t *testing.T) {
		path := writeConfig(t, "filter:\n  expected_links: 1000\n  hash_count: 2\n")

		cfg, _, err := LoadFromPath(path)
		require.NoError(t, err)
		_, k := cfg.FilterParams()
		assert.Equal(t, 2, k)
	})

	t.Run("negative capacity fails fast", func(t *testing.T) {
		path := writeConfig(t, "filter:\n  capacity: -1\n  hash_count: 3\n")

		_, _, err := LoadFromPath(path)
		assert.ErrorIs(t, err, bloom.ErrInvalidCapacity)
	})

	t.Run("explicit zero sizing fails fast", func(t *testing.T) {
		path := writeConfig(t, "filter:\n  capacity: 0\n  hash_count: 0\n")

		_, _, err := LoadFromPath(path)
		assert.ErrorIs(t, err, bloom.ErrInvalidCapacity)
	})

	t.Run("explicit zero capacity beats expected links", func(t *testing.T) {
		path := writeConfig(t, "filter:\n  expected_links: 100\n  capacity: 0\n")

		_, _, err := LoadFromPath(path)
		assert.ErrorIs(t, err, bloom.ErrInvalidCapacity)
	})

	t.Run("explicit zero hash count beats expected links", func(t *testing.T) {
		path := writeConfig(t, "filter:\n  expected_links: 100\n  hash_count: 0\n")

		_, _, err := LoadFromPath(path)
		assert.ErrorIs(t, err, bloom.ErrInvalidHashCount)
	})

	t.Run("conflicting inputs", func(t *testing.T) {
		path := writeConfig(t, "input:\n  links_file: a.yaml\n  sqlite_path: b.db\n")

		_, _, err := LoadFromPath(path)
		assert.ErrorIs(t, err, ErrConflictingInputs)
	})

	t.Run("debounce parses as duration", func(t *testing.T) {
		path := writeConfig(t, "watch:\n  debounce: 2s\n")

		cfg, _, err := LoadFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, cfg.Watch.Debounce.Duration())
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "filter: [")

		_, _, err := LoadFromPath(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"zero capacity", func(c *Config) { c.Filter.Capacity = intPtr(0) }, bloom.ErrInvalidCapacity},
		{"zero hashes", func(c *Config) { c.Filter.HashCount = intPtr(0) }, bloom.ErrInvalidHashCount},
		{"negative hashes", func(c *Config) { c.Filter.HashCount = intPtr(-2) }, bloom.ErrInvalidHashCount},
		{"unset sizing uses defaults", func(c *Config) { c.Filter.Capacity, c.Filter.HashCount = nil, nil }, nil},
		{"zero capacity with expected links", func(c *Config) {
			c.Filter.ExpectedLinks = 100
			c.Filter.Capacity = intPtr(0)
			c.Filter.HashCount = nil
		}, bloom.ErrInvalidCapacity},
		{"both inputs", func(c *Config) { c.Input.LinksFile = "x"; c.Input.SQLitePath = "y" }, ErrConflictingInputs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("fp rate out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Filter.TargetFPRate = 1.5
		assert.Error(t, cfg.Validate())
	})
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Filter.Capacity = intPtr(4096)
	cfg.Filter.HashCount = intPtr(5)
	cfg.Input.SQLitePath = "/var/lib/inventory.db"
	cfg.Output.DOTPath = ""

	require.NoError(t, cfg.Save(configPath))

	loaded, path, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
	m, k := loaded.FilterParams()
	assert.Equal(t, 4096, m)
	assert.Equal(t, 5, k)
	assert.Equal(t, "/var/lib/inventory.db", loaded.Input.SQLitePath)
	assert.Empty(t, loaded.Output.DOTPath, "empty DOT path disables rendering")
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, DefaultConfig().Save(filepath.Join(tmpDir, ConfigFileName)))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(oldWd)

	t.Run("finds config in working directory", func(t *testing.T) {
		found := FindConfigPath()
		require.NotEmpty(t, found)
		assert.True(t, filepath.IsAbs(found))
	})

	t.Run("falls back when env path does not exist", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
		assert.NotEmpty(t, FindConfigPath())
	})

	t.Run("prefers explicit env path", func(t *testing.T) {
		explicit := writeConfig(t, "version: 1\n")
		t.Setenv(EnvConfigPath, explicit)
		assert.Equal(t, explicit, FindConfigPath())
	})
}

func TestSearchPaths(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/explicit.yaml")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/op")

	assert.Equal(t, []string{
		"/tmp/explicit.yaml",
		ConfigFileName,
		"/xdg/topobloom/config.yaml",
		"/home/op/.config/topobloom/config.yaml",
		"/etc/topobloom/config.yaml",
	}, SearchPaths())
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	summary := cfg.Summary()
	assert.Contains(t, summary, "1024 bits, 3 hashes")
	assert.Contains(t, summary, "built-in sample")
	assert.Contains(t, summary, "DOT: topology.dot")
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
