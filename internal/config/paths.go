package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "TOPOBLOOM_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory
	ConfigFileName = "topobloom.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "topobloom"
)

// SearchPaths returns the config file candidates in priority order:
// 1. $TOPOBLOOM_CONFIG (explicit path)
// 2. ./topobloom.yaml (working directory)
// 3. $XDG_CONFIG_HOME/topobloom/config.yaml
// 4. ~/.config/topobloom/config.yaml
// 5. /etc/topobloom/config.yaml
//
// Candidates whose environment variable is unset are omitted.
func SearchPaths() []string {
	var paths []string

	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}

	paths = append(paths, ConfigFileName)

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, ConfigDirName, "config.yaml"))
	}

	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}

	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing candidate from SearchPaths,
// made absolute when it is relative. Returns empty string if none exists.
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if !fileExists(path) {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// ensureConfigDir creates the config directory if it doesn't exist
func ensureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
