// Package config loads procure's configuration from flags, environment, .env and the config file.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where the session and submission history live.
func DefaultDatabasePath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local/share"), "procure", "procure.db")
}

// DefaultLogPath is where logs go while the terminal UI owns the screen.
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", ".local/state"), "procure", "procure.log")
}

// ConfigDir is searched for config.yaml.
func ConfigDir() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "procure")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return ExpandPath("~/" + fallback)
}
