package config

import (
	"os"
	"path/filepath"
)

const appName = "tripgenie"

// ConfigDir returns $XDG_CONFIG_HOME/tripgenie
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns $XDG_DATA_HOME/tripgenie
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir returns $XDG_STATE_HOME/tripgenie, where logs go
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// ConfigPath returns the default config file path.
// TRIPGENIE_CONFIG overrides it.
func ConfigPath() string {
	if v := getEnv("CONFIG"); v != "" {
		return ExpandPath(v)
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// DatabasePath returns the default sqlite database path
func DatabasePath() string {
	return filepath.Join(DataDir(), "tripgenie.db")
}

// LogPath returns the default log file for interactive binaries
func LogPath(binary string) string {
	return filepath.Join(StateDir(), binary+".log")
}

func xdgDir(env, fallback string) string {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appName)
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, appName)
}
