// Package config loads tripgenie settings from a TOML file, a .env file and
// TRIPGENIE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TRIPGENIE_"

// Config is the full application configuration
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Network NetworkConfig `toml:"network"`
	Sync    SyncConfig    `toml:"sync"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig points at the remote trips service
type APIConfig struct {
	URL             string        `toml:"url"`
	Token           string        `toml:"token"`
	UserID          string        `toml:"user_id"`
	Timeout         time.Duration `toml:"timeout"`
	GenerateTimeout time.Duration `toml:"generate_timeout"`
}

// StorageConfig locates the local database
type StorageConfig struct {
	Path string `toml:"path"`
}

// NetworkConfig selects the connectivity source
type NetworkConfig struct {
	// Source is auto, networkmanager, probe or offline
	Source   string `toml:"source"`
	ProbeURL string `toml:"probe_url"`
}

// SyncConfig selects the automatic sync triggers
type SyncConfig struct {
	AutoSync         bool `toml:"auto_sync"`
	SyncOnForeground bool `toml:"sync_on_foreground"`
	SyncOnMount      bool `toml:"sync_on_mount"`
}

// LoggingConfig configures the slog logger
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			URL:             "http://localhost:8080",
			Timeout:         30 * time.Second,
			GenerateTimeout: 90 * time.Second,
		},
		Storage: StorageConfig{Path: DatabasePath()},
		Network: NetworkConfig{Source: "auto"},
		Sync: SyncConfig{
			AutoSync:         true,
			SyncOnForeground: true,
			SyncOnMount:      true,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// ApplyEnvOverrides copies TRIPGENIE_* variables over the file settings
func (c *Config) ApplyEnvOverrides() {
	if v := getEnv("API_URL"); v != "" {
		c.API.URL = v
	}
	if v := getEnv("TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := getEnv("USER_ID"); v != "" {
		c.API.UserID = v
	}
	if v := getEnv("DB"); v != "" {
		c.Storage.Path = v
	}
	if v := getEnv("NETWORK_SOURCE"); v != "" {
		c.Network.Source = v
	}
	if v := getEnv("PROBE_URL"); v != "" {
		c.Network.ProbeURL = v
	}
	if b, ok := getBool("OFFLINE"); ok && b {
		c.Network.Source = "offline"
	}
	if b, ok := getBool("AUTO_SYNC"); ok {
		c.Sync.AutoSync = b
	}
	if v := getEnv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := getEnv("LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.API.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.url must be an absolute URL, got %q", c.API.URL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api.timeout must be positive"))
	}
	if c.API.GenerateTimeout <= 0 {
		errs = append(errs, errors.New("api.generate_timeout must be positive"))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}

	switch c.Network.Source {
	case "auto", "networkmanager", "probe", "offline":
	default:
		errs = append(errs, fmt.Errorf("network.source must be auto, networkmanager, probe or offline, got %q", c.Network.Source))
	}
	if c.Network.ProbeURL != "" {
		if u, err := url.Parse(c.Network.ProbeURL); err != nil || u.Scheme == "" {
			errs = append(errs, fmt.Errorf("network.probe_url must be an absolute URL, got %q", c.Network.ProbeURL))
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ExpandPath resolves a leading ~ to the home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func getBool(key string) (bool, bool) {
	v := getEnv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
