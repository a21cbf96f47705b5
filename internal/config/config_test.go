package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_URL", "TOKEN", "USER_ID", "DB", "NETWORK_SOURCE", "PROBE_URL", "OFFLINE", "AUTO_SYNC", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "CONFIG"} {
		t.Setenv(EnvPrefix+key, "")
	}
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestMissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 90*time.Second, cfg.API.GenerateTimeout)
	assert.Equal(t, "auto", cfg.Network.Source)
	assert.True(t, cfg.Sync.AutoSync)
	assert.True(t, cfg.Sync.SyncOnForeground)
	assert.True(t, cfg.Sync.SyncOnMount)
	assert.Equal(t, "tripgenie.db", filepath.Base(cfg.Storage.Path))
}

func TestLoadTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[api]
url = "https://api.example.com"
token = "abc"
timeout = "10s"

[network]
source = "probe"
probe_url = "https://example.com/health"

[sync]
auto_sync = false

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.URL)
	assert.Equal(t, "abc", cfg.API.Token)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "probe", cfg.Network.Source)
	assert.False(t, cfg.Sync.AutoSync)
	assert.True(t, cfg.Sync.SyncOnMount, "unset keys keep their defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[api]\nurl = \"https://file.example.com\"\n")
	t.Setenv("TRIPGENIE_API_URL", "https://env.example.com")
	t.Setenv("TRIPGENIE_OFFLINE", "true")
	t.Setenv("TRIPGENIE_AUTO_SYNC", "0")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.API.URL)
	assert.Equal(t, "offline", cfg.Network.Source)
	assert.False(t, cfg.Sync.AutoSync)
}

func TestDotEnvFileIsLoaded(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "TRIPGENIE_USER_ID=user-from-dotenv\n")
	os.Unsetenv("TRIPGENIE_USER_ID")
	t.Cleanup(func() { os.Unsetenv("TRIPGENIE_USER_ID") })

	cfg, err := Load(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, "user-from-dotenv", cfg.API.UserID)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.URL = "not a url"
	cfg.Network.Source = "carrier-pigeon"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.url")
	assert.Contains(t, err.Error(), "network.source")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestInvalidFileIsRejected(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[api\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWatchReloadsOnChange(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[sync]\nauto_sync = true\n")

	loader := NewLoader(path)
	_, err := loader.Load()
	require.NoError(t, err)

	changes := make(chan *Config, 4)
	loader.OnChange(func(cfg *Config) { changes <- cfg })
	require.NoError(t, loader.Watch())
	defer loader.Close()

	writeFile(t, path, "[sync]\nauto_sync = false\n")

	select {
	case cfg := <-changes:
		assert.False(t, cfg.Sync.AutoSync)
		assert.False(t, loader.Config().Sync.AutoSync)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "trips.db"), ExpandPath("~/trips.db"))
	assert.Equal(t, "/var/trips.db", ExpandPath("/var/trips.db"))
}
