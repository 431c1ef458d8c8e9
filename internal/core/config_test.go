package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.ini"))
	require.NoError(t, err)

	require.Equal(t, "http://127.0.0.1:8888/v1", cfg.Server.URL)
	require.Equal(t, "default", cfg.Collection.Bucket)
	require.Equal(t, "items", cfg.Collection.Collection)
	require.Equal(t, DefaultLimit, cfg.UI.Limit)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")

	cfg := DefaultConfig()
	cfg.Server.URL = "https://records.example.com/v1"
	cfg.Server.Username = "alice"
	cfg.Server.Password = "secret"
	cfg.Collection.Bucket = "team"
	cfg.Collection.Collection = "tasks"
	cfg.UI.Limit = 20

	require.NoError(t, SaveConfigTo(&cfg, path))

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	require.Equal(t, cfg, *loaded)
}

func TestConfigResource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collection.Bucket = "team"
	cfg.Collection.Collection = "tasks"

	res := cfg.Resource()

	require.Equal(t, "team", res.Bucket)
	require.Equal(t, "tasks", res.Collection)
}

func TestConfigClientConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Username = "alice"
	cfg.Server.Password = "secret"

	cc := cfg.ClientConfig()

	require.Equal(t, cfg.Server.URL, cc.BaseURL)
	require.Equal(t, "alice", cc.Username)
	require.Equal(t, "secret", cc.Password)
}
