package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"/health", "/swagger"}, cfg.Server.PublicPaths)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)

	assert.Equal(t, "file", cfg.Cards.Source)
	assert.Equal(t, 24*time.Hour, cfg.Cards.ReloadInterval)
	assert.Equal(t, 512, cfg.Cards.SearchCacheSize)

	assert.Equal(t, "https://tcgcsv.com/tcgplayer", cfg.Prices.BaseURL)
	assert.Equal(t, 62, cfg.Prices.CategoryID)
	assert.Equal(t, 24*time.Hour, cfg.Prices.TTL)
	assert.Equal(t, 5, cfg.Prices.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.Prices.BatchTimeout)
	assert.Equal(t, 10.0, cfg.Prices.RequestsPerSecond)

	assert.True(t, cfg.Snapshots.Enabled)
	assert.Equal(t, 6*time.Hour, cfg.Snapshots.Interval)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("PRICES_TTL", "90m")
	t.Setenv("PRICES_BATCH_SIZE", "8")
	t.Setenv("CARDS_SOURCE", "storage")
	t.Setenv("SERVER_PUBLIC_PATHS", "/health,/cards")
	t.Setenv("SNAPSHOTS_ENABLED", "false")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, cfg.Prices.TTL)
	assert.Equal(t, 8, cfg.Prices.BatchSize)
	assert.Equal(t, "storage", cfg.Cards.Source)
	assert.Equal(t, []string{"/health", "/cards"}, cfg.Server.PublicPaths)
	assert.False(t, cfg.Snapshots.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\nCARDS_DATA_DIR=/srv/fab\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("CARDS_DATA_DIR")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/fab", cfg.Cards.DataDir)
}
