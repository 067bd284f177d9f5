package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "redis://localhost:6379", cfg.Storage.RedisURL)
	assert.Equal(t, "teamdraft", cfg.Storage.RedisKeyPrefix)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.TickInterval)
	assert.Empty(t, cfg.Engine.Seed)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, time.Minute, cfg.Metrics.Interval)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := `{
		"server": { "port": 9090, "shutdownTimeout": "5s" },
		"log": { "level": "debug" },
		"storage": { "type": "sqlite", "sqlitePath": "/tmp/draft.db" },
		"engine": { "tickInterval": "20ms" },
		"metrics": { "enabled": true, "interval": "10s" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "/tmp/draft.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 20*time.Millisecond, cfg.Engine.TickInterval)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Metrics.Interval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"server":{"port":9090}}`), 0644))
	t.Setenv("TEAMDRAFT_SERVER_PORT", "7070")
	t.Setenv("TEAMDRAFT_STORAGE_TYPE", "redis")
	t.Setenv("TEAMDRAFT_ENGINE_SEED", "demo")
	t.Setenv("TEAMDRAFT_METRICS_ENABLED", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "demo", cfg.Engine.Seed)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"server":`), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogConfig{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "WARN"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "loud"}.SlogLevel())
}
