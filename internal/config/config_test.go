package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"DATA_SOURCE", "CACHE_TTL", "COLLATION_LOCALE", "LOG_LEVEL", "QUEUE_BACKEND", "DIRECTORY_URL", "DIRECTORY_SYNC"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "csv", cfg.DataSource)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL)
	assert.Equal(t, "pl", cfg.CollationLocale)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "memory", cfg.QueueBackend)
	assert.Empty(t, cfg.DirectoryURL)
	assert.Equal(t, time.Hour, cfg.DirectorySync)
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATA_SOURCE", "sqlite")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DataSource)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CACHE_TTL", "ten minutes")
	t.Setenv("RATE_LIMIT_PER_MIN", "many")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()

	assert.Equal(t, 600*time.Second, cfg.CacheTTL)
	assert.Equal(t, 600, cfg.RateLimitPerMin)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(".env", []byte("HTTP_PORT=7000\nDATA_SOURCE=postgres\n"), 0o600))
	t.Setenv("HTTP_PORT", "")
	require.NoError(t, os.Unsetenv("HTTP_PORT"))
	t.Setenv("DATA_SOURCE", "sqlite")

	cfg := Load()

	assert.Equal(t, "7000", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DataSource, "environment wins over .env")
}
