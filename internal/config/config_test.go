package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_DB", "0")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_EVENTS_CHANNEL", "")
	t.Setenv("LISTING_MAX_JOBS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, 100, cfg.Listing.MaxJobs)
	assert.Equal(t, 20, cfg.Listing.ActiveJobs)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, "jobboard:events", cfg.Redis.EventsChannel)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFallsBackOnMalformedNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "0")
	t.Setenv("POSTGRES_MAX_CONNS", "lots")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.True(t, cfg.Postgres.RunMigrations)
}

func TestWildcardOriginDisablesCredentials(t *testing.T) {
	t.Setenv("REDIS_DB", "0")
	t.Setenv("CORS_ALLOW_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.CORS.AllowCredentials)
}

func TestDurations(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "9000", RequestTimeoutSeconds: 5}
	assert.Equal(t, "127.0.0.1:9000", app.Addr())
	assert.Equal(t, 5*time.Second, app.RequestTimeout())
	assert.Zero(t, AppConfig{}.RequestTimeout())
	assert.Equal(t, 90*time.Minute, AuthConfig{AccessTokenTTLMinutes: 90}.TokenTTL())
}
