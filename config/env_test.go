package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/config"
)

func TestLoadFromLayering(t *testing.T) {
	t.Cleanup(config.Reset)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"app_port":"9000","db_driver":"postgres","rate_limit_per_minute":50}`), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nAPP_PORT=9100\nSESSION_TTL=\"30m\"\n"), 0o644))

	require.NoError(t, config.LoadFrom(jsonPath, envPath))

	assert.Equal(t, "9100", config.AppPort(), ".env wins over app.json")
	assert.Equal(t, "postgres", config.DatabaseDriver())
	assert.Contains(t, config.DatabaseDSN(), "dbname=orderdesk")
	assert.Equal(t, 30*time.Minute, config.SessionTTL())
	assert.Equal(t, 50, config.RateLimitPerMinute())
}

func TestMissingFilesFallBackToDefaults(t *testing.T) {
	t.Cleanup(config.Reset)

	dir := t.TempDir()
	require.NoError(t, config.LoadFrom(filepath.Join(dir, "nope.json"), filepath.Join(dir, ".nope")))

	assert.Equal(t, "sqlite", config.DatabaseDriver())
	assert.Equal(t, "orderdesk.db", config.DatabaseDSN())
	assert.Equal(t, "memory", config.SessionDriver())
	assert.Equal(t, 5*time.Minute, config.ProductCacheTTL())
}

func TestUnknownDriverFallsBack(t *testing.T) {
	t.Cleanup(config.Reset)
	config.Set("DB_DRIVER", "oracle")
	assert.Equal(t, "sqlite", config.DatabaseDriver())
}

func TestSetOverridesEnvironment(t *testing.T) {
	t.Cleanup(config.Reset)
	t.Setenv("APP_ENV", "staging")
	assert.Equal(t, "staging", config.AppEnv())

	config.Set("APP_ENV", "production")
	assert.Equal(t, "production", config.AppEnv())
	assert.True(t, config.IsProduction())
}

func TestTypedReadersRejectGarbage(t *testing.T) {
	t.Cleanup(config.Reset)
	config.Set("MAX_UPLOAD_BYTES", "lots")
	config.Set("SESSION_SECURE", "maybe")
	config.Set("SESSION_TTL", "-5m")

	assert.Equal(t, int64(2<<20), config.MaxUploadBytes())
	assert.False(t, config.SessionSecure())
	assert.Equal(t, 2*time.Hour, config.SessionTTL())
}
