package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INTAKE_ADDR", "PORT", "DATA_DIR", "DATA_FILE", "STORE_BACKEND",
		"DATABASE_URL", "REDIS_URL", "REDIS_KEY", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, filepath.Join("data", "submissions.json"), cfg.SubmissionsPath())
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "intake:submissions", cfg.Redis.Key)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvAddress(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	assert.Equal(t, ":8081", FromEnv().Addr)

	t.Setenv("INTAKE_ADDR", "127.0.0.1:9000")
	assert.Equal(t, "127.0.0.1:9000", FromEnv().Addr, "INTAKE_ADDR wins over PORT")
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", "/var/lib/intake")
	t.Setenv("DATA_FILE", "forms.json")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := FromEnv()

	assert.Equal(t, "/var/lib/intake/forms.json", cfg.SubmissionsPath())
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestInvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	assert.Equal(t, 10*time.Second, FromEnv().ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	cfg.StoreBackend = BackendPostgres
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg.DatabaseURL = "postgres://intake@localhost/intake"
	assert.NoError(t, cfg.Validate())

	cfg.StoreBackend = BackendRedis
	assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")

	cfg.StoreBackend = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "unknown STORE_BACKEND")
}
