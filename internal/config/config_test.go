package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "HOST", "GIN_MODE", "SHUTDOWN_TIMEOUT_IN_SECONDS", "DATABASE_PATH", "DB_LOG_LEVEL",
		"SEED_FILE_PATH", "CACHE_TTL", "CACHE_SWEEP_SCHEDULE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, int32(DefaultPort), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "release", cfg.HTTP.GinMode)
	assert.Equal(t, 5, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Equal(t, DefaultSeedFilePath, cfg.Seed.FilePath)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "@every 1m", cfg.Cache.SweepSchedule)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/catalog.db")
	t.Setenv("SEED_FILE_PATH", "/data/seed.yaml")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_SWEEP_SCHEDULE", "*/5 * * * *")
	t.Setenv("LOG_FORMAT", "json")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/catalog.db", cfg.Database.Path)
	assert.Equal(t, "/data/seed.yaml", cfg.Seed.FilePath)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "*/5 * * * *", cfg.Cache.SweepSchedule)
	assert.Equal(t, "json", cfg.Log.Format)
}
