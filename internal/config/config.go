package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Seed
		Cache
		Log
	}

	HTTP struct {
		Port    int32
		Host    string
		GinMode string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // gorm logger: silent, error, warn, info
	}
	Seed struct {
		FilePath string
	}
	Cache struct {
		TTL           time.Duration
		SweepSchedule string // Cron format or descriptor, e.g. "@every 1m"
	}
	Log struct {
		Level  string
		Format string // text or json
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("db_log_level", "warn")
	v.SetDefault("seed_file_path", DefaultSeedFilePath)
	v.SetDefault("cache_ttl", DefaultCacheTTL)
	v.SetDefault("cache_sweep_schedule", DefaultCacheSweepSchedule)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Seed: Seed{
			FilePath: v.GetString("SEED_FILE_PATH"),
		},
		Cache: Cache{
			TTL:           v.GetDuration("CACHE_TTL"),
			SweepSchedule: v.GetString("CACHE_SWEEP_SCHEDULE"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}
