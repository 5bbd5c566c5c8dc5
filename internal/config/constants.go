package config

import "time"

const (
	DefaultPort = 8080

	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookstore.db"

	// DefaultSeedFilePath is read by the seed endpoint and the seed command
	DefaultSeedFilePath = "./seed/seed-data.json"

	DefaultCacheTTL           = 5 * time.Minute
	DefaultCacheSweepSchedule = "@every 1m"
)
