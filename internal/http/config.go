package http

import "log/slog"

// RouterConfig contains the dependencies needed to build the HTTP router.
type RouterConfig struct {
	Authors AuthorService
	Books   BookService
	Stores  StoreService
	Seed    SeedService
	Audit   AuditReader

	// Database backs the health check; nil reports "not configured".
	Database Pinger

	Logger  *slog.Logger
	Version string
}
