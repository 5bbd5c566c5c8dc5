package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/seed"
	"github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/services"
)

// =============================================================================
// Catalog Services
// =============================================================================

var _ http.AuthorService = (*services.AuthorService)(nil)
var _ http.BookService = (*services.BookService)(nil)
var _ http.StoreService = (*services.StoreService)(nil)
var _ http.SeedService = (*services.SeedService)(nil)

// =============================================================================
// Data Access Layer
// =============================================================================

// Seeder implementations
var _ services.Seeder = (*seed.Repository)(nil)

// AuditReader implementations
var _ http.AuditReader = (*audit.Service)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)
