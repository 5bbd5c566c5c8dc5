// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Service Interfaces
//
// Controllers depend on narrow interfaces declared next to them in internal/http/interfaces.go:
//
//   - AuthorService: create and read authors
//   - BookService: book CRUD, paged listing, author links
//   - StoreService: store CRUD, stock (store/book links with quantity)
//   - SeedService: one-time catalog import
//   - AuditReader: read-only access to the audit trail
//   - Pinger: storage reachability for /health
//
// ## Data Access Interfaces
//
//   - Seeder: idempotency check plus file import (internal/services/interfaces.go)
//   - entities.Entity: what the generic repository needs to audit a row
//
// # Adding a New Catalog Entity
//
//  1. Define the model in internal/entities and implement entities.Entity:
//
//     func (Publisher) EntityName() string { return "Publisher" }
//     func (p Publisher) EntityID() uuid.UUID { return p.ID }
//     func (p Publisher) AuditFields() map[string]string { ... }
//
//  2. Add it to database.Migrate.
//
//  3. Create a sub-package internal/database/publishers that embeds
//     *database.Repository[entities.Publisher] and adds its own queries.
//
//  4. Add a service in internal/services. Run multi-row writes through
//     UnitOfWork.ExecuteInTransaction and evict cache keys after it returns.
//
//  5. Declare the controller's interface in internal/http/interfaces.go,
//     register routes in router.go, and add a compile-time check here.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
