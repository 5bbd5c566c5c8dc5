// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── repository.go    # Generic Repository[T] with audited writes
//	├── unit_of_work.go  # Transaction coordinator
//	├── pagination.go    # Page/PageSize normalization
//	├── authors/         # Author queries
//	├── books/           # Book queries, author and store links, paged listing
//	├── stores/          # Store queries, stock upserts
//	├── audit/           # Audit log persistence and reads
//	└── seed/            # One-time seed import
//
// # Using Sub-packages
//
// Domain repositories embed *Repository[T] and add their own queries:
//
//	db, err := database.NewDatabase("./bookstore.db")
//
//	recorder := audit.NewRecorder()
//	bookRepo := books.NewRepository(db.DB, recorder)
//
//	book, err := bookRepo.GetByIsbn(ctx, "9780141439587")
//
// # Transactions
//
// Every write appends its audit row in the same transaction. Multi-row
// writes run through UnitOfWork and rebind repositories with WithTx:
//
//	err := uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
//		repo := bookRepo.WithTx(tx)
//		if err := repo.ClearAuthors(ctx, book); err != nil {
//			return err
//		}
//		return repo.AddAuthorLink(ctx, book.ID, authorID)
//	})
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/publishers/
//  2. Embed *database.Repository[entities.Publisher] in a Repository struct
//  3. Add NewRepository(db *gorm.DB, recorder *audit.Recorder) and WithTx
//  4. Register the model in Migrate
package database
