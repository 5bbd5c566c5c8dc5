package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/seed"
	"github.com/mrlokans/bookstore/internal/database/stores"
)

type testEnv struct {
	db      *gorm.DB
	cache   *cache.Cache
	authors *AuthorService
	books   *BookService
	stores  *StoreService
	seeder  *seed.Repository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec := audit.NewRecorder()
	uow := database.NewUnitOfWork(db.DB)
	c := cache.New(time.Minute)
	authorRepo := authors.NewRepository(db.DB, rec)
	bookRepo := books.NewRepository(db.DB, rec)
	storeRepo := stores.NewRepository(db.DB, rec)

	return &testEnv{
		db:      db.DB,
		cache:   c,
		authors: NewAuthorService(uow, authorRepo, c),
		books:   NewBookService(uow, bookRepo, authorRepo, storeRepo, c),
		stores:  NewStoreService(uow, storeRepo, c),
		seeder:  seed.NewRepository(db.DB, rec),
	}
}

func (e *testEnv) author(t *testing.T, first, last string) *AuthorSummary {
	t.Helper()
	a, err := e.authors.Create(context.Background(), CreateAuthorRequest{FirstName: first, LastName: last})
	require.NoError(t, err)
	return a
}

func (e *testEnv) store(t *testing.T, name string) *StoreSummary {
	t.Helper()
	s, err := e.stores.Create(context.Background(), CreateStoreRequest{Name: name})
	require.NoError(t, err)
	return s
}

func (e *testEnv) book(t *testing.T, req CreateBookRequest) *BookDetails {
	t.Helper()
	b, err := e.books.Create(context.Background(), req)
	require.NoError(t, err)
	return b
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func authorIDs(d *BookDetails) []string {
	return ids(d.Authors, func(a AuthorSummary) string { return a.ID.String() })
}

func storeIDs(d *BookDetails) []string {
	return ids(d.Stores, func(s StoreSummary) string { return s.ID.String() })
}

func strPtr(s string) *string { return &s }
