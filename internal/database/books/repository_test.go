package books

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

type fixture struct {
	db      *gorm.DB
	repo    *Repository
	authors *database.Repository[entities.Author]
	stores  *database.Repository[entities.Store]
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec := audit.NewRecorder()
	return &fixture{
		db:      db.DB,
		repo:    NewRepository(db.DB, rec),
		authors: database.NewRepository[entities.Author](db.DB, rec),
		stores:  database.NewRepository[entities.Store](db.DB, rec),
	}
}

func (f *fixture) book(t *testing.T, isbn, title string) *entities.Book {
	t.Helper()
	b := &entities.Book{Isbn: isbn, Title: title}
	require.NoError(t, f.repo.Add(context.Background(), b))
	return b
}

func (f *fixture) author(t *testing.T, first, last string) *entities.Author {
	t.Helper()
	a := &entities.Author{FirstName: first, LastName: last}
	require.NoError(t, f.authors.Add(context.Background(), a))
	return a
}

func TestRepository_GetByIsbn(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	b := f.book(t, "978-1", "Emma")

	found, err := f.repo.GetByIsbn(ctx, "978-1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)

	_, err = f.repo.GetByIsbn(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)

	exists, err := f.repo.ExistsByIsbn(ctx, "978-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_DuplicateIsbn(t *testing.T) {
	f := setupFixture(t)
	f.book(t, "978-1", "Emma")

	err := f.repo.Add(context.Background(), &entities.Book{Isbn: "978-1", Title: "Other"})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestRepository_Links(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	b := f.book(t, "978-1", "Good Omens")
	pratchett := f.author(t, "Terry", "Pratchett")
	gaiman := f.author(t, "Neil", "Gaiman")
	store := &entities.Store{Name: "Corner Shelf"}
	require.NoError(t, f.stores.Add(ctx, store))

	require.NoError(t, f.repo.AddAuthorLink(ctx, b.ID, pratchett.ID))
	require.NoError(t, f.repo.AddAuthorLink(ctx, b.ID, gaiman.ID))
	require.NoError(t, f.repo.AddStoreLink(ctx, store.ID, b.ID, 3))

	details, err := f.repo.GetDetails(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, details.BookAuthors, 2)
	require.NotNil(t, details.BookAuthors[0].Author)
	require.Len(t, details.StoreBooks, 1)
	assert.Equal(t, 3, details.StoreBooks[0].Quantity)
	assert.Equal(t, "Corner Shelf", details.StoreBooks[0].Store.Name)
	assert.True(t, details.HasAuthor(gaiman.ID))

	t.Run("duplicate link is rejected", func(t *testing.T) {
		err := f.repo.AddAuthorLink(ctx, b.ID, gaiman.ID)
		assert.True(t, database.IsUniqueViolation(err))
	})

	t.Run("clear authors", func(t *testing.T) {
		withAuthors, err := f.repo.GetWithAuthors(ctx, b.ID)
		require.NoError(t, err)
		require.NoError(t, f.repo.ClearAuthors(ctx, withAuthors))
		assert.Empty(t, withAuthors.BookAuthors)

		reloaded, err := f.repo.GetWithAuthors(ctx, b.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.BookAuthors)
	})

	t.Run("delete with links", func(t *testing.T) {
		require.NoError(t, f.repo.AddAuthorLink(ctx, b.ID, gaiman.ID))
		full, err := f.repo.GetDetails(ctx, b.ID)
		require.NoError(t, err)

		require.NoError(t, f.repo.DeleteWithLinks(ctx, full))

		_, err = f.repo.GetByID(ctx, b.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)

		var remaining int64
		require.NoError(t, f.db.Model(&entities.StoreBook{}).Count(&remaining).Error)
		assert.Zero(t, remaining)

		var deletedLinks int64
		require.NoError(t, f.db.Model(&entities.AuditLog{}).
			Where("entity_name = ? AND action = ?", "StoreBook", entities.AuditActionDeleted).
			Count(&deletedLinks).Error)
		assert.Equal(t, int64(1), deletedLinks)
	})
}

func TestRepository_GetPaged(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	austen := f.author(t, "Jane", "Austen")
	emma := f.book(t, "003", "Emma")
	pride := f.book(t, "001", "Pride and Prejudice")
	f.book(t, "002", "A Tale of Two Cities")
	require.NoError(t, f.repo.AddAuthorLink(ctx, emma.ID, austen.ID))
	require.NoError(t, f.repo.AddAuthorLink(ctx, pride.ID, austen.ID))

	t.Run("default sort is title", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, database.DefaultPageSize, page.PageSize)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "A Tale of Two Cities", page.Items[0].Title)
		assert.Equal(t, "Emma", page.Items[1].Title)
	})

	t.Run("sort by isbn descending", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{SortBy: SortByIsbn, Desc: true})
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "003", page.Items[0].Isbn)
		assert.Equal(t, "001", page.Items[2].Isbn)
	})

	t.Run("unknown sort falls back to title", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{SortBy: "price"})
		require.NoError(t, err)
		assert.Equal(t, "A Tale of Two Cities", page.Items[0].Title)
	})

	t.Run("title filter is case insensitive", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{Title: "PRIDE"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, pride.ID, page.Items[0].ID)
	})

	t.Run("author name filter matches full name", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{AuthorName: "jane aus"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		for _, b := range page.Items {
			require.Len(t, b.BookAuthors, 1)
			assert.Equal(t, austen.ID, b.BookAuthors[0].AuthorID)
		}
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{Title: "%"})
		require.NoError(t, err)
		assert.Zero(t, page.Total)
	})
}

func TestRepository_GetPaged_Window(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	const n = 23
	for i := 0; i < n; i++ {
		f.book(t, fmt.Sprintf("isbn-%02d", i), fmt.Sprintf("Title %02d", i))
	}

	for _, size := range []int{1, 5, 10, 23, 50} {
		pages := (n + size - 1) / size
		for p := 1; p <= pages+1; p++ {
			page, err := f.repo.GetPaged(ctx, Filter{
				SortBy:     SortByIsbn,
				Pagination: database.Pagination{Page: p, PageSize: size},
			})
			require.NoError(t, err)
			assert.Equal(t, int64(n), page.Total)

			start := (p - 1) * size
			want := size
			if start >= n {
				want = 0
			} else if start+size > n {
				want = n - start
			}
			require.Len(t, page.Items, want, "page %d size %d", p, size)
			if want > 0 {
				assert.Equal(t, fmt.Sprintf("isbn-%02d", start), page.Items[0].Isbn)
			}
		}
	}
}

func TestRepository_GetPaged_LargePages(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	const n = 300
	for i := 0; i < n; i++ {
		f.book(t, fmt.Sprintf("isbn-%03d", i), fmt.Sprintf("Title %03d", i))
	}

	t.Run("page size above one hundred", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{
			SortBy:     SortByIsbn,
			Pagination: database.Pagination{Page: 2, PageSize: 150},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(n), page.Total)
		assert.Equal(t, 150, page.PageSize)
		require.Len(t, page.Items, 150)
		assert.Equal(t, "isbn-150", page.Items[0].Isbn)
		assert.Equal(t, "isbn-299", page.Items[149].Isbn)
	})

	t.Run("page far past the end is empty", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{
			SortBy:     SortByIsbn,
			Pagination: database.Pagination{Page: 1 << 62, PageSize: 100},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(n), page.Total)
		assert.Empty(t, page.Items)
	})
}

func TestRepository_GetPaged_SortKeyCase(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	// Titles run opposite to isbn so a title fallback is detectable.
	for i := 0; i < 5; i++ {
		f.book(t, fmt.Sprintf("isbn-%03d", i), fmt.Sprintf("Title %03d", 4-i))
	}

	for _, key := range []string{"isbn", "ISBN", "Isbn", " isbn ", "createdAt", "CreatedAt", "createdat", "CREATEDAT"} {
		t.Run(key, func(t *testing.T) {
			page, err := f.repo.GetPaged(ctx, Filter{SortBy: key})
			require.NoError(t, err)
			require.Len(t, page.Items, 5)
			assert.Equal(t, "isbn-000", page.Items[0].Isbn)
			assert.Equal(t, "isbn-004", page.Items[4].Isbn)
		})
	}

	t.Run("TITLE", func(t *testing.T) {
		page, err := f.repo.GetPaged(ctx, Filter{SortBy: "TITLE"})
		require.NoError(t, err)
		assert.Equal(t, "isbn-004", page.Items[0].Isbn)
	})
}
