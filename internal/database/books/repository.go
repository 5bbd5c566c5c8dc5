// Package books provides book queries and the author/store link writes
// that hang off a book.
//
// Usage:
//
//	repo := books.NewRepository(db.DB, recorder)
//	book, err := repo.GetDetails(ctx, id)
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

const (
	SortByTitle     = "title"
	SortByIsbn      = "isbn"
	SortByCreatedAt = "createdAt"
)

// sortColumns is keyed by the lowercased sort key.
var sortColumns = map[string]string{
	"title":     "title",
	"isbn":      "isbn",
	"createdat": "created_at",
}

const authorNameFilter = `EXISTS (SELECT 1 FROM book_authors ba JOIN authors a ON a.id = ba.author_id
	WHERE ba.book_id = books.id AND instr(LOWER(a.first_name || ' ' || a.last_name), LOWER(?)) > 0)`

// Filter narrows and orders a paged book listing.
type Filter struct {
	Title      string
	AuthorName string
	SortBy     string
	Desc       bool
	database.Pagination
}

type Repository struct {
	*database.Repository[entities.Book]
	authorLinks *database.Repository[entities.BookAuthor]
	storeLinks  *database.Repository[entities.StoreBook]
}

func NewRepository(db *gorm.DB, recorder *audit.Recorder) *Repository {
	return &Repository{
		Repository:  database.NewRepository[entities.Book](db, recorder),
		authorLinks: database.NewRepository[entities.BookAuthor](db, recorder),
		storeLinks:  database.NewRepository[entities.StoreBook](db, recorder),
	}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{
		Repository:  r.Repository.WithTx(tx),
		authorLinks: r.authorLinks.WithTx(tx),
		storeLinks:  r.storeLinks.WithTx(tx),
	}
}

func (r *Repository) GetByIsbn(ctx context.Context, isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.DB(ctx).Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) ExistsByIsbn(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&entities.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	return count > 0, err
}

// GetDetails loads a book with its authors and the stores stocking it.
func (r *Repository) GetDetails(ctx context.Context, id uuid.UUID) (*entities.Book, error) {
	return r.GetByID(ctx, id, "BookAuthors.Author", "StoreBooks.Store")
}

func (r *Repository) GetWithAuthors(ctx context.Context, id uuid.UUID) (*entities.Book, error) {
	return r.GetByID(ctx, id, "BookAuthors.Author")
}

func (r *Repository) GetWithStores(ctx context.Context, id uuid.UUID) (*entities.Book, error) {
	return r.GetByID(ctx, id, "StoreBooks")
}

// GetPaged returns one page of books matching f with their authors loaded.
// The total is counted before paging.
func (r *Repository) GetPaged(ctx context.Context, f Filter) (database.PagedResult[entities.Book], error) {
	page := f.Pagination.Normalize()
	result := database.PagedResult[entities.Book]{Page: page.Page, PageSize: page.PageSize}

	filtered := func() *gorm.DB {
		q := r.DB(ctx).Model(&entities.Book{})
		if f.Title != "" {
			q = q.Where("instr(LOWER(title), LOWER(?)) > 0", f.Title)
		}
		if f.AuthorName != "" {
			q = q.Where(authorNameFilter, f.AuthorName)
		}
		return q
	}

	if err := filtered().Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("failed to count books: %w", err)
	}

	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(f.SortBy))]
	if !ok {
		column = sortColumns["title"]
	}
	direction := "ASC"
	if f.Desc {
		direction = "DESC"
	}

	err := filtered().
		Preload("BookAuthors.Author").
		Order(fmt.Sprintf("%s %s, id ASC", column, direction)).
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("failed to list books: %w", err)
	}
	return result, nil
}

func (r *Repository) AddAuthorLink(ctx context.Context, bookID, authorID uuid.UUID) error {
	return r.authorLinks.Add(ctx, &entities.BookAuthor{BookID: bookID, AuthorID: authorID})
}

func (r *Repository) RemoveAuthorLink(ctx context.Context, link entities.BookAuthor) error {
	return r.authorLinks.Delete(ctx, &entities.BookAuthor{BookID: link.BookID, AuthorID: link.AuthorID})
}

// ClearAuthors removes every loaded author link of book.
func (r *Repository) ClearAuthors(ctx context.Context, book *entities.Book) error {
	for _, link := range book.BookAuthors {
		if err := r.RemoveAuthorLink(ctx, link); err != nil {
			return err
		}
	}
	book.BookAuthors = nil
	return nil
}

func (r *Repository) AddStoreLink(ctx context.Context, storeID, bookID uuid.UUID, quantity int) error {
	return r.storeLinks.Add(ctx, &entities.StoreBook{StoreID: storeID, BookID: bookID, Quantity: quantity})
}

// ClearStores removes every loaded store link of book.
func (r *Repository) ClearStores(ctx context.Context, book *entities.Book) error {
	for _, link := range book.StoreBooks {
		sb := entities.StoreBook{StoreID: link.StoreID, BookID: link.BookID, Quantity: link.Quantity}
		if err := r.storeLinks.Delete(ctx, &sb); err != nil {
			return err
		}
	}
	book.StoreBooks = nil
	return nil
}

// DeleteWithLinks removes the book's loaded links and then the book itself.
func (r *Repository) DeleteWithLinks(ctx context.Context, book *entities.Book) error {
	if err := r.ClearAuthors(ctx, book); err != nil {
		return err
	}
	if err := r.ClearStores(ctx, book); err != nil {
		return err
	}
	return r.Delete(ctx, book)
}
