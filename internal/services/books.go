package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/logging"
)

const (
	msgBookExists      = "Book with the same ISBN already exists."
	msgBookNotFound    = "Book not found."
	msgAuthorNotFound  = "Author not found."
	msgAuthorNotOnBook = "Author is not assigned to this book."
)

// BookService owns books and their author and store links.
type BookService struct {
	uow     *database.UnitOfWork
	books   *books.Repository
	authors *authors.Repository
	stores  *stores.Repository
	cache   *cache.Cache
}

func NewBookService(
	uow *database.UnitOfWork,
	bookRepo *books.Repository,
	authorRepo *authors.Repository,
	storeRepo *stores.Repository,
	c *cache.Cache,
) *BookService {
	return &BookService{uow: uow, books: bookRepo, authors: authorRepo, stores: storeRepo, cache: c}
}

// Create inserts a book and attaches the authors and stores that exist.
// Unknown ids are skipped; stores are attached with quantity 0.
func (s *BookService) Create(ctx context.Context, req CreateBookRequest) (*BookDetails, error) {
	log := logging.FromContext(ctx)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.books.ExistsByIsbn(ctx, req.Isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to check isbn: %w", err)
	}
	if exists {
		log.Warn("Book already exists", "isbn", req.Isbn)
		return nil, conflict(msgBookExists)
	}

	book := &entities.Book{Isbn: req.Isbn, Title: req.Title, Description: req.Description}
	var storeIDs []uuid.UUID
	err = s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.books.WithTx(tx).Add(ctx, book); err != nil {
			return err
		}
		if err := s.attachAuthors(ctx, tx, book.ID, req.AuthorIDs); err != nil {
			return err
		}
		storeIDs, err = s.attachStores(ctx, tx, book.ID, req.StoreIDs)
		return err
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, conflict(msgBookExists)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.evict(book.ID, storeIDs)
	log.Info("Book created", "book_id", book.ID, "isbn", book.Isbn)

	return s.GetByID(ctx, book.ID)
}

// Update overwrites title and description. Links are replaced only for the
// id lists that are present in req.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*BookDetails, error) {
	log := logging.FromContext(ctx)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var affectedStores []uuid.UUID
	err := s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		bookRepo := s.books.WithTx(tx)
		book, err := bookRepo.GetByID(ctx, id, "BookAuthors", "StoreBooks")
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgBookNotFound)
		}
		if err != nil {
			return err
		}
		affectedStores = book.StoreIDs()

		before := *book
		book.Title = req.Title
		book.Description = req.Description
		if err := bookRepo.Update(ctx, &before, book); err != nil {
			return err
		}

		if req.AuthorIDs != nil {
			if err := bookRepo.ClearAuthors(ctx, book); err != nil {
				return err
			}
			if err := s.attachAuthors(ctx, tx, book.ID, req.AuthorIDs); err != nil {
				return err
			}
		}

		if req.StoreIDs != nil {
			if err := bookRepo.ClearStores(ctx, book); err != nil {
				return err
			}
			attached, err := s.attachStores(ctx, tx, book.ID, req.StoreIDs)
			if err != nil {
				return err
			}
			affectedStores = append(affectedStores, attached...)
		}
		return nil
	})
	if err != nil {
		if isBusiness(err) {
			log.Warn("Book update rejected", "book_id", id, "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.evict(id, affectedStores)
	log.Info("Book updated", "book_id", id)

	return s.GetByID(ctx, id)
}

// Delete removes the book and every link to it.
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logging.FromContext(ctx)

	var stocked []uuid.UUID
	err := s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		bookRepo := s.books.WithTx(tx)
		book, err := bookRepo.GetByID(ctx, id, "BookAuthors", "StoreBooks")
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgBookNotFound)
		}
		if err != nil {
			return err
		}
		stocked = book.StoreIDs()
		return bookRepo.DeleteWithLinks(ctx, book)
	})
	if err != nil {
		if isBusiness(err) {
			return err
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.evict(id, stocked)
	log.Info("Book deleted", "book_id", id)
	return nil
}

// GetByID returns the cached detail view of a book.
func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*BookDetails, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.BookDetailsKey(id), 0, func(ctx context.Context) (*BookDetails, error) {
		book, err := s.books.GetDetails(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound(msgBookNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load book: %w", err)
		}
		return toBookDetails(*book), nil
	})
}

// GetBooks returns one page of books. Listings are never cached.
func (s *BookService) GetBooks(ctx context.Context, filter BookFilter) (*Paged[BookListItem], error) {
	logging.FromContext(ctx).Debug("Listing books",
		"title", filter.Title, "author_name", filter.AuthorName,
		"page", filter.Page, "page_size", filter.PageSize, "sort_by", filter.SortBy, "desc", filter.Desc)

	result, err := s.books.GetPaged(ctx, books.Filter{
		Title:      filter.Title,
		AuthorName: filter.AuthorName,
		SortBy:     filter.SortBy,
		Desc:       filter.Desc,
		Pagination: database.Pagination{Page: filter.Page, PageSize: filter.PageSize},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	items := make([]BookListItem, 0, len(result.Items))
	for _, b := range result.Items {
		items = append(items, BookListItem{BookSummary: toBookSummary(b), Authors: authorsOf(b)})
	}
	return &Paged[BookListItem]{
		Items:    items,
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
	}, nil
}

// AssignAuthor links an author to a book. Linking an author twice is a no-op.
func (s *BookService) AssignAuthor(ctx context.Context, req AssignAuthorRequest) (*BookDetails, error) {
	log := logging.FromContext(ctx)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		bookRepo := s.books.WithTx(tx)
		book, err := bookRepo.GetWithAuthors(ctx, req.BookID)
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgBookNotFound)
		}
		if err != nil {
			return err
		}

		author, err := s.authors.WithTx(tx).GetByID(ctx, req.AuthorID)
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgAuthorNotFound)
		}
		if err != nil {
			return err
		}

		if book.HasAuthor(author.ID) {
			return nil
		}
		err = bookRepo.AddAuthorLink(ctx, book.ID, author.ID)
		if database.IsUniqueViolation(err) {
			return nil
		}
		return err
	})
	if err != nil {
		if isBusiness(err) {
			log.Warn("Assign author rejected", "book_id", req.BookID, "author_id", req.AuthorID, "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("failed to assign author: %w", err)
	}

	s.cache.Remove(cache.BookDetailsKey(req.BookID))
	log.Info("Author assigned to book", "book_id", req.BookID, "author_id", req.AuthorID)

	return s.GetByID(ctx, req.BookID)
}

// RemoveAuthor unlinks an author from a book.
func (s *BookService) RemoveAuthor(ctx context.Context, bookID, authorID uuid.UUID) (*BookDetails, error) {
	log := logging.FromContext(ctx)

	err := s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		bookRepo := s.books.WithTx(tx)
		book, err := bookRepo.GetWithAuthors(ctx, bookID)
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgBookNotFound)
		}
		if err != nil {
			return err
		}

		for _, link := range book.BookAuthors {
			if link.AuthorID == authorID {
				return bookRepo.RemoveAuthorLink(ctx, link)
			}
		}
		return notLinked(msgAuthorNotOnBook)
	})
	if err != nil {
		if isBusiness(err) {
			log.Warn("Remove author rejected", "book_id", bookID, "author_id", authorID, "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove author: %w", err)
	}

	s.cache.Remove(cache.BookDetailsKey(bookID))
	log.Info("Author removed from book", "book_id", bookID, "author_id", authorID)

	return s.GetByID(ctx, bookID)
}

func (s *BookService) attachAuthors(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, ids *[]uuid.UUID) error {
	if ids == nil {
		return nil
	}
	wanted := distinct(*ids)
	found, err := s.authors.WithTx(tx).GetByIDs(ctx, wanted)
	if err != nil {
		return err
	}
	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, a := range found {
		existing[a.ID] = struct{}{}
	}

	bookRepo := s.books.WithTx(tx)
	for _, id := range wanted {
		if _, ok := existing[id]; !ok {
			continue
		}
		if err := bookRepo.AddAuthorLink(ctx, bookID, id); err != nil {
			return err
		}
	}
	return nil
}

// attachStores links the book to each existing store at quantity 0 and
// returns the ids it attached.
func (s *BookService) attachStores(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, ids *[]uuid.UUID) ([]uuid.UUID, error) {
	if ids == nil {
		return nil, nil
	}
	wanted := distinct(*ids)
	found, err := s.stores.WithTx(tx).GetByIDs(ctx, wanted)
	if err != nil {
		return nil, err
	}
	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, st := range found {
		existing[st.ID] = struct{}{}
	}

	bookRepo := s.books.WithTx(tx)
	attached := make([]uuid.UUID, 0, len(found))
	for _, id := range wanted {
		if _, ok := existing[id]; !ok {
			continue
		}
		if err := bookRepo.AddStoreLink(ctx, id, bookID, 0); err != nil {
			return nil, err
		}
		attached = append(attached, id)
	}
	return attached, nil
}

func (s *BookService) evict(bookID uuid.UUID, storeIDs []uuid.UUID) {
	keys := append([]string{cache.BookDetailsKey(bookID)}, cache.StoreKeys(storeIDs...)...)
	s.cache.Remove(keys...)
}
