// Package seed imports an initial catalog from a JSON or YAML file.
//
// The file holds five collections keyed by file-local string ids:
//
//	authors:     [{id, firstName, lastName}]
//	stores:      [{id, name, location}]
//	books:       [{id, isbn, title, description}]
//	bookAuthors: [{bookId, authorId}]
//	storeBooks:  [{storeId, bookId, quantity}]
//
// Base rows are created first, then links are resolved through the local
// ids. Links that reference an unknown local id are skipped.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/entities"
)

var ErrFileNotFound = errors.New("seed data file not found")

type Author struct {
	ID        string `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
}

type Store struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Location *string `json:"location" yaml:"location"`
}

type Book struct {
	ID          string  `json:"id" yaml:"id"`
	Isbn        string  `json:"isbn" yaml:"isbn"`
	Title       string  `json:"title" yaml:"title"`
	Description *string `json:"description" yaml:"description"`
}

type BookAuthor struct {
	BookID   string `json:"bookId" yaml:"bookId"`
	AuthorID string `json:"authorId" yaml:"authorId"`
}

type StoreBook struct {
	StoreID  string `json:"storeId" yaml:"storeId"`
	BookID   string `json:"bookId" yaml:"bookId"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

type Data struct {
	Authors     []Author     `json:"authors" yaml:"authors"`
	Stores      []Store      `json:"stores" yaml:"stores"`
	Books       []Book       `json:"books" yaml:"books"`
	BookAuthors []BookAuthor `json:"bookAuthors" yaml:"bookAuthors"`
	StoreBooks  []StoreBook  `json:"storeBooks" yaml:"storeBooks"`
}

// Load reads and decodes a seed file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var data Data
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return &data, nil
}

type Repository struct {
	db       *gorm.DB
	uow      *database.UnitOfWork
	recorder *audit.Recorder
}

func NewRepository(db *gorm.DB, recorder *audit.Recorder) *Repository {
	return &Repository{db: db, uow: database.NewUnitOfWork(db), recorder: recorder}
}

// IsSeeded reports whether any book, author or store exists.
func (r *Repository) IsSeeded(ctx context.Context) (bool, error) {
	for _, model := range []any{&entities.Book{}, &entities.Author{}, &entities.Store{}} {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).Limit(1).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// SeedFromFile loads path and imports it in a single transaction.
func (r *Repository) SeedFromFile(ctx context.Context, path string) error {
	data, err := Load(path)
	if err != nil {
		return err
	}
	return r.Import(ctx, data)
}

// Import writes data in a single transaction; any failure leaves the
// database untouched.
func (r *Repository) Import(ctx context.Context, data *Data) error {
	return r.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		authorRepo := authors.NewRepository(tx, r.recorder)
		storeRepo := stores.NewRepository(tx, r.recorder)
		bookRepo := books.NewRepository(tx, r.recorder)

		authorMap := make(map[string]*entities.Author, len(data.Authors))
		for _, a := range data.Authors {
			author := &entities.Author{FirstName: a.FirstName, LastName: a.LastName}
			if err := authorRepo.Add(ctx, author); err != nil {
				return fmt.Errorf("failed to add author %q: %w", a.ID, err)
			}
			authorMap[a.ID] = author
		}

		storeMap := make(map[string]*entities.Store, len(data.Stores))
		for _, s := range data.Stores {
			store := &entities.Store{Name: s.Name, Location: s.Location}
			if err := storeRepo.Add(ctx, store); err != nil {
				return fmt.Errorf("failed to add store %q: %w", s.ID, err)
			}
			storeMap[s.ID] = store
		}

		bookMap := make(map[string]*entities.Book, len(data.Books))
		for _, b := range data.Books {
			book := &entities.Book{Isbn: b.Isbn, Title: b.Title, Description: b.Description}
			if err := bookRepo.Add(ctx, book); err != nil {
				return fmt.Errorf("failed to add book %q: %w", b.ID, err)
			}
			bookMap[b.ID] = book
		}

		for _, ba := range data.BookAuthors {
			book, okBook := bookMap[ba.BookID]
			author, okAuthor := authorMap[ba.AuthorID]
			if !okBook || !okAuthor {
				continue
			}
			if err := bookRepo.AddAuthorLink(ctx, book.ID, author.ID); err != nil {
				return fmt.Errorf("failed to link book %q to author %q: %w", ba.BookID, ba.AuthorID, err)
			}
		}

		for _, sb := range data.StoreBooks {
			store, okStore := storeMap[sb.StoreID]
			book, okBook := bookMap[sb.BookID]
			if !okStore || !okBook {
				continue
			}
			if err := bookRepo.AddStoreLink(ctx, store.ID, book.ID, sb.Quantity); err != nil {
				return fmt.Errorf("failed to stock book %q in store %q: %w", sb.BookID, sb.StoreID, err)
			}
		}

		return nil
	})
}
