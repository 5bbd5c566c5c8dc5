package services

import (
	"github.com/google/uuid"

	"github.com/mrlokans/bookstore/internal/entities"
)

type AuthorSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

type StoreSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location *string   `json:"location"`
}

type BookSummary struct {
	ID          uuid.UUID `json:"id"`
	Isbn        string    `json:"isbn"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
}

// BookListItem is one row of the paged book listing.
type BookListItem struct {
	BookSummary
	Authors []AuthorSummary `json:"authors"`
}

type BookDetails struct {
	ID          uuid.UUID       `json:"id"`
	Isbn        string          `json:"isbn"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Authors     []AuthorSummary `json:"authors"`
	Stores      []StoreSummary  `json:"stores"`
}

type StoreDetails struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Location *string       `json:"location"`
	Books    []BookSummary `json:"books"`
}

// StoreBookEntry is a book stocked by a store with its quantity.
type StoreBookEntry struct {
	BookSummary
	Quantity int `json:"quantity"`
}

type Paged[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func toAuthorSummary(a entities.Author) AuthorSummary {
	return AuthorSummary{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName}
}

func toStoreSummary(s entities.Store) StoreSummary {
	return StoreSummary{ID: s.ID, Name: s.Name, Location: s.Location}
}

func toBookSummary(b entities.Book) BookSummary {
	return BookSummary{ID: b.ID, Isbn: b.Isbn, Title: b.Title, Description: b.Description}
}

// authorsOf returns the distinct authors linked through the loaded BookAuthors.
func authorsOf(b entities.Book) []AuthorSummary {
	seen := make(map[uuid.UUID]struct{}, len(b.BookAuthors))
	out := make([]AuthorSummary, 0, len(b.BookAuthors))
	for _, ba := range b.BookAuthors {
		if ba.Author == nil {
			continue
		}
		if _, dup := seen[ba.Author.ID]; dup {
			continue
		}
		seen[ba.Author.ID] = struct{}{}
		out = append(out, toAuthorSummary(*ba.Author))
	}
	return out
}

func toBookDetails(b entities.Book) *BookDetails {
	seen := make(map[uuid.UUID]struct{}, len(b.StoreBooks))
	stores := make([]StoreSummary, 0, len(b.StoreBooks))
	for _, sb := range b.StoreBooks {
		if sb.Store == nil {
			continue
		}
		if _, dup := seen[sb.Store.ID]; dup {
			continue
		}
		seen[sb.Store.ID] = struct{}{}
		stores = append(stores, toStoreSummary(*sb.Store))
	}

	return &BookDetails{
		ID:          b.ID,
		Isbn:        b.Isbn,
		Title:       b.Title,
		Description: b.Description,
		Authors:     authorsOf(b),
		Stores:      stores,
	}
}

func toStoreDetails(s entities.Store) *StoreDetails {
	seen := make(map[uuid.UUID]struct{}, len(s.StoreBooks))
	books := make([]BookSummary, 0, len(s.StoreBooks))
	for _, sb := range s.StoreBooks {
		if sb.Book == nil {
			continue
		}
		if _, dup := seen[sb.Book.ID]; dup {
			continue
		}
		seen[sb.Book.ID] = struct{}{}
		books = append(books, toBookSummary(*sb.Book))
	}

	return &StoreDetails{ID: s.ID, Name: s.Name, Location: s.Location, Books: books}
}
