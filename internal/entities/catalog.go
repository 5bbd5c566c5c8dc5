package entities

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is implemented by every persisted catalog type. The audit recorder
// uses it to describe a change without reflecting over gorm internals.
type Entity interface {
	EntityName() string
	EntityID() uuid.UUID
	AuditFields() map[string]string
}

// Model holds the identity and timestamps shared by Author, Store and Book.
type Model struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Author struct {
	Model
	FirstName   string       `gorm:"size:100;not null;uniqueIndex:idx_authors_name,priority:1" json:"firstName"`
	LastName    string       `gorm:"size:100;not null;uniqueIndex:idx_authors_name,priority:2" json:"lastName"`
	BookAuthors []BookAuthor `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

func (Author) EntityName() string { return "Author" }

func (a Author) EntityID() uuid.UUID { return a.ID }

func (a Author) AuditFields() map[string]string {
	return map[string]string{
		"FirstName": a.FirstName,
		"LastName":  a.LastName,
	}
}

// FullName is the "first last" form used by the author-name book filter.
func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

type Store struct {
	Model
	Name       string      `gorm:"size:200;not null;index" json:"name"`
	Location   *string     `gorm:"size:500" json:"location,omitempty"`
	StoreBooks []StoreBook `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}

func (Store) EntityName() string { return "Store" }

func (s Store) EntityID() uuid.UUID { return s.ID }

func (s Store) AuditFields() map[string]string {
	return map[string]string{
		"Name":     s.Name,
		"Location": deref(s.Location),
	}
}

type Book struct {
	Model
	Isbn        string       `gorm:"size:32;not null;uniqueIndex" json:"isbn"`
	Title       string       `gorm:"size:512;not null;index" json:"title"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	BookAuthors []BookAuthor `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	StoreBooks  []StoreBook  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

func (Book) EntityName() string { return "Book" }

func (b Book) EntityID() uuid.UUID { return b.ID }

func (b Book) AuditFields() map[string]string {
	return map[string]string{
		"Isbn":        b.Isbn,
		"Title":       b.Title,
		"Description": deref(b.Description),
	}
}

// HasAuthor reports whether the loaded BookAuthors contain authorID.
func (b Book) HasAuthor(authorID uuid.UUID) bool {
	for _, ba := range b.BookAuthors {
		if ba.AuthorID == authorID {
			return true
		}
	}
	return false
}

// StoreIDs returns the ids of the stores linked through the loaded StoreBooks.
func (b Book) StoreIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.StoreBooks))
	for _, sb := range b.StoreBooks {
		ids = append(ids, sb.StoreID)
	}
	return ids
}

// BookAuthor is a membership row; it has no identity of its own.
type BookAuthor struct {
	BookID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"bookId"`
	AuthorID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"authorId"`
	Author   *Author   `gorm:"foreignKey:AuthorID" json:"-"`
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (BookAuthor) EntityName() string { return "BookAuthor" }

func (BookAuthor) EntityID() uuid.UUID { return uuid.Nil }

func (ba BookAuthor) AuditFields() map[string]string {
	return map[string]string{
		"BookId":   ba.BookID.String(),
		"AuthorId": ba.AuthorID.String(),
	}
}

// StoreBook is a membership row carrying the stocked quantity.
type StoreBook struct {
	StoreID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"storeId"`
	BookID   uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"bookId"`
	Quantity int       `gorm:"not null;default:0;check:chk_store_books_quantity,quantity >= 0" json:"quantity"`
	Store    *Store    `gorm:"foreignKey:StoreID" json:"-"`
	Book     *Book     `gorm:"foreignKey:BookID" json:"-"`
}

func (StoreBook) TableName() string {
	return "store_books"
}

func (StoreBook) EntityName() string { return "StoreBook" }

func (StoreBook) EntityID() uuid.UUID { return uuid.Nil }

func (sb StoreBook) AuditFields() map[string]string {
	return map[string]string{
		"StoreId":  sb.StoreID.String(),
		"BookId":   sb.BookID.String(),
		"Quantity": strconv.Itoa(sb.Quantity),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
