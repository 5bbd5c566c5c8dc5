package services

import (
	"strings"

	"github.com/google/uuid"
)

const (
	maxNameLength     = 100
	maxStoreName      = 200
	maxLocationLength = 500
	maxIsbnLength     = 32
	maxTitleLength    = 512
)

type CreateAuthorRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (r *CreateAuthorRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	switch {
	case r.FirstName == "" || r.LastName == "":
		return validation("First name and last name are required.")
	case len(r.FirstName) > maxNameLength || len(r.LastName) > maxNameLength:
		return validation("Author names must be at most %d characters.", maxNameLength)
	}
	return nil
}

type CreateStoreRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

func (r *CreateStoreRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return validation("Store name is required.")
	case len(r.Name) > maxStoreName:
		return validation("Store name must be at most %d characters.", maxStoreName)
	case r.Location != nil && len(*r.Location) > maxLocationLength:
		return validation("Store location must be at most %d characters.", maxLocationLength)
	}
	return nil
}

// CreateBookRequest links to authors and stores by id. A nil slice pointer
// means "not provided"; a pointer to an empty slice means "no links".
type CreateBookRequest struct {
	Isbn        string       `json:"isbn" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Description *string      `json:"description"`
	AuthorIDs   *[]uuid.UUID `json:"authorIds"`
	StoreIDs    *[]uuid.UUID `json:"storeIds"`
}

func (r *CreateBookRequest) Validate() error {
	r.Isbn = strings.TrimSpace(r.Isbn)
	r.Title = strings.TrimSpace(r.Title)
	switch {
	case r.Isbn == "":
		return validation("ISBN is required.")
	case len(r.Isbn) > maxIsbnLength:
		return validation("ISBN must be at most %d characters.", maxIsbnLength)
	}
	return validateTitle(r.Title)
}

// UpdateBookRequest replaces title and description. Author and store links
// are replaced only when the corresponding slice pointer is non-nil.
type UpdateBookRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description *string      `json:"description"`
	AuthorIDs   *[]uuid.UUID `json:"authorIds"`
	StoreIDs    *[]uuid.UUID `json:"storeIds"`
}

func (r *UpdateBookRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validateTitle(r.Title)
}

type AssignAuthorRequest struct {
	BookID   uuid.UUID `json:"bookId" binding:"required"`
	AuthorID uuid.UUID `json:"authorId" binding:"required"`
}

func (r *AssignAuthorRequest) Validate() error {
	if r.BookID == uuid.Nil || r.AuthorID == uuid.Nil {
		return validation("Book id and author id are required.")
	}
	return nil
}

type AssignBookRequest struct {
	StoreID  uuid.UUID `json:"storeId" binding:"required"`
	BookID   uuid.UUID `json:"bookId" binding:"required"`
	Quantity int       `json:"quantity"`
}

func (r *AssignBookRequest) Validate() error {
	switch {
	case r.StoreID == uuid.Nil || r.BookID == uuid.Nil:
		return validation("Store id and book id are required.")
	case r.Quantity < 0:
		return validation("Quantity must be zero or greater.")
	}
	return nil
}

// BookFilter selects a page of books.
type BookFilter struct {
	Title      string `form:"title"`
	AuthorName string `form:"authorName"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
	SortBy     string `form:"sortBy"`
	Desc       bool   `form:"desc"`
}

func validateTitle(title string) error {
	switch {
	case title == "":
		return validation("Title is required.")
	case len(title) > maxTitleLength:
		return validation("Title must be at most %d characters.", maxTitleLength)
	}
	return nil
}

// distinct returns ids without duplicates or nil ids, keeping first-seen order.
func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
