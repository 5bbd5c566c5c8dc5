package http

import (
	"context"

	"github.com/google/uuid"

	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/services"
)

// Each controller depends on the narrow service interface it uses.

type AuthorService interface {
	Create(ctx context.Context, req services.CreateAuthorRequest) (*services.AuthorSummary, error)
	GetAll(ctx context.Context) ([]services.AuthorSummary, error)
	GetByID(ctx context.Context, id uuid.UUID) (*services.AuthorSummary, error)
}

type BookService interface {
	Create(ctx context.Context, req services.CreateBookRequest) (*services.BookDetails, error)
	Update(ctx context.Context, id uuid.UUID, req services.UpdateBookRequest) (*services.BookDetails, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*services.BookDetails, error)
	GetBooks(ctx context.Context, filter services.BookFilter) (*services.Paged[services.BookListItem], error)
	AssignAuthor(ctx context.Context, req services.AssignAuthorRequest) (*services.BookDetails, error)
	RemoveAuthor(ctx context.Context, bookID, authorID uuid.UUID) (*services.BookDetails, error)
}

type StoreService interface {
	Create(ctx context.Context, req services.CreateStoreRequest) (*services.StoreSummary, error)
	GetAll(ctx context.Context) ([]services.StoreSummary, error)
	GetByID(ctx context.Context, id uuid.UUID) (*services.StoreDetails, error)
	GetBooks(ctx context.Context, id uuid.UUID) ([]services.StoreBookEntry, error)
	AssignBook(ctx context.Context, req services.AssignBookRequest) (*services.StoreDetails, error)
	RemoveBook(ctx context.Context, storeID, bookID uuid.UUID) (*services.StoreDetails, error)
}

type SeedService interface {
	Seed(ctx context.Context) (string, error)
}

type AuditReader interface {
	GetLogs(ctx context.Context, entityName string, limit, offset int) ([]entities.AuditLog, int64, error)
}

// Pinger reports storage reachability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
