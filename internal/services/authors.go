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
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/logging"
)

const msgAuthorExists = "Author with the same first and last name already exists."

type AuthorService struct {
	uow     *database.UnitOfWork
	authors *authors.Repository
	cache   *cache.Cache
}

func NewAuthorService(uow *database.UnitOfWork, authorRepo *authors.Repository, c *cache.Cache) *AuthorService {
	return &AuthorService{uow: uow, authors: authorRepo, cache: c}
}

func (s *AuthorService) Create(ctx context.Context, req CreateAuthorRequest) (*AuthorSummary, error) {
	log := logging.FromContext(ctx)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.authors.ExistsByName(ctx, req.FirstName, req.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to check author name: %w", err)
	}
	if exists {
		log.Warn("Author already exists", "first_name", req.FirstName, "last_name", req.LastName)
		return nil, conflict(msgAuthorExists)
	}

	author := &entities.Author{FirstName: req.FirstName, LastName: req.LastName}
	err = s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		return s.authors.WithTx(tx).Add(ctx, author)
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, conflict(msgAuthorExists)
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	s.cache.Remove(cache.KeyAuthorsAll)
	log.Info("Author created", "author_id", author.ID)

	summary := toAuthorSummary(*author)
	return &summary, nil
}

// GetAll returns every author ordered by last then first name.
func (s *AuthorService) GetAll(ctx context.Context) ([]AuthorSummary, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.KeyAuthorsAll, 0, func(ctx context.Context) ([]AuthorSummary, error) {
		all, err := s.authors.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list authors: %w", err)
		}
		out := make([]AuthorSummary, 0, len(all))
		for _, a := range all {
			out = append(out, toAuthorSummary(a))
		}
		return out, nil
	})
}

func (s *AuthorService) GetByID(ctx context.Context, id uuid.UUID) (*AuthorSummary, error) {
	author, err := s.authors.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound("Author not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}
	summary := toAuthorSummary(*author)
	return &summary, nil
}
