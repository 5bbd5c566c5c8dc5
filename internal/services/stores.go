package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/entities"
	"github.com/mrlokans/bookstore/internal/logging"
)

const (
	msgStoreNotFound  = "Store not found."
	msgBookNotInStore = "Book is not assigned to this store."
)

type StoreService struct {
	uow    *database.UnitOfWork
	stores *stores.Repository
	cache  *cache.Cache
}

func NewStoreService(uow *database.UnitOfWork, storeRepo *stores.Repository, c *cache.Cache) *StoreService {
	return &StoreService{uow: uow, stores: storeRepo, cache: c}
}

func (s *StoreService) Create(ctx context.Context, req CreateStoreRequest) (*StoreSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	store := &entities.Store{Name: req.Name, Location: req.Location}
	err := s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		return s.stores.WithTx(tx).Add(ctx, store)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	s.cache.Remove(append([]string{cache.KeyStoresAll}, cache.StoreKeys(store.ID)...)...)
	logging.FromContext(ctx).Info("Store created", "store_id", store.ID)

	summary := toStoreSummary(*store)
	return &summary, nil
}

// GetAll returns every store ordered by name.
func (s *StoreService) GetAll(ctx context.Context) ([]StoreSummary, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.KeyStoresAll, 0, func(ctx context.Context) ([]StoreSummary, error) {
		all, err := s.stores.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list stores: %w", err)
		}
		out := make([]StoreSummary, 0, len(all))
		for _, st := range all {
			out = append(out, toStoreSummary(st))
		}
		return out, nil
	})
}

// GetByID returns the cached detail view of a store.
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*StoreDetails, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.StoreDetailsKey(id), 0, func(ctx context.Context) (*StoreDetails, error) {
		store, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		return toStoreDetails(*store), nil
	})
}

// GetBooks returns the books a store stocks with their quantities, ordered by title.
func (s *StoreService) GetBooks(ctx context.Context, id uuid.UUID) ([]StoreBookEntry, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.StoreBooksKey(id), 0, func(ctx context.Context) ([]StoreBookEntry, error) {
		store, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		out := make([]StoreBookEntry, 0, len(store.StoreBooks))
		for _, sb := range store.StoreBooks {
			if sb.Book == nil {
				continue
			}
			out = append(out, StoreBookEntry{BookSummary: toBookSummary(*sb.Book), Quantity: sb.Quantity})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
		return out, nil
	})
}

// AssignBook sets the quantity of a book in a store, creating the stock row
// when needed. The book id is not checked here; a dangling id fails on the
// foreign key and surfaces as a storage error.
func (s *StoreService) AssignBook(ctx context.Context, req AssignBookRequest) (*StoreDetails, error) {
	log := logging.FromContext(ctx)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		storeRepo := s.stores.WithTx(tx)
		store, err := storeRepo.GetByID(ctx, req.StoreID, "StoreBooks")
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgStoreNotFound)
		}
		if err != nil {
			return err
		}
		return storeRepo.UpsertBookLink(ctx, store, req.BookID, req.Quantity)
	})
	if err != nil {
		if isBusiness(err) {
			log.Warn("Assign book rejected", "store_id", req.StoreID, "book_id", req.BookID, "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("failed to assign book to store: %w", err)
	}

	s.evict(req.StoreID, req.BookID)
	log.Info("Book assigned to store", "store_id", req.StoreID, "book_id", req.BookID, "quantity", req.Quantity)

	return s.GetByID(ctx, req.StoreID)
}

// RemoveBook removes a book from a store's stock.
func (s *StoreService) RemoveBook(ctx context.Context, storeID, bookID uuid.UUID) (*StoreDetails, error) {
	log := logging.FromContext(ctx)

	err := s.uow.ExecuteInTransaction(ctx, func(tx *gorm.DB) error {
		storeRepo := s.stores.WithTx(tx)
		store, err := storeRepo.GetByID(ctx, storeID, "StoreBooks")
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgStoreNotFound)
		}
		if err != nil {
			return err
		}
		for _, link := range store.StoreBooks {
			if link.BookID == bookID {
				return storeRepo.RemoveBookLink(ctx, link)
			}
		}
		return notLinked(msgBookNotInStore)
	})
	if err != nil {
		if isBusiness(err) {
			log.Warn("Remove book rejected", "store_id", storeID, "book_id", bookID, "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("failed to remove book from store: %w", err)
	}

	s.evict(storeID, bookID)
	log.Info("Book removed from store", "store_id", storeID, "book_id", bookID)

	return s.GetByID(ctx, storeID)
}

func (s *StoreService) load(ctx context.Context, id uuid.UUID) (*entities.Store, error) {
	store, err := s.stores.GetWithBooks(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound(msgStoreNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return store, nil
}

func (s *StoreService) evict(storeID, bookID uuid.UUID) {
	s.cache.Remove(append(cache.StoreKeys(storeID), cache.BookDetailsKey(bookID))...)
}
