// Package stores provides store queries and store stock writes.
package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

type Repository struct {
	*database.Repository[entities.Store]
	stock *database.Repository[entities.StoreBook]
}

func NewRepository(db *gorm.DB, recorder *audit.Recorder) *Repository {
	return &Repository{
		Repository: database.NewRepository[entities.Store](db, recorder),
		stock:      database.NewRepository[entities.StoreBook](db, recorder),
	}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{
		Repository: r.Repository.WithTx(tx),
		stock:      r.stock.WithTx(tx),
	}
}

// GetAll returns every store ordered by name.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Store, error) {
	var stores []entities.Store
	err := r.DB(ctx).Order("name ASC, id ASC").Find(&stores).Error
	return stores, err
}

// GetWithBooks loads a store with its stock rows and their books.
func (r *Repository) GetWithBooks(ctx context.Context, id uuid.UUID) (*entities.Store, error) {
	return r.GetByID(ctx, id, "StoreBooks.Book")
}

// GetByIDs returns the stores whose ids are in ids. Unknown ids are skipped.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Store, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var stores []entities.Store
	err := r.DB(ctx).Where("id IN ?", ids).Find(&stores).Error
	return stores, err
}

// UpsertBookLink sets the quantity of bookID in store, creating the stock
// row when the store's loaded StoreBooks do not contain it yet.
func (r *Repository) UpsertBookLink(ctx context.Context, store *entities.Store, bookID uuid.UUID, quantity int) error {
	for i, link := range store.StoreBooks {
		if link.BookID != bookID {
			continue
		}
		before := entities.StoreBook{StoreID: link.StoreID, BookID: link.BookID, Quantity: link.Quantity}
		after := before
		after.Quantity = quantity
		if err := r.stock.Update(ctx, &before, &after); err != nil {
			return err
		}
		store.StoreBooks[i].Quantity = quantity
		return nil
	}

	link := entities.StoreBook{StoreID: store.ID, BookID: bookID, Quantity: quantity}
	if err := r.stock.Add(ctx, &link); err != nil {
		return err
	}
	store.StoreBooks = append(store.StoreBooks, link)
	return nil
}

func (r *Repository) RemoveBookLink(ctx context.Context, link entities.StoreBook) error {
	return r.stock.Delete(ctx, &entities.StoreBook{StoreID: link.StoreID, BookID: link.BookID, Quantity: link.Quantity})
}
