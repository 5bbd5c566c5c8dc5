package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Repository is the audited persistence gateway for one entity type.
// Every write and its audit rows commit together; when the repository is
// bound to an outer transaction the write runs inside a savepoint.
type Repository[T entities.Entity] struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

func NewRepository[T entities.Entity](db *gorm.DB, recorder *audit.Recorder) *Repository[T] {
	return &Repository[T]{db: db, recorder: recorder}
}

// WithTx returns a copy bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, recorder: r.recorder}
}

// DB exposes the bound connection for specialised queries.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository[T]) Recorder() *audit.Recorder {
	return r.recorder
}

func (r *Repository[T]) Add(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
			return err
		}
		return r.recorder.Added(ctx, tx, *entity)
	})
}

// GetByID loads one row, applying the given gorm preloads.
func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID, preloads ...string) (*T, error) {
	var entity T
	query := r.db.WithContext(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// List returns every row matching query. A nil query returns all rows.
func (r *Repository[T]) List(ctx context.Context, query any, args ...any) ([]T, error) {
	var result []T
	tx := r.db.WithContext(ctx)
	if query != nil {
		tx = tx.Where(query, args...)
	}
	err := tx.Find(&result).Error
	return result, err
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var model T
	err := r.db.WithContext(ctx).Model(&model).Count(&count).Error
	return count, err
}

// Update saves after and records the field differences from before.
func (r *Repository[T]) Update(ctx context.Context, before, after *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(after).Error; err != nil {
			return err
		}
		return r.recorder.Modified(ctx, tx, *before, *after)
	})
}

func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(entity)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return r.recorder.Deleted(ctx, tx, *entity)
	})
}
