// Package authors provides author queries on top of the audited gateway.
package authors

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/database"
	"github.com/mrlokans/bookstore/internal/entities"
)

type Repository struct {
	*database.Repository[entities.Author]
}

func NewRepository(db *gorm.DB, recorder *audit.Recorder) *Repository {
	return &Repository{Repository: database.NewRepository[entities.Author](db, recorder)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Repository: r.Repository.WithTx(tx)}
}

// ExistsByName reports whether an author with exactly this first and last name exists.
func (r *Repository) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&entities.Author{}).
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		Count(&count).Error
	return count > 0, err
}

// GetAll returns every author ordered by last name, then first name.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.DB(ctx).Order("last_name ASC, first_name ASC, id ASC").Find(&authors).Error
	return authors, err
}

// GetByIDs returns the authors whose ids are in ids. Unknown ids are skipped.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var authors []entities.Author
	err := r.DB(ctx).Where("id IN ?", ids).Find(&authors).Error
	return authors, err
}
