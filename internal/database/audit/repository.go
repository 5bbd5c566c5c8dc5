package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstore/internal/entities"
)

// Repository persists audit log rows. Rows are only ever appended.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append saves an audit log row using whatever connection or transaction
// the repository was built with.
func (r *Repository) Append(ctx context.Context, entry *entities.AuditLog) error {
	if entry.TimestampUTC.IsZero() {
		entry.TimestampUTC = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetLogs retrieves paginated audit rows, newest first. An empty entityName
// returns rows for every entity type.
func (r *Repository) GetLogs(ctx context.Context, entityName string, limit, offset int) ([]entities.AuditLog, int64, error) {
	var logs []entities.AuditLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.AuditLog{})
	if entityName != "" {
		query = query.Where("entity_name = ?", entityName)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("timestamp_utc DESC, id DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

// GetLogsForEntity retrieves every audit row recorded for one entity id, oldest first.
func (r *Repository) GetLogsForEntity(ctx context.Context, entityID uuid.UUID) ([]entities.AuditLog, error) {
	var logs []entities.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

// Count returns the number of audit rows, optionally filtered by entity name.
func (r *Repository) Count(ctx context.Context, entityName string) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&entities.AuditLog{})
	if entityName != "" {
		query = query.Where("entity_name = ?", entityName)
	}
	err := query.Count(&total).Error
	return total, err
}
