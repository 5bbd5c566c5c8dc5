package entities

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditActionAdded    AuditAction = "Added"
	AuditActionModified AuditAction = "Modified"
	AuditActionDeleted  AuditAction = "Deleted"
)

// AuditLog is an append-only record of a single entity transition.
type AuditLog struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	EntityName   string      `gorm:"size:50;not null;index" json:"entityName"`
	EntityID     uuid.UUID   `gorm:"type:uuid;index" json:"entityId"`
	Action       AuditAction `gorm:"size:20;not null" json:"action"`
	Changes      *string     `gorm:"type:text" json:"changes,omitempty"`
	TimestampUTC time.Time   `gorm:"index" json:"timestampUtc"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
