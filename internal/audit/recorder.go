package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	auditrepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Recorder turns entity transitions into audit log rows. It always writes
// through the connection handed to it, so rows land in the same transaction
// as the change they describe.
type Recorder struct {
	now func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: func() time.Time { return time.Now().UTC() }}
}

func (r *Recorder) Added(ctx context.Context, tx *gorm.DB, e entities.Entity) error {
	return r.append(ctx, tx, e, entities.AuditActionAdded, "State:Added")
}

func (r *Recorder) Deleted(ctx context.Context, tx *gorm.DB, e entities.Entity) error {
	return r.append(ctx, tx, e, entities.AuditActionDeleted, "State:Deleted")
}

// Modified records the fields that differ between before and after.
// Nothing is written when no field changed.
func (r *Recorder) Modified(ctx context.Context, tx *gorm.DB, before, after entities.Entity) error {
	changes := Diff(before.AuditFields(), after.AuditFields())
	if changes == "" {
		return nil
	}
	return r.append(ctx, tx, after, entities.AuditActionModified, changes)
}

func (r *Recorder) append(ctx context.Context, tx *gorm.DB, e entities.Entity, action entities.AuditAction, changes string) error {
	entry := &entities.AuditLog{
		EntityName:   e.EntityName(),
		EntityID:     e.EntityID(),
		Action:       action,
		Changes:      &changes,
		TimestampUTC: r.now(),
	}
	if err := auditrepo.NewRepository(tx).Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to record %s %s: %w", action, e.EntityName(), err)
	}
	return nil
}

// Diff renders "Field:old -> new" pairs joined by ";" for every key whose
// value differs. Keys are sorted so the output is stable.
func Diff(before, after map[string]string) string {
	keys := make([]string, 0, len(after))
	for k := range after {
		keys = append(keys, k)
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		prev, cur := before[k], after[k]
		if prev == cur {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s -> %s", k, prev, cur))
	}
	return strings.Join(parts, ";")
}
