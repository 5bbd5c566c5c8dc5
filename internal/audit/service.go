package audit

import (
	"context"

	auditrepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/entities"
)

// Service exposes read access to the audit trail.
type Service struct {
	repo *auditrepo.Repository
}

func NewService(repo *auditrepo.Repository) *Service {
	return &Service{repo: repo}
}

// GetLogs returns audit rows newest first, optionally limited to one entity type.
func (s *Service) GetLogs(ctx context.Context, entityName string, limit, offset int) ([]entities.AuditLog, int64, error) {
	return s.repo.GetLogs(ctx, entityName, limit, offset)
}
