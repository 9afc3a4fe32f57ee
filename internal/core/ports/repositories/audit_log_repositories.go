package repositories

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// AuditLogRepository appends and reads the immutable audit trail.
type AuditLogRepository interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogsForEntity(ctx context.Context, entityName, entityID string, limit, offset int) ([]domain.AuditLog, int, error)
	ListAuditLogsForProject(ctx context.Context, projectID string, limit, offset int) ([]domain.AuditLog, int, error)
}
