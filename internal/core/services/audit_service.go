package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/platform/events"
	"github.com/google/uuid"
)

// auditService implements AuditSvcFacade. Recording is best-effort by
// contract: an audit failure is logged and never propagates to the mutation
// that triggered it. Entries are additionally published to the event bus
// when one is configured.
type auditService struct {
	auditRepo   portsrepo.AuditLogRepository
	projectRepo portsrepo.ProjectRepository
	publisher   *events.Publisher
}

// NewAuditService creates a new instance of auditService. publisher may be
// nil when no broker is configured.
func NewAuditService(auditRepo portsrepo.AuditLogRepository, projectRepo portsrepo.ProjectRepository, publisher *events.Publisher) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo:   auditRepo,
		projectRepo: projectRepo,
		publisher:   publisher,
	}
}

// Record persists an audit entry, filling in the ID and timestamp.
func (s *auditService) Record(ctx context.Context, entry domain.AuditLog) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if entry.AuditLogID == "" {
		entry.AuditLogID = uuid.NewString()
	}
	if entry.PerformedAt.IsZero() {
		entry.PerformedAt = time.Now()
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		logger.Warn("failed to record audit entry",
			slog.String("entity", entry.EntityName),
			slog.String("entity_id", entry.EntityID),
			slog.String("error", err.Error()))
		return
	}

	routingKey := fmt.Sprintf("audit.%s.%s", entry.EntityName, entry.ActionType)
	if err := s.publisher.Publish(ctx, routingKey, entry); err != nil {
		logger.Warn("failed to publish audit event",
			slog.String("routing_key", routingKey),
			slog.String("error", err.Error()))
	}
}

// ListForProject returns the audit trail of a project. Any member may read
// it; the membership check goes straight to the repository to keep this
// service free of a dependency on the project service.
func (s *auditService) ListForProject(ctx context.Context, projectID, callerID string, page, pageSize int) ([]domain.AuditLog, int, error) {
	if _, err := s.projectRepo.FindMemberRole(ctx, projectID, callerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, apperrors.ErrForbidden
		}
		return nil, 0, fmt.Errorf("failed to resolve project membership: %w", err)
	}

	offset := (page - 1) * pageSize
	entries, total, err := s.auditRepo.ListAuditLogsForProject(ctx, projectID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, total, nil
}
