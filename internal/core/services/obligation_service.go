package services

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// obligationService implements ObligationSvcFacade. Balance fields are
// derived on every read from the linked payments; nothing derived is stored.
type obligationService struct {
	obligationRepo portsrepo.ObligationRepository
	projectAuth    portssvc.ProjectAuthorizerSvc
	audit          portssvc.AuditSvcFacade
}

// NewObligationService creates a new instance of obligationService.
func NewObligationService(obligationRepo portsrepo.ObligationRepository, projectAuth portssvc.ProjectAuthorizerSvc, audit portssvc.AuditSvcFacade) portssvc.ObligationSvcFacade {
	return &obligationService{
		obligationRepo: obligationRepo,
		projectAuth:    projectAuth,
		audit:          audit,
	}
}

// CreateObligation creates an obligation. Editors and owners only. The total
// amount must be strictly positive so the balance derivation never sees a
// degenerate obligation.
func (s *obligationService) CreateObligation(ctx context.Context, projectID string, req dto.CreateObligationRequest, callerID string) (*domain.ObligationWithBalance, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return nil, err
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("totalAmount must be positive: %w", apperrors.ErrValidation)
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	obligation := domain.Obligation{
		ObligationID:    uuid.NewString(),
		ProjectID:       projectID,
		CreatedByUserID: callerID,
		Title:           req.Title,
		Description:     req.Description,
		TotalAmount:     req.TotalAmount,
		CurrencyCode:    req.CurrencyCode,
		DueDate:         dueDate,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		return nil, fmt.Errorf("failed to create obligation: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "obligations",
		EntityID:          obligation.ObligationID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: callerID,
		NewValues:         map[string]any{"title": obligation.Title, "totalAmount": obligation.TotalAmount.String()},
	})

	enriched := obligation.WithBalance(decimal.Zero, now)
	return &enriched, nil
}

// GetObligation returns an obligation enriched with its payment balance.
func (s *obligationService) GetObligation(ctx context.Context, projectID, obligationID, callerID string) (*domain.ObligationWithBalance, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, err
	}

	obligation, err := s.obligationRepo.FindObligationByID(ctx, projectID, obligationID)
	if err != nil {
		return nil, err
	}

	paid, err := s.paidAmountFor(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	enriched := obligation.WithBalance(paid, time.Now())
	return &enriched, nil
}

// ListObligations returns a page of obligations, each enriched with its
// balance. The status filter runs after enrichment because status is derived
// at read time, never stored.
func (s *obligationService) ListObligations(ctx context.Context, projectID string, params dto.ListObligationsParams, callerID string) ([]domain.ObligationWithBalance, int, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, 0, err
	}

	obligations, total, err := s.obligationRepo.ListObligations(ctx, projectID, params.SortBy, params.SortDirection == "desc", params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list obligations: %w", err)
	}

	ids := make([]string, len(obligations))
	for i, o := range obligations {
		ids[i] = o.ObligationID
	}
	paidByID, err := s.obligationRepo.PaidAmounts(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate obligation payments: %w", err)
	}

	now := time.Now()
	enriched := make([]domain.ObligationWithBalance, 0, len(obligations))
	for _, o := range obligations {
		paid, ok := paidByID[o.ObligationID]
		if !ok {
			paid = decimal.Zero
		}
		e := o.WithBalance(paid, now)
		if params.Status != "" && e.Status != domain.ObligationStatus(params.Status) {
			continue
		}
		enriched = append(enriched, e)
	}
	return enriched, total, nil
}

// UpdateObligation edits an obligation. The currency is immutable after
// creation; changing the total amount immediately shifts the derived status.
func (s *obligationService) UpdateObligation(ctx context.Context, projectID, obligationID string, req dto.UpdateObligationRequest, callerID string) (*domain.ObligationWithBalance, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return nil, err
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("totalAmount must be positive: %w", apperrors.ErrValidation)
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	obligation, err := s.obligationRepo.FindObligationByID(ctx, projectID, obligationID)
	if err != nil {
		return nil, err
	}

	old := map[string]any{"title": obligation.Title, "totalAmount": obligation.TotalAmount.String()}
	obligation.Title = req.Title
	obligation.Description = req.Description
	obligation.TotalAmount = req.TotalAmount
	obligation.DueDate = dueDate
	obligation.UpdatedAt = time.Now()

	if err := s.obligationRepo.UpdateObligation(ctx, *obligation); err != nil {
		return nil, fmt.Errorf("failed to update obligation: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "obligations",
		EntityID:          obligationID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		OldValues:         old,
		NewValues:         map[string]any{"title": obligation.Title, "totalAmount": obligation.TotalAmount.String()},
	})

	paid, err := s.paidAmountFor(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	enriched := obligation.WithBalance(paid, time.Now())
	return &enriched, nil
}

// DeleteObligation soft-deletes an obligation. Linked expenses survive as
// regular expenses; their ObligationID keeps pointing at the deleted row.
func (s *obligationService) DeleteObligation(ctx context.Context, projectID, obligationID, callerID string) error {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return err
	}
	if _, err := s.obligationRepo.FindObligationByID(ctx, projectID, obligationID); err != nil {
		return err
	}

	if err := s.obligationRepo.MarkObligationDeleted(ctx, projectID, obligationID, callerID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete obligation: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "obligations",
		EntityID:          obligationID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditDelete,
		PerformedByUserID: callerID,
	})

	return nil
}

func (s *obligationService) paidAmountFor(ctx context.Context, obligationID string) (decimal.Decimal, error) {
	paidByID, err := s.obligationRepo.PaidAmounts(ctx, []string{obligationID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate obligation payments: %w", err)
	}
	paid, ok := paidByID[obligationID]
	if !ok {
		return decimal.Zero, nil
	}
	return paid, nil
}

// parseDueDate parses an optional YYYY-MM-DD due date.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fmt.Errorf("dueDate must be YYYY-MM-DD: %w", apperrors.ErrValidation)
	}
	return &t, nil
}
