package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/google/uuid"
)

// paymentMethodService implements PaymentMethodSvcFacade. Payment methods
// belong to a user, not a project, and are usable across all their projects.
type paymentMethodService struct {
	pmRepo       portsrepo.PaymentMethodRepository
	currencyRepo portsrepo.CurrencyRepository
	userRepo     portsrepo.UserRepository
	planSvc      portssvc.PlanSvcFacade
	audit        portssvc.AuditSvcFacade
}

// NewPaymentMethodService creates a new instance of paymentMethodService.
func NewPaymentMethodService(
	pmRepo portsrepo.PaymentMethodRepository,
	currencyRepo portsrepo.CurrencyRepository,
	userRepo portsrepo.UserRepository,
	planSvc portssvc.PlanSvcFacade,
	audit portssvc.AuditSvcFacade,
) portssvc.PaymentMethodSvcFacade {
	return &paymentMethodService{
		pmRepo:       pmRepo,
		currencyRepo: currencyRepo,
		userRepo:     userRepo,
		planSvc:      planSvc,
		audit:        audit,
	}
}

// CreatePaymentMethod creates a payment method owned by the caller.
func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, callerID string) (*domain.PaymentMethod, error) {
	caller, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	if err := s.planSvc.CheckPaymentMethodLimit(ctx, caller); err != nil {
		return nil, err
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown currency %s: %w", req.CurrencyCode, apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to validate currency: %w", err)
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("currency %s is not active: %w", req.CurrencyCode, apperrors.ErrValidation)
	}

	now := time.Now()
	pm := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		OwnerUserID:     callerID,
		Name:            req.Name,
		Type:            req.Type,
		CurrencyCode:    req.CurrencyCode,
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		Description:     req.Description,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.pmRepo.SavePaymentMethod(ctx, pm); err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "payment_methods",
		EntityID:          pm.PaymentMethodID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: callerID,
		NewValues:         map[string]any{"name": pm.Name, "type": string(pm.Type)},
	})

	return &pm, nil
}

// GetPaymentMethod returns a payment method owned by the caller.
func (s *paymentMethodService) GetPaymentMethod(ctx context.Context, paymentMethodID, callerID string) (*domain.PaymentMethod, error) {
	return s.findOwned(ctx, paymentMethodID, callerID)
}

// ListPaymentMethods returns all of the caller's payment methods.
func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, callerID string) ([]domain.PaymentMethod, error) {
	pms, err := s.pmRepo.ListPaymentMethods(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return pms, nil
}

// UpdatePaymentMethod edits a payment method. The currency is immutable
// after creation.
func (s *paymentMethodService) UpdatePaymentMethod(ctx context.Context, paymentMethodID string, req dto.UpdatePaymentMethodRequest, callerID string) (*domain.PaymentMethod, error) {
	pm, err := s.findOwned(ctx, paymentMethodID, callerID)
	if err != nil {
		return nil, err
	}

	old := map[string]any{"name": pm.Name, "type": string(pm.Type)}
	pm.Name = req.Name
	pm.Type = req.Type
	if req.BankName != nil {
		pm.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		pm.AccountNumber = *req.AccountNumber
	}
	if req.Description != nil {
		pm.Description = *req.Description
	}
	pm.UpdatedAt = time.Now()

	if err := s.pmRepo.UpdatePaymentMethod(ctx, *pm); err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "payment_methods",
		EntityID:          paymentMethodID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		OldValues:         old,
		NewValues:         map[string]any{"name": pm.Name, "type": string(pm.Type)},
	})

	return pm, nil
}

// DeletePaymentMethod soft-deletes a payment method. Historical expenses
// keep referencing it.
func (s *paymentMethodService) DeletePaymentMethod(ctx context.Context, paymentMethodID, callerID string) error {
	if _, err := s.findOwned(ctx, paymentMethodID, callerID); err != nil {
		return err
	}

	if err := s.pmRepo.MarkPaymentMethodDeleted(ctx, paymentMethodID, callerID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "payment_methods",
		EntityID:          paymentMethodID,
		ActionType:        domain.AuditDelete,
		PerformedByUserID: callerID,
	})

	return nil
}

// findOwned loads a payment method and checks ownership. Someone else's
// payment method reads as not found rather than forbidden so IDs don't leak.
func (s *paymentMethodService) findOwned(ctx context.Context, paymentMethodID, callerID string) (*domain.PaymentMethod, error) {
	pm, err := s.pmRepo.FindPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if pm.OwnerUserID != callerID {
		return nil, apperrors.ErrNotFound
	}
	return pm, nil
}
