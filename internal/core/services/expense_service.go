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
	"github.com/shopspring/decimal"
)

// expenseService implements ExpenseSvcFacade. The converted amount is always
// derived here from the original amount and the effective exchange rate;
// clients never set it.
type expenseService struct {
	expenseRepo    portsrepo.ExpenseRepository
	obligationRepo portsrepo.ObligationRepository
	categoryRepo   portsrepo.CategoryRepository
	pmRepo         portsrepo.PaymentMethodRepository
	projectRepo    portsrepo.ProjectRepository
	userRepo       portsrepo.UserRepository
	projectAuth    portssvc.ProjectAuthorizerSvc
	planSvc        portssvc.PlanSvcFacade
	audit          portssvc.AuditSvcFacade
}

// NewExpenseService creates a new instance of expenseService.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepository,
	obligationRepo portsrepo.ObligationRepository,
	categoryRepo portsrepo.CategoryRepository,
	pmRepo portsrepo.PaymentMethodRepository,
	projectRepo portsrepo.ProjectRepository,
	userRepo portsrepo.UserRepository,
	projectAuth portssvc.ProjectAuthorizerSvc,
	planSvc portssvc.PlanSvcFacade,
	audit portssvc.AuditSvcFacade,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:    expenseRepo,
		obligationRepo: obligationRepo,
		categoryRepo:   categoryRepo,
		pmRepo:         pmRepo,
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		projectAuth:    projectAuth,
		planSvc:        planSvc,
		audit:          audit,
	}
}

// CreateExpense records an expense. Editors and owners only.
func (s *expenseService) CreateExpense(ctx context.Context, projectID string, req dto.CreateExpenseRequest, callerID string) (*domain.Expense, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return nil, err
	}

	caller, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	if err := s.planSvc.CheckExpenseLimit(ctx, caller); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	fields, err := s.resolveExpenseFields(ctx, project, caller, expenseInput{
		CategoryID:       req.CategoryID,
		PaymentMethodID:  req.PaymentMethodID,
		ObligationID:     req.ObligationID,
		OriginalAmount:   req.OriginalAmount,
		OriginalCurrency: req.OriginalCurrency,
		ExchangeRate:     req.ExchangeRate,
		ExpenseDate:      req.ExpenseDate,
		IsTemplate:       req.IsTemplate,
		AltCurrency:      req.AltCurrency,
		AltExchangeRate:  req.AltExchangeRate,
	}, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:        uuid.NewString(),
		ProjectID:        projectID,
		CategoryID:       req.CategoryID,
		PaymentMethodID:  req.PaymentMethodID,
		CreatedByUserID:  callerID,
		ObligationID:     req.ObligationID,
		OriginalAmount:   req.OriginalAmount,
		OriginalCurrency: req.OriginalCurrency,
		ExchangeRate:     fields.rate,
		ConvertedAmount:  fields.converted,
		Title:            req.Title,
		Description:      req.Description,
		ExpenseDate:      fields.expenseDate,
		ReceiptNumber:    req.ReceiptNumber,
		Notes:            req.Notes,
		IsTemplate:       req.IsTemplate,
		AltCurrency:      req.AltCurrency,
		AltExchangeRate:  req.AltExchangeRate,
		AltAmount:        fields.altAmount,
		AuditFields:      domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "expenses",
		EntityID:          expense.ExpenseID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: callerID,
		NewValues: map[string]any{
			"title":           expense.Title,
			"originalAmount":  expense.OriginalAmount.String(),
			"convertedAmount": expense.ConvertedAmount.String(),
		},
	})
	if expense.ObligationID != nil {
		s.recordAssociation(ctx, projectID, expense.ExpenseID, *expense.ObligationID, callerID)
	}

	return &expense, nil
}

// GetExpense returns a single expense. Any member may read.
func (s *expenseService) GetExpense(ctx context.Context, projectID, expenseID, callerID string) (*domain.Expense, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, err
	}
	return s.expenseRepo.FindExpenseByID(ctx, projectID, expenseID)
}

// ListExpenses returns a filtered, paginated page of the project's expenses.
func (s *expenseService) ListExpenses(ctx context.Context, projectID string, filter portsrepo.ExpenseListFilter, callerID string) ([]domain.Expense, int, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, 0, err
	}
	expenses, total, err := s.expenseRepo.ListExpenses(ctx, projectID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, total, nil
}

// ListExpensesByPaymentMethod lists the caller's expenses paid with one of
// their payment methods, across all projects.
func (s *expenseService) ListExpensesByPaymentMethod(ctx context.Context, paymentMethodID string, page, pageSize int, callerID string) ([]domain.Expense, int, error) {
	pm, err := s.pmRepo.FindPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		return nil, 0, err
	}
	if pm.OwnerUserID != callerID {
		return nil, 0, apperrors.ErrNotFound
	}

	offset := (page - 1) * pageSize
	expenses, total, err := s.expenseRepo.ListExpensesByPaymentMethod(ctx, paymentMethodID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses by payment method: %w", err)
	}
	return expenses, total, nil
}

// UpdateExpense replaces an expense's fields and re-derives the converted
// amounts. Editors and owners only.
func (s *expenseService) UpdateExpense(ctx context.Context, projectID, expenseID string, req dto.UpdateExpenseRequest, callerID string) (*domain.Expense, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, projectID, expenseID)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	caller, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}

	fields, err := s.resolveExpenseFields(ctx, project, caller, expenseInput{
		CategoryID:       req.CategoryID,
		PaymentMethodID:  req.PaymentMethodID,
		ObligationID:     req.ObligationID,
		OriginalAmount:   req.OriginalAmount,
		OriginalCurrency: req.OriginalCurrency,
		ExchangeRate:     req.ExchangeRate,
		ExpenseDate:      req.ExpenseDate,
		IsTemplate:       req.IsTemplate,
		AltCurrency:      req.AltCurrency,
		AltExchangeRate:  req.AltExchangeRate,
	}, callerID)
	if err != nil {
		return nil, err
	}

	old := map[string]any{
		"title":           expense.Title,
		"convertedAmount": expense.ConvertedAmount.String(),
	}
	previousObligation := expense.ObligationID

	expense.CategoryID = req.CategoryID
	expense.PaymentMethodID = req.PaymentMethodID
	expense.ObligationID = req.ObligationID
	expense.OriginalAmount = req.OriginalAmount
	expense.OriginalCurrency = req.OriginalCurrency
	expense.ExchangeRate = fields.rate
	expense.ConvertedAmount = fields.converted
	expense.Title = req.Title
	expense.Description = req.Description
	expense.ExpenseDate = fields.expenseDate
	expense.ReceiptNumber = req.ReceiptNumber
	expense.Notes = req.Notes
	expense.IsTemplate = req.IsTemplate
	expense.AltCurrency = req.AltCurrency
	expense.AltExchangeRate = req.AltExchangeRate
	expense.AltAmount = fields.altAmount
	expense.UpdatedAt = time.Now()

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "expenses",
		EntityID:          expenseID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		OldValues:         old,
		NewValues: map[string]any{
			"title":           expense.Title,
			"convertedAmount": expense.ConvertedAmount.String(),
		},
	})
	if expense.ObligationID != nil && (previousObligation == nil || *previousObligation != *expense.ObligationID) {
		s.recordAssociation(ctx, projectID, expenseID, *expense.ObligationID, callerID)
	}

	return expense, nil
}

// DeleteExpense soft-deletes an expense. A deleted payment immediately drops
// out of its obligation's paid balance.
func (s *expenseService) DeleteExpense(ctx context.Context, projectID, expenseID, callerID string) error {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return err
	}
	if _, err := s.expenseRepo.FindExpenseByID(ctx, projectID, expenseID); err != nil {
		return err
	}

	if err := s.expenseRepo.MarkExpenseDeleted(ctx, projectID, expenseID, callerID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "expenses",
		EntityID:          expenseID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditDelete,
		PerformedByUserID: callerID,
	})

	return nil
}

// expenseInput is the shared slice of create/update requests that drives
// validation and derivation.
type expenseInput struct {
	CategoryID       string
	PaymentMethodID  string
	ObligationID     *string
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	ExchangeRate     decimal.Decimal
	ExpenseDate      string
	IsTemplate       bool
	AltCurrency      *string
	AltExchangeRate  *decimal.Decimal
}

// derivedExpenseFields are the server-computed values for an expense.
type derivedExpenseFields struct {
	rate        decimal.Decimal
	converted   decimal.Decimal
	altAmount   *decimal.Decimal
	expenseDate time.Time
}

// resolveExpenseFields validates the request against the project and derives
// the exchange rate, converted amount and optional alt projection.
func (s *expenseService) resolveExpenseFields(ctx context.Context, project *domain.Project, caller *domain.User, in expenseInput, callerID string) (*derivedExpenseFields, error) {
	if !in.OriginalAmount.IsPositive() {
		return nil, fmt.Errorf("originalAmount must be positive: %w", apperrors.ErrValidation)
	}
	if in.IsTemplate && in.ObligationID != nil {
		return nil, fmt.Errorf("a template cannot be linked to an obligation: %w", apperrors.ErrValidation)
	}

	if in.OriginalCurrency != project.CurrencyCode {
		plan, err := s.planSvc.GetPlanByID(ctx, caller.PlanID)
		if err != nil {
			return nil, fmt.Errorf("failed to load caller plan: %w", err)
		}
		if !plan.CanUseMultiCurrency {
			return nil, fmt.Errorf("plan does not allow foreign-currency expenses: %w", apperrors.ErrPlanLimit)
		}
		if !in.ExchangeRate.IsPositive() {
			return nil, fmt.Errorf("exchangeRate must be positive for foreign-currency expenses: %w", apperrors.ErrValidation)
		}
	}
	rate := domain.EffectiveExchangeRate(in.OriginalCurrency, project.CurrencyCode, in.ExchangeRate)
	converted := domain.ConvertAmount(in.OriginalAmount, rate)

	// The alt currency trio travels together: either all present or all
	// absent, never partially.
	var altAmount *decimal.Decimal
	switch {
	case in.AltCurrency == nil && in.AltExchangeRate == nil:
		// no alt projection
	case in.AltCurrency != nil && in.AltExchangeRate != nil:
		if !in.AltExchangeRate.IsPositive() {
			return nil, fmt.Errorf("altExchangeRate must be positive: %w", apperrors.ErrValidation)
		}
		alt := domain.AltProjection(converted, *in.AltExchangeRate)
		altAmount = &alt
	default:
		return nil, fmt.Errorf("altCurrency and altExchangeRate must be provided together: %w", apperrors.ErrValidation)
	}

	expenseDate, err := time.Parse("2006-01-02", in.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("expenseDate must be YYYY-MM-DD: %w", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, project.ProjectID, in.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("category not found in project: %w", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category.IsDeleted {
		return nil, fmt.Errorf("category is deleted: %w", apperrors.ErrValidation)
	}

	pm, err := s.pmRepo.FindPaymentMethodByID(ctx, in.PaymentMethodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("payment method not found: %w", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to load payment method: %w", err)
	}
	if pm.OwnerUserID != callerID {
		return nil, fmt.Errorf("payment method belongs to another user: %w", apperrors.ErrValidation)
	}

	if in.ObligationID != nil {
		obligation, err := s.obligationRepo.FindObligationByID(ctx, project.ProjectID, *in.ObligationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("obligation not found in project: %w", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to load obligation: %w", err)
		}
		if obligation.IsDeleted {
			return nil, fmt.Errorf("obligation is deleted: %w", apperrors.ErrValidation)
		}
	}

	return &derivedExpenseFields{
		rate:        rate,
		converted:   converted,
		altAmount:   altAmount,
		expenseDate: expenseDate,
	}, nil
}

// recordAssociation audits an expense being linked to an obligation as a
// payment.
func (s *expenseService) recordAssociation(ctx context.Context, projectID, expenseID, obligationID, callerID string) {
	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "expenses",
		EntityID:          expenseID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditAssociate,
		PerformedByUserID: callerID,
		NewValues:         map[string]any{"obligationID": obligationID},
	})
}
