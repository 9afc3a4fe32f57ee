package services

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
)

// planService implements PlanSvcFacade. Plans are read-only at runtime; they
// are seeded and changed through migrations.
type planService struct {
	planRepo    portsrepo.PlanRepository
	projectRepo portsrepo.ProjectRepository
	pmRepo      portsrepo.PaymentMethodRepository
	expenseRepo portsrepo.ExpenseRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo portsrepo.PlanRepository,
	projectRepo portsrepo.ProjectRepository,
	pmRepo portsrepo.PaymentMethodRepository,
	expenseRepo portsrepo.ExpenseRepository,
) portssvc.PlanSvcFacade {
	return &planService{
		planRepo:    planRepo,
		projectRepo: projectRepo,
		pmRepo:      pmRepo,
		expenseRepo: expenseRepo,
	}
}

// GetPlanByID returns a plan by ID.
func (s *planService) GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	return s.planRepo.FindPlanByID(ctx, planID)
}

// ListPlans returns all active plans in display order.
func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.planRepo.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// CheckProjectLimit returns ErrPlanLimit when the user may not create
// another project.
func (s *planService) CheckProjectLimit(ctx context.Context, user *domain.User) error {
	plan, err := s.planRepo.FindPlanByID(ctx, user.PlanID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if !plan.CanCreateProjects {
		return fmt.Errorf("plan does not allow creating projects: %w", apperrors.ErrPlanLimit)
	}
	if plan.Limits == nil || plan.Limits.MaxProjects == nil {
		return nil
	}

	owned, err := s.projectRepo.CountProjectsOwnedBy(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}
	if !plan.Limits.Allows(plan.Limits.MaxProjects, owned) {
		return fmt.Errorf("project limit of %d reached: %w", *plan.Limits.MaxProjects, apperrors.ErrPlanLimit)
	}
	return nil
}

// CheckPaymentMethodLimit returns ErrPlanLimit when the user may not create
// another payment method.
func (s *planService) CheckPaymentMethodLimit(ctx context.Context, user *domain.User) error {
	plan, err := s.planRepo.FindPlanByID(ctx, user.PlanID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if plan.Limits == nil || plan.Limits.MaxPaymentMethods == nil {
		return nil
	}

	count, err := s.pmRepo.CountPaymentMethods(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to count payment methods: %w", err)
	}
	if !plan.Limits.Allows(plan.Limits.MaxPaymentMethods, count) {
		return fmt.Errorf("payment method limit of %d reached: %w", *plan.Limits.MaxPaymentMethods, apperrors.ErrPlanLimit)
	}
	return nil
}

// CheckExpenseLimit returns ErrPlanLimit when the user has exhausted their
// monthly expense allowance. The window is the current calendar month (UTC).
func (s *planService) CheckExpenseLimit(ctx context.Context, user *domain.User) error {
	plan, err := s.planRepo.FindPlanByID(ctx, user.PlanID)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if plan.Limits == nil || plan.Limits.MaxExpensesPerMonth == nil {
		return nil
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	count, err := s.expenseRepo.CountExpensesForUserSince(ctx, user.UserID, monthStart)
	if err != nil {
		return fmt.Errorf("failed to count monthly expenses: %w", err)
	}
	if !plan.Limits.Allows(plan.Limits.MaxExpensesPerMonth, count) {
		return fmt.Errorf("monthly expense limit of %d reached: %w", *plan.Limits.MaxExpensesPerMonth, apperrors.ErrPlanLimit)
	}
	return nil
}
