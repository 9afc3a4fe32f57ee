package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService implements ReportingSvcFacade. All aggregations run over
// converted amounts, so reports are always in the project's base currency,
// and deleted or template expenses never contribute.
type reportingService struct {
	expenseRepo  portsrepo.ExpenseRepository
	categoryRepo portsrepo.CategoryRepository
	budgetRepo   portsrepo.BudgetRepository
	projectAuth  portssvc.ProjectAuthorizerSvc
}

// NewReportingService creates a new instance of reportingService.
func NewReportingService(
	expenseRepo portsrepo.ExpenseRepository,
	categoryRepo portsrepo.CategoryRepository,
	budgetRepo portsrepo.BudgetRepository,
	projectAuth portssvc.ProjectAuthorizerSvc,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		projectAuth:  projectAuth,
	}
}

// CategoryTotals returns spending per category, flagging categories that
// blew through their budget cap. Categories without expenses report zero.
func (s *reportingService) CategoryTotals(ctx context.Context, projectID, callerID string) ([]dto.CategoryTotal, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListCategories(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	spentByCategory, err := s.expenseRepo.SumConvertedByCategory(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category spending: %w", err)
	}

	totals := make([]dto.CategoryTotal, 0, len(categories))
	for _, c := range categories {
		spent, ok := spentByCategory[c.CategoryID]
		if !ok {
			spent = decimal.Zero
		}
		totals = append(totals, dto.CategoryTotal{
			CategoryID:   c.CategoryID,
			CategoryName: c.Name,
			Spent:        spent,
			BudgetAmount: c.BudgetAmount,
			OverBudget:   c.BudgetAmount != nil && spent.GreaterThan(*c.BudgetAmount),
		})
	}
	return totals, nil
}

// BudgetReport compares total project spending against the project budget.
// Returns ErrNotFound when no budget has been set.
func (s *reportingService) BudgetReport(ctx context.Context, projectID, callerID string) (*dto.BudgetReport, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.FindBudgetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	totalSpent, err := s.expenseRepo.SumConvertedForProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate project spending: %w", err)
	}

	return &dto.BudgetReport{
		ProjectID:       projectID,
		TotalBudget:     budget.TotalBudget,
		TotalSpent:      totalSpent,
		Remaining:       budget.TotalBudget.Sub(totalSpent),
		AlertPercentage: budget.AlertPercentage,
		AlertTriggered:  totalSpent.GreaterThanOrEqual(budget.AlertThreshold()),
	}, nil
}
