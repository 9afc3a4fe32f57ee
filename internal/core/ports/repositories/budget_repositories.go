package repositories

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// BudgetRepository persists the single active project budget.
type BudgetRepository interface {
	UpsertBudget(ctx context.Context, budget domain.ProjectBudget) error
	FindBudgetByProjectID(ctx context.Context, projectID string) (*domain.ProjectBudget, error)
	MarkBudgetDeleted(ctx context.Context, projectID string, deletedBy string, now time.Time) error
}
