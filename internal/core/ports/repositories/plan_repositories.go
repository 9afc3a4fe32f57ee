package repositories

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// PlanRepository reads subscription plans (plans are seeded via migrations).
type PlanRepository interface {
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)
	FindPlanBySlug(ctx context.Context, slug string) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
}
