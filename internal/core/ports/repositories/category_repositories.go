package repositories

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// CategoryRepository persists expense categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, projectID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, projectID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	MarkCategoryDeleted(ctx context.Context, projectID, categoryID string, deletedBy string, now time.Time) error
	CountCategories(ctx context.Context, projectID string) (int, error)
}
