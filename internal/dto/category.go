package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest defines data for creating a category.
type CreateCategoryRequest struct {
	Name         string           `json:"name" binding:"required,max=120"`
	Description  string           `json:"description"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount"`
}

// UpdateCategoryRequest defines the mutable category fields.
type UpdateCategoryRequest struct {
	Name         string           `json:"name" binding:"required,max=120"`
	Description  *string          `json:"description"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID   string           `json:"categoryID"`
	ProjectID    string           `json:"projectID"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	IsDefault    bool             `json:"isDefault"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ToCategoryResponse converts domain.Category to DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:   c.CategoryID,
		ProjectID:    c.ProjectID,
		Name:         c.Name,
		Description:  c.Description,
		IsDefault:    c.IsDefault,
		BudgetAmount: c.BudgetAmount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(&c)
	}
	return res
}
