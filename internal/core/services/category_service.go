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

// categoryService implements CategorySvcFacade.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
	projectAuth  portssvc.ProjectAuthorizerSvc
	audit        portssvc.AuditSvcFacade
}

// NewCategoryService creates a new instance of categoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository, projectAuth portssvc.ProjectAuthorizerSvc, audit portssvc.AuditSvcFacade) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		projectAuth:  projectAuth,
		audit:        audit,
	}
}

// CreateCategory adds a category to a project. Editors and owners only.
func (s *categoryService) CreateCategory(ctx context.Context, projectID string, req dto.CreateCategoryRequest, callerID string) (*domain.Category, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return nil, err
	}
	if req.BudgetAmount != nil && !req.BudgetAmount.IsPositive() {
		return nil, fmt.Errorf("budgetAmount must be positive when set: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		ProjectID:    projectID,
		Name:         req.Name,
		Description:  req.Description,
		BudgetAmount: req.BudgetAmount,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "categories",
		EntityID:          category.CategoryID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: callerID,
		NewValues:         map[string]any{"name": category.Name},
	})

	return &category, nil
}

// ListCategories returns all categories of a project. Any member may list.
func (s *categoryService) ListCategories(ctx context.Context, projectID, callerID string) ([]domain.Category, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListCategories(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory edits a category. The default category may be edited but
// keeps its IsDefault marker.
func (s *categoryService) UpdateCategory(ctx context.Context, projectID, categoryID string, req dto.UpdateCategoryRequest, callerID string) (*domain.Category, error) {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return nil, err
	}
	if req.BudgetAmount != nil && !req.BudgetAmount.IsPositive() {
		return nil, fmt.Errorf("budgetAmount must be positive when set: %w", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, projectID, categoryID)
	if err != nil {
		return nil, err
	}

	old := map[string]any{"name": category.Name}
	category.Name = req.Name
	if req.Description != nil {
		category.Description = *req.Description
	}
	category.BudgetAmount = req.BudgetAmount
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "categories",
		EntityID:          categoryID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		OldValues:         old,
		NewValues:         map[string]any{"name": category.Name},
	})

	return category, nil
}

// DeleteCategory soft-deletes a category. The project's default category is
// protected: deleting it would leave expenses without a home.
func (s *categoryService) DeleteCategory(ctx context.Context, projectID, categoryID, callerID string) error {
	if _, err := s.projectAuth.AuthorizeMember(ctx, projectID, callerID, true); err != nil {
		return err
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, projectID, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load category: %w", err)
	}
	if category.IsDefault {
		return fmt.Errorf("the default category cannot be deleted: %w", apperrors.ErrValidation)
	}

	if err := s.categoryRepo.MarkCategoryDeleted(ctx, projectID, categoryID, callerID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "categories",
		EntityID:          categoryID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditDelete,
		PerformedByUserID: callerID,
	})

	return nil
}
