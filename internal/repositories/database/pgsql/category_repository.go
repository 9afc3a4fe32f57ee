package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, project_id, name, description, is_default, budget_amount,
	created_at, updated_at, is_deleted, deleted_at, deleted_by_user_id`

type PgxCategoryRepository struct {
	db *pgxpool.Pool
}

func newPgxCategoryRepository(db *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{db: db}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(
		&c.CategoryID,
		&c.ProjectID,
		&c.Name,
		&c.Description,
		&c.IsDefault,
		&c.BudgetAmount,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.IsDeleted,
		&c.DeletedAt,
		&c.DeletedByUserID,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, project_id, name, description, is_default, budget_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		category.CategoryID,
		category.ProjectID,
		category.Name,
		category.Description,
		category.IsDefault,
		category.BudgetAmount,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("category %q already exists in project: %w", category.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, projectID, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE project_id = $1 AND category_id = $2 AND is_deleted = FALSE;`
	category, err := scanCategory(r.db.QueryRow(ctx, query, projectID, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	return category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, projectID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE project_id = $1 AND is_deleted = FALSE ORDER BY is_default DESC, name;`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories of project %s: %w", projectID, err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $3, description = $4, budget_amount = $5, updated_at = $6
		WHERE project_id = $1 AND category_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query,
		category.ProjectID,
		category.CategoryID,
		category.Name,
		category.Description,
		category.BudgetAmount,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) MarkCategoryDeleted(ctx context.Context, projectID, categoryID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_deleted = TRUE, deleted_at = $3, deleted_by_user_id = $4, updated_at = $3
		WHERE project_id = $1 AND category_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, projectID, categoryID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark category %s deleted: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) CountCategories(ctx context.Context, projectID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM categories WHERE project_id = $1 AND is_deleted = FALSE;`
	if err := r.db.QueryRow(ctx, query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories of project %s: %w", projectID, err)
	}
	return count, nil
}
