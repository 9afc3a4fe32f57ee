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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	db *pgxpool.Pool
}

func newPgxBudgetRepository(db *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{db: db}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

// UpsertBudget replaces the project's single active budget. A partial unique
// index on project_id (where not deleted) backs the conflict target.
func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.ProjectBudget) error {
	query := `
		INSERT INTO project_budgets (budget_id, project_id, total_budget, alert_percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id) WHERE is_deleted = FALSE DO UPDATE SET
			total_budget = EXCLUDED.total_budget,
			alert_percentage = EXCLUDED.alert_percentage,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.db.Exec(ctx, query,
		budget.BudgetID,
		budget.ProjectID,
		budget.TotalBudget,
		budget.AlertPercentage,
		budget.CreatedAt,
		budget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget for project %s: %w", budget.ProjectID, err)
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByProjectID(ctx context.Context, projectID string) (*domain.ProjectBudget, error) {
	query := `
		SELECT budget_id, project_id, total_budget, alert_percentage,
			created_at, updated_at, is_deleted, deleted_at, deleted_by_user_id
		FROM project_budgets
		WHERE project_id = $1 AND is_deleted = FALSE;
	`
	var b domain.ProjectBudget
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&b.BudgetID,
		&b.ProjectID,
		&b.TotalBudget,
		&b.AlertPercentage,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.IsDeleted,
		&b.DeletedAt,
		&b.DeletedByUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget for project %s: %w", projectID, err)
	}
	return &b, nil
}

func (r *PgxBudgetRepository) MarkBudgetDeleted(ctx context.Context, projectID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE project_budgets
		SET is_deleted = TRUE, deleted_at = $2, deleted_by_user_id = $3, updated_at = $2
		WHERE project_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, projectID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark budget deleted for project %s: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
