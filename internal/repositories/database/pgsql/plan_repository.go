package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const planColumns = `plan_id, name, slug, description, is_active, display_order,
	can_create_projects, can_share_projects, can_export_data, can_use_multi_currency, can_set_budgets,
	limits, created_at, updated_at`

type PgxPlanRepository struct {
	db *pgxpool.Pool
}

func newPgxPlanRepository(db *pgxpool.Pool) portsrepo.PlanRepository {
	return &PgxPlanRepository{db: db}
}

var _ portsrepo.PlanRepository = (*PgxPlanRepository)(nil)

// The limits jsonb column unmarshals straight into *domain.PlanLimits via
// pgx's JSON codec.
func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var p domain.Plan
	err := row.Scan(
		&p.PlanID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.IsActive,
		&p.DisplayOrder,
		&p.CanCreateProjects,
		&p.CanShareProjects,
		&p.CanExportData,
		&p.CanUseMultiCurrency,
		&p.CanSetBudgets,
		&p.Limits,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = $1;`
	plan, err := scanPlan(r.db.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan %s: %w", planID, err)
	}
	return plan, nil
}

func (r *PgxPlanRepository) FindPlanBySlug(ctx context.Context, slug string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE slug = $1 AND is_active = TRUE;`
	plan, err := scanPlan(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan by slug %s: %w", slug, err)
	}
	return plan, nil
}

func (r *PgxPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE is_active = TRUE ORDER BY display_order;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating plan rows: %w", err)
	}
	return plans, nil
}
