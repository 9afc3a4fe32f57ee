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
	"github.com/shopspring/decimal"
)

const obligationColumns = `obligation_id, project_id, created_by_user_id, title, description,
	total_amount, currency_code, due_date,
	created_at, updated_at, is_deleted, deleted_at, deleted_by_user_id`

var obligationSortColumns = map[string]string{
	"dueDate":     "due_date",
	"createdAt":   "created_at",
	"totalAmount": "total_amount",
}

type PgxObligationRepository struct {
	db *pgxpool.Pool
}

func newPgxObligationRepository(db *pgxpool.Pool) portsrepo.ObligationRepository {
	return &PgxObligationRepository{db: db}
}

var _ portsrepo.ObligationRepository = (*PgxObligationRepository)(nil)

func scanObligation(row pgx.Row) (*domain.Obligation, error) {
	var o domain.Obligation
	err := row.Scan(
		&o.ObligationID,
		&o.ProjectID,
		&o.CreatedByUserID,
		&o.Title,
		&o.Description,
		&o.TotalAmount,
		&o.CurrencyCode,
		&o.DueDate,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.IsDeleted,
		&o.DeletedAt,
		&o.DeletedByUserID,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
		INSERT INTO obligations (obligation_id, project_id, created_by_user_id, title, description, total_amount, currency_code, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		obligation.ObligationID,
		obligation.ProjectID,
		obligation.CreatedByUserID,
		obligation.Title,
		obligation.Description,
		obligation.TotalAmount,
		obligation.CurrencyCode,
		obligation.DueDate,
		obligation.CreatedAt,
		obligation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save obligation: %w", err)
	}
	return nil
}

func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, projectID, obligationID string) (*domain.Obligation, error) {
	query := `SELECT ` + obligationColumns + ` FROM obligations WHERE project_id = $1 AND obligation_id = $2 AND is_deleted = FALSE;`
	obligation, err := scanObligation(r.db.QueryRow(ctx, query, projectID, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

func (r *PgxObligationRepository) ListObligations(ctx context.Context, projectID string, sortBy string, sortDesc bool, limit, offset int) ([]domain.Obligation, int, error) {
	sortColumn, ok := obligationSortColumns[sortBy]
	if !ok {
		sortColumn = "due_date"
	}
	direction := "ASC"
	if sortDesc {
		direction = "DESC"
	}
	// NULLS LAST keeps undated obligations out of the way when sorting by
	// due date.
	query := fmt.Sprintf(`SELECT `+obligationColumns+`, COUNT(*) OVER () AS total_count
		FROM obligations
		WHERE project_id = $1 AND is_deleted = FALSE
		ORDER BY %s %s NULLS LAST
		LIMIT $2 OFFSET $3;`, sortColumn, direction)

	rows, err := r.db.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list obligations of project %s: %w", projectID, err)
	}
	defer rows.Close()

	var obligations []domain.Obligation
	total := 0
	for rows.Next() {
		var o domain.Obligation
		err := rows.Scan(
			&o.ObligationID, &o.ProjectID, &o.CreatedByUserID, &o.Title, &o.Description,
			&o.TotalAmount, &o.CurrencyCode, &o.DueDate,
			&o.CreatedAt, &o.UpdatedAt, &o.IsDeleted, &o.DeletedAt, &o.DeletedByUserID,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan obligation row: %w", err)
		}
		obligations = append(obligations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed while iterating obligation rows: %w", err)
	}
	return obligations, total, nil
}

func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
		UPDATE obligations
		SET title = $3, description = $4, total_amount = $5, due_date = $6, updated_at = $7
		WHERE project_id = $1 AND obligation_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query,
		obligation.ProjectID,
		obligation.ObligationID,
		obligation.Title,
		obligation.Description,
		obligation.TotalAmount,
		obligation.DueDate,
		obligation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update obligation %s: %w", obligation.ObligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxObligationRepository) MarkObligationDeleted(ctx context.Context, projectID, obligationID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE obligations
		SET is_deleted = TRUE, deleted_at = $3, deleted_by_user_id = $4, updated_at = $3
		WHERE project_id = $1 AND obligation_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, projectID, obligationID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark obligation %s deleted: %w", obligationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// PaidAmounts sums the converted amounts of non-deleted, non-template
// expenses linked to each obligation. Soft-deleted payments drop out of the
// sum automatically.
func (r *PgxObligationRepository) PaidAmounts(ctx context.Context, obligationIDs []string) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	if len(obligationIDs) == 0 {
		return sums, nil
	}

	query := `
		SELECT obligation_id, COALESCE(SUM(converted_amount), 0)
		FROM expenses
		WHERE obligation_id = ANY($1) AND is_deleted = FALSE AND is_template = FALSE
		GROUP BY obligation_id;
	`
	rows, err := r.db.Query(ctx, query, obligationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate obligation payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var obligationID string
		var sum decimal.Decimal
		if err := rows.Scan(&obligationID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan payment sum: %w", err)
		}
		sums[obligationID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating payment sums: %w", err)
	}
	return sums, nil
}
