package pgsql

import (
	"context"
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditLogColumns = `audit_log_id, entity_name, entity_id, project_id, action_type,
	performed_by_user_id, performed_at, old_values, new_values`

type PgxAuditLogRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditLogRepository(db *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{db: db}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

// SaveAuditLog appends an entry. The table is insert-only; there is no
// update or delete path.
func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_log_id, entity_name, entity_id, project_id, action_type, performed_by_user_id, performed_at, old_values, new_values)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		entry.AuditLogID,
		entry.EntityName,
		entry.EntityID,
		entry.ProjectID,
		entry.ActionType,
		entry.PerformedByUserID,
		entry.PerformedAt,
		entry.OldValues,
		entry.NewValues,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit log entry: %w", err)
	}
	return nil
}

func (r *PgxAuditLogRepository) ListAuditLogsForEntity(ctx context.Context, entityName, entityID string, limit, offset int) ([]domain.AuditLog, int, error) {
	query := `SELECT ` + auditLogColumns + `, COUNT(*) OVER () AS total_count
		FROM audit_logs
		WHERE entity_name = $1 AND entity_id = $2
		ORDER BY performed_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.db.Query(ctx, query, entityName, entityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs for %s/%s: %w", entityName, entityID, err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func (r *PgxAuditLogRepository) ListAuditLogsForProject(ctx context.Context, projectID string, limit, offset int) ([]domain.AuditLog, int, error) {
	query := `SELECT ` + auditLogColumns + `, COUNT(*) OVER () AS total_count
		FROM audit_logs
		WHERE project_id = $1
		ORDER BY performed_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs for project %s: %w", projectID, err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func collectAuditLogs(rows pgx.Rows) ([]domain.AuditLog, int, error) {
	var entries []domain.AuditLog
	total := 0
	for rows.Next() {
		var e domain.AuditLog
		err := rows.Scan(
			&e.AuditLogID,
			&e.EntityName,
			&e.EntityID,
			&e.ProjectID,
			&e.ActionType,
			&e.PerformedByUserID,
			&e.PerformedAt,
			&e.OldValues,
			&e.NewValues,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed while iterating audit log rows: %w", err)
	}
	return entries, total, nil
}
