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

const projectColumns = `project_id, name, owner_user_id, currency_code, description,
	created_at, updated_at, is_deleted, deleted_at, deleted_by_user_id`

type PgxProjectRepository struct {
	db *pgxpool.Pool
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepository {
	return &PgxProjectRepository{db: db}
}

var _ portsrepo.ProjectRepository = (*PgxProjectRepository)(nil)

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID,
		&p.Name,
		&p.OwnerUserID,
		&p.CurrencyCode,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.IsDeleted,
		&p.DeletedAt,
		&p.DeletedByUserID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProject inserts the project, its owner membership and the default
// category in one transaction so a project can never exist half-initialized.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project, ownerMember domain.ProjectMember, defaultCategory domain.Category) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after a successful commit

	_, err = tx.Exec(ctx, `
		INSERT INTO projects (project_id, name, owner_user_id, currency_code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, project.ProjectID, project.Name, project.OwnerUserID, project.CurrencyCode, project.Description, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO project_members (member_id, project_id, user_id, role, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, ownerMember.MemberID, ownerMember.ProjectID, ownerMember.UserID, ownerMember.Role, ownerMember.JoinedAt, ownerMember.CreatedAt, ownerMember.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert owner membership: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO categories (category_id, project_id, name, description, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6);
	`, defaultCategory.CategoryID, defaultCategory.ProjectID, defaultCategory.Name, defaultCategory.Description, defaultCategory.CreatedAt, defaultCategory.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert default category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit project creation: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1 AND is_deleted = FALSE;`
	project, err := scanProject(r.db.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	return project, nil
}

func (r *PgxProjectRepository) ListProjectsForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Project, map[string]domain.ProjectMemberRole, int, error) {
	query := `
		SELECT p.project_id, p.name, p.owner_user_id, p.currency_code, p.description,
			p.created_at, p.updated_at, p.is_deleted, p.deleted_at, p.deleted_by_user_id,
			m.role, COUNT(*) OVER () AS total_count
		FROM projects p
		JOIN project_members m ON m.project_id = p.project_id
		WHERE m.user_id = $1 AND m.is_deleted = FALSE AND p.is_deleted = FALSE
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to list projects for user %s: %w", userID, err)
	}
	defer rows.Close()

	var projects []domain.Project
	roles := make(map[string]domain.ProjectMemberRole)
	total := 0
	for rows.Next() {
		var p domain.Project
		var role domain.ProjectMemberRole
		err := rows.Scan(
			&p.ProjectID, &p.Name, &p.OwnerUserID, &p.CurrencyCode, &p.Description,
			&p.CreatedAt, &p.UpdatedAt, &p.IsDeleted, &p.DeletedAt, &p.DeletedByUserID,
			&role, &total,
		)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
		roles[p.ProjectID] = role
	}
	if err := rows.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("failed while iterating project rows: %w", err)
	}
	return projects, roles, total, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, updated_at = $4
		WHERE project_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, project.ProjectID, project.Name, project.Description, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", project.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) MarkProjectDeleted(ctx context.Context, projectID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE projects
		SET is_deleted = TRUE, deleted_at = $2, deleted_by_user_id = $3, updated_at = $2
		WHERE project_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, projectID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark project %s deleted: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) CountProjectsOwnedBy(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM projects WHERE owner_user_id = $1 AND is_deleted = FALSE;`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects owned by %s: %w", userID, err)
	}
	return count, nil
}

func (r *PgxProjectRepository) SaveMember(ctx context.Context, member domain.ProjectMember) error {
	query := `
		INSERT INTO project_members (member_id, project_id, user_id, role, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		member.MemberID, member.ProjectID, member.UserID, member.Role,
		member.JoinedAt, member.CreatedAt, member.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("user is already a member of the project: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save project member: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindMemberRole(ctx context.Context, projectID, userID string) (domain.ProjectMemberRole, error) {
	query := `
		SELECT m.role
		FROM project_members m
		JOIN projects p ON p.project_id = m.project_id
		WHERE m.project_id = $1 AND m.user_id = $2
			AND m.is_deleted = FALSE AND p.is_deleted = FALSE;
	`
	var role domain.ProjectMemberRole
	if err := r.db.QueryRow(ctx, query, projectID, userID).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find member role: %w", err)
	}
	return role, nil
}

func (r *PgxProjectRepository) ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMemberDetail, error) {
	query := `
		SELECT m.member_id, m.project_id, m.user_id, m.role, m.joined_at,
			m.created_at, m.updated_at, m.is_deleted, m.deleted_at, m.deleted_by_user_id,
			u.full_name, u.email
		FROM project_members m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.project_id = $1 AND m.is_deleted = FALSE
		ORDER BY m.joined_at;
	`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of project %s: %w", projectID, err)
	}
	defer rows.Close()

	var members []domain.ProjectMemberDetail
	for rows.Next() {
		var m domain.ProjectMemberDetail
		err := rows.Scan(
			&m.MemberID, &m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt,
			&m.CreatedAt, &m.UpdatedAt, &m.IsDeleted, &m.DeletedAt, &m.DeletedByUserID,
			&m.UserFullName, &m.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating member rows: %w", err)
	}
	return members, nil
}

func (r *PgxProjectRepository) UpdateMemberRole(ctx context.Context, projectID, memberID string, role domain.ProjectMemberRole, now time.Time) error {
	query := `
		UPDATE project_members
		SET role = $3, updated_at = $4
		WHERE project_id = $1 AND member_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, projectID, memberID, role, now)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) MarkMemberDeleted(ctx context.Context, projectID, memberID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE project_members
		SET is_deleted = TRUE, deleted_at = $3, deleted_by_user_id = $4, updated_at = $3
		WHERE project_id = $1 AND member_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, projectID, memberID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark member deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
