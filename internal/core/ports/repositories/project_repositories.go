package repositories

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// ProjectRepository persists projects and memberships.
type ProjectRepository interface {
	SaveProject(ctx context.Context, project domain.Project, ownerMember domain.ProjectMember, defaultCategory domain.Category) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjectsForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Project, map[string]domain.ProjectMemberRole, int, error)
	UpdateProject(ctx context.Context, project domain.Project) error
	MarkProjectDeleted(ctx context.Context, projectID string, deletedBy string, now time.Time) error
	CountProjectsOwnedBy(ctx context.Context, userID string) (int, error)

	// Membership
	SaveMember(ctx context.Context, member domain.ProjectMember) error
	FindMemberRole(ctx context.Context, projectID, userID string) (domain.ProjectMemberRole, error)
	ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMemberDetail, error)
	UpdateMemberRole(ctx context.Context, projectID, memberID string, role domain.ProjectMemberRole, now time.Time) error
	MarkMemberDeleted(ctx context.Context, projectID, memberID string, deletedBy string, now time.Time) error
}
