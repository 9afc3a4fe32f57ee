package services

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/centavo-app/centavo-backend/internal/dto"
)

// ProjectAuthorizerSvc is the slice of the project service other services use
// to enforce membership roles.
type ProjectAuthorizerSvc interface {
	// AuthorizeMember returns the caller's role, or ErrForbidden when the
	// user is not a member, or when requireEdit is set and the role cannot
	// mutate project content.
	AuthorizeMember(ctx context.Context, projectID, userID string, requireEdit bool) (domain.ProjectMemberRole, error)
}

// ProjectSvcFacade manages projects, memberships and the project budget.
type ProjectSvcFacade interface {
	ProjectAuthorizerSvc

	CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)
	GetProject(ctx context.Context, projectID, callerID string) (*domain.Project, domain.ProjectMemberRole, error)
	ListProjects(ctx context.Context, callerID string, page, pageSize int) ([]domain.Project, map[string]domain.ProjectMemberRole, int, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, callerID string) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID, callerID string) error

	AddMember(ctx context.Context, projectID string, req dto.AddMemberRequest, callerID string) (*domain.ProjectMemberDetail, error)
	ListMembers(ctx context.Context, projectID, callerID string) ([]domain.ProjectMemberDetail, error)
	ChangeMemberRole(ctx context.Context, projectID, memberID string, role domain.ProjectMemberRole, callerID string) error
	RemoveMember(ctx context.Context, projectID, memberID, callerID string) error

	SetBudget(ctx context.Context, projectID string, req dto.SetBudgetRequest, callerID string) (*domain.ProjectBudget, error)
	GetBudget(ctx context.Context, projectID, callerID string) (*domain.ProjectBudget, error)
}
