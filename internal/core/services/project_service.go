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

// defaultCategoryName is created inside every new project. The default
// category cannot be deleted so expenses always have somewhere to land.
const defaultCategoryName = "General"

// projectService implements ProjectSvcFacade.
type projectService struct {
	projectRepo  portsrepo.ProjectRepository
	userRepo     portsrepo.UserRepository
	currencyRepo portsrepo.CurrencyRepository
	budgetRepo   portsrepo.BudgetRepository
	planSvc      portssvc.PlanSvcFacade
	audit        portssvc.AuditSvcFacade
}

// NewProjectService creates a new instance of projectService.
func NewProjectService(
	projectRepo portsrepo.ProjectRepository,
	userRepo portsrepo.UserRepository,
	currencyRepo portsrepo.CurrencyRepository,
	budgetRepo portsrepo.BudgetRepository,
	planSvc portssvc.PlanSvcFacade,
	audit portssvc.AuditSvcFacade,
) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		currencyRepo: currencyRepo,
		budgetRepo:   budgetRepo,
		planSvc:      planSvc,
		audit:        audit,
	}
}

// AuthorizeMember checks that userID is a member of the project and, when
// requireEdit is set, that the role allows mutating project content.
func (s *projectService) AuthorizeMember(ctx context.Context, projectID, userID string, requireEdit bool) (domain.ProjectMemberRole, error) {
	role, err := s.projectRepo.FindMemberRole(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrForbidden
		}
		return "", fmt.Errorf("failed to resolve project membership: %w", err)
	}
	if requireEdit && !role.CanEdit() {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}

// CreateProject creates a project together with its owner membership and
// default category in a single transaction.
func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project creator: %w", err)
	}
	if err := s.planSvc.CheckProjectLimit(ctx, creator); err != nil {
		return nil, err
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown currency %s: %w", req.CurrencyCode, apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to validate project currency: %w", err)
	}
	if !currency.IsActive {
		return nil, fmt.Errorf("currency %s is not active: %w", req.CurrencyCode, apperrors.ErrValidation)
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:    uuid.NewString(),
		Name:         req.Name,
		OwnerUserID:  creatorUserID,
		CurrencyCode: req.CurrencyCode,
		Description:  req.Description,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	ownerMember := domain.ProjectMember{
		MemberID:    uuid.NewString(),
		ProjectID:   project.ProjectID,
		UserID:      creatorUserID,
		Role:        domain.RoleOwner,
		JoinedAt:    now,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	defaultCategory := domain.Category{
		CategoryID:  uuid.NewString(),
		ProjectID:   project.ProjectID,
		Name:        defaultCategoryName,
		IsDefault:   true,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.projectRepo.SaveProject(ctx, project, ownerMember, defaultCategory); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "projects",
		EntityID:          project.ProjectID,
		ProjectID:         &project.ProjectID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: creatorUserID,
		NewValues:         map[string]any{"name": project.Name, "currencyCode": project.CurrencyCode},
	})

	return &project, nil
}

// GetProject returns a project together with the caller's role in it.
func (s *projectService) GetProject(ctx context.Context, projectID, callerID string) (*domain.Project, domain.ProjectMemberRole, error) {
	role, err := s.AuthorizeMember(ctx, projectID, callerID, false)
	if err != nil {
		return nil, "", err
	}
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	return project, role, nil
}

// ListProjects returns the caller's projects and their role in each.
func (s *projectService) ListProjects(ctx context.Context, callerID string, page, pageSize int) ([]domain.Project, map[string]domain.ProjectMemberRole, int, error) {
	offset := (page - 1) * pageSize
	projects, roles, total, err := s.projectRepo.ListProjectsForUser(ctx, callerID, pageSize, offset)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, roles, total, nil
}

// UpdateProject renames a project. Owner only; the base currency is
// immutable once expenses may exist in it.
func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, callerID string) (*domain.Project, error) {
	if err := s.authorizeOwner(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	old := map[string]any{"name": project.Name, "description": project.Description}
	project.Name = req.Name
	if req.Description != nil {
		project.Description = *req.Description
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "projects",
		EntityID:          projectID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		OldValues:         old,
		NewValues:         map[string]any{"name": project.Name, "description": project.Description},
	})

	return project, nil
}

// DeleteProject soft-deletes a project. Owner only. Content rows stay in
// place; they disappear from every listing through the membership join.
func (s *projectService) DeleteProject(ctx context.Context, projectID, callerID string) error {
	if err := s.authorizeOwner(ctx, projectID, callerID); err != nil {
		return err
	}

	if err := s.projectRepo.MarkProjectDeleted(ctx, projectID, callerID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "projects",
		EntityID:          projectID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditDelete,
		PerformedByUserID: callerID,
	})

	return nil
}

// AddMember invites a user by email. Owner only, and gated on the owner's
// plan allowing shared projects.
func (s *projectService) AddMember(ctx context.Context, projectID string, req dto.AddMemberRequest, callerID string) (*domain.ProjectMemberDetail, error) {
	if err := s.authorizeOwner(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project owner: %w", err)
	}
	plan, err := s.planSvc.GetPlanByID(ctx, owner.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner plan: %w", err)
	}
	if !plan.CanShareProjects {
		return nil, fmt.Errorf("plan does not allow sharing projects: %w", apperrors.ErrPlanLimit)
	}

	invitee, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no account with email %s: %w", req.Email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}

	if _, err := s.projectRepo.FindMemberRole(ctx, projectID, invitee.UserID); err == nil {
		return nil, fmt.Errorf("user is already a member: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	now := time.Now()
	member := domain.ProjectMember{
		MemberID:    uuid.NewString(),
		ProjectID:   projectID,
		UserID:      invitee.UserID,
		Role:        req.Role,
		JoinedAt:    now,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.projectRepo.SaveMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "project_members",
		EntityID:          member.MemberID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: callerID,
		NewValues:         map[string]any{"userID": invitee.UserID, "role": string(req.Role)},
	})

	return &domain.ProjectMemberDetail{
		ProjectMember: member,
		UserFullName:  invitee.FullName,
		UserEmail:     invitee.Email,
	}, nil
}

// ListMembers returns the project's members. Any member may list.
func (s *projectService) ListMembers(ctx context.Context, projectID, callerID string) ([]domain.ProjectMemberDetail, error) {
	if _, err := s.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, err
	}
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// ChangeMemberRole switches a member between editor and viewer. Owner only;
// the owner's own role is fixed.
func (s *projectService) ChangeMemberRole(ctx context.Context, projectID, memberID string, role domain.ProjectMemberRole, callerID string) error {
	if err := s.authorizeOwner(ctx, projectID, callerID); err != nil {
		return err
	}
	if role == domain.RoleOwner {
		return fmt.Errorf("ownership cannot be granted through role change: %w", apperrors.ErrValidation)
	}
	if err := s.memberMustNotBeOwner(ctx, projectID, memberID); err != nil {
		return err
	}

	if err := s.projectRepo.UpdateMemberRole(ctx, projectID, memberID, role, time.Now()); err != nil {
		return fmt.Errorf("failed to change member role: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "project_members",
		EntityID:          memberID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		NewValues:         map[string]any{"role": string(role)},
	})

	return nil
}

// RemoveMember soft-deletes a membership. Owner only; the owner cannot be
// removed from their own project.
func (s *projectService) RemoveMember(ctx context.Context, projectID, memberID, callerID string) error {
	if err := s.authorizeOwner(ctx, projectID, callerID); err != nil {
		return err
	}
	if err := s.memberMustNotBeOwner(ctx, projectID, memberID); err != nil {
		return err
	}

	if err := s.projectRepo.MarkMemberDeleted(ctx, projectID, memberID, callerID, time.Now()); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "project_members",
		EntityID:          memberID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditDelete,
		PerformedByUserID: callerID,
	})

	return nil
}

// SetBudget creates or replaces the single active project budget. Owner
// only, gated on the owner's plan.
func (s *projectService) SetBudget(ctx context.Context, projectID string, req dto.SetBudgetRequest, callerID string) (*domain.ProjectBudget, error) {
	if err := s.authorizeOwner(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	if !req.TotalBudget.IsPositive() {
		return nil, fmt.Errorf("totalBudget must be positive: %w", apperrors.ErrValidation)
	}

	owner, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project owner: %w", err)
	}
	plan, err := s.planSvc.GetPlanByID(ctx, owner.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner plan: %w", err)
	}
	if !plan.CanSetBudgets {
		return nil, fmt.Errorf("plan does not allow budgets: %w", apperrors.ErrPlanLimit)
	}

	alertPct := req.AlertPercentage
	if alertPct == 0 {
		alertPct = 80
	}

	now := time.Now()
	budget := domain.ProjectBudget{
		BudgetID:        uuid.NewString(),
		ProjectID:       projectID,
		TotalBudget:     req.TotalBudget,
		AlertPercentage: alertPct,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.budgetRepo.UpsertBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to set budget: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "project_budgets",
		EntityID:          budget.BudgetID,
		ProjectID:         &projectID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		NewValues:         map[string]any{"totalBudget": budget.TotalBudget.String(), "alertPercentage": alertPct},
	})

	return &budget, nil
}

// GetBudget returns the active project budget. Any member may read it.
func (s *projectService) GetBudget(ctx context.Context, projectID, callerID string) (*domain.ProjectBudget, error) {
	if _, err := s.AuthorizeMember(ctx, projectID, callerID, false); err != nil {
		return nil, err
	}
	budget, err := s.budgetRepo.FindBudgetByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *projectService) authorizeOwner(ctx context.Context, projectID, callerID string) error {
	role, err := s.AuthorizeMember(ctx, projectID, callerID, false)
	if err != nil {
		return err
	}
	if role != domain.RoleOwner {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *projectService) memberMustNotBeOwner(ctx context.Context, projectID, memberID string) error {
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to inspect membership: %w", err)
	}
	for _, m := range members {
		if m.MemberID == memberID {
			if m.Role == domain.RoleOwner {
				return fmt.Errorf("the project owner cannot be modified: %w", apperrors.ErrValidation)
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}
