package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Project DTOs ---

// CreateProjectRequest defines data for creating a new project.
type CreateProjectRequest struct {
	Name         string `json:"name" binding:"required,max=120"`
	CurrencyCode string `json:"currencyCode" binding:"required,iso4217"`
	Description  string `json:"description"`
}

// UpdateProjectRequest defines the mutable project fields. The base currency
// is immutable after creation.
type UpdateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=120"`
	Description *string `json:"description"`
}

// ProjectResponse defines the data returned for a project, including the
// caller's role in it.
type ProjectResponse struct {
	ProjectID    string                   `json:"projectID"`
	Name         string                   `json:"name"`
	OwnerUserID  string                   `json:"ownerUserID"`
	CurrencyCode string                   `json:"currencyCode"`
	Description  string                   `json:"description"`
	UserRole     domain.ProjectMemberRole `json:"userRole"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// ToProjectResponse converts domain.Project to DTO.
func ToProjectResponse(p *domain.Project, role domain.ProjectMemberRole) ProjectResponse {
	return ProjectResponse{
		ProjectID:    p.ProjectID,
		Name:         p.Name,
		OwnerUserID:  p.OwnerUserID,
		CurrencyCode: p.CurrencyCode,
		Description:  p.Description,
		UserRole:     role,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// --- Membership DTOs ---

// AddMemberRequest invites a user to a project by email.
type AddMemberRequest struct {
	Email string                   `json:"email" binding:"required,email"`
	Role  domain.ProjectMemberRole `json:"role" binding:"required,oneof=editor viewer"`
}

// ChangeMemberRoleRequest changes a member's role.
type ChangeMemberRoleRequest struct {
	Role domain.ProjectMemberRole `json:"role" binding:"required,oneof=editor viewer"`
}

// MemberResponse defines the data returned for a project member.
type MemberResponse struct {
	MemberID     string                   `json:"memberID"`
	UserID       string                   `json:"userID"`
	UserFullName string                   `json:"userFullName"`
	UserEmail    string                   `json:"userEmail"`
	Role         domain.ProjectMemberRole `json:"role"`
	JoinedAt     time.Time                `json:"joinedAt"`
}

// ToMemberResponse converts domain.ProjectMemberDetail to DTO.
func ToMemberResponse(m *domain.ProjectMemberDetail) MemberResponse {
	return MemberResponse{
		MemberID:     m.MemberID,
		UserID:       m.UserID,
		UserFullName: m.UserFullName,
		UserEmail:    m.UserEmail,
		Role:         m.Role,
		JoinedAt:     m.JoinedAt,
	}
}

// --- Budget DTOs ---

// SetBudgetRequest creates or replaces the project budget.
type SetBudgetRequest struct {
	TotalBudget     decimal.Decimal `json:"totalBudget" binding:"required"`
	AlertPercentage int             `json:"alertPercentage" binding:"omitempty,min=1,max=100"`
}

// BudgetResponse defines the data returned for a project budget.
type BudgetResponse struct {
	BudgetID        string          `json:"budgetID"`
	ProjectID       string          `json:"projectID"`
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	AlertPercentage int             `json:"alertPercentage"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToBudgetResponse converts domain.ProjectBudget to DTO.
func ToBudgetResponse(b *domain.ProjectBudget) BudgetResponse {
	return BudgetResponse{
		BudgetID:        b.BudgetID,
		ProjectID:       b.ProjectID,
		TotalBudget:     b.TotalBudget,
		AlertPercentage: b.AlertPercentage,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
