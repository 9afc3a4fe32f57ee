package domain

import "time"

// ProjectMemberRole defines what a user may do inside a project.
type ProjectMemberRole string

const (
	RoleOwner  ProjectMemberRole = "owner"
	RoleEditor ProjectMemberRole = "editor"
	RoleViewer ProjectMemberRole = "viewer"
)

// CanEdit reports whether the role allows mutating project content
// (expenses, obligations, categories).
func (r ProjectMemberRole) CanEdit() bool {
	return r == RoleOwner || r == RoleEditor
}

// Project is the container for categories, expenses and obligations. All
// amounts inside a project are normalized into its base currency.
type Project struct {
	ProjectID    string `json:"projectID"`
	Name         string `json:"name"`
	OwnerUserID  string `json:"ownerUserID"`
	CurrencyCode string `json:"currencyCode"` // ISO 4217 base currency
	Description  string `json:"description"`
	AuditFields
	SoftDeleteFields
}

// ProjectMember records a user's membership in a project.
type ProjectMember struct {
	MemberID  string            `json:"memberID"`
	ProjectID string            `json:"projectID"`
	UserID    string            `json:"userID"`
	Role      ProjectMemberRole `json:"role"`
	JoinedAt  time.Time         `json:"joinedAt"`
	AuditFields
	SoftDeleteFields
}

// ProjectMemberDetail is a membership joined with user display fields.
type ProjectMemberDetail struct {
	ProjectMember
	UserFullName string `json:"userFullName"`
	UserEmail    string `json:"userEmail"`
}
