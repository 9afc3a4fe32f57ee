package domain

import "time"

// AuditActionType classifies audit log entries.
type AuditActionType string

const (
	AuditCreate       AuditActionType = "create"
	AuditUpdate       AuditActionType = "update"
	AuditDelete       AuditActionType = "delete"
	AuditStatusChange AuditActionType = "status_change"
	// AuditAssociate records linking an expense to an obligation.
	AuditAssociate AuditActionType = "associate"
)

// AuditLog is an immutable record of a mutation performed on an entity.
// OldValues is nil on create, NewValues is nil on delete.
type AuditLog struct {
	AuditLogID        string          `json:"auditLogID"`
	EntityName        string          `json:"entityName"` // affected table, e.g. "expenses"
	EntityID          string          `json:"entityID"`
	ProjectID         *string         `json:"projectID,omitempty"` // nil for entities outside a project
	ActionType        AuditActionType `json:"actionType"`
	PerformedByUserID string          `json:"performedByUserID"`
	PerformedAt       time.Time       `json:"performedAt"`
	OldValues         map[string]any  `json:"oldValues,omitempty"`
	NewValues         map[string]any  `json:"newValues,omitempty"`
}
