package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// AuditLogResponse defines the data returned for an audit log entry.
type AuditLogResponse struct {
	AuditLogID        string                 `json:"auditLogID"`
	EntityName        string                 `json:"entityName"`
	EntityID          string                 `json:"entityID"`
	ActionType        domain.AuditActionType `json:"actionType"`
	PerformedByUserID string                 `json:"performedByUserID"`
	PerformedAt       time.Time              `json:"performedAt"`
	OldValues         map[string]any         `json:"oldValues,omitempty"`
	NewValues         map[string]any         `json:"newValues,omitempty"`
}

// ToAuditLogResponse converts domain.AuditLog to DTO.
func ToAuditLogResponse(a *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID:        a.AuditLogID,
		EntityName:        a.EntityName,
		EntityID:          a.EntityID,
		ActionType:        a.ActionType,
		PerformedByUserID: a.PerformedByUserID,
		PerformedAt:       a.PerformedAt,
		OldValues:         a.OldValues,
		NewValues:         a.NewValues,
	}
}

// ToListAuditLogResponse converts a slice of domain.AuditLog to DTOs.
func ToListAuditLogResponse(entries []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(entries))
	for i, a := range entries {
		res[i] = ToAuditLogResponse(&a)
	}
	return res
}
