package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Obligation DTOs ---

// CreateObligationRequest defines data for creating an obligation.
// totalAmount must be strictly positive; that is checked in the service so a
// zero or negative amount never reaches the balance engine.
type CreateObligationRequest struct {
	Title        string          `json:"title" binding:"required,max=200"`
	Description  string          `json:"description"`
	TotalAmount  decimal.Decimal `json:"totalAmount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,iso4217"`
	DueDate      *string         `json:"dueDate" binding:"omitempty,dateonly"`
}

// UpdateObligationRequest defines the mutable obligation fields. The currency
// is immutable after creation.
type UpdateObligationRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
	DueDate     *string         `json:"dueDate" binding:"omitempty,dateonly"`
}

// ListObligationsParams defines query parameters for listing obligations.
// The status filter is applied after balance enrichment since status is
// derived, not stored.
type ListObligationsParams struct {
	PageParams
	Status        string `form:"status" binding:"omitempty,oneof=open partially_paid paid overdue"`
	SortBy        string `form:"sortBy,default=dueDate" binding:"omitempty,oneof=dueDate createdAt totalAmount"`
	SortDirection string `form:"sortDirection,default=asc" binding:"omitempty,oneof=asc desc"`
}

// ObligationResponse defines the data returned for an obligation, always
// enriched with the computed balance fields.
type ObligationResponse struct {
	ObligationID    string                  `json:"obligationID"`
	ProjectID       string                  `json:"projectID"`
	CreatedByUserID string                  `json:"createdByUserID"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description,omitempty"`
	TotalAmount     decimal.Decimal         `json:"totalAmount"`
	CurrencyCode    string                  `json:"currencyCode"`
	DueDate         *string                 `json:"dueDate,omitempty"`
	PaidAmount      decimal.Decimal         `json:"paidAmount"`
	RemainingAmount decimal.Decimal         `json:"remainingAmount"`
	Status          domain.ObligationStatus `json:"status"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// ToObligationResponse converts an enriched obligation to DTO.
func ToObligationResponse(o *domain.ObligationWithBalance) ObligationResponse {
	var dueDate *string
	if o.DueDate != nil {
		s := o.DueDate.Format("2006-01-02")
		dueDate = &s
	}
	return ObligationResponse{
		ObligationID:    o.ObligationID,
		ProjectID:       o.ProjectID,
		CreatedByUserID: o.CreatedByUserID,
		Title:           o.Title,
		Description:     o.Description,
		TotalAmount:     o.TotalAmount,
		CurrencyCode:    o.CurrencyCode,
		DueDate:         dueDate,
		PaidAmount:      o.PaidAmount,
		RemainingAmount: o.RemainingAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToListObligationResponse converts a slice of enriched obligations to DTOs.
func ToListObligationResponse(obligations []domain.ObligationWithBalance) []ObligationResponse {
	res := make([]ObligationResponse, len(obligations))
	for i, o := range obligations {
		res[i] = ToObligationResponse(&o)
	}
	return res
}
