package dto

import (
	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// PlanResponse defines the data returned for a subscription plan.
type PlanResponse struct {
	PlanID       string             `json:"planID"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description,omitempty"`
	DisplayOrder int                `json:"displayOrder"`
	Limits       *domain.PlanLimits `json:"limits,omitempty"`

	CanCreateProjects   bool `json:"canCreateProjects"`
	CanShareProjects    bool `json:"canShareProjects"`
	CanExportData       bool `json:"canExportData"`
	CanUseMultiCurrency bool `json:"canUseMultiCurrency"`
	CanSetBudgets       bool `json:"canSetBudgets"`
}

// ToPlanResponse converts domain.Plan to DTO.
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:              p.PlanID,
		Name:                p.Name,
		Slug:                p.Slug,
		Description:         p.Description,
		DisplayOrder:        p.DisplayOrder,
		Limits:              p.Limits,
		CanCreateProjects:   p.CanCreateProjects,
		CanShareProjects:    p.CanShareProjects,
		CanExportData:       p.CanExportData,
		CanUseMultiCurrency: p.CanUseMultiCurrency,
		CanSetBudgets:       p.CanSetBudgets,
	}
}

// ToListPlanResponse converts a slice of domain.Plan to DTOs.
func ToListPlanResponse(plans []domain.Plan) []PlanResponse {
	res := make([]PlanResponse, len(plans))
	for i, p := range plans {
		res[i] = ToPlanResponse(&p)
	}
	return res
}
