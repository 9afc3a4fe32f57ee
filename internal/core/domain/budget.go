package domain

import "github.com/shopspring/decimal"

// ProjectBudget is the single active budget of a project. A notification is
// raised once spending reaches AlertPercentage percent of TotalBudget.
type ProjectBudget struct {
	BudgetID        string          `json:"budgetID"`
	ProjectID       string          `json:"projectID"`
	TotalBudget     decimal.Decimal `json:"totalBudget"` // > 0
	AlertPercentage int             `json:"alertPercentage"` // 1..100, default 80
	AuditFields
	SoftDeleteFields
}

// AlertThreshold returns the spend amount at which the alert fires.
func (b ProjectBudget) AlertThreshold() decimal.Decimal {
	return b.TotalBudget.Mul(decimal.NewFromInt(int64(b.AlertPercentage))).Div(decimal.NewFromInt(100))
}
