package domain

import "github.com/shopspring/decimal"

// Category groups expenses within a project. Every project gets a default
// "General" category on creation; the default category cannot be deleted.
type Category struct {
	CategoryID   string           `json:"categoryID"`
	ProjectID    string           `json:"projectID"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	IsDefault    bool             `json:"isDefault"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount,omitempty"` // nil = no budget cap
	AuditFields
	SoftDeleteFields
}
