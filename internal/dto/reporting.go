package dto

import "github.com/shopspring/decimal"

// CategoryTotal is one row of the per-category spending report. Amounts are
// in the project's base currency.
type CategoryTotal struct {
	CategoryID   string           `json:"categoryID"`
	CategoryName string           `json:"categoryName"`
	Spent        decimal.Decimal  `json:"spent"`
	BudgetAmount *decimal.Decimal `json:"budgetAmount,omitempty"`
	// OverBudget is set when a budget cap exists and spending exceeds it.
	OverBudget bool `json:"overBudget"`
}

// BudgetReport compares total project spending against the project budget.
type BudgetReport struct {
	ProjectID       string          `json:"projectID"`
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	Remaining       decimal.Decimal `json:"remaining"`
	AlertPercentage int             `json:"alertPercentage"`
	// AlertTriggered is set once spending reaches alertPercentage percent
	// of the total budget.
	AlertTriggered bool `json:"alertTriggered"`
}
