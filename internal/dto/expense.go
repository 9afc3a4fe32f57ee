package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Expense DTOs ---

// CreateExpenseRequest defines data for recording an expense. The converted
// amount is always computed server-side from originalAmount and the effective
// exchange rate; a client-provided value is ignored.
type CreateExpenseRequest struct {
	Title            string          `json:"title" binding:"required,max=200"`
	Description      string          `json:"description"`
	CategoryID       string          `json:"categoryID" binding:"required,uuid"`
	PaymentMethodID  string          `json:"paymentMethodID" binding:"required,uuid"`
	ObligationID     *string         `json:"obligationID" binding:"omitempty,uuid"`
	OriginalAmount   decimal.Decimal `json:"originalAmount" binding:"required"`
	OriginalCurrency string          `json:"originalCurrency" binding:"required,iso4217"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ExpenseDate      string          `json:"expenseDate" binding:"required,dateonly"`
	ReceiptNumber    string          `json:"receiptNumber"`
	Notes            string          `json:"notes"`
	IsTemplate       bool            `json:"isTemplate"`

	AltCurrency     *string          `json:"altCurrency" binding:"omitempty,iso4217"`
	AltExchangeRate *decimal.Decimal `json:"altExchangeRate"`
}

// UpdateExpenseRequest mirrors CreateExpenseRequest; all fields are replaced.
// Setting obligationID links the expense as a payment, clearing it unlinks.
type UpdateExpenseRequest struct {
	Title            string          `json:"title" binding:"required,max=200"`
	Description      string          `json:"description"`
	CategoryID       string          `json:"categoryID" binding:"required,uuid"`
	PaymentMethodID  string          `json:"paymentMethodID" binding:"required,uuid"`
	ObligationID     *string         `json:"obligationID" binding:"omitempty,uuid"`
	OriginalAmount   decimal.Decimal `json:"originalAmount" binding:"required"`
	OriginalCurrency string          `json:"originalCurrency" binding:"required,iso4217"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ExpenseDate      string          `json:"expenseDate" binding:"required,dateonly"`
	ReceiptNumber    string          `json:"receiptNumber"`
	Notes            string          `json:"notes"`
	IsTemplate       bool            `json:"isTemplate"`

	AltCurrency     *string          `json:"altCurrency" binding:"omitempty,iso4217"`
	AltExchangeRate *decimal.Decimal `json:"altExchangeRate"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	PageParams
	CategoryID    string `form:"categoryId" binding:"omitempty,uuid"`
	ObligationID  string `form:"obligationId" binding:"omitempty,uuid"`
	TemplatesOnly bool   `form:"templatesOnly"`
	SortBy        string `form:"sortBy,default=expenseDate" binding:"omitempty,oneof=expenseDate createdAt convertedAmount"`
	SortDirection string `form:"sortDirection,default=desc" binding:"omitempty,oneof=asc desc"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID        string          `json:"expenseID"`
	ProjectID        string          `json:"projectID"`
	CategoryID       string          `json:"categoryID"`
	PaymentMethodID  string          `json:"paymentMethodID"`
	CreatedByUserID  string          `json:"createdByUserID"`
	ObligationID     *string         `json:"obligationID,omitempty"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	ExpenseDate      string          `json:"expenseDate"`
	ReceiptNumber    string          `json:"receiptNumber,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	IsTemplate       bool            `json:"isTemplate"`

	AltCurrency     *string          `json:"altCurrency,omitempty"`
	AltExchangeRate *decimal.Decimal `json:"altExchangeRate,omitempty"`
	AltAmount       *decimal.Decimal `json:"altAmount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToExpenseResponse converts domain.Expense to DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:        e.ExpenseID,
		ProjectID:        e.ProjectID,
		CategoryID:       e.CategoryID,
		PaymentMethodID:  e.PaymentMethodID,
		CreatedByUserID:  e.CreatedByUserID,
		ObligationID:     e.ObligationID,
		OriginalAmount:   e.OriginalAmount,
		OriginalCurrency: e.OriginalCurrency,
		ExchangeRate:     e.ExchangeRate,
		ConvertedAmount:  e.ConvertedAmount,
		Title:            e.Title,
		Description:      e.Description,
		ExpenseDate:      e.ExpenseDate.Format("2006-01-02"),
		ReceiptNumber:    e.ReceiptNumber,
		Notes:            e.Notes,
		IsTemplate:       e.IsTemplate,
		AltCurrency:      e.AltCurrency,
		AltExchangeRate:  e.AltExchangeRate,
		AltAmount:        e.AltAmount,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = ToExpenseResponse(&e)
	}
	return res
}
