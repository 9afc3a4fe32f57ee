package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a monetary transaction within a project. When
// ObligationID is set the expense acts as a payment toward that obligation
// and its ConvertedAmount contributes to the obligation's paid balance.
type Expense struct {
	ExpenseID       string  `json:"expenseID"`
	ProjectID       string  `json:"projectID"`
	CategoryID      string  `json:"categoryID"`
	PaymentMethodID string  `json:"paymentMethodID"`
	CreatedByUserID string  `json:"createdByUserID"`
	ObligationID    *string `json:"obligationID,omitempty"` // nil = regular expense

	// OriginalAmount is what the user paid in OriginalCurrency. ExchangeRate
	// is units of project currency per 1 unit of original currency and is
	// exactly 1 whenever the currencies match. ConvertedAmount is the
	// normalized amount in the project's base currency.
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`

	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ExpenseDate   time.Time `json:"expenseDate"` // calendar date
	ReceiptNumber string    `json:"receiptNumber"`
	Notes         string    `json:"notes"`
	IsTemplate    bool      `json:"isTemplate"` // templates may not carry an ObligationID

	// Optional secondary display currency. The three fields are set together
	// or nil together, never partially.
	AltCurrency     *string          `json:"altCurrency,omitempty"`
	AltExchangeRate *decimal.Decimal `json:"altExchangeRate,omitempty"`
	AltAmount       *decimal.Decimal `json:"altAmount,omitempty"`

	AuditFields
	SoftDeleteFields
}

// ConvertAmount translates an amount through an exchange rate and rounds to
// 2 decimal places, half away from zero. Rounding is fixed at 2 places
// regardless of the target currency's natural precision; amounts are decimal
// throughout so no floating-point drift can occur.
func ConvertAmount(originalAmount, exchangeRate decimal.Decimal) decimal.Decimal {
	return originalAmount.Mul(exchangeRate).Round(2)
}

// EffectiveExchangeRate returns the rate to apply for a conversion. A rate of
// exactly 1 is forced whenever the expense currency already matches the
// project currency, regardless of what was submitted.
func EffectiveExchangeRate(originalCurrency, projectCurrency string, submitted decimal.Decimal) decimal.Decimal {
	if originalCurrency == projectCurrency {
		return decimal.NewFromInt(1)
	}
	return submitted
}

// AltProjection computes the secondary-currency display amount from an
// already converted amount.
func AltProjection(convertedAmount, altExchangeRate decimal.Decimal) decimal.Decimal {
	return ConvertAmount(convertedAmount, altExchangeRate)
}
