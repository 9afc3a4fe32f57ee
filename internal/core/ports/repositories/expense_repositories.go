package repositories

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseListFilter narrows expense listings. Zero values mean "no filter".
type ExpenseListFilter struct {
	CategoryID    string
	ObligationID  string
	TemplatesOnly bool
	SortBy        string // expenseDate | createdAt | convertedAmount
	SortDesc      bool
	Limit         int
	Offset        int
}

// ExpenseRepository persists expenses.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, projectID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, projectID string, filter ExpenseListFilter) ([]domain.Expense, int, error)
	ListExpensesByPaymentMethod(ctx context.Context, paymentMethodID string, limit, offset int) ([]domain.Expense, int, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	MarkExpenseDeleted(ctx context.Context, projectID, expenseID string, deletedBy string, now time.Time) error
	CountExpensesForUserSince(ctx context.Context, userID string, since time.Time) (int, error)

	// Reporting aggregations. Both exclude deleted and template expenses.
	SumConvertedByCategory(ctx context.Context, projectID string) (map[string]decimal.Decimal, error)
	SumConvertedForProject(ctx context.Context, projectID string) (decimal.Decimal, error)
}
