package services

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	"github.com/centavo-app/centavo-backend/internal/dto"
)

// ExpenseSvcFacade manages expenses, including currency conversion and
// linking expenses to obligations as payments.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, projectID string, req dto.CreateExpenseRequest, callerID string) (*domain.Expense, error)
	GetExpense(ctx context.Context, projectID, expenseID, callerID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, projectID string, filter portsrepo.ExpenseListFilter, callerID string) ([]domain.Expense, int, error)
	ListExpensesByPaymentMethod(ctx context.Context, paymentMethodID string, page, pageSize int, callerID string) ([]domain.Expense, int, error)
	UpdateExpense(ctx context.Context, projectID, expenseID string, req dto.UpdateExpenseRequest, callerID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, projectID, expenseID, callerID string) error
}
