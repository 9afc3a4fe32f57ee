package pgsql

import (
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:          newPgxUserRepository(dbPool),
		PasswordResetRepo: newPgxPasswordResetRepository(dbPool),
		PlanRepo:          newPgxPlanRepository(dbPool),
		CurrencyRepo:      newPgxCurrencyRepository(dbPool),
		ProjectRepo:       newPgxProjectRepository(dbPool),
		CategoryRepo:      newPgxCategoryRepository(dbPool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(dbPool),
		ExpenseRepo:       newPgxExpenseRepository(dbPool),
		ObligationRepo:    newPgxObligationRepository(dbPool),
		BudgetRepo:        newPgxBudgetRepository(dbPool),
		AuditLogRepo:      newPgxAuditLogRepository(dbPool),
	}
}
