package repositories

// RepositoryProvider bundles all repository implementations so they can be
// passed to the service container as a unit.
type RepositoryProvider struct {
	UserRepo          UserRepository
	PasswordResetRepo PasswordResetRepository
	PlanRepo          PlanRepository
	CurrencyRepo      CurrencyRepository
	ProjectRepo       ProjectRepository
	CategoryRepo      CategoryRepository
	PaymentMethodRepo PaymentMethodRepository
	ExpenseRepo       ExpenseRepository
	ObligationRepo    ObligationRepository
	BudgetRepo        BudgetRepository
	AuditLogRepo      AuditLogRepository
}
