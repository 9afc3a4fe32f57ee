package services

import (
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/platform/config"
	"github.com/centavo-app/centavo-backend/internal/platform/events"
)

// NewServiceContainer wires all services. publisher may be nil when no
// message broker is configured.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, publisher *events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit goes first: almost every other service records through it. It
	// authorizes reads against the project repository directly to stay out
	// of the service dependency graph.
	container.Audit = NewAuditService(repos.AuditLogRepo, repos.ProjectRepo, publisher)

	container.Plan = NewPlanService(repos.PlanRepo, repos.ProjectRepo, repos.PaymentMethodRepo, repos.ExpenseRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo, repos.PlanRepo, repos.PasswordResetRepo, container.Audit)
	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	container.Project = NewProjectService(
		repos.ProjectRepo,
		repos.UserRepo,
		repos.CurrencyRepo,
		repos.BudgetRepo,
		container.Plan,
		container.Audit,
	)

	// The remaining services authorize through the project service.
	projectAuth := portssvc.ProjectAuthorizerSvc(container.Project)

	container.Category = NewCategoryService(repos.CategoryRepo, projectAuth, container.Audit)
	container.PaymentMethod = NewPaymentMethodService(repos.PaymentMethodRepo, repos.CurrencyRepo, repos.UserRepo, container.Plan, container.Audit)
	container.Obligation = NewObligationService(repos.ObligationRepo, projectAuth, container.Audit)
	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.ObligationRepo,
		repos.CategoryRepo,
		repos.PaymentMethodRepo,
		repos.ProjectRepo,
		repos.UserRepo,
		projectAuth,
		container.Plan,
		container.Audit,
	)
	container.Reporting = NewReportingService(repos.ExpenseRepo, repos.CategoryRepo, repos.BudgetRepo, projectAuth)

	return container
}

// Compile-time facade checks.
var (
	_ portssvc.UserSvcFacade          = (*userService)(nil)
	_ portssvc.TokenSvcFacade         = (*tokenService)(nil)
	_ portssvc.GoogleOAuthSvcFacade   = (*googleOAuthService)(nil)
	_ portssvc.ProjectSvcFacade       = (*projectService)(nil)
	_ portssvc.CategorySvcFacade      = (*categoryService)(nil)
	_ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)
	_ portssvc.ExpenseSvcFacade       = (*expenseService)(nil)
	_ portssvc.ObligationSvcFacade    = (*obligationService)(nil)
	_ portssvc.PlanSvcFacade          = (*planService)(nil)
	_ portssvc.CurrencySvcFacade      = (*currencyService)(nil)
	_ portssvc.ReportingSvcFacade     = (*reportingService)(nil)
	_ portssvc.AuditSvcFacade         = (*auditService)(nil)
)
