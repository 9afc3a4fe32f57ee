package services

// ServiceContainer holds instances of all application services. Handlers
// receive this container and pick the facades they need.
type ServiceContainer struct {
	User          UserSvcFacade
	Token         TokenSvcFacade
	GoogleOAuth   GoogleOAuthSvcFacade
	Plan          PlanSvcFacade
	Currency      CurrencySvcFacade
	Project       ProjectSvcFacade
	Category      CategorySvcFacade
	PaymentMethod PaymentMethodSvcFacade
	Expense       ExpenseSvcFacade
	Obligation    ObligationSvcFacade
	Reporting     ReportingSvcFacade
	Audit         AuditSvcFacade
}
