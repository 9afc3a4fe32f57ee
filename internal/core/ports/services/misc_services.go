package services

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/centavo-app/centavo-backend/internal/dto"
)

// CategorySvcFacade manages expense categories within a project.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, projectID string, req dto.CreateCategoryRequest, callerID string) (*domain.Category, error)
	ListCategories(ctx context.Context, projectID, callerID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, projectID, categoryID string, req dto.UpdateCategoryRequest, callerID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, projectID, categoryID, callerID string) error
}

// PaymentMethodSvcFacade manages user-owned payment methods.
type PaymentMethodSvcFacade interface {
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, callerID string) (*domain.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, paymentMethodID, callerID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, callerID string) ([]domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, paymentMethodID string, req dto.UpdatePaymentMethodRequest, callerID string) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, paymentMethodID, callerID string) error
}

// CurrencySvcFacade manages the currency catalogue.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, callerID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// PlanSvcFacade reads plans and enforces plan limits.
type PlanSvcFacade interface {
	GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	// CheckProjectLimit returns ErrPlanLimit when the user may not create
	// another project under their plan.
	CheckProjectLimit(ctx context.Context, user *domain.User) error
	CheckPaymentMethodLimit(ctx context.Context, user *domain.User) error
	CheckExpenseLimit(ctx context.Context, user *domain.User) error
}

// ReportingSvcFacade computes read-only aggregations.
type ReportingSvcFacade interface {
	CategoryTotals(ctx context.Context, projectID, callerID string) ([]dto.CategoryTotal, error)
	BudgetReport(ctx context.Context, projectID, callerID string) (*dto.BudgetReport, error)
}

// AuditSvcFacade records and lists audit log entries. Recording is
// best-effort: failures are logged and never fail the calling mutation.
type AuditSvcFacade interface {
	Record(ctx context.Context, entry domain.AuditLog)
	ListForProject(ctx context.Context, projectID, callerID string, page, pageSize int) ([]domain.AuditLog, int, error)
}
