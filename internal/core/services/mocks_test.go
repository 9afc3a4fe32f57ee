package services_test

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, userID, deletedBy, now).Error(0)
}
func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time, now time.Time) error {
	return m.Called(ctx, userID, tokenHash, expiresAt, now).Error(0)
}
func (m *MockUserRepository) UpdateLastLoginAt(ctx context.Context, userID string, now time.Time) error {
	return m.Called(ctx, userID, now).Error(0)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock PasswordResetRepository ---

type MockPasswordResetRepository struct {
	mock.Mock
}

func (m *MockPasswordResetRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockPasswordResetRepository) FindResetTokenByCodeHash(ctx context.Context, userID, codeHash string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, userID, codeHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}
func (m *MockPasswordResetRepository) MarkResetTokenUsed(ctx context.Context, tokenID string, now time.Time) error {
	return m.Called(ctx, tokenID, now).Error(0)
}
func (m *MockPasswordResetRepository) InvalidateResetTokensForUser(ctx context.Context, userID string, now time.Time) error {
	return m.Called(ctx, userID, now).Error(0)
}

var _ portsrepo.PasswordResetRepository = (*MockPasswordResetRepository)(nil)

// --- Mock PlanRepository ---

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}
func (m *MockPlanRepository) FindPlanBySlug(ctx context.Context, slug string) (*domain.Plan, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}
func (m *MockPlanRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

var _ portsrepo.PlanRepository = (*MockPlanRepository)(nil)

// --- Mock ProjectRepository ---

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project, ownerMember domain.ProjectMember, defaultCategory domain.Category) error {
	return m.Called(ctx, project, ownerMember, defaultCategory).Error(0)
}
func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepository) ListProjectsForUser(ctx context.Context, userID string, limit, offset int) ([]domain.Project, map[string]domain.ProjectMemberRole, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, nil, 0, args.Error(3)
	}
	return args.Get(0).([]domain.Project), args.Get(1).(map[string]domain.ProjectMemberRole), args.Int(2), args.Error(3)
}
func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	return m.Called(ctx, project).Error(0)
}
func (m *MockProjectRepository) MarkProjectDeleted(ctx context.Context, projectID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, projectID, deletedBy, now).Error(0)
}
func (m *MockProjectRepository) CountProjectsOwnedBy(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockProjectRepository) SaveMember(ctx context.Context, member domain.ProjectMember) error {
	return m.Called(ctx, member).Error(0)
}
func (m *MockProjectRepository) FindMemberRole(ctx context.Context, projectID, userID string) (domain.ProjectMemberRole, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Get(0).(domain.ProjectMemberRole), args.Error(1)
}
func (m *MockProjectRepository) ListMembers(ctx context.Context, projectID string) ([]domain.ProjectMemberDetail, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectMemberDetail), args.Error(1)
}
func (m *MockProjectRepository) UpdateMemberRole(ctx context.Context, projectID, memberID string, role domain.ProjectMemberRole, now time.Time) error {
	return m.Called(ctx, projectID, memberID, role, now).Error(0)
}
func (m *MockProjectRepository) MarkMemberDeleted(ctx context.Context, projectID, memberID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, projectID, memberID, deletedBy, now).Error(0)
}

var _ portsrepo.ProjectRepository = (*MockProjectRepository)(nil)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}
func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

var _ portsrepo.CurrencyRepository = (*MockCurrencyRepository)(nil)

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) UpsertBudget(ctx context.Context, budget domain.ProjectBudget) error {
	return m.Called(ctx, budget).Error(0)
}
func (m *MockBudgetRepository) FindBudgetByProjectID(ctx context.Context, projectID string) (*domain.ProjectBudget, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectBudget), args.Error(1)
}
func (m *MockBudgetRepository) MarkBudgetDeleted(ctx context.Context, projectID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, projectID, deletedBy, now).Error(0)
}

var _ portsrepo.BudgetRepository = (*MockBudgetRepository)(nil)

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, projectID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, projectID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepository) ListCategories(ctx context.Context, projectID string) ([]domain.Category, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepository) MarkCategoryDeleted(ctx context.Context, projectID, categoryID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, projectID, categoryID, deletedBy, now).Error(0)
}
func (m *MockCategoryRepository) CountCategories(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

var _ portsrepo.CategoryRepository = (*MockCategoryRepository)(nil)

// --- Mock PaymentMethodRepository ---

type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	return m.Called(ctx, pm).Error(0)
}
func (m *MockPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}
func (m *MockPaymentMethodRepository) ListPaymentMethods(ctx context.Context, ownerUserID string) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}
func (m *MockPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	return m.Called(ctx, pm).Error(0)
}
func (m *MockPaymentMethodRepository) MarkPaymentMethodDeleted(ctx context.Context, paymentMethodID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, paymentMethodID, deletedBy, now).Error(0)
}
func (m *MockPaymentMethodRepository) CountPaymentMethods(ctx context.Context, ownerUserID string) (int, error) {
	args := m.Called(ctx, ownerUserID)
	return args.Int(0), args.Error(1)
}

var _ portsrepo.PaymentMethodRepository = (*MockPaymentMethodRepository)(nil)

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}
func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, projectID, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, projectID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseRepository) ListExpenses(ctx context.Context, projectID string, filter portsrepo.ExpenseListFilter) ([]domain.Expense, int, error) {
	args := m.Called(ctx, projectID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}
func (m *MockExpenseRepository) ListExpensesByPaymentMethod(ctx context.Context, paymentMethodID string, limit, offset int) ([]domain.Expense, int, error) {
	args := m.Called(ctx, paymentMethodID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}
func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	return m.Called(ctx, expense).Error(0)
}
func (m *MockExpenseRepository) MarkExpenseDeleted(ctx context.Context, projectID, expenseID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, projectID, expenseID, deletedBy, now).Error(0)
}
func (m *MockExpenseRepository) CountExpensesForUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}
func (m *MockExpenseRepository) SumConvertedByCategory(ctx context.Context, projectID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}
func (m *MockExpenseRepository) SumConvertedForProject(ctx context.Context, projectID string) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portsrepo.ExpenseRepository = (*MockExpenseRepository)(nil)

// --- Mock ObligationRepository ---

type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	return m.Called(ctx, obligation).Error(0)
}
func (m *MockObligationRepository) FindObligationByID(ctx context.Context, projectID, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, projectID, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationRepository) ListObligations(ctx context.Context, projectID string, sortBy string, sortDesc bool, limit, offset int) ([]domain.Obligation, int, error) {
	args := m.Called(ctx, projectID, sortBy, sortDesc, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Obligation), args.Int(1), args.Error(2)
}
func (m *MockObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	return m.Called(ctx, obligation).Error(0)
}
func (m *MockObligationRepository) MarkObligationDeleted(ctx context.Context, projectID, obligationID string, deletedBy string, now time.Time) error {
	return m.Called(ctx, projectID, obligationID, deletedBy, now).Error(0)
}
func (m *MockObligationRepository) PaidAmounts(ctx context.Context, obligationIDs []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, obligationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

var _ portsrepo.ObligationRepository = (*MockObligationRepository)(nil)

// --- Mock PlanService ---

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) GetPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}
func (m *MockPlanService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}
func (m *MockPlanService) CheckProjectLimit(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockPlanService) CheckPaymentMethodLimit(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockPlanService) CheckExpenseLimit(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

var _ portssvc.PlanSvcFacade = (*MockPlanService)(nil)

// --- Mock ProjectAuthorizer ---

type MockProjectAuthorizer struct {
	mock.Mock
}

func (m *MockProjectAuthorizer) AuthorizeMember(ctx context.Context, projectID, userID string, requireEdit bool) (domain.ProjectMemberRole, error) {
	args := m.Called(ctx, projectID, userID, requireEdit)
	return args.Get(0).(domain.ProjectMemberRole), args.Error(1)
}

var _ portssvc.ProjectAuthorizerSvc = (*MockProjectAuthorizer)(nil)

// --- Mock AuditService ---

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry domain.AuditLog) {
	m.Called(ctx, entry)
}
func (m *MockAuditService) ListForProject(ctx context.Context, projectID, callerID string, page, pageSize int) ([]domain.AuditLog, int, error) {
	args := m.Called(ctx, projectID, callerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLog), args.Int(1), args.Error(2)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)
