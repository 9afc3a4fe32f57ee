package services_test

import (
	"context"
	"testing"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/core/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	expenseRepo    *MockExpenseRepository
	obligationRepo *MockObligationRepository
	categoryRepo   *MockCategoryRepository
	pmRepo         *MockPaymentMethodRepository
	projectRepo    *MockProjectRepository
	userRepo       *MockUserRepository
	projectAuth    *MockProjectAuthorizer
	planSvc        *MockPlanService
	audit          *MockAuditService
	service        portssvc.ExpenseSvcFacade

	projectID  string
	callerID   string
	categoryID string
	pmID       string
	planID     string
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.expenseRepo = new(MockExpenseRepository)
	s.obligationRepo = new(MockObligationRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.pmRepo = new(MockPaymentMethodRepository)
	s.projectRepo = new(MockProjectRepository)
	s.userRepo = new(MockUserRepository)
	s.projectAuth = new(MockProjectAuthorizer)
	s.planSvc = new(MockPlanService)
	s.audit = new(MockAuditService)
	s.service = services.NewExpenseService(
		s.expenseRepo, s.obligationRepo, s.categoryRepo, s.pmRepo,
		s.projectRepo, s.userRepo, s.projectAuth, s.planSvc, s.audit,
	)

	s.projectID = uuid.NewString()
	s.callerID = uuid.NewString()
	s.categoryID = uuid.NewString()
	s.pmID = uuid.NewString()
	s.planID = uuid.NewString()

	s.audit.On("Record", mock.Anything, mock.Anything).Maybe()
}

// setupCreatePath wires the happy-path collaborators for CreateExpense
// against a EUR-based project.
func (s *ExpenseServiceTestSuite) setupCreatePath() {
	s.projectAuth.On("AuthorizeMember", mock.Anything, s.projectID, s.callerID, true).
		Return(domain.RoleEditor, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.callerID).
		Return(&domain.User{UserID: s.callerID, PlanID: s.planID}, nil)
	s.planSvc.On("CheckExpenseLimit", mock.Anything, mock.Anything).Return(nil)
	s.projectRepo.On("FindProjectByID", mock.Anything, s.projectID).
		Return(&domain.Project{ProjectID: s.projectID, CurrencyCode: "EUR"}, nil)
	s.categoryRepo.On("FindCategoryByID", mock.Anything, s.projectID, s.categoryID).
		Return(&domain.Category{CategoryID: s.categoryID, ProjectID: s.projectID}, nil)
	s.pmRepo.On("FindPaymentMethodByID", mock.Anything, s.pmID).
		Return(&domain.PaymentMethod{PaymentMethodID: s.pmID, OwnerUserID: s.callerID}, nil)
}

func (s *ExpenseServiceTestSuite) baseRequest() dto.CreateExpenseRequest {
	return dto.CreateExpenseRequest{
		Title:            "Groceries",
		CategoryID:       s.categoryID,
		PaymentMethodID:  s.pmID,
		OriginalAmount:   decimal.NewFromFloat(42.50),
		OriginalCurrency: "EUR",
		ExpenseDate:      "2026-02-14",
	}
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_SameCurrencyForcesRateOne() {
	s.setupCreatePath()

	req := s.baseRequest()
	// A client-supplied rate is ignored when the currency matches.
	req.ExchangeRate = decimal.NewFromFloat(1.25)

	s.expenseRepo.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ExchangeRate.Equal(decimal.NewFromInt(1)) &&
			e.ConvertedAmount.Equal(decimal.NewFromFloat(42.50))
	})).Return(nil).Once()

	got, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().NoError(err)
	s.True(got.ConvertedAmount.Equal(decimal.NewFromFloat(42.50)))
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_ForeignCurrencyConvertsAndRounds() {
	s.setupCreatePath()
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanUseMultiCurrency: true}, nil)

	req := s.baseRequest()
	req.OriginalAmount = decimal.NewFromFloat(100.555)
	req.OriginalCurrency = "USD"
	req.ExchangeRate = decimal.NewFromFloat(0.91)

	// 100.555 * 0.91 = 91.50505 -> 91.51 after rounding half away from zero.
	s.expenseRepo.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ConvertedAmount.Equal(decimal.NewFromFloat(91.51))
	})).Return(nil).Once()

	_, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().NoError(err)
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_ForeignCurrencyNeedsPlan() {
	s.setupCreatePath()
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanUseMultiCurrency: false}, nil)

	req := s.baseRequest()
	req.OriginalCurrency = "USD"
	req.ExchangeRate = decimal.NewFromFloat(0.91)

	_, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrPlanLimit)
	s.expenseRepo.AssertNotCalled(s.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_ForeignCurrencyNeedsPositiveRate() {
	s.setupCreatePath()
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanUseMultiCurrency: true}, nil)

	req := s.baseRequest()
	req.OriginalCurrency = "USD"
	req.ExchangeRate = decimal.Zero

	_, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_AltTrioMustTravelTogether() {
	s.setupCreatePath()

	req := s.baseRequest()
	alt := "GBP"
	req.AltCurrency = &alt // rate missing

	_, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_AltProjectionComputed() {
	s.setupCreatePath()

	req := s.baseRequest()
	alt := "GBP"
	altRate := decimal.NewFromFloat(0.85)
	req.AltCurrency = &alt
	req.AltExchangeRate = &altRate

	// 42.50 * 0.85 = 36.125 -> 36.13
	s.expenseRepo.On("SaveExpense", mock.Anything, mock.MatchedBy(func(e domain.Expense) bool {
		return e.AltAmount != nil && e.AltAmount.Equal(decimal.NewFromFloat(36.13))
	})).Return(nil).Once()

	_, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().NoError(err)
	s.expenseRepo.AssertExpectations(s.T())
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_TemplateCannotLinkObligation() {
	s.setupCreatePath()

	req := s.baseRequest()
	obligationID := uuid.NewString()
	req.IsTemplate = true
	req.ObligationID = &obligationID

	_, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_ForeignPaymentMethodRejected() {
	s.projectAuth.On("AuthorizeMember", mock.Anything, s.projectID, s.callerID, true).
		Return(domain.RoleEditor, nil)
	s.userRepo.On("FindUserByID", mock.Anything, s.callerID).
		Return(&domain.User{UserID: s.callerID, PlanID: s.planID}, nil)
	s.planSvc.On("CheckExpenseLimit", mock.Anything, mock.Anything).Return(nil)
	s.projectRepo.On("FindProjectByID", mock.Anything, s.projectID).
		Return(&domain.Project{ProjectID: s.projectID, CurrencyCode: "EUR"}, nil)
	s.categoryRepo.On("FindCategoryByID", mock.Anything, s.projectID, s.categoryID).
		Return(&domain.Category{CategoryID: s.categoryID, ProjectID: s.projectID}, nil)
	s.pmRepo.On("FindPaymentMethodByID", mock.Anything, s.pmID).
		Return(&domain.PaymentMethod{PaymentMethodID: s.pmID, OwnerUserID: uuid.NewString()}, nil)

	_, err := s.service.CreateExpense(context.Background(), s.projectID, s.baseRequest(), s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestCreateExpense_ObligationMustBeInProject() {
	s.setupCreatePath()
	obligationID := uuid.NewString()
	s.obligationRepo.On("FindObligationByID", mock.Anything, s.projectID, obligationID).
		Return(nil, apperrors.ErrNotFound).Once()

	req := s.baseRequest()
	req.ObligationID = &obligationID

	_, err := s.service.CreateExpense(context.Background(), s.projectID, req, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ExpenseServiceTestSuite) TestListExpensesByPaymentMethod_OtherOwnerReadsAsNotFound() {
	s.pmRepo.On("FindPaymentMethodByID", mock.Anything, s.pmID).
		Return(&domain.PaymentMethod{PaymentMethodID: s.pmID, OwnerUserID: uuid.NewString()}, nil).Once()

	_, _, err := s.service.ListExpensesByPaymentMethod(context.Background(), s.pmID, 1, 10, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.expenseRepo.AssertNotCalled(s.T(), "ListExpensesByPaymentMethod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpense_SoftDeletes() {
	expenseID := uuid.NewString()
	s.projectAuth.On("AuthorizeMember", mock.Anything, s.projectID, s.callerID, true).
		Return(domain.RoleEditor, nil)
	s.expenseRepo.On("FindExpenseByID", mock.Anything, s.projectID, expenseID).
		Return(&domain.Expense{ExpenseID: expenseID, ProjectID: s.projectID}, nil).Once()
	s.expenseRepo.On("MarkExpenseDeleted", mock.Anything, s.projectID, expenseID, s.callerID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.DeleteExpense(context.Background(), s.projectID, expenseID, s.callerID)

	s.Require().NoError(err)
	s.expenseRepo.AssertExpectations(s.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
