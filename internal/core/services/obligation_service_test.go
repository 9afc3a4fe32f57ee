package services_test

import (
	"context"
	"testing"
	"time"

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

type ObligationServiceTestSuite struct {
	suite.Suite
	obligationRepo *MockObligationRepository
	projectAuth    *MockProjectAuthorizer
	audit          *MockAuditService
	service        portssvc.ObligationSvcFacade

	projectID string
	callerID  string
}

func (s *ObligationServiceTestSuite) SetupTest() {
	s.obligationRepo = new(MockObligationRepository)
	s.projectAuth = new(MockProjectAuthorizer)
	s.audit = new(MockAuditService)
	s.service = services.NewObligationService(s.obligationRepo, s.projectAuth, s.audit)

	s.projectID = uuid.NewString()
	s.callerID = uuid.NewString()

	s.audit.On("Record", mock.Anything, mock.Anything).Maybe()
}

func (s *ObligationServiceTestSuite) authorize(requireEdit bool, role domain.ProjectMemberRole, err error) {
	s.projectAuth.On("AuthorizeMember", mock.Anything, s.projectID, s.callerID, requireEdit).
		Return(role, err)
}

func (s *ObligationServiceTestSuite) TestCreateObligation_StartsOpenWithZeroPaid() {
	s.authorize(true, domain.RoleEditor, nil)
	s.obligationRepo.On("SaveObligation", mock.Anything, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.ProjectID == s.projectID && o.TotalAmount.Equal(decimal.NewFromInt(500))
	})).Return(nil).Once()

	got, err := s.service.CreateObligation(context.Background(), s.projectID, dto.CreateObligationRequest{
		Title:        "Car loan",
		TotalAmount:  decimal.NewFromInt(500),
		CurrencyCode: "USD",
	}, s.callerID)

	s.Require().NoError(err)
	s.True(got.PaidAmount.IsZero())
	s.True(got.RemainingAmount.Equal(decimal.NewFromInt(500)))
	s.Equal(domain.ObligationOpen, got.Status)
	s.obligationRepo.AssertExpectations(s.T())
}

func (s *ObligationServiceTestSuite) TestCreateObligation_RejectsNonPositiveTotal() {
	s.authorize(true, domain.RoleEditor, nil)

	_, err := s.service.CreateObligation(context.Background(), s.projectID, dto.CreateObligationRequest{
		Title:        "Zero",
		TotalAmount:  decimal.Zero,
		CurrencyCode: "USD",
	}, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.obligationRepo.AssertNotCalled(s.T(), "SaveObligation", mock.Anything, mock.Anything)
}

func (s *ObligationServiceTestSuite) TestCreateObligation_RejectsBadDueDate() {
	s.authorize(true, domain.RoleEditor, nil)

	badDate := "03/04/2026"
	_, err := s.service.CreateObligation(context.Background(), s.projectID, dto.CreateObligationRequest{
		Title:        "Rent",
		TotalAmount:  decimal.NewFromInt(100),
		CurrencyCode: "USD",
		DueDate:      &badDate,
	}, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ObligationServiceTestSuite) TestCreateObligation_ViewerForbidden() {
	s.authorize(true, domain.ProjectMemberRole(""), apperrors.ErrForbidden)

	_, err := s.service.CreateObligation(context.Background(), s.projectID, dto.CreateObligationRequest{
		Title:        "Rent",
		TotalAmount:  decimal.NewFromInt(100),
		CurrencyCode: "USD",
	}, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ObligationServiceTestSuite) TestGetObligation_EnrichesBalance() {
	s.authorize(false, domain.RoleViewer, nil)
	obligationID := uuid.NewString()

	s.obligationRepo.On("FindObligationByID", mock.Anything, s.projectID, obligationID).
		Return(&domain.Obligation{
			ObligationID: obligationID,
			ProjectID:    s.projectID,
			TotalAmount:  decimal.NewFromInt(1000),
			CurrencyCode: "USD",
		}, nil).Once()
	s.obligationRepo.On("PaidAmounts", mock.Anything, []string{obligationID}).
		Return(map[string]decimal.Decimal{obligationID: decimal.NewFromInt(400)}, nil).Once()

	got, err := s.service.GetObligation(context.Background(), s.projectID, obligationID, s.callerID)

	s.Require().NoError(err)
	s.True(got.PaidAmount.Equal(decimal.NewFromInt(400)))
	s.True(got.RemainingAmount.Equal(decimal.NewFromInt(600)))
	s.Equal(domain.ObligationPartiallyPaid, got.Status)
}

func (s *ObligationServiceTestSuite) TestGetObligation_OverpaymentGoesNegative() {
	s.authorize(false, domain.RoleViewer, nil)
	obligationID := uuid.NewString()

	s.obligationRepo.On("FindObligationByID", mock.Anything, s.projectID, obligationID).
		Return(&domain.Obligation{
			ObligationID: obligationID,
			ProjectID:    s.projectID,
			TotalAmount:  decimal.NewFromInt(100),
			CurrencyCode: "USD",
		}, nil).Once()
	s.obligationRepo.On("PaidAmounts", mock.Anything, []string{obligationID}).
		Return(map[string]decimal.Decimal{obligationID: decimal.NewFromInt(150)}, nil).Once()

	got, err := s.service.GetObligation(context.Background(), s.projectID, obligationID, s.callerID)

	s.Require().NoError(err)
	s.Equal(domain.ObligationPaid, got.Status)
	s.True(got.RemainingAmount.Equal(decimal.NewFromInt(-50)))
}

func (s *ObligationServiceTestSuite) TestListObligations_FiltersOnDerivedStatus() {
	s.authorize(false, domain.RoleViewer, nil)

	paidID := uuid.NewString()
	openID := uuid.NewString()
	obligations := []domain.Obligation{
		{ObligationID: paidID, ProjectID: s.projectID, TotalAmount: decimal.NewFromInt(100)},
		{ObligationID: openID, ProjectID: s.projectID, TotalAmount: decimal.NewFromInt(200)},
	}

	s.obligationRepo.On("ListObligations", mock.Anything, s.projectID, "dueDate", false, 10, 0).
		Return(obligations, 2, nil).Once()
	s.obligationRepo.On("PaidAmounts", mock.Anything, []string{paidID, openID}).
		Return(map[string]decimal.Decimal{paidID: decimal.NewFromInt(100)}, nil).Once()

	params := dto.ListObligationsParams{
		PageParams: dto.PageParams{Page: 1, PageSize: 10},
		Status:     "paid",
		SortBy:     "dueDate",
	}
	got, total, err := s.service.ListObligations(context.Background(), s.projectID, params, s.callerID)

	s.Require().NoError(err)
	s.Equal(2, total)
	s.Require().Len(got, 1)
	s.Equal(paidID, got[0].ObligationID)
	s.Equal(domain.ObligationPaid, got[0].Status)
}

func (s *ObligationServiceTestSuite) TestListObligations_PassesSortDirection() {
	s.authorize(false, domain.RoleViewer, nil)

	s.obligationRepo.On("ListObligations", mock.Anything, s.projectID, "totalAmount", true, 5, 0).
		Return([]domain.Obligation{}, 0, nil).Once()
	s.obligationRepo.On("PaidAmounts", mock.Anything, []string{}).
		Return(map[string]decimal.Decimal{}, nil).Once()

	params := dto.ListObligationsParams{
		PageParams:    dto.PageParams{Page: 1, PageSize: 5},
		SortBy:        "totalAmount",
		SortDirection: "desc",
	}
	_, _, err := s.service.ListObligations(context.Background(), s.projectID, params, s.callerID)

	s.Require().NoError(err)
	s.obligationRepo.AssertExpectations(s.T())
}

func (s *ObligationServiceTestSuite) TestUpdateObligation_CurrencyStaysAndStatusShifts() {
	s.authorize(true, domain.RoleEditor, nil)
	obligationID := uuid.NewString()

	s.obligationRepo.On("FindObligationByID", mock.Anything, s.projectID, obligationID).
		Return(&domain.Obligation{
			ObligationID: obligationID,
			ProjectID:    s.projectID,
			Title:        "Loan",
			TotalAmount:  decimal.NewFromInt(1000),
			CurrencyCode: "EUR",
		}, nil).Once()
	s.obligationRepo.On("UpdateObligation", mock.Anything, mock.MatchedBy(func(o domain.Obligation) bool {
		// Currency is immutable; the new total is applied.
		return o.CurrencyCode == "EUR" && o.TotalAmount.Equal(decimal.NewFromInt(300))
	})).Return(nil).Once()
	s.obligationRepo.On("PaidAmounts", mock.Anything, []string{obligationID}).
		Return(map[string]decimal.Decimal{obligationID: decimal.NewFromInt(400)}, nil).Once()

	got, err := s.service.UpdateObligation(context.Background(), s.projectID, obligationID, dto.UpdateObligationRequest{
		Title:       "Loan",
		TotalAmount: decimal.NewFromInt(300),
	}, s.callerID)

	s.Require().NoError(err)
	// Lowering the total below what was already paid flips the status to
	// paid and shows a negative remainder.
	s.Equal(domain.ObligationPaid, got.Status)
	s.True(got.RemainingAmount.Equal(decimal.NewFromInt(-100)))
}

func (s *ObligationServiceTestSuite) TestDeleteObligation_SoftDeletes() {
	s.authorize(true, domain.RoleOwner, nil)
	obligationID := uuid.NewString()

	s.obligationRepo.On("FindObligationByID", mock.Anything, s.projectID, obligationID).
		Return(&domain.Obligation{ObligationID: obligationID, ProjectID: s.projectID, TotalAmount: decimal.NewFromInt(10)}, nil).Once()
	s.obligationRepo.On("MarkObligationDeleted", mock.Anything, s.projectID, obligationID, s.callerID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.DeleteObligation(context.Background(), s.projectID, obligationID, s.callerID)

	s.Require().NoError(err)
	s.obligationRepo.AssertExpectations(s.T())
}

func (s *ObligationServiceTestSuite) TestDeleteObligation_NotFound() {
	s.authorize(true, domain.RoleOwner, nil)
	obligationID := uuid.NewString()

	s.obligationRepo.On("FindObligationByID", mock.Anything, s.projectID, obligationID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeleteObligation(context.Background(), s.projectID, obligationID, s.callerID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.obligationRepo.AssertNotCalled(s.T(), "MarkObligationDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestObligationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ObligationServiceTestSuite))
}

// The due-date boundary matters enough to pin down outside the suite: a due
// date of today is not overdue, yesterday is.
func TestObligationDueToday_NotOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	total := decimal.NewFromInt(100)
	if got := domain.ComputeObligationStatus(total, decimal.Zero, &today, now); got != domain.ObligationOpen {
		t.Fatalf("due today: expected open, got %s", got)
	}
	if got := domain.ComputeObligationStatus(total, decimal.Zero, &yesterday, now); got != domain.ObligationOverdue {
		t.Fatalf("due yesterday: expected overdue, got %s", got)
	}
}
