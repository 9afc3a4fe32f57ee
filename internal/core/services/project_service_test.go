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

type ProjectServiceTestSuite struct {
	suite.Suite
	projectRepo  *MockProjectRepository
	userRepo     *MockUserRepository
	currencyRepo *MockCurrencyRepository
	budgetRepo   *MockBudgetRepository
	planSvc      *MockPlanService
	audit        *MockAuditService
	service      portssvc.ProjectSvcFacade

	projectID string
	ownerID   string
	planID    string
}

func (s *ProjectServiceTestSuite) SetupTest() {
	s.projectRepo = new(MockProjectRepository)
	s.userRepo = new(MockUserRepository)
	s.currencyRepo = new(MockCurrencyRepository)
	s.budgetRepo = new(MockBudgetRepository)
	s.planSvc = new(MockPlanService)
	s.audit = new(MockAuditService)
	s.service = services.NewProjectService(
		s.projectRepo, s.userRepo, s.currencyRepo, s.budgetRepo, s.planSvc, s.audit,
	)

	s.projectID = uuid.NewString()
	s.ownerID = uuid.NewString()
	s.planID = uuid.NewString()

	s.audit.On("Record", mock.Anything, mock.Anything).Maybe()
}

func (s *ProjectServiceTestSuite) owner() *domain.User {
	return &domain.User{UserID: s.ownerID, Email: "owner@example.com", PlanID: s.planID, IsActive: true}
}

func (s *ProjectServiceTestSuite) asOwner() {
	s.projectRepo.On("FindMemberRole", mock.Anything, s.projectID, s.ownerID).
		Return(domain.RoleOwner, nil)
}

func (s *ProjectServiceTestSuite) TestCreateProject_SavesOwnerAndDefaultCategory() {
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("CheckProjectLimit", mock.Anything, mock.Anything).Return(nil)
	s.currencyRepo.On("FindCurrencyByCode", mock.Anything, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", IsActive: true}, nil)

	s.projectRepo.On("SaveProject", mock.Anything,
		mock.MatchedBy(func(p domain.Project) bool {
			return p.OwnerUserID == s.ownerID && p.CurrencyCode == "EUR"
		}),
		mock.MatchedBy(func(m domain.ProjectMember) bool {
			return m.UserID == s.ownerID && m.Role == domain.RoleOwner
		}),
		mock.MatchedBy(func(c domain.Category) bool {
			return c.Name == "General" && c.IsDefault
		}),
	).Return(nil).Once()

	project, err := s.service.CreateProject(context.Background(),
		dto.CreateProjectRequest{Name: "Household", CurrencyCode: "EUR"}, s.ownerID)

	s.Require().NoError(err)
	s.Equal("Household", project.Name)
	s.projectRepo.AssertExpectations(s.T())
}

func (s *ProjectServiceTestSuite) TestCreateProject_PlanLimitBlocks() {
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("CheckProjectLimit", mock.Anything, mock.Anything).
		Return(apperrors.ErrPlanLimit)

	_, err := s.service.CreateProject(context.Background(),
		dto.CreateProjectRequest{Name: "Household", CurrencyCode: "EUR"}, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrPlanLimit)
	s.projectRepo.AssertNotCalled(s.T(), "SaveProject",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProjectServiceTestSuite) TestCreateProject_InactiveCurrencyRejected() {
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("CheckProjectLimit", mock.Anything, mock.Anything).Return(nil)
	s.currencyRepo.On("FindCurrencyByCode", mock.Anything, "XTS").
		Return(&domain.Currency{CurrencyCode: "XTS", IsActive: false}, nil)

	_, err := s.service.CreateProject(context.Background(),
		dto.CreateProjectRequest{Name: "Household", CurrencyCode: "XTS"}, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProjectServiceTestSuite) TestAuthorizeMember_NonMemberIsForbidden() {
	callerID := uuid.NewString()
	s.projectRepo.On("FindMemberRole", mock.Anything, s.projectID, callerID).
		Return(domain.ProjectMemberRole(""), apperrors.ErrNotFound)

	_, err := s.service.AuthorizeMember(context.Background(), s.projectID, callerID, false)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ProjectServiceTestSuite) TestAuthorizeMember_ViewerCannotEdit() {
	callerID := uuid.NewString()
	s.projectRepo.On("FindMemberRole", mock.Anything, s.projectID, callerID).
		Return(domain.RoleViewer, nil)

	role, err := s.service.AuthorizeMember(context.Background(), s.projectID, callerID, false)
	s.Require().NoError(err)
	s.Equal(domain.RoleViewer, role)

	_, err = s.service.AuthorizeMember(context.Background(), s.projectID, callerID, true)
	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ProjectServiceTestSuite) TestAddMember_EditorCannotInvite() {
	callerID := uuid.NewString()
	s.projectRepo.On("FindMemberRole", mock.Anything, s.projectID, callerID).
		Return(domain.RoleEditor, nil)

	_, err := s.service.AddMember(context.Background(), s.projectID,
		dto.AddMemberRequest{Email: "new@example.com", Role: domain.RoleViewer}, callerID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ProjectServiceTestSuite) TestAddMember_PlanMustAllowSharing() {
	s.asOwner()
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanShareProjects: false}, nil)

	_, err := s.service.AddMember(context.Background(), s.projectID,
		dto.AddMemberRequest{Email: "new@example.com", Role: domain.RoleViewer}, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrPlanLimit)
	s.projectRepo.AssertNotCalled(s.T(), "SaveMember", mock.Anything, mock.Anything)
}

func (s *ProjectServiceTestSuite) TestAddMember_ExistingMemberIsDuplicate() {
	s.asOwner()
	invitee := &domain.User{UserID: uuid.NewString(), Email: "new@example.com"}
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanShareProjects: true}, nil)
	s.userRepo.On("FindUserByEmail", mock.Anything, invitee.Email).Return(invitee, nil)
	s.projectRepo.On("FindMemberRole", mock.Anything, s.projectID, invitee.UserID).
		Return(domain.RoleViewer, nil)

	_, err := s.service.AddMember(context.Background(), s.projectID,
		dto.AddMemberRequest{Email: invitee.Email, Role: domain.RoleEditor}, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *ProjectServiceTestSuite) TestAddMember_SavesMembershipWithRequestedRole() {
	s.asOwner()
	invitee := &domain.User{UserID: uuid.NewString(), Email: "new@example.com", FullName: "New Member"}
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanShareProjects: true}, nil)
	s.userRepo.On("FindUserByEmail", mock.Anything, invitee.Email).Return(invitee, nil)
	s.projectRepo.On("FindMemberRole", mock.Anything, s.projectID, invitee.UserID).
		Return(domain.ProjectMemberRole(""), apperrors.ErrNotFound)
	s.projectRepo.On("SaveMember", mock.Anything, mock.MatchedBy(func(m domain.ProjectMember) bool {
		return m.UserID == invitee.UserID && m.Role == domain.RoleEditor
	})).Return(nil).Once()

	detail, err := s.service.AddMember(context.Background(), s.projectID,
		dto.AddMemberRequest{Email: invitee.Email, Role: domain.RoleEditor}, s.ownerID)

	s.Require().NoError(err)
	s.Equal("New Member", detail.UserFullName)
	s.projectRepo.AssertExpectations(s.T())
}

func (s *ProjectServiceTestSuite) TestChangeMemberRole_OwnerRowIsProtected() {
	s.asOwner()
	ownerMemberID := uuid.NewString()
	s.projectRepo.On("ListMembers", mock.Anything, s.projectID).
		Return([]domain.ProjectMemberDetail{
			{ProjectMember: domain.ProjectMember{MemberID: ownerMemberID, Role: domain.RoleOwner}},
		}, nil)

	err := s.service.ChangeMemberRole(context.Background(), s.projectID, ownerMemberID, domain.RoleViewer, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.projectRepo.AssertNotCalled(s.T(), "UpdateMemberRole",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ProjectServiceTestSuite) TestChangeMemberRole_CannotGrantOwnership() {
	s.asOwner()
	memberID := uuid.NewString()

	err := s.service.ChangeMemberRole(context.Background(), s.projectID, memberID, domain.RoleOwner, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *ProjectServiceTestSuite) TestRemoveMember_SoftDeletesMembership() {
	s.asOwner()
	memberID := uuid.NewString()
	s.projectRepo.On("ListMembers", mock.Anything, s.projectID).
		Return([]domain.ProjectMemberDetail{
			{ProjectMember: domain.ProjectMember{MemberID: memberID, Role: domain.RoleViewer}},
		}, nil)
	s.projectRepo.On("MarkMemberDeleted", mock.Anything, s.projectID, memberID, s.ownerID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.RemoveMember(context.Background(), s.projectID, memberID, s.ownerID)

	s.Require().NoError(err)
	s.projectRepo.AssertExpectations(s.T())
}

func (s *ProjectServiceTestSuite) TestSetBudget_DefaultsAlertPercentage() {
	s.asOwner()
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanSetBudgets: true}, nil)
	s.budgetRepo.On("UpsertBudget", mock.Anything, mock.MatchedBy(func(b domain.ProjectBudget) bool {
		return b.AlertPercentage == 80 && b.TotalBudget.Equal(decimal.NewFromInt(1500))
	})).Return(nil).Once()

	budget, err := s.service.SetBudget(context.Background(), s.projectID,
		dto.SetBudgetRequest{TotalBudget: decimal.NewFromInt(1500)}, s.ownerID)

	s.Require().NoError(err)
	s.Equal(80, budget.AlertPercentage)
	s.budgetRepo.AssertExpectations(s.T())
}

func (s *ProjectServiceTestSuite) TestSetBudget_RequiresPlan() {
	s.asOwner()
	s.userRepo.On("FindUserByID", mock.Anything, s.ownerID).Return(s.owner(), nil)
	s.planSvc.On("GetPlanByID", mock.Anything, s.planID).
		Return(&domain.Plan{PlanID: s.planID, CanSetBudgets: false}, nil)

	_, err := s.service.SetBudget(context.Background(), s.projectID,
		dto.SetBudgetRequest{TotalBudget: decimal.NewFromInt(1500)}, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrPlanLimit)
	s.budgetRepo.AssertNotCalled(s.T(), "UpsertBudget", mock.Anything, mock.Anything)
}

func (s *ProjectServiceTestSuite) TestSetBudget_RejectsNonPositive() {
	s.asOwner()

	_, err := s.service.SetBudget(context.Background(), s.projectID,
		dto.SetBudgetRequest{TotalBudget: decimal.Zero}, s.ownerID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
