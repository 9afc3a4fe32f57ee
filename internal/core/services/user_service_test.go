package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/core/services"
	"github.com/centavo-app/centavo-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo  *MockUserRepository
	planRepo  *MockPlanRepository
	resetRepo *MockPasswordResetRepository
	audit     *MockAuditService
	service   portssvc.UserSvcFacade

	userID string
	email  string
}

func (s *UserServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.planRepo = new(MockPlanRepository)
	s.resetRepo = new(MockPasswordResetRepository)
	s.audit = new(MockAuditService)
	s.service = services.NewUserService(s.userRepo, s.planRepo, s.resetRepo, s.audit)

	s.userID = uuid.NewString()
	s.email = "ana@example.com"

	s.audit.On("Record", mock.Anything, mock.Anything).Maybe()
}

func (s *UserServiceTestSuite) passwordUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)
	return &domain.User{
		UserID:       s.userID,
		Email:        s.email,
		PasswordHash: hash,
		IsActive:     true,
	}
}

func (s *UserServiceTestSuite) TestAuthenticate_LastLoginFailureStillSucceeds() {
	user := s.passwordUser("correct horse")
	s.userRepo.On("FindUserByEmail", mock.Anything, s.email).Return(user, nil).Once()
	s.userRepo.On("UpdateLastLoginAt", mock.Anything, s.userID, mock.AnythingOfType("time.Time")).
		Return(errors.New("storage down")).Once()

	got, err := s.service.Authenticate(context.Background(), s.email, "correct horse")

	s.Require().NoError(err)
	s.Equal(s.userID, got.UserID)
	s.userRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticate_WrongPasswordIsUnauthorized() {
	user := s.passwordUser("correct horse")
	s.userRepo.On("FindUserByEmail", mock.Anything, s.email).Return(user, nil).Once()

	_, err := s.service.Authenticate(context.Background(), s.email, "wrong horse")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.userRepo.AssertNotCalled(s.T(), "UpdateLastLoginAt", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRequestPasswordReset_StoresHashNotCode() {
	user := s.passwordUser("correct horse")
	s.userRepo.On("FindUserByEmail", mock.Anything, s.email).Return(user, nil).Once()
	s.resetRepo.On("InvalidateResetTokensForUser", mock.Anything, s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	s.resetRepo.On("SaveResetToken", mock.Anything, mock.MatchedBy(func(t domain.PasswordResetToken) bool {
		// 6-digit codes hash to 64 hex chars; the raw code is never stored.
		return t.UserID == s.userID && len(t.CodeHash) == 64 && t.UsedAt == nil &&
			t.ExpiresAt.After(time.Now())
	})).Return(nil).Once()

	err := s.service.RequestPasswordReset(context.Background(), s.email)

	s.Require().NoError(err)
	s.resetRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRequestPasswordReset_UnknownEmailSucceedsSilently() {
	s.userRepo.On("FindUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.RequestPasswordReset(context.Background(), "ghost@example.com")

	s.Require().NoError(err)
	s.resetRepo.AssertNotCalled(s.T(), "SaveResetToken", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestRequestPasswordReset_OAuthOnlyAccountSkipped() {
	user := &domain.User{UserID: s.userID, Email: s.email, IsActive: true}
	s.userRepo.On("FindUserByEmail", mock.Anything, s.email).Return(user, nil).Once()

	err := s.service.RequestPasswordReset(context.Background(), s.email)

	s.Require().NoError(err)
	s.resetRepo.AssertNotCalled(s.T(), "SaveResetToken", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestResetPassword_ReplacesPasswordAndRevokesRefreshToken() {
	user := s.passwordUser("old password")
	code := "123456"
	tokenID := uuid.NewString()
	s.userRepo.On("FindUserByEmail", mock.Anything, s.email).Return(user, nil).Once()
	s.resetRepo.On("FindResetTokenByCodeHash", mock.Anything, s.userID, utils.HashResetCode(code)).
		Return(&domain.PasswordResetToken{
			TokenID:   tokenID,
			UserID:    s.userID,
			CodeHash:  utils.HashResetCode(code),
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}, nil).Once()
	s.userRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == s.userID && utils.CheckPasswordHash("new password!", u.PasswordHash)
	})).Return(nil).Once()
	s.resetRepo.On("MarkResetTokenUsed", mock.Anything, tokenID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	s.userRepo.On("UpdateRefreshToken", mock.Anything, s.userID, "", (*time.Time)(nil), mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.ResetPassword(context.Background(), s.email, code, "new password!")

	s.Require().NoError(err)
	s.userRepo.AssertExpectations(s.T())
	s.resetRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestResetPassword_ExpiredCodeRejected() {
	user := s.passwordUser("old password")
	code := "123456"
	s.userRepo.On("FindUserByEmail", mock.Anything, s.email).Return(user, nil).Once()
	s.resetRepo.On("FindResetTokenByCodeHash", mock.Anything, s.userID, utils.HashResetCode(code)).
		Return(&domain.PasswordResetToken{
			TokenID:   uuid.NewString(),
			UserID:    s.userID,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil).Once()

	err := s.service.ResetPassword(context.Background(), s.email, code, "new password!")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.userRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestResetPassword_WrongCodeRejected() {
	user := s.passwordUser("old password")
	s.userRepo.On("FindUserByEmail", mock.Anything, s.email).Return(user, nil).Once()
	s.resetRepo.On("FindResetTokenByCodeHash", mock.Anything, s.userID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.ResetPassword(context.Background(), s.email, "000000", "new password!")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.userRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
