package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/core/services"
	"github.com/centavo-app/centavo-backend/internal/platform/config"
	"github.com/centavo-app/centavo-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	service  portssvc.TokenSvcFacade
	cfg      *config.Config
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "centavo-test",
		RefreshTokenExpiryDuration: 720 * time.Hour,
	}
	s.service = services.NewTokenService(s.cfg, s.userRepo)
}

func (s *TokenServiceTestSuite) activeUser() *domain.User {
	expiry := time.Now().Add(time.Hour)
	return &domain.User{
		UserID:                uuid.NewString(),
		Email:                 "ana@example.com",
		IsActive:              true,
		RefreshTokenExpiresAt: &expiry,
	}
}

func (s *TokenServiceTestSuite) TestIssuePair_PersistsHashNotToken() {
	user := s.activeUser()

	var storedHash string
	s.userRepo.On("UpdateRefreshToken", mock.Anything, user.UserID,
		mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil).Once()

	pair, err := s.service.IssuePair(context.Background(), user)

	s.Require().NoError(err)
	s.NotEmpty(pair.AccessToken)
	s.Len(pair.RefreshToken, 64)
	s.NotEqual(pair.RefreshToken, storedHash)
	s.Equal(utils.HashRefreshToken(pair.RefreshToken), storedHash)

	claims, err := utils.ParseAndValidateJWT(pair.AccessToken, s.cfg.JWTSecret)
	s.Require().NoError(err)
	s.Equal(user.UserID, claims.Subject)
	s.Equal(user.Email, claims.Email)
	s.Equal(s.cfg.JWTIssuer, claims.Issuer)
}

func (s *TokenServiceTestSuite) TestRefresh_UnknownTokenIsUnauthorized() {
	s.userRepo.On("FindUserByRefreshTokenHash", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Refresh(context.Background(), "deadbeef")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.userRepo.AssertNotCalled(s.T(), "UpdateRefreshToken",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TokenServiceTestSuite) TestRefresh_InactiveUserIsUnauthorized() {
	user := s.activeUser()
	user.IsActive = false
	s.userRepo.On("FindUserByRefreshTokenHash", mock.Anything, mock.Anything).
		Return(user, nil).Once()

	_, err := s.service.Refresh(context.Background(), "deadbeef")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TokenServiceTestSuite) TestRefresh_ExpiredTokenIsDistinguished() {
	user := s.activeUser()
	past := time.Now().Add(-time.Minute)
	user.RefreshTokenExpiresAt = &past
	s.userRepo.On("FindUserByRefreshTokenHash", mock.Anything, mock.Anything).
		Return(user, nil).Once()

	_, err := s.service.Refresh(context.Background(), "deadbeef")

	s.Require().ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (s *TokenServiceTestSuite) TestRefresh_RotatesToken() {
	user := s.activeUser()
	presented := "0011223344556677"

	s.userRepo.On("FindUserByRefreshTokenHash", mock.Anything, utils.HashRefreshToken(presented)).
		Return(user, nil).Once()

	var rotatedHash string
	s.userRepo.On("UpdateRefreshToken", mock.Anything, user.UserID,
		mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			rotatedHash = args.String(2)
		}).
		Return(nil).Once()

	pair, err := s.service.Refresh(context.Background(), presented)

	s.Require().NoError(err)
	s.NotEqual(presented, pair.RefreshToken)
	s.Equal(utils.HashRefreshToken(pair.RefreshToken), rotatedHash)
	s.userRepo.AssertExpectations(s.T())
}

func (s *TokenServiceTestSuite) TestRefresh_ConcurrentCallsCoalesce() {
	user := s.activeUser()
	presented := "8899aabbccddeeff"

	s.userRepo.On("FindUserByRefreshTokenHash", mock.Anything, utils.HashRefreshToken(presented)).
		Return(user, nil)

	// The rotation itself must run once no matter how many callers race.
	s.userRepo.On("UpdateRefreshToken", mock.Anything, user.UserID,
		mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("time.Time")).
		After(50 * time.Millisecond).
		Return(nil).Once()

	const callers = 8
	pairs := make([]*portssvc.TokenPair, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			pair, err := s.service.Refresh(context.Background(), presented)
			s.NoError(err)
			pairs[i] = pair
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		s.Equal(pairs[0].RefreshToken, pairs[i].RefreshToken)
	}
	s.userRepo.AssertExpectations(s.T())
}

func (s *TokenServiceTestSuite) TestRevoke_UnknownTokenIsNoop() {
	s.userRepo.On("FindUserByRefreshTokenHash", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.Revoke(context.Background(), "deadbeef")

	s.Require().NoError(err)
	s.userRepo.AssertNotCalled(s.T(), "UpdateRefreshToken",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TokenServiceTestSuite) TestRevoke_ClearsStoredHash() {
	user := s.activeUser()
	s.userRepo.On("FindUserByRefreshTokenHash", mock.Anything, mock.Anything).
		Return(user, nil).Once()
	s.userRepo.On("UpdateRefreshToken", mock.Anything, user.UserID,
		"", (*time.Time)(nil), mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.Revoke(context.Background(), "0011223344556677")

	s.Require().NoError(err)
	s.userRepo.AssertExpectations(s.T())
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
