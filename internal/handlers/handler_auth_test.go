package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/centavo-app/centavo-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindOrCreateOAuthUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, callerID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, callerID string) error {
	return m.Called(ctx, userID, callerID).Error(0)
}
func (m *MockUserService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.Called(ctx, email, code, newPassword).Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssuePair(ctx context.Context, user *domain.User) (*portssvc.TokenPair, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TokenPair), args.Error(1)
}
func (m *MockTokenService) Refresh(ctx context.Context, refreshToken string) (*portssvc.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.TokenPair), args.Error(1)
}
func (m *MockTokenService) Revoke(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	userService  *MockUserService
	tokenService *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.userService = new(MockUserService)
	suite.tokenService = new(MockTokenService)

	cfg := &config.Config{JWTSecret: "test-secret-key-that-is-long-enough"}
	registerAuthRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:  suite.userService,
		Token: suite.tokenService,
	})
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogout_RevokeFailureStillReturns200() {
	suite.tokenService.On("Revoke", mock.Anything, "some-refresh-token").
		Return(errors.New("storage down")).Once()

	w := suite.postJSON("/api/v1/auth/logout", dto.RevokeRequest{RefreshToken: "some-refresh-token"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Logged out", resp.Message)
	suite.tokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogout_MalformedBodyIs400() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.tokenService.AssertNotCalled(suite.T(), "Revoke", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestForgotPassword_AlwaysGenericMessage() {
	suite.userService.On("RequestPasswordReset", mock.Anything, "ghost@example.com").
		Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/forgot-password", dto.ForgotPasswordRequest{Email: "ghost@example.com"})

	suite.Equal(http.StatusOK, w.Code)
	suite.userService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestResetPassword_InvalidCodeIs401() {
	suite.userService.On("ResetPassword", mock.Anything, "ana@example.com", "000000", "new password!").
		Return(fmt.Errorf("invalid or expired reset code: %w", apperrors.ErrUnauthorized)).Once()

	w := suite.postJSON("/api/v1/auth/reset-password", dto.ResetPasswordRequest{
		Email:       "ana@example.com",
		OtpCode:     "000000",
		NewPassword: "new password!",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.userService.AssertExpectations(suite.T())
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
