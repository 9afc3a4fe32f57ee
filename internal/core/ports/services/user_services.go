package services

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/centavo-app/centavo-backend/internal/dto"
)

// UserSvcFacade manages user accounts.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// FindOrCreateOAuthUser provisions an account for a Google sign-in,
	// reusing an existing account with the same email.
	FindOrCreateOAuthUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, callerID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, callerID string) error

	// RequestPasswordReset issues a single-use reset code for the account
	// with this email. Unknown emails succeed silently so the endpoint
	// cannot be used to probe for accounts.
	RequestPasswordReset(ctx context.Context, email string) error
	// ResetPassword redeems a reset code, replaces the password and revokes
	// the account's refresh token.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
