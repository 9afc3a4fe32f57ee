package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// --- Auth DTOs ---

// RegisterRequest defines data for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

// LoginRequest defines login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleIDTokenRequest carries a Google ID token obtained client-side.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// ForgotPasswordRequest starts a password reset for the given email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset code for a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OtpCode     string `json:"otpCode" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// RevokeRequest carries the refresh token to revoke on logout.
type RevokeRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	AccessToken          string       `json:"accessToken"`
	RefreshToken         string       `json:"refreshToken"`
	AccessTokenExpiresAt time.Time    `json:"accessTokenExpiresAt"`
	User                 UserResponse `json:"user"`
}

// MeResponse is returned by GET /auth/me. It reads from JWT claims only and
// performs no database lookup.
type MeResponse struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
}

// MessageResponse is a generic message envelope (logout etc.).
type MessageResponse struct {
	Message string `json:"message"`
}

// ToAuthResponse assembles the auth envelope from a token pair.
func ToAuthResponse(accessToken, refreshToken string, expiresAt time.Time, user *domain.User) AuthResponse {
	return AuthResponse{
		AccessToken:          accessToken,
		RefreshToken:         refreshToken,
		AccessTokenExpiresAt: expiresAt,
		User:                 ToUserResponse(user),
	}
}
