package domain

import "time"

// User represents an application user.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"` // empty for OAuth-only accounts
	PlanID       string `json:"planID"`
	IsActive     bool   `json:"isActive"`
	IsAdmin      bool   `json:"isAdmin"`
	AvatarURL    string `json:"avatarURL"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`

	// Refresh token state. Only the SHA-256 hash of the current token is
	// stored; a new token replaces it on every refresh (rotation).
	RefreshTokenHash      string     `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	AuditFields
	SoftDeleteFields
}

// GoogleUserInfo is the subset of the Google userinfo payload we consume
// during OAuth sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
