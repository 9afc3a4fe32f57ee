package domain

import "time"

// PasswordResetToken is a single-use OTP issued by the forgot-password flow.
// Only the SHA-256 hash of the code is stored; UsedAt nil means still valid.
type PasswordResetToken struct {
	TokenID   string     `json:"tokenID"`
	UserID    string     `json:"userID"`
	CodeHash  string     `json:"-"`
	ExpiresAt time.Time  `json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// IsUsable reports whether the token can still redeem a password reset.
func (t PasswordResetToken) IsUsable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
