package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string     `json:"userID"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	PlanID      string     `json:"planID"`
	IsActive    bool       `json:"isActive"`
	IsAdmin     bool       `json:"isAdmin"`
	AvatarURL   string     `json:"avatarURL,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// UpdateUserRequest defines the fields a user may change on their profile.
// Pointers distinguish "not provided" from zero values.
type UpdateUserRequest struct {
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarURL"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Email:       u.Email,
		FullName:    u.FullName,
		PlanID:      u.PlanID,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		AvatarURL:   u.AvatarURL,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
