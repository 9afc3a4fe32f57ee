package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/utils"
	"github.com/google/uuid"
)

// defaultPlanSlug is the plan assigned to every new account.
const defaultPlanSlug = "free"

// Reset codes are short-lived OTPs; a fresh request supersedes older codes.
const (
	resetCodeDigits = 6
	resetCodeTTL    = 15 * time.Minute
)

// userService implements UserSvcFacade.
type userService struct {
	userRepo  portsrepo.UserRepository
	planRepo  portsrepo.PlanRepository
	resetRepo portsrepo.PasswordResetRepository
	audit     portssvc.AuditSvcFacade
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository, planRepo portsrepo.PlanRepository, resetRepo portsrepo.PasswordResetRepository, audit portssvc.AuditSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		planRepo:  planRepo,
		resetRepo: resetRepo,
		audit:     audit,
	}
}

// Register creates a password-based account on the default plan.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	plan, err := s.planRepo.FindPlanBySlug(ctx, defaultPlanSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load default plan: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: passwordHash,
		PlanID:       plan.PlanID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "users",
		EntityID:          user.UserID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: user.UserID,
		NewValues:         map[string]any{"email": user.Email, "fullName": user.FullName},
	})

	return &user, nil
}

// FindOrCreateOAuthUser resolves a Google sign-in to a local account. An
// existing account with the same email is reused (and activated for OAuth);
// otherwise a passwordless account is provisioned on the default plan.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	if info.Email == "" || !info.VerifiedEmail {
		return nil, fmt.Errorf("google account email missing or unverified: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		if user.AvatarURL == "" && info.Picture != "" {
			user.AvatarURL = info.Picture
			user.UpdatedAt = time.Now()
			if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
				return nil, fmt.Errorf("failed to update oauth user: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	plan, err := s.planRepo.FindPlanBySlug(ctx, defaultPlanSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to load default plan: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:    uuid.NewString(),
		Email:     info.Email,
		FullName:  info.Name,
		PlanID:    plan.PlanID,
		IsActive:  true,
		AvatarURL: info.Picture,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "users",
		EntityID:          newUser.UserID,
		ActionType:        domain.AuditCreate,
		PerformedByUserID: newUser.UserID,
		NewValues:         map[string]any{"email": newUser.Email, "provider": "google"},
	})

	return &newUser, nil
}

// Authenticate verifies email/password credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if user.IsDeleted || !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.userRepo.UpdateLastLoginAt(ctx, user.UserID, time.Now()); err != nil {
		// Login still succeeds; the timestamp is informational.
		middleware.GetLoggerFromCtx(ctx).Warn("failed to update last login time",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
	}
	return user, nil
}

// RequestPasswordReset issues a reset code for the account with this email.
// Unknown or inactive accounts return success without issuing anything.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user for password reset: %w", err)
	}
	if user.IsDeleted || !user.IsActive || user.PasswordHash == "" {
		// OAuth-only accounts have no password to reset.
		return nil
	}

	code, err := utils.GenerateResetCode(resetCodeDigits)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.resetRepo.InvalidateResetTokensForUser(ctx, user.UserID, now); err != nil {
		return fmt.Errorf("failed to invalidate previous reset codes: %w", err)
	}
	token := domain.PasswordResetToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		CodeHash:  utils.HashResetCode(code),
		ExpiresAt: now.Add(resetCodeTTL),
		CreatedAt: now,
	}
	if err := s.resetRepo.SaveResetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to save reset code: %w", err)
	}

	// No mailer is wired yet; development setups read the code from the
	// debug log.
	logger.Info("password reset code issued", slog.String("user_id", user.UserID))
	logger.Debug("password reset code", slog.String("user_id", user.UserID), slog.String("code", code))
	return nil
}

// ResetPassword redeems a reset code. Invalid, expired and already-used codes
// are indistinguishable to the caller.
func (s *userService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("invalid or expired reset code: %w", apperrors.ErrUnauthorized)
		}
		return fmt.Errorf("failed to look up user for password reset: %w", err)
	}
	if user.IsDeleted || !user.IsActive {
		return fmt.Errorf("invalid or expired reset code: %w", apperrors.ErrUnauthorized)
	}

	token, err := s.resetRepo.FindResetTokenByCodeHash(ctx, user.UserID, utils.HashResetCode(code))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("invalid or expired reset code: %w", apperrors.ErrUnauthorized)
		}
		return fmt.Errorf("failed to look up reset code: %w", err)
	}
	now := time.Now()
	if !token.IsUsable(now) {
		return fmt.Errorf("invalid or expired reset code: %w", apperrors.ErrUnauthorized)
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = now
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.resetRepo.MarkResetTokenUsed(ctx, token.TokenID, now); err != nil {
		return fmt.Errorf("failed to consume reset code: %w", err)
	}
	// Existing sessions die with the refresh token; access tokens expire on
	// their own.
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, "", nil, now); err != nil {
		return fmt.Errorf("failed to revoke refresh token after reset: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "users",
		EntityID:          user.UserID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: user.UserID,
		NewValues:         map[string]any{"passwordReset": true},
	})

	return nil
}

// GetUserByID returns a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies profile changes. Users may only edit themselves unless
// the caller is an admin.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, callerID string) (*domain.User, error) {
	if err := s.authorizeSelfOrAdmin(ctx, userID, callerID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	old := map[string]any{"fullName": user.FullName, "avatarURL": user.AvatarURL}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "users",
		EntityID:          user.UserID,
		ActionType:        domain.AuditUpdate,
		PerformedByUserID: callerID,
		OldValues:         old,
		NewValues:         map[string]any{"fullName": user.FullName, "avatarURL": user.AvatarURL},
	})

	return user, nil
}

// DeleteUser soft-deletes an account and revokes its refresh token.
func (s *userService) DeleteUser(ctx context.Context, userID string, callerID string) error {
	if err := s.authorizeSelfOrAdmin(ctx, userID, callerID); err != nil {
		return err
	}

	now := time.Now()
	if err := s.userRepo.MarkUserDeleted(ctx, userID, callerID, now); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil, now); err != nil {
		return fmt.Errorf("failed to revoke refresh token of deleted user: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLog{
		EntityName:        "users",
		EntityID:          userID,
		ActionType:        domain.AuditDelete,
		PerformedByUserID: callerID,
	})

	return nil
}

func (s *userService) authorizeSelfOrAdmin(ctx context.Context, userID, callerID string) error {
	if userID == callerID {
		return nil
	}
	caller, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}
