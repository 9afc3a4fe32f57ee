package repositories

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// PasswordResetRepository persists single-use password reset codes.
type PasswordResetRepository interface {
	SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error
	// FindResetTokenByCodeHash looks up an unused token for the user by the
	// hash of the presented code.
	FindResetTokenByCodeHash(ctx context.Context, userID, codeHash string) (*domain.PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, tokenID string, now time.Time) error
	// InvalidateResetTokensForUser marks every outstanding token used so a
	// fresh code supersedes older ones.
	InvalidateResetTokensForUser(ctx context.Context, userID string, now time.Time) error
}
