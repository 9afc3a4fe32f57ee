package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPasswordResetRepository struct {
	db *pgxpool.Pool
}

func newPgxPasswordResetRepository(db *pgxpool.Pool) portsrepo.PasswordResetRepository {
	return &PgxPasswordResetRepository{db: db}
}

var _ portsrepo.PasswordResetRepository = (*PgxPasswordResetRepository)(nil)

func (r *PgxPasswordResetRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (token_id, user_id, code_hash, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query,
		token.TokenID,
		token.UserID,
		token.CodeHash,
		token.ExpiresAt,
		token.UsedAt,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save password reset token for user %s: %w", token.UserID, err)
	}
	return nil
}

func (r *PgxPasswordResetRepository) FindResetTokenByCodeHash(ctx context.Context, userID, codeHash string) (*domain.PasswordResetToken, error) {
	query := `
		SELECT token_id, user_id, code_hash, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE user_id = $1 AND code_hash = $2 AND used_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var t domain.PasswordResetToken
	err := r.db.QueryRow(ctx, query, userID, codeHash).Scan(
		&t.TokenID,
		&t.UserID,
		&t.CodeHash,
		&t.ExpiresAt,
		&t.UsedAt,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find password reset token for user %s: %w", userID, err)
	}
	return &t, nil
}

func (r *PgxPasswordResetRepository) MarkResetTokenUsed(ctx context.Context, tokenID string, now time.Time) error {
	query := `
		UPDATE password_reset_tokens
		SET used_at = $2
		WHERE token_id = $1 AND used_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, tokenID, now)
	if err != nil {
		return fmt.Errorf("failed to mark password reset token %s used: %w", tokenID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPasswordResetRepository) InvalidateResetTokensForUser(ctx context.Context, userID string, now time.Time) error {
	query := `
		UPDATE password_reset_tokens
		SET used_at = $2
		WHERE user_id = $1 AND used_at IS NULL;
	`
	if _, err := r.db.Exec(ctx, query, userID, now); err != nil {
		return fmt.Errorf("failed to invalidate password reset tokens for user %s: %w", userID, err)
	}
	return nil
}
