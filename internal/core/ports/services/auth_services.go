package services

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenPair is the result of issuing or refreshing credentials.
type TokenPair struct {
	AccessToken          string
	AccessTokenExpiresAt time.Time
	RefreshToken         string
	User                 *domain.User
}

// TokenSvcFacade issues JWT access tokens and rotating refresh tokens.
type TokenSvcFacade interface {
	// IssuePair creates an access token and a fresh refresh token for the
	// user, persisting the refresh token hash.
	IssuePair(ctx context.Context, user *domain.User) (*TokenPair, error)
	// Refresh validates a refresh token, rotates it and returns a new pair.
	// Concurrent refreshes for the same user are coalesced: only one
	// rotation runs, every caller receives its result.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Revoke invalidates the stored refresh token. Best-effort on logout.
	Revoke(ctx context.Context, refreshToken string) error
}

// GoogleOAuthSvcFacade drives the Google sign-in flow.
type GoogleOAuthSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateIDToken verifies a Google ID token directly. Used by clients
	// that run the sign-in flow themselves and only post the resulting token.
	ValidateIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
