package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/platform/config"
	"github.com/centavo-app/centavo-backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/idtoken"
)

// tokenService implements TokenSvcFacade. It issues JWT access tokens and
// opaque rotating refresh tokens; only the SHA-256 hash of the current
// refresh token is stored on the user row.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepository

	// refreshGroup coalesces concurrent refresh calls per user so a burst
	// of parallel refreshes performs a single rotation.
	refreshGroup singleflight.Group
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepository) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// IssuePair creates an access token plus a fresh refresh token for the user
// and persists the refresh token hash.
func (s *tokenService) IssuePair(ctx context.Context, user *domain.User) (*portssvc.TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, user.Email, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// 32 random bytes -> 64 char hex string.
	refreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiryDuration)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), &refreshExpiry, now); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &portssvc.TokenPair{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessExpiry,
		RefreshToken:         refreshToken,
		User:                 user,
	}, nil
}

// Refresh validates the presented refresh token and rotates it. Concurrent
// calls for the same user share one rotation: the singleflight group makes
// every waiter receive the pair produced by the call that ran.
func (s *tokenService) Refresh(ctx context.Context, refreshToken string) (*portssvc.TokenPair, error) {
	user, err := s.userRepo.FindUserByRefreshTokenHash(ctx, utils.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if user.IsDeleted || !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	pair, err, shared := s.refreshGroup.Do(user.UserID, func() (any, error) {
		return s.IssuePair(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		middleware.GetLoggerFromCtx(ctx).Debug("coalesced concurrent refresh", "user_id", user.UserID)
	}
	return pair.(*portssvc.TokenPair), nil
}

// Revoke clears the stored refresh token. Revoking a token that is already
// invalid is not an error; logout must always succeed.
func (s *tokenService) Revoke(ctx context.Context, refreshToken string) error {
	user, err := s.userRepo.FindUserByRefreshTokenHash(ctx, utils.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up refresh token for revoke: %w", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, "", nil, time.Now()); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// googleOAuthService implements GoogleOAuthSvcFacade.
type googleOAuthService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates a new instance of googleOAuthService.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates the CSRF state for the OAuth redirect flow.
func (s *googleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return state, nil
}

// GetLoginURL returns the Google consent page URL for the given state.
func (s *googleOAuthService) GetLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an authorization code for an OAuth token.
func (s *googleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// GetUserInfo fetches the Google userinfo profile with the given token.
func (s *googleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %s", resp.Status)
	}

	var userInfo domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}
	return &userInfo, nil
}

// ValidateIDToken verifies a Google ID token against our client ID.
func (s *googleOAuthService) ValidateIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured")
	}
	payload, err := idtoken.Validate(ctx, idToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
