package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/centavo-app/centavo-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// googleOAuthHandler drives the Google sign-in flow.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func newGoogleOAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *googleOAuthHandler {
	return &googleOAuthHandler{
		oauthService: services.GoogleOAuth,
		userService:  services.User,
		tokenService: services.Token,
		cfg:          cfg,
	}
}

// registerGoogleOAuthRoutes sets up the public Google sign-in routes.
func registerGoogleOAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services, cfg)

	google := r.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.redirectToGoogle)
		google.GET("/callback", h.handleCallback)
		google.POST("/token", h.signInWithIDToken)
	}
}

// redirectToGoogle godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to the Google consent page. The CSRF state is stored in a short-lived cookie.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) redirectToGoogle(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetLoginURL(c.Request.Context(), state))
}

// handleCallback godoc
// @Summary Google sign-in callback
// @Description Exchanges the authorization code, provisions the account if needed and redirects to the frontend with a token pair.
// @Tags auth
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) handleCallback(c *gin.Context) {
	logger := loggerFrom(c)

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing authorization code"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Warn("OAuth code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	info, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Warn("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in failed"})
		return
	}

	pair, err := h.completeSignIn(c, info)
	if err != nil {
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?accessToken=%s&refreshToken=%s",
		h.cfg.FrontendBaseURL, pair.AccessToken, pair.RefreshToken)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// signInWithIDToken godoc
// @Summary Sign in with a Google ID token
// @Description Verifies an ID token obtained client-side (mobile flow) and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/token [post]
func (h *googleOAuthHandler) signInWithIDToken(c *gin.Context) {
	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payload, err := h.oauthService.ValidateIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		loggerFrom(c).Warn("Google ID token rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	info := &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		VerifiedEmail: claimBool(payload.Claims, "email_verified"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
	}

	pair, err := h.completeSignIn(c, info)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthResponse(pair.AccessToken, pair.RefreshToken, pair.AccessTokenExpiresAt, pair.User))
}

// completeSignIn resolves the Google profile to a local account and issues a
// token pair. Errors have already been written to the response.
func (h *googleOAuthHandler) completeSignIn(c *gin.Context, info *domain.GoogleUserInfo) (*portssvc.TokenPair, error) {
	user, err := h.userService.FindOrCreateOAuthUser(c.Request.Context(), info)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return nil, err
	}

	pair, err := h.tokenService.IssuePair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to issue tokens")
		return nil, err
	}

	loggerFrom(c).Info("Google sign-in completed", slog.String("user_id", user.UserID))
	return pair, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

func claimBool(claims map[string]any, key string) bool {
	b, _ := claims[key].(bool)
	return b
}
