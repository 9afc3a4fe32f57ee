package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
	"github.com/centavo-app/centavo-backend/internal/middleware"
	"github.com/centavo-app/centavo-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and token lifecycle requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
	}
}

// registerAuthRoutes sets up the public authentication routes. Credential
// endpoints sit behind a per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.Token)

	// 5 requests per minute per IP on credential endpoints.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limit := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", limit, h.register)
		auth.POST("/login", limit, h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.POST("/forgot-password", limit, h.forgotPassword)
		auth.POST("/reset-password", limit, h.resetPassword)
	}

	authed := r.Group("/api/v1/auth", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.GET("/me", h.me)
	}
}

// register godoc
// @Summary Register a new account
// @Description Creates a password-based account and returns an initial token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	pair, err := h.tokenService.IssuePair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to issue tokens")
		return
	}

	loggerFrom(c).Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToAuthResponse(pair.AccessToken, pair.RefreshToken, pair.AccessTokenExpiresAt, pair.User))
}

// login godoc
// @Summary Log in
// @Description Authenticates credentials and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	pair, err := h.tokenService.IssuePair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to issue tokens")
		return
	}

	loggerFrom(c).Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.ToAuthResponse(pair.AccessToken, pair.RefreshToken, pair.AccessTokenExpiresAt, pair.User))
}

// refresh godoc
// @Summary Refresh tokens
// @Description Rotates the refresh token and returns a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	pair, err := h.tokenService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh tokens")
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(pair.AccessToken, pair.RefreshToken, pair.AccessTokenExpiresAt, pair.User))
}

// logout godoc
// @Summary Log out
// @Description Revokes the refresh token. Always succeeds for a well-formed request.
// @Tags auth
// @Accept json
// @Produce json
// @Param logout body dto.RevokeRequest true "Refresh token to revoke"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	var req dto.RevokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Revocation is best-effort: a failed revoke only means the token dies
	// later by expiry, so the logout itself still succeeds.
	if err := h.tokenService.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
		loggerFrom(c).Warn("Failed to revoke refresh token on logout", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// forgotPassword godoc
// @Summary Request a password reset
// @Description Issues a single-use reset code for the account. Responds identically whether or not the email exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.userService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to request password reset")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "If the email is registered, a reset code has been sent"})
}

// resetPassword godoc
// @Summary Reset a password
// @Description Redeems a reset code for a new password and revokes the account's refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Email, reset code and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired reset code"
// @Router /auth/reset-password [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.Email, req.OtpCode, req.NewPassword); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}

// me godoc
// @Summary Current user identity
// @Description Returns the authenticated user's ID and email from the access token. No database lookup.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	email, _ := middleware.GetUserEmailFromContext(c)

	c.JSON(http.StatusOK, dto.MeResponse{UserID: userID, Email: email})
}
