package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")
const userEmailKey = contextKey("userEmail")

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserEmailFromContext retrieves the authenticated user's email from JWT
// claims.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, ok := c.Request.Context().Value(userEmailKey).(string)
	return email, ok
}

// WithUserID returns a context carrying the authenticated user ID. Exposed
// for tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
