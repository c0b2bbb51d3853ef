package middleware

import (
	"net/http"
	"strings"

	"podcast_backend/internal/auth"
	"podcast_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the HTTP-only cookie carrying the admin session token.
const AuthCookieName = "auth-token"

// AuthMiddleware rejects requests without a valid admin session. The token
// is read from the auth cookie, with an Authorization: Bearer fallback for
// non-browser clients.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("username", claims.Username)
		c.Request = c.Request.WithContext(logger.WithAdminID(c.Request.Context(), claims.AdminID))
		c.Next()
	}
}

// TokenFromRequest extracts the session token from the cookie or the
// Authorization header, returning "" if neither is present.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// GetAdminID extracts the authenticated admin's ID from the context.
func GetAdminID(c *gin.Context) string {
	adminID, exists := c.Get("adminID")
	if !exists {
		return ""
	}

	id, ok := adminID.(string)
	if !ok {
		return ""
	}

	return id
}
