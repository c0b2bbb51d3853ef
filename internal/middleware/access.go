package middleware

import (
	"net/http"

	"podcast_backend/internal/auth"
	"podcast_backend/internal/config"

	"github.com/gin-gonic/gin"
)

// SiteAccessCookieName marks a visitor who has passed the site password gate.
const SiteAccessCookieName = "site-access-token"

// SiteAccessCookieValue is the only value the gate accepts; the cookie is a
// flag, not a credential, mirroring the gate's single shared password.
const SiteAccessCookieValue = "granted"

// SiteAccessMiddleware gates the public listing behind the site-wide
// password. Visitors carry the gate cookie; admins with a valid session
// token pass without it. The gate is a no-op when disabled in config.
func SiteAccessMiddleware(cfg *config.Config, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.SiteAccess.Enabled {
			c.Next()
			return
		}

		if cookie, err := c.Cookie(SiteAccessCookieName); err == nil && cookie == SiteAccessCookieValue {
			c.Next()
			return
		}

		if tokenStr := TokenFromRequest(c); tokenStr != "" {
			if _, err := tokens.Parse(tokenStr); err == nil {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Site access required"})
	}
}
