package handlers

import (
	"crypto/subtle"
	"net/http"

	"podcast_backend/internal/config"
	"podcast_backend/internal/middleware"
	"podcast_backend/internal/services/dto"
	"podcast_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AccessHandler implements the site-wide password gate in front of the
// public listing. The password comes from injected config, never from a
// package global.
type AccessHandler struct {
	*BaseHandler
	cfg *config.Config
}

func NewAccessHandler(base *BaseHandler, cfg *config.Config) *AccessHandler {
	return &AccessHandler{
		BaseHandler: base,
		cfg:         cfg,
	}
}

func (h *AccessHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/verify-access", h.VerifyAccess)
}

// VerifyAccess checks the site password and grants the long-lived gate
// cookie.
func (h *AccessHandler) VerifyAccess(c *gin.Context) {
	var req dto.VerifyAccessRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.SiteAccess.Password)) != 1 {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid password"))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SiteAccessCookieName,
		middleware.SiteAccessCookieValue,
		h.cfg.SiteAccess.CookieMaxAge,
		"/",
		"",
		h.cfg.SiteAccess.SecureCookies,
		true,
	)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
