package handlers

import (
	"net/http"

	"podcast_backend/internal/auth"
	"podcast_backend/internal/config"
	"podcast_backend/internal/middleware"
	"podcast_backend/internal/services"
	"podcast_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the admin session endpoints. The token travels as an
// HTTP-only cookie; the login response also returns it in the body for
// non-browser clients.
type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	tokens      *auth.TokenManager
	cfg         *config.Config
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, tokens *auth.TokenManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		tokens:      tokens,
		cfg:         cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/verify", h.Verify)
		authGroup.POST("/logout", h.Logout)
	}
}

// Login authenticates an admin and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		middleware.AuthCookieName,
		response.Token,
		int(h.tokens.TTL().Seconds()),
		"/",
		"",
		h.cfg.SiteAccess.SecureCookies,
		true,
	)

	c.JSON(http.StatusOK, response)
}

// Verify reports whether the caller holds a valid session. It never fails:
// an absent or invalid token yields authenticated=false with a 200.
func (h *AuthHandler) Verify(c *gin.Context) {
	tokenStr := middleware.TokenFromRequest(c)
	c.JSON(http.StatusOK, h.authService.Verify(tokenStr))
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.cfg.SiteAccess.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
