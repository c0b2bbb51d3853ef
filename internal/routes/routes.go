package routes

import (
	"podcast_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route of the application.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authRequired gin.HandlerFunc,
	siteGate gin.HandlerFunc,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.AccessHandler.RegisterRoutes(api)
		appHandlers.PodcastHandler.RegisterRoutes(api, authRequired, siteGate)
		appHandlers.UploadHandler.RegisterRoutes(api, authRequired)
	}

	// Object serving lives at the root so stored URLs like
	// /files/audio/<key> resolve without the API prefix.
	if appHandlers.FileHandler != nil {
		appHandlers.FileHandler.RegisterRoutes(ginRouter.Group(""))
	}

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
