package handlers

import (
	"net/http"
	"time"

	"podcast_backend/internal/services"
	"podcast_backend/internal/services/dto"
	"podcast_backend/internal/storage"
	"podcast_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// signedUploadExpiry bounds how long a direct-upload URL stays usable.
const signedUploadExpiry = 15 * time.Minute

// UploadHandler issues short-lived direct-upload URLs for the client-direct
// mode: the browser PUTs the bytes straight to the blob store and then sends
// only the resulting public URL to the metadata endpoints.
type UploadHandler struct {
	*BaseHandler
	storage storage.Storage
	config  *services.PodcastConfig
}

func NewUploadHandler(base *BaseHandler, st storage.Storage, config *services.PodcastConfig) *UploadHandler {
	if config == nil {
		config = services.DefaultPodcastConfig()
	}
	return &UploadHandler{
		BaseHandler: base,
		storage:     st,
		config:      config,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup, authRequired gin.HandlerFunc) {
	uploads := r.Group("/uploads")
	uploads.Use(authRequired)
	{
		uploads.POST("/sign", h.Sign)
	}
}

// Sign validates the declared content type and returns a presigned PUT URL
// together with the public URL the object will have once uploaded.
func (h *UploadHandler) Sign(c *gin.Context) {
	var req dto.SignUploadRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	category, allowedTypes := services.CategoryAudio, h.config.AllowedAudioTypes
	if req.Kind == "image" {
		category, allowedTypes = services.CategoryImage, h.config.AllowedImageTypes
	}

	allowed := false
	for _, t := range allowedTypes {
		if req.ContentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		apperrors.HandleError(c, apperrors.ErrInvalidFileType)
		return
	}

	key := services.ObjectKey(category, req.Filename)

	uploadURL, err := h.storage.SignUploadURL(c.Request.Context(), key, req.ContentType, signedUploadExpiry)
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrStorageFailure(err))
		return
	}

	c.JSON(http.StatusOK, dto.SignUploadResponse{
		UploadURL: uploadURL,
		PublicURL: h.storage.URL(key),
		Key:       key,
	})
}
