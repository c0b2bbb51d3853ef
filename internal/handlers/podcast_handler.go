package handlers

import (
	"net/http"
	"strings"

	"podcast_backend/internal/logger"
	"podcast_backend/internal/middleware"
	"podcast_backend/internal/services"
	"podcast_backend/internal/services/dto"
	"podcast_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// PodcastHandler exposes the podcast CRUD surface. Reads are public (behind
// the site gate); every mutation requires an admin session.
//
// Two upload modes share these routes: the multipart endpoints carry file
// bytes through the server (primary), while the JSON bodies carry URLs of
// objects the client already uploaded directly (see UploadHandler).
type PodcastHandler struct {
	*BaseHandler
	podcastService services.PodcastService
}

func NewPodcastHandler(base *BaseHandler, podcastService services.PodcastService) *PodcastHandler {
	return &PodcastHandler{
		BaseHandler:    base,
		podcastService: podcastService,
	}
}

func (h *PodcastHandler) RegisterRoutes(r *gin.RouterGroup, authRequired, siteGate gin.HandlerFunc) {
	podcasts := r.Group("/podcasts")
	{
		podcasts.GET("", siteGate, h.List)
		podcasts.GET("/:id", siteGate, h.Get)

		podcasts.POST("", authRequired, h.Create)
		podcasts.PUT("/:id", authRequired, h.Update)
		podcasts.DELETE("/:id", authRequired, h.Delete)
	}

	// Client-direct variant: metadata-only create with pre-uploaded URLs.
	admin := r.Group("/admin")
	admin.Use(authRequired)
	{
		admin.POST("/podcasts", h.CreateJSON)
	}
}

// List returns all episodes, newest first.
func (h *PodcastHandler) List(c *gin.Context) {
	podcasts, err := h.podcastService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, podcasts)
}

// Get returns a single episode.
func (h *PodcastHandler) Get(c *gin.Context) {
	podcast, err := h.podcastService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, podcast)
}

// Create publishes an episode from a multipart form: title,
// shortDescription, fullDescription?, audioFile, imageFile?.
func (h *PodcastHandler) Create(c *gin.Context) {
	req := &dto.CreatePodcastRequest{
		Title:            c.PostForm("title"),
		ShortDescription: c.PostForm("shortDescription"),
	}
	if fullDescription, ok := c.GetPostForm("fullDescription"); ok {
		req.FullDescription = &fullDescription
	}

	audioFile, err := c.FormFile("audioFile")
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrAudioSourceRequired)
		return
	}
	req.AudioFile = audioFile

	if imageFile, err := c.FormFile("imageFile"); err == nil {
		req.ImageFile = imageFile
	}

	if !h.Validate(c, req) {
		return
	}

	podcast, err := h.podcastService.Create(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "episode published",
		"podcast_id", podcast.ID,
		"admin_id", middleware.GetAdminID(c),
	)
	c.JSON(http.StatusCreated, podcast)
}

// CreateJSON publishes an episode whose objects were uploaded client-direct;
// the body carries only metadata and the resulting URLs.
func (h *PodcastHandler) CreateJSON(c *gin.Context) {
	var req dto.CreatePodcastRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	podcast, err := h.podcastService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, podcast)
}

// Update applies a partial edit. Multipart bodies may replace files on the
// server-mediated path; JSON bodies may swap in pre-uploaded URLs.
func (h *PodcastHandler) Update(c *gin.Context) {
	var req dto.UpdatePodcastRequest

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if !h.bindUpdateForm(c, &req) {
			return
		}
	} else {
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
	}

	podcast, err := h.podcastService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, podcast)
}

// bindUpdateForm maps the multipart form onto the partial-update DTO,
// distinguishing absent fields from empty ones.
func (h *PodcastHandler) bindUpdateForm(c *gin.Context, req *dto.UpdatePodcastRequest) bool {
	if title, ok := c.GetPostForm("title"); ok {
		req.Title = &title
	}
	if shortDescription, ok := c.GetPostForm("shortDescription"); ok {
		req.ShortDescription = &shortDescription
	}
	if fullDescription, ok := c.GetPostForm("fullDescription"); ok {
		req.FullDescription = &fullDescription
	}
	if audioFile, err := c.FormFile("audioFile"); err == nil {
		req.AudioFile = audioFile
	}
	if imageFile, err := c.FormFile("imageFile"); err == nil {
		req.ImageFile = imageFile
	}

	return h.Validate(c, req)
}

// Delete removes an episode and (best-effort) its stored objects.
func (h *PodcastHandler) Delete(c *gin.Context) {
	if err := h.podcastService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "episode deleted",
		"podcast_id", c.Param("id"),
		"admin_id", middleware.GetAdminID(c),
	)
	c.JSON(http.StatusOK, dto.DeletePodcastResponse{Success: true})
}
