package handlers

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"podcast_backend/internal/storage"
	"podcast_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored objects over HTTP. It is only mounted when the
// local backend is active; the R2 backend serves objects from its own public
// domain and never routes through here.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, st storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     st,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("/*filepath", h.ServeFile)
		files.HEAD("/*filepath", h.CheckFileExists)
	}
}

// ServeFile streams an object by its key.
func (h *FileHandler) ServeFile(c *gin.Context) {
	key, ok := cleanObjectKey(c.Param("filepath"))
	if !ok {
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), key)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

// CheckFileExists answers HEAD probes without streaming the body.
func (h *FileHandler) CheckFileExists(c *gin.Context) {
	key, ok := cleanObjectKey(c.Param("filepath"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), key)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}

	c.Status(http.StatusOK)
}

// cleanObjectKey normalizes a wildcard route param into a storage key and
// rejects anything that escapes the key space.
func cleanObjectKey(raw string) (string, bool) {
	key := strings.TrimPrefix(raw, "/")
	if key == "" {
		return "", false
	}
	cleaned := path.Clean(key)
	if cleaned != key || strings.HasPrefix(cleaned, "..") {
		return "", false
	}
	return cleaned, true
}
