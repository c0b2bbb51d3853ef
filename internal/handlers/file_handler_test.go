package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"podcast_backend/internal/storage"
	"podcast_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRouter(t *testing.T) (*gin.Engine, storage.Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/files"})
	require.NoError(t, err)

	router := gin.New()
	handler := NewFileHandler(NewBaseHandler(validator.New()), st)
	handler.RegisterRoutes(router.Group(""))
	return router, st
}

func TestServeFile(t *testing.T) {
	router, st := newFileRouter(t)
	require.NoError(t, st.Save(context.Background(), "images/cover.png", strings.NewReader("img-bytes"), "image/png"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/images/cover.png", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "img-bytes", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestServeFileNotFound(t *testing.T) {
	router, _ := newFileRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/audio/missing.mp3", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHeadFile(t *testing.T) {
	router, st := newFileRouter(t)
	require.NoError(t, st.Save(context.Background(), "images/cover.png", strings.NewReader("img"), "image/png"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/files/images/cover.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/files/images/nope.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCleanObjectKey(t *testing.T) {
	key, ok := cleanObjectKey("/audio/ep.mp3")
	assert.True(t, ok)
	assert.Equal(t, "audio/ep.mp3", key)

	_, ok = cleanObjectKey("/")
	assert.False(t, ok)

	_, ok = cleanObjectKey("/audio/../../etc/passwd")
	assert.False(t, ok)

	_, ok = cleanObjectKey("/../secret")
	assert.False(t, ok)
}
