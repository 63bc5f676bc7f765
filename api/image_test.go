package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurandifr/AcheiPet/imageproc"
)

func TestGetImage(t *testing.T) {
	dir := t.TempDir()
	images, err := imageproc.NewProcessor(dir)
	require.NoError(t, err)

	stored := []byte("jpeg-bytes")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ab12_20240101120000.jpg"), stored, 0o644))

	s := Server{images: images}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/:filename", s.getImage)

	req := httptest.NewRequest("GET", "/ab12_20240101120000.jpg", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, stored, w.Body.Bytes())
}

func TestGetImageNotFound(t *testing.T) {
	images, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	s := Server{images: images}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/:filename", s.getImage)

	req := httptest.NewRequest("GET", "/0000_19700101000000.jpg", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
