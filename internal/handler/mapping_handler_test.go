package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkitazos/url-shortener/internal/config"
	"github.com/pkitazos/url-shortener/internal/domain"
	"github.com/pkitazos/url-shortener/internal/handler"
	"github.com/pkitazos/url-shortener/internal/repository/memory"
	"github.com/pkitazos/url-shortener/internal/service"
	"github.com/pkitazos/url-shortener/pkg/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		BaseURL:             "https://sho.rt",
		ShortCodeLength:     6,
		MaxGenerateAttempts: 5,
		CacheTTL:            time.Hour,
	}

	svc := service.NewShortenerService(memory.New(), nil, cfg, logger.NewNop())
	h := handler.NewMappingHandler(svc, logger.NewNop())

	router := gin.New()
	router.POST("/api/v1/shorten", h.Shorten)
	router.GET("/api/v1/expand/:shortCode", h.Expand)
	router.GET("/:shortCode", h.Redirect)
	return router
}

func doShorten(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shorten", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestShortenEndpoint_Created(t *testing.T) {
	router := newTestRouter(t)

	w := doShorten(t, router, `{"url": "https://example.com/a"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp domain.ShortenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.ShortCode, 6)
	assert.Equal(t, "https://sho.rt/"+resp.ShortCode, resp.ShortURL)
	assert.Equal(t, "https://example.com/a", resp.LongURL)
}

func TestShortenEndpoint_IdempotentAcrossRequests(t *testing.T) {
	router := newTestRouter(t)

	first := doShorten(t, router, `{"url": "https://example.com/a"}`)
	second := doShorten(t, router, `{"url": "https://example.com/a"}`)

	var r1, r2 domain.ShortenResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &r1))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &r2))
	assert.Equal(t, r1.ShortCode, r2.ShortCode)
}

func TestShortenEndpoint_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing url field", `{}`},
		{"not json", `not json`},
		{"empty url", `{"url": ""}`},
		{"not a url", `{"url": "no scheme here"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doShorten(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRedirectEndpoint_RoundTrip(t *testing.T) {
	router := newTestRouter(t)

	w := doShorten(t, router, `{"url": "https://example.com/a"}`)
	var resp domain.ShortenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/"+resp.ShortCode, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://example.com/a", rec.Header().Get("Location"))
}

func TestRedirectEndpoint_UnknownCode(t *testing.T) {
	router := newTestRouter(t)

	for _, code := range []string{"zzzzzz", "doesnotexist"} {
		req := httptest.NewRequest(http.MethodGet, "/"+code, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "code %q", code)
	}
}

func TestRedirectEndpoint_MalformedCode(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/bad!code", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpandEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doShorten(t, router, `{"url": "https://example.com/a"}`)
	var created domain.ShortenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expand/"+created.ShortCode, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ExpandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ShortCode, resp.ShortCode)
	assert.Equal(t, "https://example.com/a", resp.LongURL)

	// expand must not redirect
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestExpandEndpoint_UnknownCode(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expand/zzzzzz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
