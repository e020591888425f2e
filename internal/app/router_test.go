package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	httpserver "github.com/fairyhunter13/ai-interview-prep/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-interview-prep/internal/config"
)

func TestParseOrigins(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"*"}, ParseOrigins(""))
	assert.Equal(t, []string{"*"}, ParseOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, ParseOrigins(" https://a.example , https://b.example "))
	assert.Equal(t, []string{"*"}, ParseOrigins(" , , "))
}

func TestBuildRouter_HealthAndSecurityHeaders(t *testing.T) {
	t.Parallel()
	cfg := config.Config{CORSAllowOrigins: "*", RateLimitPerMin: 10, MaxUploadMB: 1}
	h := BuildRouter(cfg, &httpserver.Server{Cfg: cfg})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestBuildRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()
	cfg := config.Config{CORSAllowOrigins: "*", RateLimitPerMin: 10}
	h := BuildRouter(cfg, &httpserver.Server{Cfg: cfg})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRouter_UnknownRoute(t *testing.T) {
	t.Parallel()
	cfg := config.Config{CORSAllowOrigins: "*", RateLimitPerMin: 10}
	h := BuildRouter(cfg, &httpserver.Server{Cfg: cfg})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
