package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fcabl/league-service/internal/handler"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newHealthEngine(p handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// nil services: only health routes are exercised here
	handler.Register(r, p, handler.Services{})
	return r
}

func TestHealthChecks(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		ping   error
		want   int
	}{
		{"ready", http.MethodGet, "/api/v1/health/ready", nil, http.StatusOK},
		{"ready unavailable", http.MethodGet, "/api/v1/health/ready", errors.New("db down"), http.StatusServiceUnavailable},
		{"live root", http.MethodGet, "/live", nil, http.StatusOK},
		{"live ignores storage", http.MethodGet, "/api/v1/health/live", errors.New("db down"), http.StatusOK},
		{"ready root", http.MethodGet, "/ready", nil, http.StatusOK},
		{"ready root unavailable", http.MethodGet, "/ready", errors.New("db down"), http.StatusServiceUnavailable},
		{"unknown path", http.MethodGet, "/no-such", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newHealthEngine(stubPinger{err: tc.ping})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestReadiness_ReportsStorageError(t *testing.T) {
	r := newHealthEngine(stubPinger{err: errors.New("db down")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"db down"`)
}

// deadlinePinger blocks until the readiness deadline fires.
type deadlinePinger struct{}

func (deadlinePinger) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestReadiness_TimesOut(t *testing.T) {
	r := newHealthEngine(deadlinePinger{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "deadline exceeded")
}

func TestReadiness_MethodNotAllowed(t *testing.T) {
	r := newHealthEngine(stubPinger{})
	w := httptest.NewRecorder()
	// Gin by default returns 404 for unknown method if route only registered for GET.
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/health/ready", nil))
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, w.Code)
}
