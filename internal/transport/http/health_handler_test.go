package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tourismfx/internal/services"
)

type stubHealth struct{ status string }

func (s stubHealth) HealthCheck(context.Context) services.HealthStatus {
	return services.HealthStatus{Status: s.status, Timestamp: time.Now()}
}

func (s stubHealth) LivenessCheck(context.Context) services.HealthStatus {
	return services.HealthStatus{Status: "alive"}
}

func (s stubHealth) Version() map[string]interface{} {
	return map[string]interface{}{"version": "1.0.0"}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		status string
		target string
		want   int
	}{
		{"ok", "/health", http.StatusOK},
		{"degraded", "/health", http.StatusOK},
		{"unavailable", "/health", http.StatusServiceUnavailable},
		{"ok", "/health/live", http.StatusOK},
		{"ok", "/version", http.StatusOK},
	}
	for _, tt := range tests {
		h := NewHealthHandler(stubHealth{status: tt.status}, testLogger())
		rec := httptest.NewRecorder()
		h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
		assert.Equal(t, tt.want, rec.Code, "%s %s", tt.status, tt.target)
	}
}

func TestMetricsHandler(t *testing.T) {
	h := NewMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("etl_files_processed_total 3\n"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "etl_files_processed_total")

	rec = httptest.NewRecorder()
	NewMetricsHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
