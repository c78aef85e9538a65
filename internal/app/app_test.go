package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourismfx/internal/config"
	"tourismfx/internal/exporter"
	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.RateLimit.Enabled = false
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Paths.DataDir = dir
	cfg.Paths.LogsDir = filepath.Join(dir, "logs")
	cfg.Telemetry.TraceExporter = "none"
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	a, err := New(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = a.OTelProviders.Shutdown(context.Background())
	})
	return a
}

func seedInbound(t *testing.T, a *Application) {
	t.Helper()
	tbl := frame.New("inbound", "Total", "Japan")
	tbl.AppendRow(frame.MonthStart(2020, time.January), 1000, 100)
	tbl.AppendRow(frame.MonthStart(2020, time.February), 2000, 200)
	_, err := exporter.NewCSVWriter(a.Paths.CleanDir, testLogger()).WriteTable(domain.DomainInbound, tbl)
	require.NoError(t, err)
	a.Services.Loader.Invalidate()
}

func get(t *testing.T, a *Application, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, testLogger())
	assert.Error(t, err)
}

func TestNew_CreatesDirectories(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	assert.DirExists(t, a.Paths.CleanDir)
	assert.DirExists(t, a.Paths.InboundDir)
	assert.DirExists(t, a.Paths.OutboundDir)
	assert.DirExists(t, a.Paths.ExchangeDir)
	assert.NotNil(t, a.Router)
	assert.NotNil(t, a.Server)
	assert.Equal(t, ":0", a.Server.Addr)
}

func TestRouter_HealthWithoutData(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	rec := get(t, a, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", decode(t, rec)["status"])

	rec = get(t, a, "/api/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", decode(t, rec)["status"])

	rec = get(t, a, "/api/version")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, config.AppVersion, decode(t, rec)["version"])
}

func TestRouter_DataEndpoints(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	seedInbound(t, a)

	rec := get(t, a, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "degraded", decode(t, rec)["status"])

	rec = get(t, a, "/api/data/inbound/")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.EqualValues(t, 2, body["count"])

	rec = get(t, a, "/api/data/inbound/?start=2020-02")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = get(t, a, "/api/data/inbound/?start=2020-13")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, a, "/api/data/hotels/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Errors(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	rec := get(t, a, "/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	problem := decode(t, rec)
	assert.Equal(t, "/errors/not-found", problem["type"])
	assert.EqualValues(t, http.StatusNotFound, problem["status"])

	rec = httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Headers(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestRouter_Metrics(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	require.NotNil(t, a.OTelProviders.PrometheusHTTP)

	get(t, a, "/api/health/live")

	rec := get(t, a, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.Enabled = false
	a := newTestApp(t, cfg)

	assert.Nil(t, a.OTelProviders.PrometheusHTTP)
	assert.Equal(t, http.StatusNotFound, get(t, a, "/metrics").Code)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.5, Burst: 1}
	a := newTestApp(t, cfg)

	assert.Equal(t, http.StatusOK, get(t, a, "/api/health/live").Code)

	rec := get(t, a, "/api/health/live")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestApplication_StartStop(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, a.Start(ctx, cancel))
	require.NoError(t, a.Stop(ctx))
	assert.NoError(t, ctx.Err())
}
