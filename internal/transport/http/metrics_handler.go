package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves Prometheus metrics
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler wraps the exporter's handler. A nil handler serves the
// default Prometheus registry.
func NewMetricsHandler(handler http.Handler) *MetricsHandler {
	if handler == nil {
		handler = promhttp.Handler()
	}
	return &MetricsHandler{handler: handler}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
