package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"tourismfx/pkg/contracts"
	"tourismfx/pkg/contracts/domain"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	loader    DatasetLoader
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service. loader may be nil, in
// which case readiness does not look at the data.
func NewHealthService(version, buildTime string, loader DatasetLoader, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		loader:    loader,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck reports readiness of every canonical table. The overall
// status is "ok" when all are available, "degraded" when some are and
// "unavailable" when none can be read.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]ServiceHealth),
	}
	if hs.loader == nil {
		return status
	}

	ds, err := hs.loader.LoadAll(ctx)
	if err != nil {
		hs.logger.WarnContext(ctx, "health check could not load dataset",
			slog.String("error", err.Error()))
		status.Status = "unavailable"
		status.Services["dataset"] = ServiceHealth{Status: "not_ready", Message: err.Error()}
		return status
	}

	ready := 0
	for _, d := range domain.Domains {
		if ds.Available(d) {
			ready++
			status.Services[d.String()] = ServiceHealth{Status: "ready", Message: string(ds.Sources[d])}
			continue
		}
		status.Services[d.String()] = ServiceHealth{Status: "not_ready", Message: "data unavailable"}
	}
	switch ready {
	case len(domain.Domains):
	case 0:
		status.Status = "unavailable"
	default:
		status.Status = "degraded"
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	result := map[string]interface{}{
		"version":     hs.version,
		"go_version":  info.GoVersion,
		"os":          info.OS,
		"arch":        info.Architecture,
		"git_commit":  info.GitCommit,
		"data_format": info.DataFormat,
		"api_version": info.APIVersion,
		"uptime":      time.Since(hs.startTime).Seconds(),
		"start_time":  hs.startTime.Format(time.RFC3339),
	}
	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	return result
}
