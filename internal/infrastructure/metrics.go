package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the application instruments.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	// Pipeline metrics
	FilesProcessed metric.Int64Counter
	FilesSkipped   metric.Int64Counter
	RowsWritten    metric.Int64Counter
	DomainDuration metric.Float64Histogram

	// Read path metrics
	DatasetLoads metric.Int64Counter
}

// NewMetrics creates the instruments on meter. A nil meter uses the global
// provider, which is a no-op until InitializeOTel installs one.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}
	m := &Metrics{}
	var err error

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.FilesProcessed, err = meter.Int64Counter(
		"etl_files_processed_total",
		metric.WithDescription("Raw files normalized successfully"),
	); err != nil {
		return nil, err
	}
	if m.FilesSkipped, err = meter.Int64Counter(
		"etl_files_skipped_total",
		metric.WithDescription("Raw files skipped because of a structural, parsing or read error"),
	); err != nil {
		return nil, err
	}
	if m.RowsWritten, err = meter.Int64Counter(
		"etl_rows_written_total",
		metric.WithDescription("Rows written to canonical tables"),
	); err != nil {
		return nil, err
	}
	if m.DomainDuration, err = meter.Float64Histogram(
		"etl_domain_duration_seconds",
		metric.WithDescription("Time spent processing one domain"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.DatasetLoads, err = meter.Int64Counter(
		"dataset_loads_total",
		metric.WithDescription("Dataset loads by cache outcome"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordFile counts one raw file as processed or skipped.
func (m *Metrics) RecordFile(ctx context.Context, domain string, processed bool, reason string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("domain", domain))
	if processed {
		m.FilesProcessed.Add(ctx, 1, attrs)
		return
	}
	m.FilesSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("reason", reason),
	))
}

// RecordDomain records the outcome of one domain run.
func (m *Metrics) RecordDomain(ctx context.Context, domain string, rows int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("domain", domain))
	m.RowsWritten.Add(ctx, int64(rows), attrs)
	m.DomainDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDatasetLoad counts a dataset load; outcome is "hit", "miss" or "error".
func (m *Metrics) RecordDatasetLoad(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.DatasetLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
