// Package http implements the read-only HTTP API over the canonical tourism
// and exchange-rate tables. Handlers are thin: they bind and validate query
// parameters, call the service layer and render the result.
//
// # Routes
//
// Mounted under /api:
//
//	GET /data/{domain}?start=&end=&columns=   date-range slice of a table
//	GET /data/{domain}/columns                column labels of a table
//	GET /overview                             per-table summary
//	GET /analysis/correlation?country=&currency=
//	GET /analysis/summary                     key country/currency pairs
//	GET /analysis/matrix                      totals and currencies
//	GET /health, /health/live, /version
//
// Prometheus metrics are served separately at /metrics.
//
// # Responses
//
// Successful responses use the envelope
//
//	{"status": "success", "data": ..., "count": n}
//
// and errors follow RFC 7807 Problem Details, produced by
// errors.ErrorHandler. A table whose file is absent is not an error: it is
// returned empty with "available": false.
package http
