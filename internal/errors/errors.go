package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// Error codes carried by APIError and echoed as the error_code extension.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeUnknownDomain    = "UNKNOWN_DOMAIN"
	CodeNotFound         = "NOT_FOUND"
	CodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// APIError is an error raised by the HTTP layer itself, before a request
// reaches a service.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewWithDetails creates an APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// ValidationError describes one rejected query parameter.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors groups the rejected parameters of one request.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors reports every rejected parameter at once.
func NewValidationErrors(errs []ValidationError) *APIError {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return NewWithDetails(
		http.StatusBadRequest,
		CodeValidationFailed,
		fmt.Sprintf("Invalid query parameters: %s", strings.Join(fields, ", ")),
		ValidationErrors{Errors: errs},
	)
}

// InvalidParameterError reports a single bad query or path parameter.
func InvalidParameterError(param string, err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidParameter,
		fmt.Sprintf("Invalid value for %s", param), ValidationError{Field: param, Message: err.Error()})
}

// UnknownDomainError answers a {domain} path segment that names no table.
func UnknownDomainError(name string, allowed []string) *APIError {
	return NewWithDetails(http.StatusNotFound, CodeUnknownDomain,
		fmt.Sprintf("unknown domain %q", name),
		map[string]interface{}{"allowed": allowed})
}

// RateLimitProblem is the body sent with a 429 response.
func RateLimitProblem(retryAfter int, instance, traceID string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusTooManyRequests,
		TypeRateLimit,
		http.StatusText(http.StatusTooManyRequests),
		fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		instance,
	).WithExtension("error_code", CodeRateLimited).
		WithExtension("retry_after", retryAfter).
		WithExtension("trace_id", traceID)
}
