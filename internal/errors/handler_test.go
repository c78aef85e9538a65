package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourismfx/internal/shared/testutil"
)

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"deadline exceeded", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"invalid parameter", InvalidParameterError("start", fmt.Errorf("want YYYY-MM")), http.StatusBadRequest, TypeValidation},
		{"unknown domain", UnknownDomainError("hotels", []string{"inbound"}), http.StatusNotFound, TypeNotFound},
		{"unavailable", NewWithDetails(http.StatusServiceUnavailable, CodeUnavailable, "no tables", nil), http.StatusServiceUnavailable, TypeServiceDown},
		{"app validation", NewAppValidationError("start after end"), http.StatusBadRequest, TypeValidation},
		{"app not found", fmt.Errorf("lookup: %w", NewNotFoundError("column Atlantis")), http.StatusNotFound, TypeNotFound},
		{"empty result", NewEmptyResultError("no rows"), http.StatusNotFound, TypeDataNotFound},
		{"structural miss", NewStructuralMissError("no header"), http.StatusUnprocessableEntity, TypeDataCorrupted},
		{"storage", NewStorageError("parquet", fmt.Errorf("eof")), http.StatusInternalServerError, TypeStorage},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logHandler := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/data/inbound", nil)
			handler.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/data/inbound", body["instance"])
			assert.Contains(t, body, "trace_id")
			assert.True(t, logHandler.ContainsMessage("request failed"))
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	logger, logHandler := testutil.NewTestLogger(t)
	w := httptest.NewRecorder()
	NewErrorHandler(logger, false).HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, 0, w.Body.Len())
	assert.Equal(t, 0, logHandler.Count())
}

func TestErrorHandler_StorageDetailIsGeneric(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)
	r := httptest.NewRequest(http.MethodGet, "/api/overview", nil)

	problem := h.ErrorToProblem(NewStorageError("open /secret/path", fmt.Errorf("denied")), r)

	assert.NotContains(t, problem.Detail, "/secret/path")
	assert.Equal(t, "STORAGE", problem.Extensions["error_code"])
}

func TestErrorHandler_Recoverer(t *testing.T) {
	logger, logHandler := testutil.NewTestLogger(t)

	h := NewErrorHandler(logger, true).Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("normalizer exploded")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/overview", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "normalizer exploded", body["panic"])
	assert.True(t, logHandler.ContainsMessage("panic recovered"))
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodPost, "/api/overview", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, TypeMethodNotAllowed, body["type"])
	assert.Equal(t, "Method Not Allowed", body["title"])
}

func TestErrorHandler_RecovererAbort(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false).Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "", "").
		WithExtension("error_code", CodeInvalidParameter)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, CodeInvalidParameter, body["error_code"])
	assert.NotContains(t, body, "detail")
	assert.NotContains(t, body, "instance")
}

func TestInvalidParameterError(t *testing.T) {
	err := InvalidParameterError("start", fmt.Errorf("want YYYY-MM"))

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "start", details.Field)
	assert.Equal(t, "want YYYY-MM", details.Message)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "start", Message: "must be YYYY-MM"},
		{Field: "currency", Message: "must be a 3-letter code"},
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, CodeValidationFailed, err.ErrorCode)
	assert.Equal(t, "Invalid query parameters: start, currency", err.Message)
}

func TestRateLimitProblem(t *testing.T) {
	p := RateLimitProblem(3, "/api/overview", "req-1")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeRateLimit, body["type"])
	assert.Equal(t, float64(http.StatusTooManyRequests), body["status"])
	assert.Equal(t, float64(3), body["retry_after"])
	assert.Equal(t, "req-1", body["trace_id"])
	assert.Contains(t, body["detail"], "retry after 3 seconds")
}
