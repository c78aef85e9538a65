package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "tourismfx/internal/errors"
	"tourismfx/internal/middleware"
	"tourismfx/internal/services"
	"tourismfx/pkg/contracts/domain"
)

type domainCtxKey struct{}

// tableParams are the query parameters of GET /data/{domain}.
type tableParams struct {
	Start   string `query:"start" validate:"omitempty,yearmonth"`
	End     string `query:"end" validate:"omitempty,yearmonth"`
	Columns string `query:"columns" validate:"max=2048"`
}

// correlationParams are the query parameters of GET /analysis/correlation.
type correlationParams struct {
	Country  string `query:"country" validate:"required,max=64"`
	Currency string `query:"currency" validate:"required,currency"`
}

// DataHandler handles data and analysis requests with RFC 7807 errors
type DataHandler struct {
	service      DatasetServiceInterface
	validator    *middleware.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		validator:    middleware.NewQueryValidator(),
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data and analysis routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the data and analysis routes on r
func (h *DataHandler) RegisterRoutes(r chi.Router) {
	r.Route("/data/{domain}", func(r chi.Router) {
		r.Use(h.DomainCtx)
		r.Get("/", h.GetTable)
		r.Get("/columns", h.GetColumns)
	})
	r.Get("/overview", h.GetOverview)

	r.Route("/analysis", func(r chi.Router) {
		r.Get("/correlation", h.GetCorrelation)
		r.Get("/summary", h.GetCorrelationSummary)
		r.Get("/matrix", h.GetCorrelationMatrix)
	})
}

// DomainCtx validates the {domain} path parameter
func (h *DataHandler) DomainCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "domain")
		d, err := domain.ParseDomain(name)
		if err != nil {
			allowed := make([]string, 0, len(domain.Domains))
			for _, known := range domain.Domains {
				allowed = append(allowed, known.String())
			}
			h.errorHandler.HandleError(w, r, apierrors.UnknownDomainError(name, allowed))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), domainCtxKey{}, d)))
	})
}

// GetTable handles GET /api/data/{domain}
func (h *DataHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	var params tableParams
	if err := h.validator.Bind(r.URL.Query(), &params); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	d := domainFrom(r)

	resp, err := h.service.GetTable(r.Context(), d, services.TableQuery{
		Start:   params.Start,
		End:     params.End,
		Columns: splitList(params.Columns),
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "table served",
		slog.String("domain", d.String()),
		slog.Int("rows", len(resp.Rows)),
		slog.Bool("available", resp.Available),
	)
	success(w, r, resp, len(resp.Rows))
}

// GetColumns handles GET /api/data/{domain}/columns
func (h *DataHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.service.GetColumns(r.Context(), domainFrom(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, columns, len(columns))
}

// GetOverview handles GET /api/overview
func (h *DataHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, overview, len(overview.Tables))
}

// GetCorrelation handles GET /api/analysis/correlation
func (h *DataHandler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	var params correlationParams
	if err := h.validator.Bind(r.URL.Query(), &params); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	res, err := h.service.GetCorrelation(r.Context(), params.Country, params.Currency)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, res, res.Samples)
}

// GetCorrelationSummary handles GET /api/analysis/summary
func (h *DataHandler) GetCorrelationSummary(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.GetCorrelationSummary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, results, len(results))
}

// GetCorrelationMatrix handles GET /api/analysis/matrix
func (h *DataHandler) GetCorrelationMatrix(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetCorrelationMatrix(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, m, len(m.Labels))
}

func success(w http.ResponseWriter, r *http.Request, data interface{}, count int) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
		"count":  count,
	})
}

// domainFrom returns the domain stored by DomainCtx.
func domainFrom(r *http.Request) domain.Domain {
	d, _ := r.Context().Value(domainCtxKey{}).(domain.Domain)
	return d
}

// splitList splits a comma-separated parameter, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
