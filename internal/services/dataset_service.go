package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"tourismfx/internal/analysis"
	"tourismfx/internal/dataset"
	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

// DatasetLoader provides the canonical tables.
type DatasetLoader interface {
	LoadAll(ctx context.Context) (*dataset.Dataset, error)
}

// TableQuery selects a slice of a table. Start and End are "YYYY-MM" or
// "YYYY-MM-DD" (truncated to the month) and may be empty for an open side.
// An empty Columns selects every column.
type TableQuery struct {
	Start   string
	End     string
	Columns []string
}

// DatasetService answers read queries over the canonical tables.
type DatasetService struct {
	loader DatasetLoader
	pairs  []analysis.Pair
	logger *slog.Logger
}

// NewDatasetService creates a dataset service summarizing analysis.KeyPairs.
func NewDatasetService(loader DatasetLoader, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		loader: loader,
		pairs:  analysis.KeyPairs,
		logger: logger.With(slog.String("component", "dataset_service")),
	}
}

func (s *DatasetService) load(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := s.loader.LoadAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load dataset", slog.String("error", err.Error()))
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

// GetTable returns the rows of d within the query's date range. A table
// whose file is absent yields an empty response with Available false.
func (s *DatasetService) GetTable(ctx context.Context, d domain.Domain, q TableQuery) (*domain.TableResponse, error) {
	start, err := ParsePeriod(q.Start)
	if err != nil {
		return nil, invalid(ErrInvalidDate, "start: "+err.Error())
	}
	end, err := ParsePeriod(q.End)
	if err != nil {
		return nil, invalid(ErrInvalidDate, "end: "+err.Error())
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return nil, invalid(ErrInvalidRange, fmt.Sprintf("%s is after %s", q.Start, q.End))
	}

	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	t := ds.Table(d)
	if t == nil {
		return nil, invalid(ErrUnknownDomain, string(d))
	}

	columns := t.Columns
	if len(q.Columns) > 0 {
		for _, c := range q.Columns {
			if !t.HasColumn(c) && ds.Available(d) {
				return nil, invalid(ErrUnknownColumn, c)
			}
		}
		columns = q.Columns
	}

	slice := t.Between(start, end)
	resp := &domain.TableResponse{
		Domain:    d,
		Available: ds.Available(d),
		Columns:   append([]string(nil), columns...),
		Rows:      make([]domain.TablePoint, 0, slice.Len()),
	}
	if !start.IsZero() {
		resp.Start = start.Format(domain.DateLayout)
	}
	if !end.IsZero() {
		resp.End = end.Format(domain.DateLayout)
	}
	if !resp.Available {
		resp.Warnings = warningsFor(ds, d)
	}

	for i, r := range slice.Rows {
		point := domain.TablePoint{
			Date:   r.Date.Format(domain.DateLayout),
			Values: make(map[string]*float64, len(columns)),
		}
		for _, c := range columns {
			v, _ := slice.Value(i, c)
			point.Values[c] = optional(v)
		}
		resp.Rows = append(resp.Rows, point)
	}
	return resp, nil
}

// GetColumns returns the column labels of d in table order.
func (s *DatasetService) GetColumns(ctx context.Context, d domain.Domain) ([]string, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	t := ds.Table(d)
	if t == nil {
		return nil, invalid(ErrUnknownDomain, string(d))
	}
	return append([]string{}, t.Columns...), nil
}

// GetCorrelation correlates one currency with one country's arrivals and
// departures.
func (s *DatasetService) GetCorrelation(ctx context.Context, country, currency string) (*domain.CorrelationResult, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	res, err := analysis.Correlate(ds.Inbound, ds.Outbound, ds.Exchange,
		strings.TrimSpace(country), strings.ToUpper(strings.TrimSpace(currency)))
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "correlation computed",
		slog.String("country", res.Country),
		slog.String("currency", res.Currency),
		slog.Int("samples", res.Samples))
	return &res, nil
}

// GetCorrelationSummary correlates the key country/currency pairs present in
// the data.
func (s *DatasetService) GetCorrelationSummary(ctx context.Context) ([]domain.CorrelationResult, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.Summary(ds.Inbound, ds.Outbound, ds.Exchange, s.pairs), nil
}

// GetCorrelationMatrix correlates the grand totals and all currencies.
func (s *DatasetService) GetCorrelationMatrix(ctx context.Context) (*domain.CorrelationMatrix, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	m := analysis.Matrix(ds.Inbound, ds.Outbound, ds.Exchange)
	return &m, nil
}

// Overview summarizes every table.
func (s *DatasetService) Overview(ctx context.Context) (*domain.Overview, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := &domain.Overview{
		LoadedAt: ds.LoadedAt,
		Warnings: ds.Warnings,
		Tables:   make([]domain.TableOverview, 0, len(domain.Domains)),
	}
	for _, d := range domain.Domains {
		out.Tables = append(out.Tables, overview(d, ds.Table(d), ds.Available(d)))
	}
	return out, nil
}

func overview(d domain.Domain, t *frame.Table, available bool) domain.TableOverview {
	o := domain.TableOverview{
		Domain:      d,
		Available:   available,
		RowCount:    t.Len(),
		ColumnCount: len(t.Columns),
		Columns:     append([]string{}, t.Columns...),
	}
	if first, ok := t.FirstDate(); ok {
		o.FirstDate = first.Format(domain.DateLayout)
	}
	if last, ok := t.LastDate(); ok {
		o.LastDate = last.Format(domain.DateLayout)
	}
	if col, ok := t.Column(d.TotalColumn()); ok {
		latest, prev := lastTwo(col)
		o.LatestTotal = optional(latest)
		if !math.IsNaN(latest) && !math.IsNaN(prev) {
			o.LatestChange = optional(latest - prev)
		}
	}
	return o
}

// lastTwo returns the last two non-missing values, NaN where absent.
func lastTwo(values []float64) (last, prev float64) {
	last, prev = math.NaN(), math.NaN()
	for i := len(values) - 1; i >= 0; i-- {
		if frame.IsMissing(values[i]) {
			continue
		}
		if math.IsNaN(last) {
			last = values[i]
			continue
		}
		prev = values[i]
		break
	}
	return last, prev
}

// ParsePeriod parses "YYYY-MM" or "YYYY-MM-DD" into the first day of the
// month. An empty string yields the zero time.
func ParsePeriod(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01", domain.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return frame.TruncateMonth(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not YYYY-MM or YYYY-MM-DD", s)
}

func warningsFor(ds *dataset.Dataset, d domain.Domain) []string {
	var out []string
	for _, w := range ds.Warnings {
		if strings.HasPrefix(w, d.String()+" ") {
			out = append(out, w)
		}
	}
	return out
}

func invalid(sentinel error, detail string) error {
	return apperrors.NewAppError(apperrors.ErrTypeValidation,
		fmt.Sprintf("%s: %s", sentinel.Error(), detail), sentinel)
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
