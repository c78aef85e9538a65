package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/exporter"
	"tourismfx/internal/files"
	"tourismfx/internal/frame"
	"tourismfx/internal/grid"
	"tourismfx/internal/infrastructure"
	"tourismfx/internal/mapping"
	"tourismfx/internal/normalize"
	"tourismfx/pkg/contracts/domain"
)

// TableMirror receives every canonical table written by the pipeline.
type TableMirror interface {
	WriteTable(ctx context.Context, d domain.Domain, t *frame.Table) (int, error)
}

// Options configures a Runner.
type Options struct {
	// RawRoot is scanned by the organizer when Organize is set.
	RawRoot  string
	RawDirs  map[domain.Domain]string
	CleanDir string

	Organize     bool
	SkipColumnar bool

	Mapping   *mapping.Table
	Normalize normalize.Options

	// Mirror is optional.
	Mirror  TableMirror
	Metrics *infrastructure.Metrics
}

// Runner executes the ETL.
type Runner struct {
	opts        Options
	normalizers []normalize.Normalizer
	discovery   *files.Discovery
	csv         *exporter.CSVWriter
	columnar    *exporter.ColumnarExporter
	organizer   *files.Organizer
	tracer      trace.Tracer
	logger      *slog.Logger
}

// NewRunner builds a runner with one normalizer per domain.
func NewRunner(opts Options, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.CleanDir == "" {
		return nil, apperrors.NewConfigError("clean directory is required", nil)
	}
	if opts.Mapping == nil {
		opts.Mapping = mapping.Default()
	}

	normalizers := make([]normalize.Normalizer, 0, len(domain.Domains))
	for _, d := range domain.Domains {
		if _, ok := opts.RawDirs[d]; !ok {
			return nil, apperrors.NewConfigError(fmt.Sprintf("raw directory for %s is not configured", d), nil)
		}
		n, err := normalize.ForDomain(d, opts.Mapping, opts.Normalize)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to build normalizer", err)
		}
		normalizers = append(normalizers, n)
	}

	r := &Runner{
		opts:        opts,
		normalizers: normalizers,
		discovery:   files.NewDiscovery(""),
		csv:         exporter.NewCSVWriter(opts.CleanDir, logger),
		columnar:    exporter.NewColumnarExporter(opts.CleanDir, logger),
		tracer:      infrastructure.Tracer(),
		logger:      infrastructure.WithComponent(logger, "pipeline"),
	}
	if opts.Organize {
		r.organizer = files.NewOrganizer(opts.RawRoot, opts.RawDirs, logger)
	}
	return r, nil
}

// Run processes every domain and, unless disabled, the columnar export.
// Domain failures are reported, not returned; the error is non-nil only
// when ctx ends the run early.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	report := &Report{
		TraceID:   infrastructure.GetTraceID(ctx),
		StartedAt: time.Now(),
	}
	ctx, span := r.tracer.Start(ctx, "pipeline.run")
	defer span.End()

	r.logger.InfoContext(ctx, "pipeline started",
		slog.String("clean_dir", r.opts.CleanDir))

	if r.organizer != nil {
		res, err := r.organizer.Organize()
		if err != nil {
			r.logger.WarnContext(ctx, "organize step failed",
				slog.String("error", err.Error()))
		}
		report.Organized = res.Count()
	}

	for _, n := range r.normalizers {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(report.StartedAt)
			return report, err
		}
		report.Domains = append(report.Domains, r.runDomain(ctx, n))
	}

	if !r.opts.SkipColumnar {
		report.Columnar = r.columnar.ExportAll(ctx)
	}

	report.Duration = time.Since(report.StartedAt)
	r.logger.InfoContext(ctx, "pipeline finished",
		slog.Duration("duration", report.Duration),
		slog.Bool("failed", report.Failed()))
	return report, ctx.Err()
}

// RunDomain processes a single domain without the columnar export.
func (r *Runner) RunDomain(ctx context.Context, d domain.Domain) (DomainReport, error) {
	for _, n := range r.normalizers {
		if n.Domain() == d {
			return r.runDomain(infrastructure.EnsureTraceID(ctx), n), nil
		}
	}
	return DomainReport{}, apperrors.NewNotFoundError(fmt.Sprintf("normalizer for domain %q", d))
}

func (r *Runner) runDomain(ctx context.Context, n normalize.Normalizer) (rep DomainReport) {
	d := n.Domain()
	start := time.Now()
	rep = DomainReport{Domain: d}
	logger := r.logger.With(slog.String("domain", d.String()))

	ctx, span := r.tracer.Start(ctx, "pipeline.domain",
		trace.WithAttributes(attribute.String("domain", d.String())))
	defer span.End()

	found, err := r.discovery.FindDataFiles(r.opts.RawDirs[d])
	if err != nil {
		logger.WarnContext(ctx, "raw directory not readable",
			slog.String("error", err.Error()))
		rep.Warnings = append(rep.Warnings, err.Error())
	}
	rep.Files = len(found)

	var parts []*frame.Table
	for _, f := range found {
		if ctx.Err() != nil {
			break
		}
		t, err := r.processFile(ctx, n, f)
		if err != nil {
			issue := FileIssue{File: f.Name, Reason: skipReason(err), Error: err.Error()}
			rep.Skipped = append(rep.Skipped, issue)
			logger.WarnContext(ctx, "file skipped",
				slog.String("file", f.Path),
				slog.String("reason", issue.Reason),
				slog.String("error", issue.Error))
			r.opts.Metrics.RecordFile(ctx, d.String(), false, issue.Reason)
			continue
		}
		rep.Processed++
		parts = append(parts, t)
		r.opts.Metrics.RecordFile(ctx, d.String(), true, "")
		logger.DebugContext(ctx, "file normalized",
			slog.String("file", f.Path),
			slog.Int("rows", t.Len()),
			slog.Int("columns", len(t.Columns)))
	}

	defer func() {
		rep.Duration = time.Since(start)
		r.opts.Metrics.RecordDomain(ctx, d.String(), rep.Rows, rep.Duration)
		logger.InfoContext(ctx, "domain finished",
			slog.Int("files", rep.Files),
			slog.Int("processed", rep.Processed),
			slog.Int("skipped", len(rep.Skipped)),
			slog.Int("rows", rep.Rows),
			slog.Bool("written", rep.Written))
	}()

	if len(parts) == 0 {
		msg := "no usable source files, canonical table not written"
		logger.WarnContext(ctx, msg)
		rep.Warnings = append(rep.Warnings, msg)
		return rep
	}

	merged, stats := n.Merge(parts)
	rep.Merge = stats
	if len(stats.DroppedColumns) > 0 {
		logger.InfoContext(ctx, "columns with source-script labels dropped",
			slog.String("columns", strings.Join(stats.DroppedColumns, ",")))
	}

	path, err := r.csv.WriteTable(d, merged)
	if err != nil {
		rep.Err = err
		infrastructure.RecordError(ctx, err)
		logger.ErrorContext(ctx, "failed to write canonical table",
			slog.String("error", err.Error()))
		return rep
	}
	rep.Written = true
	rep.OutputPath = path
	rep.Rows = merged.Len()
	rep.Columns = len(merged.Columns)
	if first, ok := merged.FirstDate(); ok {
		rep.FirstDate = first.Format(domain.DateLayout)
	}
	if last, ok := merged.LastDate(); ok {
		rep.LastDate = last.Format(domain.DateLayout)
	}

	if unmapped := n.Unmapped(merged); len(unmapped) > 0 {
		rep.Unmapped = unmapped
		logger.WarnContext(ctx, "labels not found in category mapping",
			slog.String("labels", strings.Join(unmapped, ",")))
	}

	if r.opts.Mirror != nil {
		count, err := r.opts.Mirror.WriteTable(ctx, d, merged)
		if err != nil {
			rep.Warnings = append(rep.Warnings, "mirror: "+err.Error())
			logger.WarnContext(ctx, "failed to mirror canonical table",
				slog.String("error", err.Error()))
		}
		rep.Mirrored = count
	}
	return rep
}

// processFile loads and normalizes one file. Panics are converted to
// errors so a malformed file never aborts the domain.
func (r *Runner) processFile(ctx context.Context, n normalize.Normalizer, f files.FileInfo) (t *frame.Table, err error) {
	_, span := r.tracer.Start(ctx, "pipeline.file",
		trace.WithAttributes(attribute.String("file", f.Name)))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "panic while processing file",
				slog.String("file", f.Path),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))
			t, err = nil, fmt.Errorf("panic: %v", rec)
		}
		if err != nil {
			span.RecordError(err)
		}
	}()

	if !grid.Supported(f.Path) {
		return nil, errUnsupportedFormat
	}
	if !n.Accept(f.Name) {
		return nil, errNotAccepted
	}
	g, _, err := grid.Load(f.Path, n.Encodings()...)
	if err != nil {
		return nil, err
	}
	return n.Normalize(f.Name, g)
}

var (
	errUnsupportedFormat = errors.New("unsupported file format")
	errNotAccepted       = errors.New("file name does not identify a series")
)

func skipReason(err error) string {
	switch {
	case errors.Is(err, errUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, errNotAccepted):
		return "not_accepted"
	}
	if t := apperrors.TypeOf(err); t != "" {
		return strings.ToLower(string(t))
	}
	return "read_error"
}
