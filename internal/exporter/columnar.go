package exporter

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"

	"tourismfx/internal/normalize"
	"tourismfx/pkg/contracts/domain"
)

// ColumnarResult describes the columnar export of one domain.
type ColumnarResult struct {
	Domain  domain.Domain
	Path    string
	Rows    int
	Skipped bool
	Err     error
}

// ColumnarExporter derives Parquet files from the canonical CSV files of a
// directory.
type ColumnarExporter struct {
	dir    string
	writer *ParquetWriter
	logger *slog.Logger
}

// NewColumnarExporter creates an exporter reading and writing in dir.
func NewColumnarExporter(dir string, logger *slog.Logger) *ColumnarExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ColumnarExporter{
		dir:    dir,
		writer: NewParquetWriter(dir, logger),
		logger: logger.With(slog.String("component", "columnar_exporter")),
	}
}

// ExportAll converts every canonical CSV present in the directory. A
// missing file is logged and skipped.
func (e *ColumnarExporter) ExportAll(ctx context.Context) []ColumnarResult {
	results := make([]ColumnarResult, 0, len(domain.Domains))
	for _, d := range domain.Domains {
		if ctx.Err() != nil {
			results = append(results, ColumnarResult{Domain: d, Skipped: true, Err: ctx.Err()})
			continue
		}
		results = append(results, e.Export(d))
	}
	return results
}

// Export converts the canonical CSV of one domain.
func (e *ColumnarExporter) Export(d domain.Domain) ColumnarResult {
	src := filepath.Join(e.dir, d.CSVFile())
	res := ColumnarResult{Domain: d}

	t, err := ReadTableCSV(src, d.String())
	if errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn("canonical file not found, skipping columnar export",
			slog.String("domain", d.String()),
			slog.String("file", src))
		res.Skipped = true
		return res
	}
	if err != nil {
		e.logger.Error("failed to read canonical file",
			slog.String("domain", d.String()),
			slog.String("file", src),
			slog.String("error", err.Error()))
		res.Err = err
		return res
	}

	if d == domain.DomainOutbound {
		masked := normalize.ApplyZeroTotalSentinel(t)
		dropped := t.DropEmptyRows()
		if masked > 0 || dropped > 0 {
			e.logger.Debug("outbound sentinel applied",
				slog.Int("masked_rows", masked),
				slog.Int("dropped_rows", dropped))
		}
	}

	path, err := e.writer.WriteTable(d, t)
	if err != nil {
		res.Err = err
		return res
	}
	res.Path = path
	res.Rows = t.Len()
	return res
}
