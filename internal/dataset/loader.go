package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tourismfx/internal/exporter"
	"tourismfx/internal/frame"
	"tourismfx/internal/infrastructure"
	"tourismfx/pkg/contracts/domain"
)

// DefaultTTL bounds how long a cached dataset is served without looking at
// the files again.
const DefaultTTL = time.Hour

// Option configures a Loader.
type Option func(*Loader)

// WithTTL sets the cache lifetime. Zero or negative disables caching.
func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) { l.ttl = ttl }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics records cache hits and loads.
func WithMetrics(m *infrastructure.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// Loader reads the canonical tables of a clean directory. It is safe for
// concurrent use.
type Loader struct {
	dir     string
	ttl     time.Duration
	logger  *slog.Logger
	metrics *infrastructure.Metrics
	now     func() time.Time

	group singleflight.Group

	mu          sync.RWMutex
	cached      *Dataset
	fingerprint string
	expires     time.Time
}

// NewLoader creates a loader over dir.
func NewLoader(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:    dir,
		ttl:    DefaultTTL,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = infrastructure.WithComponent(l.logger, "dataset")
	return l
}

// Dir returns the clean directory.
func (l *Loader) Dir() string { return l.dir }

// LoadAll returns the three tables. A cached dataset is returned while it is
// younger than the TTL and the files on disk have not changed.
//
// The returned dataset is shared; callers must not modify its tables.
func (l *Loader) LoadAll(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fp, err := l.Fingerprint()
	if err != nil {
		return nil, err
	}

	if ds := l.lookup(fp); ds != nil {
		l.metrics.RecordDatasetLoad(ctx, "hit")
		return ds, nil
	}

	// The shared load outlives any single caller; each caller only stops
	// waiting when its own context ends.
	ch := l.group.DoChan(fp, func() (interface{}, error) {
		return l.load(context.WithoutCancel(ctx), fp)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		l.metrics.RecordDatasetLoad(ctx, "error")
		return nil, res.Err
	}
	if res.Shared {
		l.metrics.RecordDatasetLoad(ctx, "shared")
	} else {
		l.metrics.RecordDatasetLoad(ctx, "miss")
	}
	return res.Val.(*Dataset), nil
}

// Invalidate drops the cached dataset.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.fingerprint = ""
	l.mu.Unlock()
}

func (l *Loader) lookup(fp string) *Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.cached == nil || l.fingerprint != fp || !l.now().Before(l.expires) {
		return nil
	}
	return l.cached
}

func (l *Loader) store(fp string, ds *Dataset) {
	if l.ttl <= 0 {
		return
	}
	l.mu.Lock()
	l.cached = ds
	l.fingerprint = fp
	l.expires = l.now().Add(l.ttl)
	l.mu.Unlock()
}

// Fingerprint describes the canonical files currently on disk.
func (l *Loader) Fingerprint() (string, error) {
	var b strings.Builder
	for _, d := range domain.Domains {
		for _, name := range []string{d.ParquetFile(), d.CSVFile()} {
			info, err := os.Stat(filepath.Join(l.dir, name))
			switch {
			case errors.Is(err, fs.ErrNotExist):
				fmt.Fprintf(&b, "%s:-;", name)
			case err != nil:
				return "", fmt.Errorf("failed to stat %s: %w", name, err)
			default:
				fmt.Fprintf(&b, "%s:%d:%d;", name, info.Size(), info.ModTime().UnixNano())
			}
		}
	}
	return b.String(), nil
}

func (l *Loader) load(ctx context.Context, fp string) (*Dataset, error) {
	ds := &Dataset{
		Sources:  make(map[domain.Domain]Source, len(domain.Domains)),
		LoadedAt: l.now(),
	}
	for _, d := range domain.Domains {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, src, warning := l.loadTable(d)
		ds.set(d, t, src)
		if warning != "" {
			ds.Warnings = append(ds.Warnings, warning)
		}
	}
	l.store(fp, ds)
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("inbound_rows", ds.Inbound.Len()),
		slog.Int("outbound_rows", ds.Outbound.Len()),
		slog.Int("exchange_rows", ds.Exchange.Len()),
		slog.Int("warnings", len(ds.Warnings)))
	return ds, nil
}

// loadTable tries the Parquet mirror, then the CSV. A mirror older than
// its CSV is ignored. When neither can be read the table is empty and a
// warning is returned.
func (l *Loader) loadTable(d domain.Domain) (*frame.Table, Source, string) {
	name := d.String()
	pq := filepath.Join(l.dir, d.ParquetFile())
	csvPath := filepath.Join(l.dir, d.CSVFile())

	if stale(pq, csvPath) {
		l.logger.Debug("columnar file older than canonical CSV, ignoring it",
			slog.String("file", pq))
	} else {
		t, err := exporter.ReadParquet(pq, name)
		if err == nil {
			return t, SourceParquet, ""
		}
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("failed to read columnar file, falling back to CSV",
				slog.String("file", pq),
				slog.String("error", err.Error()))
		}
	}

	t, err := exporter.ReadTableCSV(csvPath, name)
	if err == nil {
		return t, SourceCSV, ""
	}

	var warning string
	if errors.Is(err, fs.ErrNotExist) {
		warning = fmt.Sprintf("%s data unavailable: %s not found", name, d.CSVFile())
	} else {
		warning = fmt.Sprintf("%s data unavailable: %v", name, err)
	}
	l.logger.Warn("canonical table not loaded",
		slog.String("domain", name),
		slog.String("reason", warning))
	return frame.New(name), SourceNone, warning
}

// stale reports whether mirror exists and is older than canonical.
func stale(mirror, canonical string) bool {
	mi, err := os.Stat(mirror)
	if err != nil {
		return false
	}
	ci, err := os.Stat(canonical)
	if err != nil {
		return false
	}
	return mi.ModTime().Before(ci.ModTime())
}
