package dataset

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourismfx/internal/exporter"
	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func inboundTable(japan ...float64) *frame.Table {
	t := frame.New("inbound", "Total", "Japan")
	for i, v := range japan {
		t.AppendRow(frame.MonthStart(2020, time.Month(i+1)), v*10, v)
	}
	return t
}

func writeCSV(t *testing.T, dir string, d domain.Domain, tbl *frame.Table) string {
	t.Helper()
	path, err := exporter.NewCSVWriter(dir, discard()).WriteTable(d, tbl)
	require.NoError(t, err)
	return path
}

func writeParquet(t *testing.T, dir string, d domain.Domain, tbl *frame.Table) string {
	t.Helper()
	path, err := exporter.NewParquetWriter(dir, discard()).WriteTable(d, tbl)
	require.NoError(t, err)
	return path
}

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestLoadAll_MissingFiles(t *testing.T) {
	l := NewLoader(t.TempDir(), WithLogger(discard()))

	ds, err := l.LoadAll(context.Background())
	require.NoError(t, err)

	for _, d := range domain.Domains {
		tbl := ds.Table(d)
		require.NotNil(t, tbl, d.String())
		assert.True(t, tbl.Empty())
		assert.False(t, ds.Available(d))
	}
	assert.Len(t, ds.Warnings, 3)
	assert.Contains(t, ds.Warnings[0], "cleaned_inbound_tourism.csv")
}

func TestLoadAll_Sources(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		setup  func(t *testing.T, dir string)
		source Source
		japan  float64
	}{
		{
			name: "csv only",
			setup: func(t *testing.T, dir string) {
				writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2))
			},
			source: SourceCSV,
			japan:  2,
		},
		{
			name: "parquet preferred",
			setup: func(t *testing.T, dir string) {
				touch(t, writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2)), base)
				touch(t, writeParquet(t, dir, domain.DomainInbound, inboundTable(1, 3)), base.Add(time.Minute))
			},
			source: SourceParquet,
			japan:  3,
		},
		{
			name: "stale parquet ignored",
			setup: func(t *testing.T, dir string) {
				touch(t, writeParquet(t, dir, domain.DomainInbound, inboundTable(1, 3)), base)
				touch(t, writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2)), base.Add(time.Minute))
			},
			source: SourceCSV,
			japan:  2,
		},
		{
			name: "corrupt parquet falls back",
			setup: func(t *testing.T, dir string) {
				touch(t, writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2)), base)
				pq := filepath.Join(dir, domain.DomainInbound.ParquetFile())
				require.NoError(t, os.WriteFile(pq, []byte("not parquet"), 0644))
				touch(t, pq, base.Add(time.Minute))
			},
			source: SourceCSV,
			japan:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			ds, err := NewLoader(dir, WithLogger(discard())).LoadAll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.source, ds.Sources[domain.DomainInbound])
			assert.True(t, ds.Available(domain.DomainInbound))
			v, ok := ds.Inbound.Value(1, "Japan")
			require.True(t, ok)
			assert.Equal(t, tt.japan, v)
			assert.Len(t, ds.Warnings, 2, "outbound and exchange are absent")
		})
	}
}

func TestLoadAll_Cache(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2))
	touch(t, path, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLoader(dir,
		WithLogger(discard()),
		WithTTL(time.Hour),
		WithClock(func() time.Time { return now }))
	ctx := context.Background()

	first, err := l.LoadAll(ctx)
	require.NoError(t, err)
	second, err := l.LoadAll(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second, "unchanged files are served from cache")

	now = now.Add(2 * time.Hour)
	expired, err := l.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, expired, "ttl elapsed")

	writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2, 3))
	touch(t, path, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	changed, err := l.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotSame(t, expired, changed, "fingerprint changed")
	assert.Equal(t, 3, changed.Inbound.Len())

	l.Invalidate()
	reloaded, err := l.LoadAll(ctx)
	require.NoError(t, err)
	assert.NotSame(t, changed, reloaded)
}

func TestLoadAll_NoCache(t *testing.T) {
	l := NewLoader(t.TempDir(), WithLogger(discard()), WithTTL(0))
	a, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	b, err := l.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestLoadAll_Concurrent(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2))
	l := NewLoader(dir, WithLogger(discard()))

	const n = 16
	results := make([]*Dataset, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds, err := l.LoadAll(context.Background())
			assert.NoError(t, err)
			results[i] = ds
		}(i)
	}
	wg.Wait()

	for _, ds := range results[1:] {
		assert.Same(t, results[0], ds)
	}
}

func TestLoadAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(t.TempDir()).LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAll_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, domain.DomainInbound, inboundTable(1, 2))

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	clock := func() time.Time {
		once.Do(func() {
			close(started)
			<-release
		})
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	l := NewLoader(dir, WithLogger(discard()), WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := l.LoadAll(ctx)
		firstErr <- err
	}()
	<-started

	second := make(chan *Dataset, 1)
	go func() {
		ds, err := l.LoadAll(context.Background())
		assert.NoError(t, err)
		second <- ds
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)
	close(release)

	ds := <-second
	require.NotNil(t, ds)
	assert.Equal(t, 2, ds.Inbound.Len())
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)

	empty, err := l.Fingerprint()
	require.NoError(t, err)

	writeCSV(t, dir, domain.DomainExchange, frame.New("exchange", "USD"))
	withFile, err := l.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, empty, withFile)
}
