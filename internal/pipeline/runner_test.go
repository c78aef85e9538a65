package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"

	"tourismfx/internal/exporter"
	"tourismfx/internal/frame"
	"tourismfx/internal/normalize"
	"tourismfx/internal/shared/testutil"
	"tourismfx/pkg/contracts/domain"
)

const bom = "\ufeff"

type layout struct {
	root  string
	raw   map[domain.Domain]string
	clean string
}

func newLayout(t *testing.T) layout {
	t.Helper()
	root := t.TempDir()
	l := layout{
		root:  filepath.Join(root, "original_data"),
		clean: filepath.Join(root, "cleaned_data"),
		raw:   map[domain.Domain]string{},
	}
	for _, d := range domain.Domains {
		dir := filepath.Join(l.root, d.String())
		require.NoError(t, os.MkdirAll(dir, 0755))
		l.raw[d] = dir
	}
	return l
}

func (l layout) write(t *testing.T, d domain.Domain, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(l.raw[d], name), data, 0644))
}

func (l layout) options() Options {
	return Options{
		RawRoot:   l.root,
		RawDirs:   l.raw,
		CleanDir:  l.clean,
		Normalize: normalize.DefaultOptions(),
	}
}

func cp949(t *testing.T, s string) []byte {
	t.Helper()
	out, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

// seed writes a complete set of raw inputs: two inbound files that overlap
// on 2020-02, one outbound workbook with a zero-total month and two
// exchange-rate series.
func seed(t *testing.T, l layout) {
	t.Helper()
	l.write(t, domain.DomainInbound, "a_2020.csv", cp949(t,
		"방한 외래관광객\n국적,2020년 1월,2020년 2월\n전체,\"1,000\",\"2,000\"\n일본,100,200\n"))
	l.write(t, domain.DomainInbound, "b_2020.csv", []byte(bom+
		"국적,2020년 2월,2020년 3월\n전체,\"2,500\",\"3,000\"\n일본,250,300\n"))

	writeWorkbook(t, filepath.Join(l.raw[domain.DomainOutbound], "Asia.xlsx"), [][]interface{}{
		{"", "", "국민해외관광객", "", "일본"},
		{"연도", "월", "명수", "증감률", "명수"},
		{"2019", "1", "2000", "1", "700"},
		{"", "2", "0", "", "0"},
		{"", "3", "1800", "", "650"},
	})

	l.write(t, domain.DomainExchange, "USD.csv", []byte(
		"변환,원자료\n2024/01/02,\"1,300\"\n2024/01/31,\"1,310\"\n2024/02/15,\"1,320\"\n"))
	l.write(t, domain.DomainExchange, "JPY_rates.csv", []byte(
		"변환,원자료\n2024.01,9.1\n2024.02,9.2\n"))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunner_EndToEnd(t *testing.T) {
	l := newLayout(t)
	seed(t, l)

	logger, _ := testutil.NewTestLogger(t)
	runner, err := NewRunner(l.options(), logger)
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.NotEmpty(t, report.TraceID)
	require.Len(t, report.Domains, 3)

	inbound := readFile(t, filepath.Join(l.clean, "cleaned_inbound_tourism.csv"))
	assert.Equal(t, bom+
		"Date,Total,Japan\n"+
		"2020-01-01,1000,100\n"+
		"2020-02-01,2500,250\n"+
		"2020-03-01,3000,300\n", inbound, "later file wins the overlapping month")

	outbound := readFile(t, filepath.Join(l.clean, "cleaned_outbound_tourism.csv"))
	assert.Equal(t, bom+
		"Date,Total Outbound,Japan\n"+
		"2019-01-01,2000,700\n"+
		"2019-03-01,1800,650\n", outbound, "zero-total month is dropped")

	exchange := readFile(t, filepath.Join(l.clean, "cleaned_exchange_rates.csv"))
	assert.Equal(t, bom+
		"Date,JPY,USD\n"+
		"2024-01-01,9.1,1305\n"+
		"2024-02-01,9.2,1320\n", exchange)

	rep, ok := report.Domain(domain.DomainOutbound)
	require.True(t, ok)
	assert.Equal(t, 1, rep.Merge.MaskedRows)
	assert.Equal(t, 1, rep.Merge.DroppedRows)
	assert.Equal(t, "2019-01-01", rep.FirstDate)
	assert.Equal(t, "2019-03-01", rep.LastDate)

	require.Len(t, report.Columnar, 3)
	for _, c := range report.Columnar {
		require.NoError(t, c.Err)
		assert.FileExists(t, filepath.Join(l.clean, c.Domain.ParquetFile()))
	}
	fromParquet, err := exporter.ReadParquet(filepath.Join(l.clean, "cleaned_inbound_tourism.parquet"), "inbound")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "Japan"}, fromParquet.Columns)
	assert.Equal(t, 3, fromParquet.Len())
}

func TestRunner_Idempotent(t *testing.T) {
	l := newLayout(t)
	seed(t, l)

	runner, err := NewRunner(l.options(), nil)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)
	first := map[string]string{}
	for _, d := range domain.Domains {
		for _, f := range []string{d.CSVFile(), d.ParquetFile()} {
			first[f] = readFile(t, filepath.Join(l.clean, f))
		}
	}

	_, err = runner.Run(context.Background())
	require.NoError(t, err)
	for f, want := range first {
		assert.Equal(t, want, readFile(t, filepath.Join(l.clean, f)), f)
	}
}

func TestRunner_SkipsBadFiles(t *testing.T) {
	l := newLayout(t)
	seed(t, l)
	l.write(t, domain.DomainInbound, "c_broken.csv", []byte(bom+"Country,2020-04\nJapan,1\n"))
	l.write(t, domain.DomainInbound, "d_legacy.xls", []byte{0xD0, 0xCF, 0x11, 0xE0})
	l.write(t, domain.DomainExchange, "notes.csv", []byte("2024.01,1\n"))

	logger, handler := testutil.NewTestLogger(t)
	runner, err := NewRunner(l.options(), logger)
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	inbound, _ := report.Domain(domain.DomainInbound)
	assert.Equal(t, 4, inbound.Files)
	assert.Equal(t, 2, inbound.Processed)
	require.Len(t, inbound.Skipped, 2)
	assert.Equal(t, "c_broken.csv", inbound.Skipped[0].File)
	assert.Equal(t, "structural_miss", inbound.Skipped[0].Reason)
	assert.Equal(t, "unsupported_format", inbound.Skipped[1].Reason)
	assert.True(t, inbound.Written)
	assert.Equal(t, 3, inbound.Rows)

	exchange, _ := report.Domain(domain.DomainExchange)
	require.Len(t, exchange.Skipped, 1)
	assert.Equal(t, "not_accepted", exchange.Skipped[0].Reason)

	skipped := handler.FindByMessage("file skipped")
	require.Len(t, skipped, 3)
	assert.Contains(t, skipped[0].Attrs, "file")
	assert.Contains(t, skipped[0].Attrs, "error")
}

func TestRunner_NoUsableFiles(t *testing.T) {
	l := newLayout(t)
	l.write(t, domain.DomainOutbound, "Europe.csv", []byte("nothing to see\n"))

	logger, handler := testutil.NewTestLogger(t)
	runner, err := NewRunner(l.options(), logger)
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed(), "empty domains are not failures")

	for _, d := range domain.Domains {
		rep, _ := report.Domain(d)
		assert.False(t, rep.Written)
		assert.NoFileExists(t, filepath.Join(l.clean, d.CSVFile()))
	}
	assert.True(t, handler.ContainsMessage("no usable source files, canonical table not written"))
	for _, c := range report.Columnar {
		assert.True(t, c.Skipped)
	}
}

func TestRunner_MissingRawDirectory(t *testing.T) {
	l := newLayout(t)
	require.NoError(t, os.RemoveAll(l.raw[domain.DomainExchange]))

	runner, err := NewRunner(l.options(), nil)
	require.NoError(t, err)

	rep, err := runner.RunDomain(context.Background(), domain.DomainExchange)
	require.NoError(t, err)
	assert.False(t, rep.Written)
	assert.NotEmpty(t, rep.Warnings)
}

type recordingMirror struct {
	tables map[domain.Domain]*frame.Table
}

func (m *recordingMirror) WriteTable(_ context.Context, d domain.Domain, t *frame.Table) (int, error) {
	if m.tables == nil {
		m.tables = map[domain.Domain]*frame.Table{}
	}
	m.tables[d] = t
	return t.Len(), nil
}

func TestRunner_MirrorAndOrganize(t *testing.T) {
	l := newLayout(t)
	seed(t, l)
	// Dropped into the raw root; the organizer moves it into inbound/.
	require.NoError(t, os.WriteFile(filepath.Join(l.root, "z_국적별_2020.csv"),
		[]byte(bom+"국적,2020년 4월\n일본,400\n"), 0644))

	mirror := &recordingMirror{}
	opts := l.options()
	opts.Organize = true
	opts.SkipColumnar = true
	opts.Mirror = mirror

	runner, err := NewRunner(opts, nil)
	require.NoError(t, err)
	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Organized)
	assert.Empty(t, report.Columnar)
	assert.NoFileExists(t, filepath.Join(l.clean, "cleaned_inbound_tourism.parquet"))

	require.Contains(t, mirror.tables, domain.DomainInbound)
	in := mirror.tables[domain.DomainInbound]
	require.Equal(t, 4, in.Len())
	last, _ := in.LastDate()
	assert.Equal(t, frame.MonthStart(2020, time.April), last)

	rep, _ := report.Domain(domain.DomainInbound)
	assert.Equal(t, 4, rep.Mirrored)
}

func TestRunner_Cancelled(t *testing.T) {
	l := newLayout(t)
	runner, err := NewRunner(l.options(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Domains)
}

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(Options{}, nil)
	assert.Error(t, err)

	l := newLayout(t)
	opts := l.options()
	delete(opts.RawDirs, domain.DomainExchange)
	_, err = NewRunner(opts, nil)
	assert.Error(t, err)
}
