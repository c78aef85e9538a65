package exporter

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"tourismfx/internal/frame"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func month(y int, m time.Month) time.Time { return frame.MonthStart(y, m) }

// sampleTable has a missing cell and a column name with a space.
func sampleTable(t *testing.T) *frame.Table {
	t.Helper()
	tbl := frame.New("inbound", "Japan", "Total", "United States")
	tbl.AppendRow(month(2019, time.January), 1200, 5000, 300.5)
	tbl.AppendRow(month(2019, time.February), frame.Missing, 4800, 0)
	tbl.AppendRow(month(2019, time.March), 1300.25, 5100, 310)
	return tbl
}

func assertTablesEqual(t *testing.T, want, got *frame.Table) {
	t.Helper()
	if len(want.Columns) != len(got.Columns) {
		t.Fatalf("columns: want %v, got %v", want.Columns, got.Columns)
	}
	for i := range want.Columns {
		if want.Columns[i] != got.Columns[i] {
			t.Fatalf("columns: want %v, got %v", want.Columns, got.Columns)
		}
	}
	if want.Len() != got.Len() {
		t.Fatalf("rows: want %d, got %d", want.Len(), got.Len())
	}
	for i := range want.Rows {
		if !want.Rows[i].Date.Equal(got.Rows[i].Date) {
			t.Errorf("row %d date: want %v, got %v", i, want.Rows[i].Date, got.Rows[i].Date)
		}
		for j, w := range want.Rows[i].Values {
			g := got.Rows[i].Values[j]
			if frame.IsMissing(w) != frame.IsMissing(g) || (!frame.IsMissing(w) && w != g) {
				t.Errorf("row %d column %s: want %v, got %v", i, want.Columns[j], w, g)
			}
		}
	}
}
