package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

// formatValue renders a cell. Missing values are empty and numbers use the
// shortest representation that parses back to the same float64.
func formatValue(v float64) string {
	if frame.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseValue is the inverse of formatValue.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return frame.Missing, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(domain.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// EncodeTable converts a table to a CSV header and records.
func EncodeTable(t *frame.Table) ([]string, [][]string) {
	headers := make([]string, 0, len(t.Columns)+1)
	headers = append(headers, domain.DateColumn)
	headers = append(headers, t.Columns...)

	records := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rec := make([]string, 0, len(r.Values)+1)
		rec = append(rec, formatDate(r.Date))
		for _, v := range r.Values {
			rec = append(rec, formatValue(v))
		}
		records[i] = rec
	}
	return headers, records
}
