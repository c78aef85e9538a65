package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/internal/grid"
	"tourismfx/internal/mapping"
	"tourismfx/pkg/contracts/domain"
)

// OutboundNormalizer reads departures-by-destination reports. A metric row
// holds the marker above each head-count column, the row above it names the
// destination, and year/month sit in the first two columns of the data rows.
type OutboundNormalizer struct {
	mapper *mapping.Table
	marker string
}

// NewOutboundNormalizer creates an outbound normalizer. An empty marker
// means DefaultOutboundMarker.
func NewOutboundNormalizer(mapper *mapping.Table, marker string) *OutboundNormalizer {
	if marker == "" {
		marker = DefaultOutboundMarker
	}
	return &OutboundNormalizer{mapper: mapper, marker: marker}
}

func (n *OutboundNormalizer) Domain() domain.Domain { return domain.DomainOutbound }

func (n *OutboundNormalizer) Encodings() []grid.Encoding {
	return []grid.Encoding{grid.UTF8, grid.CP949}
}

func (n *OutboundNormalizer) Accept(string) bool { return true }

// Normalize extracts one report. Rows sharing a month collapse to the last.
func (n *OutboundNormalizer) Normalize(name string, g grid.Grid) (*frame.Table, error) {
	metricRow := g.FindRowContaining(n.marker)
	if metricRow < 0 {
		return nil, apperrors.NewStructuralMissError(fmt.Sprintf("no row contains %q", n.marker)).
			WithContext("file", name)
	}
	if metricRow == 0 {
		return nil, apperrors.NewStructuralMissError("metric row has no destination row above it").
			WithContext("file", name)
	}
	labelRow := metricRow - 1

	type column struct {
		name string
		col  int
	}
	var cols []column
	pos := make(map[string]int)
	for c, cell := range g.Row(metricRow) {
		if !strings.Contains(cell, n.marker) {
			continue
		}
		key := mapping.Clean(g.Cell(labelRow, c))
		if mapping.IsNullLike(key) {
			continue
		}
		canonical := n.mapper.Lookup(key)
		if i, dup := pos[canonical]; dup {
			cols[i].col = c
			continue
		}
		pos[canonical] = len(cols)
		cols = append(cols, column{name: canonical, col: c})
	}
	if len(cols) == 0 {
		return nil, apperrors.NewEmptyResultError("no labelled head-count columns").
			WithContext("file", name)
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	t := frame.New(name, names...)

	var year string
	for r := metricRow + 1; r < g.Rows(); r++ {
		if y := digitsOnly(g.Cell(r, 0)); y != "" {
			year = y
		}
		date, ok := outboundDate(year, digitsOnly(g.Cell(r, 1)))
		if !ok {
			continue
		}
		values := make([]float64, len(cols))
		for i, c := range cols {
			values[i] = CoerceCount(g.Cell(r, c.col))
		}
		t.AppendRow(date, values...)
	}
	if t.Empty() {
		return nil, apperrors.NewEmptyResultError("no rows with a valid year and month").
			WithContext("file", name)
	}
	t.KeepLastByDate()
	return t, nil
}

// outboundDate validates a forward-filled year and a zero-padded month.
func outboundDate(year, month string) (time.Time, bool) {
	month = zeroPad2(month)
	if len(year) != 4 || len(month) != 2 {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, false
	}
	y, _ := strconv.Atoi(year)
	return frame.MonthStart(y, time.Month(m)), true
}

// Merge joins the per-file tables column-wise. A month whose Total Outbound
// is exactly zero is treated as not yet published and blanked, and months
// with no values left are dropped.
func (n *OutboundNormalizer) Merge(parts []*frame.Table) (*frame.Table, MergeStats) {
	stats := MergeStats{Parts: len(parts)}
	out := frame.JoinColumns(string(domain.DomainOutbound), parts...)
	stats.DroppedColumns = purgeSourceScript(out)
	stats.MaskedRows = ApplyZeroTotalSentinel(out)
	stats.DroppedRows = out.DropEmptyRows()
	out.SortByDate()
	return out, stats
}

// ApplyZeroTotalSentinel blanks every row whose Total Outbound is zero and
// returns how many rows it blanked.
func ApplyZeroTotalSentinel(t *frame.Table) int {
	return t.MaskRowsWhere(mapping.TotalOutbound, func(v float64) bool { return v == 0 })
}

func (n *OutboundNormalizer) Unmapped(t *frame.Table) []string {
	return unmappedColumns(n.mapper, t)
}
