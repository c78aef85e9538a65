package normalize

import (
	"fmt"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/internal/grid"
	"tourismfx/internal/mapping"
	"tourismfx/pkg/contracts/domain"
)

// inboundStoplist holds the labels of breakdown and ratio rows that sit
// between the country rows of arrival reports. Compared after whitespace
// removal.
var inboundStoplist = map[string]struct{}{
	"nan":   {},
	"0.0":   {},
	"성별":    {},
	"전년동기":  {},
	"성장률":   {},
	"구성비":   {},
	"인원(명)": {},
}

// InboundNormalizer reads arrivals-by-nationality reports. Categories run
// down the rows under a header row holding the marker; months run across
// the header.
type InboundNormalizer struct {
	mapper *mapping.Table
	marker string
}

// NewInboundNormalizer creates an inbound normalizer. An empty marker means
// DefaultInboundMarker.
func NewInboundNormalizer(mapper *mapping.Table, marker string) *InboundNormalizer {
	if marker == "" {
		marker = DefaultInboundMarker
	}
	return &InboundNormalizer{mapper: mapper, marker: marker}
}

func (n *InboundNormalizer) Domain() domain.Domain { return domain.DomainInbound }

func (n *InboundNormalizer) Encodings() []grid.Encoding {
	return []grid.Encoding{grid.CP949, grid.UTF8}
}

func (n *InboundNormalizer) Accept(string) bool { return true }

// Normalize transposes one report into a table with one row per month and
// one column per category.
func (n *InboundNormalizer) Normalize(name string, g grid.Grid) (*frame.Table, error) {
	hdr := g.FindRowContaining(n.marker)
	if hdr < 0 {
		return nil, apperrors.NewStructuralMissError(fmt.Sprintf("no row contains %q", n.marker)).
			WithContext("file", name)
	}
	labelCol := g.FindCellContaining(hdr, n.marker)
	if labelCol < 0 {
		labelCol = 0
	}

	type category struct {
		name string
		row  int
	}
	var cats []category
	seen := make(map[string]struct{})
	for r := hdr + 1; r < g.Rows(); r++ {
		key := mapping.Clean(g.Cell(r, labelCol))
		if n.skipLabel(key) {
			continue
		}
		canonical := n.mapper.Lookup(key)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		cats = append(cats, category{name: canonical, row: r})
	}
	if len(cats) == 0 {
		return nil, apperrors.NewEmptyResultError("no category rows below the header").
			WithContext("file", name)
	}

	columns := make([]string, len(cats))
	for i, c := range cats {
		columns[i] = c.name
	}
	t := frame.New(name, columns...)

	for c, label := range g.Row(hdr) {
		if c == labelCol {
			continue
		}
		date, ok := ParseYearMonth(label)
		if !ok {
			continue
		}
		values := make([]float64, len(cats))
		for i, cat := range cats {
			values[i] = CoerceCount(g.Cell(cat.row, c))
		}
		t.AppendRow(date, values...)
	}
	if t.Empty() {
		return nil, apperrors.NewEmptyResultError("header has no year-month labels").
			WithContext("file", name)
	}
	return t, nil
}

func (n *InboundNormalizer) skipLabel(key string) bool {
	if mapping.IsNullLike(key) {
		return true
	}
	_, stop := inboundStoplist[key]
	return stop
}

// Merge stacks the per-file tables; for a month present in several files
// the later file wins.
func (n *InboundNormalizer) Merge(parts []*frame.Table) (*frame.Table, MergeStats) {
	stats := MergeStats{Parts: len(parts)}
	out := frame.ConcatRows(string(domain.DomainInbound), parts...)
	before := out.Len()
	out.KeepLastByDate()
	stats.DroppedRows = before - out.Len()
	stats.DroppedColumns = purgeSourceScript(out)
	return out, stats
}

func (n *InboundNormalizer) Unmapped(t *frame.Table) []string {
	return unmappedColumns(n.mapper, t)
}
