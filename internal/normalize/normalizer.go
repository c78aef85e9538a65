package normalize

import (
	"fmt"
	"strings"

	"tourismfx/internal/frame"
	"tourismfx/internal/grid"
	"tourismfx/internal/mapping"
	"tourismfx/pkg/contracts/domain"
)

// Normalizer converts the raw files of one domain into its canonical table.
type Normalizer interface {
	Domain() domain.Domain
	// Encodings lists the CSV encodings to try, in order.
	Encodings() []grid.Encoding
	// Accept reports whether a file name belongs to this normalizer.
	Accept(fileName string) bool
	// Normalize converts one file. name identifies the file in errors.
	Normalize(name string, g grid.Grid) (*frame.Table, error)
	// Merge combines per-file tables into the finished domain table.
	Merge(parts []*frame.Table) (*frame.Table, MergeStats)
	// Unmapped lists the columns of a finished table that did not come from
	// the category mapping.
	Unmapped(t *frame.Table) []string
}

// MergeStats describes what finalization removed from a merged table.
type MergeStats struct {
	Parts          int
	DroppedColumns []string
	MaskedRows     int
	DroppedRows    int
}

// Options configures the landmark tokens and known currencies.
type Options struct {
	InboundMarker  string
	OutboundMarker string
	Currencies     []string
}

const (
	DefaultInboundMarker  = "국적"
	DefaultOutboundMarker = "명수"
)

// DefaultCurrencies are the currency codes recognized in exchange-rate file
// names, in matching order.
var DefaultCurrencies = []string{"USD", "JPY", "EUR", "CNH", "GBP"}

// DefaultOptions returns the stock markers and currency list.
func DefaultOptions() Options {
	return Options{
		InboundMarker:  DefaultInboundMarker,
		OutboundMarker: DefaultOutboundMarker,
		Currencies:     append([]string(nil), DefaultCurrencies...),
	}
}

// ForDomain builds the normalizer for d.
func ForDomain(d domain.Domain, mapper *mapping.Table, opts Options) (Normalizer, error) {
	switch d {
	case domain.DomainInbound:
		return NewInboundNormalizer(mapper, opts.InboundMarker), nil
	case domain.DomainOutbound:
		return NewOutboundNormalizer(mapper, opts.OutboundMarker), nil
	case domain.DomainExchange:
		return NewExchangeNormalizer(opts.Currencies), nil
	}
	return nil, fmt.Errorf("no normalizer for domain %q", d)
}

// purgeSourceScript drops columns whose label still carries Hangul or is a
// textual null.
func purgeSourceScript(t *frame.Table) []string {
	return t.DropColumnsFunc(func(name string) bool {
		return mapping.ContainsHangul(name) || mapping.IsNullLike(name)
	})
}

func unmappedColumns(m *mapping.Table, t *frame.Table) []string {
	if t == nil {
		return nil
	}
	return m.Unmapped(t.Columns, nil)
}

func upperBase(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToUpper(name)
}
