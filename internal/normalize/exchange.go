package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/internal/grid"
	"tourismfx/pkg/contracts/domain"
)

var rateDatePrefix = regexp.MustCompile(`^20\d{2}[./-]\d{1,2}`)

// ExchangeNormalizer reads one-currency rate files whose first column holds
// dates and whose last data column holds the rate.
type ExchangeNormalizer struct {
	currencies []string
}

// NewExchangeNormalizer creates an exchange normalizer recognizing the given
// currency codes. An empty list means DefaultCurrencies.
func NewExchangeNormalizer(currencies []string) *ExchangeNormalizer {
	if len(currencies) == 0 {
		currencies = DefaultCurrencies
	}
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			codes = append(codes, c)
		}
	}
	return &ExchangeNormalizer{currencies: codes}
}

func (n *ExchangeNormalizer) Domain() domain.Domain { return domain.DomainExchange }

func (n *ExchangeNormalizer) Encodings() []grid.Encoding {
	return []grid.Encoding{grid.UTF8, grid.CP949}
}

// Currency returns the first known code contained in the file name.
func (n *ExchangeNormalizer) Currency(fileName string) (string, bool) {
	base := upperBase(fileName)
	for _, code := range n.currencies {
		if strings.Contains(base, code) {
			return code, true
		}
	}
	return "", false
}

func (n *ExchangeNormalizer) Accept(fileName string) bool {
	_, ok := n.Currency(fileName)
	return ok
}

// Normalize reads one currency series and averages it per month.
func (n *ExchangeNormalizer) Normalize(name string, g grid.Grid) (*frame.Table, error) {
	code, ok := n.Currency(name)
	if !ok {
		return nil, apperrors.NewStructuralMissError("file name carries no known currency code").
			WithContext("file", name)
	}
	start := g.FindRow(func(row []string) bool {
		return len(row) > 0 && rateDatePrefix.MatchString(strings.TrimSpace(row[0]))
	})
	if start < 0 {
		return nil, apperrors.NewStructuralMissError("no row starts with a date").
			WithContext("file", name)
	}

	// Leading metadata rows may be wider than the data, so the rate column
	// is the last column of the data region only.
	valueCol := g[start:].Width() - 1
	var dates []time.Time
	var values []float64
	for r := start; r < g.Rows(); r++ {
		d, ok := ParseRateDate(g.Cell(r, 0))
		if !ok {
			continue
		}
		dates = append(dates, d)
		values = append(values, CoerceRate(g.Cell(r, valueCol)))
	}
	months, means := frame.MonthlyMean(dates, values)
	if len(months) == 0 {
		return nil, apperrors.NewEmptyResultError(fmt.Sprintf("no dated %s observations", code)).
			WithContext("file", name)
	}

	t := frame.New(name, code)
	for i, m := range months {
		t.AppendRow(m, means[i])
	}
	return t, nil
}

// Merge outer-joins the currency series on month.
func (n *ExchangeNormalizer) Merge(parts []*frame.Table) (*frame.Table, MergeStats) {
	out := frame.JoinColumns(string(domain.DomainExchange), parts...)
	return out, MergeStats{Parts: len(parts)}
}

// Unmapped is always empty: currency codes do not go through the mapping.
func (n *ExchangeNormalizer) Unmapped(*frame.Table) []string { return nil }
