package analysis

import (
	"fmt"
	"math"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/internal/mapping"
	"tourismfx/pkg/contracts/domain"
)

// Pair is a country and the currency its travel is priced in.
type Pair struct {
	Country  string
	Currency string
}

// KeyPairs are the pairs summarized by default.
var KeyPairs = []Pair{
	{Country: "United States", Currency: "USD"},
	{Country: "Japan", Currency: "JPY"},
	{Country: "China", Currency: "CNH"},
}

// Correlate correlates a currency with the inbound and outbound counts of a
// country over the months where all three values are present. The
// coefficients are nil when they cannot be computed.
func Correlate(in, out, fx *frame.Table, country, currency string) (domain.CorrelationResult, error) {
	res := domain.CorrelationResult{Country: country, Currency: currency}
	for _, c := range []struct {
		t    *frame.Table
		col  string
		what string
	}{
		{in, country, "inbound country"},
		{out, country, "outbound country"},
		{fx, currency, "currency"},
	} {
		if c.t == nil || !c.t.HasColumn(c.col) {
			return res, apperrors.NewNotFoundError(fmt.Sprintf("%s %q", c.what, c.col))
		}
	}

	dates, values := Align(
		Series{Table: fx, Column: currency},
		Series{Table: in, Column: country},
		Series{Table: out, Column: country},
	)
	res.Samples = len(dates)

	rIn, rOut := math.NaN(), math.NaN()
	if res.Samples > 0 {
		rIn = Pearson(values[0], values[1])
		rOut = Pearson(values[0], values[2])
	}
	res.Inbound = optional(rIn)
	res.Outbound = optional(rOut)
	res.InboundReading = string(InboundReading(rIn))
	res.OutboundReading = string(OutboundReading(rOut))
	return res, nil
}

// Summary correlates every pair whose columns exist in all three tables.
func Summary(in, out, fx *frame.Table, pairs []Pair) []domain.CorrelationResult {
	results := make([]domain.CorrelationResult, 0, len(pairs))
	for _, p := range pairs {
		res, err := Correlate(in, out, fx, p.Country, p.Currency)
		if err != nil {
			continue
		}
		results = append(results, res)
	}
	return results
}

// Matrix correlates the inbound and outbound grand totals and every currency
// with each other over the months where all of them are present.
func Matrix(in, out, fx *frame.Table) domain.CorrelationMatrix {
	var series []Series
	var labels []string
	if in != nil && in.HasColumn(mapping.TotalInbound) {
		series = append(series, Series{Table: in, Column: mapping.TotalInbound})
		labels = append(labels, "Total Inbound")
	}
	if out != nil && out.HasColumn(mapping.TotalOutbound) {
		series = append(series, Series{Table: out, Column: mapping.TotalOutbound})
		labels = append(labels, mapping.TotalOutbound)
	}
	if fx != nil {
		for _, c := range fx.Columns {
			series = append(series, Series{Table: fx, Column: c})
			labels = append(labels, c)
		}
	}

	m := domain.CorrelationMatrix{Labels: labels, Values: make([][]*float64, len(series))}
	dates, values := Align(series...)
	m.Samples = len(dates)
	for i := range series {
		m.Values[i] = make([]*float64, len(series))
		for j := range series {
			r := math.NaN()
			if m.Samples > 0 {
				r = Pearson(values[i], values[j])
			}
			m.Values[i][j] = optional(r)
		}
	}
	return m
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
