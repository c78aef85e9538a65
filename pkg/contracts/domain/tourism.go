package domain

import (
	"fmt"
	"strings"
	"time"
)

// Domain identifies one of the three canonical datasets.
type Domain string

const (
	DomainInbound  Domain = "inbound"
	DomainOutbound Domain = "outbound"
	DomainExchange Domain = "exchange"
)

// Domains lists every dataset in pipeline order.
var Domains = []Domain{DomainInbound, DomainOutbound, DomainExchange}

// DateLayout is the on-disk and on-the-wire date format of canonical tables.
const DateLayout = "2006-01-02"

// DateColumn is the header of the index column in canonical CSV files.
const DateColumn = "Date"

// ParseDomain validates a user supplied domain name.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DomainInbound, DomainOutbound, DomainExchange:
		return d, nil
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// String implements fmt.Stringer
func (d Domain) String() string { return string(d) }

// CanonicalName returns the base name (without extension) of the domain's
// cleaned output files.
func (d Domain) CanonicalName() string {
	switch d {
	case DomainInbound:
		return "cleaned_inbound_tourism"
	case DomainOutbound:
		return "cleaned_outbound_tourism"
	case DomainExchange:
		return "cleaned_exchange_rates"
	}
	return "cleaned_" + string(d)
}

// CSVFile is the canonical CSV file name.
func (d Domain) CSVFile() string { return d.CanonicalName() + ".csv" }

// ParquetFile is the columnar mirror file name.
func (d Domain) ParquetFile() string { return d.CanonicalName() + ".parquet" }

// TotalColumn is the grand-total column of the domain, if it has one.
func (d Domain) TotalColumn() string {
	switch d {
	case DomainInbound:
		return "Total"
	case DomainOutbound:
		return "Total Outbound"
	}
	return ""
}

// TablePoint is one dated row of a table in API responses. Missing values
// are encoded as null.
type TablePoint struct {
	Date   string              `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// TableResponse is a date-range slice of one canonical table.
type TableResponse struct {
	Domain    Domain       `json:"domain"`
	Available bool         `json:"available"`
	Columns   []string     `json:"columns"`
	Start     string       `json:"start,omitempty"`
	End       string       `json:"end,omitempty"`
	Rows      []TablePoint `json:"rows"`
	Warnings  []string     `json:"warnings,omitempty"`
}

// TableOverview summarizes one canonical table.
type TableOverview struct {
	Domain      Domain   `json:"domain"`
	Available   bool     `json:"available"`
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
	FirstDate   string   `json:"first_date,omitempty"`
	LastDate    string   `json:"last_date,omitempty"`
	Columns     []string `json:"columns"`

	// LatestTotal is the last non-missing grand total and LatestChange its
	// difference from the previous non-missing one.
	LatestTotal  *float64 `json:"latest_total,omitempty"`
	LatestChange *float64 `json:"latest_change,omitempty"`
}

// Overview summarizes all canonical tables.
type Overview struct {
	Tables   []TableOverview `json:"tables"`
	LoadedAt time.Time       `json:"loaded_at"`
	Warnings []string        `json:"warnings,omitempty"`
}

// CorrelationResult is the outcome of correlating a currency with the
// inbound and outbound counts of one country.
type CorrelationResult struct {
	Country         string   `json:"country"`
	Currency        string   `json:"currency"`
	Samples         int      `json:"samples"`
	Inbound         *float64 `json:"inbound"`
	Outbound        *float64 `json:"outbound"`
	InboundReading  string   `json:"inbound_reading"`
	OutboundReading string   `json:"outbound_reading"`
}

// CorrelationMatrix holds pairwise coefficients between the grand totals and
// every currency over the months where all of them are present.
type CorrelationMatrix struct {
	Labels  []string     `json:"labels"`
	Samples int          `json:"samples"`
	Values  [][]*float64 `json:"values"`
}
