package dataset

import (
	"time"

	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

// Source identifies which file a table was read from.
type Source string

const (
	SourceParquet Source = "parquet"
	SourceCSV     Source = "csv"
	SourceNone    Source = "none"
)

// Dataset holds the three canonical tables. A table whose file is absent is
// empty, never nil, and its domain is listed in Warnings.
type Dataset struct {
	Inbound  *frame.Table
	Outbound *frame.Table
	Exchange *frame.Table

	Sources  map[domain.Domain]Source
	Warnings []string
	LoadedAt time.Time
}

// Table returns the table of d, or nil for an unknown domain.
func (ds *Dataset) Table(d domain.Domain) *frame.Table {
	switch d {
	case domain.DomainInbound:
		return ds.Inbound
	case domain.DomainOutbound:
		return ds.Outbound
	case domain.DomainExchange:
		return ds.Exchange
	}
	return nil
}

// Available reports whether the table of d was read from a file.
func (ds *Dataset) Available(d domain.Domain) bool {
	s, ok := ds.Sources[d]
	return ok && s != SourceNone
}

func (ds *Dataset) set(d domain.Domain, t *frame.Table, src Source) {
	switch d {
	case domain.DomainInbound:
		ds.Inbound = t
	case domain.DomainOutbound:
		ds.Outbound = t
	case domain.DomainExchange:
		ds.Exchange = t
	}
	ds.Sources[d] = src
}
