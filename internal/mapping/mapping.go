// Package mapping translates Korean source labels into canonical English
// category identifiers.
package mapping

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// TotalInbound is the canonical grand-total column of the inbound table.
	TotalInbound = "Total"
	// TotalOutbound is the canonical grand-total column of the outbound table.
	TotalOutbound = "Total Outbound"
)

// Table is an immutable label-to-identifier map. Keys are stored with all
// whitespace removed.
type Table struct {
	entries   map[string]string
	canonical map[string]struct{}
}

// New builds a Table from entries. Keys are cleaned with Clean.
func New(entries map[string]string) *Table {
	t := &Table{
		entries:   make(map[string]string, len(entries)),
		canonical: make(map[string]struct{}, len(entries)),
	}
	for k, v := range entries {
		t.entries[Clean(k)] = v
		t.canonical[v] = struct{}{}
	}
	return t
}

// Default returns the built-in Korean country and region table.
func Default() *Table { return New(defaultEntries) }

// Clean trims a label and removes every whitespace rune inside it.
func Clean(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, label)
}

// Resolve returns the canonical identifier for label and whether the label
// was known. Unknown labels are returned cleaned.
func (t *Table) Resolve(label string) (string, bool) {
	key := Clean(label)
	if v, ok := t.entries[key]; ok {
		return v, true
	}
	return key, false
}

// Lookup returns the canonical identifier or the cleaned label unchanged.
func (t *Table) Lookup(label string) string {
	v, _ := t.Resolve(label)
	return v
}

// IsCanonical reports whether name is one of the table's identifiers.
func (t *Table) IsCanonical(name string) bool {
	_, ok := t.canonical[name]
	return ok
}

// Len returns the number of source labels.
func (t *Table) Len() int { return len(t.entries) }

// Unmapped returns, sorted, the columns that are neither canonical
// identifiers nor exempted by keep.
func (t *Table) Unmapped(columns []string, keep func(string) bool) []string {
	var out []string
	for _, c := range columns {
		if t.IsCanonical(c) || (keep != nil && keep(c)) {
			continue
		}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ContainsHangul reports whether s contains Hangul syllables or Jamo.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// IsNullLike reports whether a label is empty or a textual null marker.
func IsNullLike(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}
