package frame

import (
	"math"
	"sort"
	"time"
)

// Missing is the value stored for an absent cell.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// MonthStart returns the first day of the given month at midnight UTC.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// TruncateMonth maps t to the first day of its month in UTC.
func TruncateMonth(t time.Time) time.Time {
	t = t.UTC()
	return MonthStart(t.Year(), t.Month())
}

// Row is one dated observation across all columns of a table.
type Row struct {
	Date   time.Time
	Values []float64
}

// Table is a date-indexed set of numeric columns.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given columns. Duplicate names are
// collapsed to their first occurrence.
func New(name string, columns ...string) *Table {
	t := &Table{Name: name}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Empty reports whether the table holds no rows.
func (t *Table) Empty() bool { return t == nil || len(t.Rows) == 0 }

// ColumnIndex returns the position of a column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// AddColumn appends a column filled with Missing and returns its position.
// An existing column is left untouched.
func (t *Table) AddColumn(name string) int {
	if i := t.ColumnIndex(name); i >= 0 {
		return i
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i].Values = append(t.Rows[i].Values, Missing)
	}
	return len(t.Columns) - 1
}

// AppendRow adds a row. values are matched to columns by position; short
// slices are padded with Missing.
func (t *Table) AppendRow(date time.Time, values ...float64) {
	row := Row{Date: date, Values: make([]float64, len(t.Columns))}
	for i := range row.Values {
		if i < len(values) {
			row.Values[i] = values[i]
		} else {
			row.Values[i] = Missing
		}
	}
	t.Rows = append(t.Rows, row)
}

// Value returns the value of a column in row i.
func (t *Table) Value(i int, column string) (float64, bool) {
	c := t.ColumnIndex(column)
	if c < 0 || i < 0 || i >= len(t.Rows) {
		return Missing, false
	}
	return t.Rows[i].Values[c], true
}

// Column returns a copy of a column's values in row order.
func (t *Table) Column(name string) ([]float64, bool) {
	c := t.ColumnIndex(name)
	if c < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Values[c]
	}
	return out, true
}

// Dates returns the row dates in order.
func (t *Table) Dates() []time.Time {
	out := make([]time.Time, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Date
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{Name: t.Name, Columns: append([]string(nil), t.Columns...)}
	c.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = Row{Date: r.Date, Values: append([]float64(nil), r.Values...)}
	}
	return c
}

// SortByDate orders rows by ascending date. Rows with equal dates keep
// their relative order.
func (t *Table) SortByDate() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Date.Before(t.Rows[j].Date)
	})
}

// KeepLastByDate sorts the table and keeps, for each date, the row that
// appeared last before sorting.
func (t *Table) KeepLastByDate() {
	t.SortByDate()
	out := t.Rows[:0]
	for i, r := range t.Rows {
		if i+1 < len(t.Rows) && t.Rows[i+1].Date.Equal(r.Date) {
			continue
		}
		out = append(out, r)
	}
	t.Rows = out
}

// DropColumnsFunc removes every column for which drop returns true and
// returns the removed names.
func (t *Table) DropColumnsFunc(drop func(name string) bool) []string {
	var removed []string
	keep := make([]int, 0, len(t.Columns))
	for i, c := range t.Columns {
		if drop(c) {
			removed = append(removed, c)
			continue
		}
		keep = append(keep, i)
	}
	if len(removed) == 0 {
		return nil
	}
	cols := make([]string, len(keep))
	for j, i := range keep {
		cols[j] = t.Columns[i]
	}
	for r := range t.Rows {
		vals := make([]float64, len(keep))
		for j, i := range keep {
			vals[j] = t.Rows[r].Values[i]
		}
		t.Rows[r].Values = vals
	}
	t.Columns = cols
	return removed
}

// MaskRowsWhere replaces every value of a row with Missing when match
// returns true for the row's value in column. It returns the number of rows
// masked. Missing values never match.
func (t *Table) MaskRowsWhere(column string, match func(v float64) bool) int {
	c := t.ColumnIndex(column)
	if c < 0 {
		return 0
	}
	n := 0
	for i := range t.Rows {
		v := t.Rows[i].Values[c]
		if IsMissing(v) || !match(v) {
			continue
		}
		for j := range t.Rows[i].Values {
			t.Rows[i].Values[j] = Missing
		}
		n++
	}
	return n
}

// DropEmptyRows removes rows whose values are all missing and returns the
// number removed.
func (t *Table) DropEmptyRows() int {
	out := t.Rows[:0]
	dropped := 0
	for _, r := range t.Rows {
		if allMissing(r.Values) {
			dropped++
			continue
		}
		out = append(out, r)
	}
	t.Rows = out
	return dropped
}

func allMissing(vals []float64) bool {
	for _, v := range vals {
		if !IsMissing(v) {
			return false
		}
	}
	return true
}

// Between returns the rows whose date lies in [start, end]. A zero start or
// end leaves that side of the range open. The result shares no memory with
// t.
func (t *Table) Between(start, end time.Time) *Table {
	out := &Table{Name: t.Name, Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		if !start.IsZero() && r.Date.Before(start) {
			continue
		}
		if !end.IsZero() && r.Date.After(end) {
			continue
		}
		out.Rows = append(out.Rows, Row{Date: r.Date, Values: append([]float64(nil), r.Values...)})
	}
	return out
}

// FirstDate and LastDate return the date range of a sorted table.
func (t *Table) FirstDate() (time.Time, bool) {
	if t.Empty() {
		return time.Time{}, false
	}
	return t.Rows[0].Date, true
}

func (t *Table) LastDate() (time.Time, bool) {
	if t.Empty() {
		return time.Time{}, false
	}
	return t.Rows[len(t.Rows)-1].Date, true
}
