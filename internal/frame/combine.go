package frame

import "time"

// ConcatRows stacks the rows of parts in order. The result's columns are
// the union of all part columns in order of first appearance; cells a part
// does not cover are Missing. Duplicate dates are kept.
func ConcatRows(name string, parts ...*Table) *Table {
	out := New(name)
	for _, p := range parts {
		if p == nil {
			continue
		}
		for _, c := range p.Columns {
			out.AddColumn(c)
		}
	}
	for _, p := range parts {
		if p == nil {
			continue
		}
		pos := make([]int, len(p.Columns))
		for i, c := range p.Columns {
			pos[i] = out.ColumnIndex(c)
		}
		for _, r := range p.Rows {
			vals := make([]float64, len(out.Columns))
			for i := range vals {
				vals[i] = Missing
			}
			for i, v := range r.Values {
				vals[pos[i]] = v
			}
			out.Rows = append(out.Rows, Row{Date: r.Date, Values: vals})
		}
	}
	return out
}

// JoinColumns outer-joins parts on date. Each part must already have unique
// dates. When two parts share a column name the earlier part wins and the
// later part only fills dates the earlier one left Missing. The result is
// sorted by date.
func JoinColumns(name string, parts ...*Table) *Table {
	out := New(name)
	rowOf := make(map[time.Time]int)
	for _, p := range parts {
		if p == nil {
			continue
		}
		for _, c := range p.Columns {
			out.AddColumn(c)
		}
		for _, r := range p.Rows {
			i, ok := rowOf[r.Date]
			if !ok {
				out.AppendRow(r.Date)
				i = len(out.Rows) - 1
				rowOf[r.Date] = i
			}
			for j, v := range r.Values {
				c := out.ColumnIndex(p.Columns[j])
				if IsMissing(out.Rows[i].Values[c]) {
					out.Rows[i].Values[c] = v
				}
			}
		}
	}
	out.SortByDate()
	return out
}

// MonthlyMean averages non-missing observations into month-start buckets.
// Every month between the first and last date is present in the result;
// months without a usable observation hold Missing.
func MonthlyMean(dates []time.Time, values []float64) ([]time.Time, []float64) {
	type acc struct {
		sum float64
		n   int
	}
	buckets := make(map[time.Time]*acc)
	var first, last time.Time
	for i, d := range dates {
		m := TruncateMonth(d)
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || m.After(last) {
			last = m
		}
		if i >= len(values) || IsMissing(values[i]) {
			continue
		}
		b, ok := buckets[m]
		if !ok {
			b = &acc{}
			buckets[m] = b
		}
		b.sum += values[i]
		b.n++
	}
	if first.IsZero() {
		return nil, nil
	}

	var months []time.Time
	var means []float64
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
		if b, ok := buckets[m]; ok {
			means = append(means, b.sum/float64(b.n))
		} else {
			means = append(means, Missing)
		}
	}
	return months, means
}
