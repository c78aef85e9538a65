package analysis

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"tourismfx/internal/frame"
)

// Pearson returns the correlation coefficient of x and y, or NaN when it is
// undefined: fewer than two pairs, mismatched lengths or a constant series.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(x, y, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

// Series names one column of a table.
type Series struct {
	Table  *frame.Table
	Column string
}

// Align returns the dates on which every series has a value, in ascending
// order, and the values of each series on those dates. A series whose
// column does not exist has no values, so nothing aligns.
func Align(series ...Series) ([]time.Time, [][]float64) {
	if len(series) == 0 {
		return nil, nil
	}
	lookups := make([]map[time.Time]float64, len(series))
	for i, s := range series {
		lookups[i] = valuesByDate(s)
	}

	var dates []time.Time
	values := make([][]float64, len(series))
	for _, d := range datesOf(series[0]) {
		complete := true
		for _, m := range lookups {
			if _, ok := m[d]; !ok {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		dates = append(dates, d)
		for i, m := range lookups {
			values[i] = append(values[i], m[d])
		}
	}
	return dates, values
}

func valuesByDate(s Series) map[time.Time]float64 {
	out := make(map[time.Time]float64)
	if s.Table == nil {
		return out
	}
	c := s.Table.ColumnIndex(s.Column)
	if c < 0 {
		return out
	}
	for _, r := range s.Table.Rows {
		if v := r.Values[c]; !frame.IsMissing(v) {
			out[r.Date] = v
		}
	}
	return out
}

// datesOf returns the sorted dates of the series' table.
func datesOf(s Series) []time.Time {
	if s.Table == nil {
		return nil
	}
	t := s.Table
	if !sortedByDate(t) {
		t = t.Clone()
		t.SortByDate()
	}
	return t.Dates()
}

func sortedByDate(t *frame.Table) bool {
	for i := 1; i < len(t.Rows); i++ {
		if !t.Rows[i-1].Date.Before(t.Rows[i].Date) {
			return false
		}
	}
	return true
}
