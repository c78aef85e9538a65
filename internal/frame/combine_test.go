package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatRowsUnionsColumns(t *testing.T) {
	a := New("a", "Japan", "China")
	a.AppendRow(month(2020, 1), 1, 2)
	b := New("b", "China", "USA")
	b.AppendRow(month(2020, 2), 3, 4)

	out := ConcatRows("inbound", a, nil, b)

	assert.Equal(t, []string{"Japan", "China", "USA"}, out.Columns)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, 1.0, out.Rows[0].Values[0])
	assert.True(t, IsMissing(out.Rows[0].Values[2]))
	assert.True(t, IsMissing(out.Rows[1].Values[0]))
	assert.Equal(t, 3.0, out.Rows[1].Values[1])
	assert.Equal(t, 4.0, out.Rows[1].Values[2])
}

func TestJoinColumnsOuterJoin(t *testing.T) {
	usd := New("usd", "USD")
	usd.AppendRow(month(2020, 2), 1200)
	usd.AppendRow(month(2020, 3), 1210)
	jpy := New("jpy", "JPY")
	jpy.AppendRow(month(2020, 1), 1100)
	jpy.AppendRow(month(2020, 2), 1105)

	out := JoinColumns("exchange", usd, jpy)

	assert.Equal(t, []string{"USD", "JPY"}, out.Columns)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, []time.Time{month(2020, 1), month(2020, 2), month(2020, 3)}, out.Dates())
	assert.True(t, IsMissing(out.Rows[0].Values[0]))
	assert.Equal(t, 1105.0, out.Rows[1].Values[1])
	assert.True(t, IsMissing(out.Rows[2].Values[1]))
}

func TestJoinColumnsDuplicateColumnFirstWins(t *testing.T) {
	first := New("asia", "Japan", "Total Outbound")
	first.AppendRow(month(2020, 1), 10, 100)
	second := New("europe", "France", "Total Outbound")
	second.AppendRow(month(2020, 1), 5, 999)
	second.AppendRow(month(2020, 2), 6, 200)

	out := JoinColumns("outbound", first, second)

	assert.Equal(t, []string{"Japan", "Total Outbound", "France"}, out.Columns)
	v, _ := out.Value(0, "Total Outbound")
	assert.Equal(t, 100.0, v, "earlier file keeps its value")
	v, _ = out.Value(1, "Total Outbound")
	assert.Equal(t, 200.0, v, "later file fills gaps")
}

func TestMonthlyMean(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	dates := []time.Time{day(2020, 1, 2), day(2020, 1, 20), day(2020, 3, 5), day(2020, 3, 6)}
	values := []float64{10, 20, Missing, 30}

	months, means := MonthlyMean(dates, values)

	require.Equal(t, []time.Time{month(2020, 1), month(2020, 2), month(2020, 3)}, months)
	assert.Equal(t, 15.0, means[0])
	assert.True(t, IsMissing(means[1]))
	assert.Equal(t, 30.0, means[2])

	m, v := MonthlyMean(nil, nil)
	assert.Nil(t, m)
	assert.Nil(t, v)
}
