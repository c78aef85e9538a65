package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/internal/grid"
	"tourismfx/pkg/contracts/domain"
)

func TestExchangeCurrency(t *testing.T) {
	n := NewExchangeNormalizer(nil)

	tests := []struct {
		file string
		want string
		ok   bool
	}{
		{"usd_monthly.csv", "USD", true},
		{"환율_JPY(100)_MonAvg.csv", "JPY", true},
		{"original_data/exchange/ExRate_cnh.xlsx", "CNH", true},
		{"krw.csv", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := n.Currency(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, n.Accept(tt.file))
		})
	}

	custom := NewExchangeNormalizer([]string{" aud ", ""})
	code, ok := custom.Currency("AUD.csv")
	assert.True(t, ok)
	assert.Equal(t, "AUD", code)
}

func TestExchangeNormalizeDailyToMonthly(t *testing.T) {
	g := grid.Grid{
		{"통계표: 원/달러 환율"},
		{"단위: 원", "", ""},
		{"변환", "원자료", "원자료"},
		{"2024/01/02", "x", "1,300.00"},
		{"2024/01/31", "x", "1,310.00"},
		{"2024.03", "x", "1,320"},
		{"합계", "x", "9,999"},
		{"2024.04", "x", "n/a"},
	}

	tbl, err := NewExchangeNormalizer(nil).Normalize("USD.csv", g)
	require.NoError(t, err)

	assert.Equal(t, []string{"USD"}, tbl.Columns)
	assert.Equal(t, []time.Time{month(2024, 1), month(2024, 2), month(2024, 3), month(2024, 4)}, tbl.Dates())
	col, _ := tbl.Column("USD")
	assert.Equal(t, 1305.0, col[0])
	assert.True(t, frame.IsMissing(col[1]), "gap month is present but missing")
	assert.Equal(t, 1320.0, col[2])
	assert.True(t, frame.IsMissing(col[3]))
}

func TestExchangeNormalizeWideMetadata(t *testing.T) {
	g := grid.Grid{
		{"통계표", "원/달러", "단위: 원", "비고"},
		{"2024/01/02", "1,300"},
		{"2024/01/03", "1,310"},
	}

	tbl, err := NewExchangeNormalizer(nil).Normalize("USD.csv", g)
	require.NoError(t, err)

	col, ok := tbl.Column("USD")
	require.True(t, ok)
	assert.Equal(t, []float64{1305}, col)
}

func TestExchangeNormalizeErrors(t *testing.T) {
	n := NewExchangeNormalizer(nil)

	_, err := n.Normalize("KRW.csv", grid.Grid{{"2024.01", "1"}})
	assert.Equal(t, apperrors.ErrTypeStructuralMiss, apperrors.TypeOf(err))

	_, err = n.Normalize("USD.csv", grid.Grid{{"date", "rate"}, {"Jan 2024", "1"}})
	assert.Equal(t, apperrors.ErrTypeStructuralMiss, apperrors.TypeOf(err))
}

func TestExchangeMergeOuterJoin(t *testing.T) {
	n := NewExchangeNormalizer(nil)
	usd, err := n.Normalize("USD.csv", grid.Grid{{"2024.01", "1,300"}, {"2024.02", "1,310"}})
	require.NoError(t, err)
	jpy, err := n.Normalize("JPY.csv", grid.Grid{{"2024.02", "905"}, {"2024.03", "910"}})
	require.NoError(t, err)

	out, stats := n.Merge([]*frame.Table{usd, jpy})

	assert.Equal(t, 2, stats.Parts)
	assert.Equal(t, string(domain.DomainExchange), out.Name)
	assert.Equal(t, []string{"USD", "JPY"}, out.Columns)
	require.Equal(t, 3, out.Len())
	assert.True(t, frame.IsMissing(out.Rows[0].Values[1]))
	assert.True(t, frame.IsMissing(out.Rows[2].Values[0]))
	assert.Nil(t, n.Unmapped(out))
}

func TestForDomain(t *testing.T) {
	for _, d := range domain.Domains {
		n, err := ForDomain(d, nil, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, d, n.Domain())
	}
	_, err := ForDomain(domain.Domain("weather"), nil, DefaultOptions())
	assert.Error(t, err)
}
