package grid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
)

func cp949(t *testing.T, s string) []byte {
	t.Helper()
	out, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestCellBounds(t *testing.T) {
	g := Grid{{"a", "b"}, {"c"}}

	assert.Equal(t, "b", g.Cell(0, 1))
	assert.Equal(t, "", g.Cell(1, 1))
	assert.Equal(t, "", g.Cell(-1, 0))
	assert.Equal(t, "", g.Cell(5, 0))
	assert.Equal(t, 2, g.Width())
	assert.Nil(t, g.Row(9))
}

func TestFindRowContaining(t *testing.T) {
	g := Grid{
		{"통계표", ""},
		{"", "국적", "2020년 1월"},
		{"일본", "1,000"},
	}

	assert.Equal(t, 1, g.FindRowContaining("국적"))
	assert.Equal(t, -1, g.FindRowContaining("명수"))
	assert.Equal(t, 1, g.FindCellContaining(1, "국적"))
	assert.Equal(t, -1, g.FindCellContaining(0, "국적"))
	assert.Equal(t, " 국적 2020년 1월", g.RowText(1))
}

func TestDecode(t *testing.T) {
	text := "국적,일본"

	tests := []struct {
		name    string
		data    []byte
		enc     Encoding
		want    string
		wantErr bool
	}{
		{"utf-8", []byte(text), UTF8, text, false},
		{"utf-8 with bom", append([]byte{0xEF, 0xBB, 0xBF}, text...), UTF8, text, false},
		{"cp949", cp949(t, text), CP949, text, false},
		{"cp949 bytes as utf-8", cp949(t, text), UTF8, "", true},
		{"unknown encoding", []byte("x"), Encoding("latin-9"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, tt.enc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeFallback(t *testing.T) {
	text := "명수,일본"

	got, enc, err := DecodeFallback(cp949(t, text), UTF8, CP949)
	require.NoError(t, err)
	assert.Equal(t, CP949, enc)
	assert.Equal(t, text, got)

	got, enc, err = DecodeFallback(append([]byte{0xEF, 0xBB, 0xBF}, text...), CP949, UTF8)
	require.NoError(t, err)
	assert.Equal(t, UTF8, enc, "a byte order mark settles the encoding")
	assert.Equal(t, text, got)

	_, _, err = DecodeFallback([]byte{0xff, 0xfe, 0xfd}, UTF8)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestParseCSVRagged(t *testing.T) {
	g, err := ParseCSV(strings.NewReader("a,b,c\n\"1,234\",x\n\nlast\n"))
	require.NoError(t, err)

	require.Equal(t, 3, g.Rows())
	assert.Equal(t, []string{"a", "b", "c"}, g.Row(0))
	assert.Equal(t, "1,234", g.Cell(1, 0))
	assert.Equal(t, []string{"last"}, g.Row(2))
}

func TestLoadCSVWithEncodingOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inbound.csv")
	require.NoError(t, os.WriteFile(path, cp949(t, "국적,2020년 1월\n일본,\"1,000\"\n"), 0644))

	g, src, err := Load(path, CP949, UTF8)
	require.NoError(t, err)
	assert.Equal(t, CP949, src.Encoding)
	assert.Equal(t, "csv", src.Format)
	assert.Equal(t, "일본", g.Cell(1, 0))
	assert.Equal(t, "1,000", g.Cell(1, 1))
}

func TestLoadWorkbookPicksLargestSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outbound.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "notes"))
	_, err := f.NewSheet("data")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"", "", "일본"},
		{"연도", "월", "명수"},
		{"2020", "1", "1,000"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("data", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	g, src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data", src.Sheet)
	assert.Equal(t, "xlsx", src.Format)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, "명수", g.Cell(1, 2))
}

func TestLoadUnsupported(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "report.xls"))
	assert.Error(t, err)
	assert.False(t, Supported("report.xls"))
	assert.True(t, Supported("REPORT.CSV"))
}
