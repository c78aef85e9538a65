package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source describes where a grid came from.
type Source struct {
	Path     string
	Format   string
	Encoding Encoding
	Sheet    string
}

// Supported reports whether Load can read the file based on its extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Load reads a CSV file (decoded with the first working encoding of order)
// or an Excel workbook (the sheet with the most rows).
func Load(path string, order ...Encoding) (Grid, Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path, order)
	case ".xlsx", ".xlsm":
		return loadWorkbook(path)
	}
	return nil, Source{Path: path}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
}

func loadCSV(path string, order []Encoding) (Grid, Source, error) {
	src := Source{Path: path, Format: "csv"}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, src, fmt.Errorf("failed to read file: %w", err)
	}
	if len(order) == 0 {
		order = []Encoding{UTF8, CP949}
	}
	text, enc, err := DecodeFallback(data, order...)
	if err != nil {
		return nil, src, err
	}
	src.Encoding = enc
	g, err := ParseCSV(strings.NewReader(text))
	if err != nil {
		return nil, src, err
	}
	return g, src, nil
}

// ParseCSV reads comma separated records. Records may have any number of
// fields and stray quotes are tolerated.
func ParseCSV(r io.Reader) (Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var g Grid
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		g = append(g, record)
	}
	return g, nil
}

func loadWorkbook(path string) (Grid, Source, error) {
	src := Source{Path: path, Format: "xlsx", Encoding: UTF8}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, src, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var best Grid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if best == nil || len(rows) > len(best) {
			best = rows
			src.Sheet = name
		}
	}
	if best == nil {
		return nil, src, fmt.Errorf("workbook has no readable sheets")
	}
	return best, src, nil
}
