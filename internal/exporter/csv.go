package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes canonical CSV files into one directory
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Path returns the canonical CSV path of a domain.
func (w *CSVWriter) Path(d domain.Domain) string {
	return filepath.Join(w.dir, d.CSVFile())
}

// WriteTable writes t as the canonical CSV of d and returns the path.
func (w *CSVWriter) WriteTable(d domain.Domain, t *frame.Table) (string, error) {
	headers, records := EncodeTable(t)
	path := w.Path(d)
	if err := w.WriteCSV(path, WriteOptions{Headers: headers, Records: records, BOMPrefix: true}); err != nil {
		return "", apperrors.NewStorageError("failed to write canonical CSV", err).
			WithContext("domain", d.String())
	}
	return path, nil
}

// WriteCSV writes data to a CSV file. The file is written next to its
// destination and renamed into place, so readers never see a partial file.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var buf bytes.Buffer
	if options.BOMPrefix {
		buf.Write(bom)
	}
	writer := csv.NewWriter(&buf)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// ReadTableCSV loads a canonical CSV file.
func ReadTableCSV(path, name string) (*frame.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeTableCSV(bytes.NewReader(bytes.TrimPrefix(data, bom)), name)
}

// DecodeTableCSV parses canonical CSV content: a Date column followed by
// numeric columns, empty cells meaning missing.
func DecodeTableCSV(r io.Reader, name string) (*frame.Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewParsingError("canonical CSV has no header", nil)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read header", err)
	}
	if len(header) == 0 || header[0] != domain.DateColumn {
		return nil, apperrors.NewParsingError(fmt.Sprintf("first column must be %q", domain.DateColumn), nil)
	}

	t := frame.New(name, header[1:]...)
	if len(t.Columns) != len(header)-1 {
		return nil, apperrors.NewParsingError("duplicate column names in header", nil)
	}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("line %d", line), err)
		}
		date, err := parseDate(record[0])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("line %d", line), err)
		}
		values := make([]float64, len(t.Columns))
		for i := range values {
			v, err := parseValue(record[i+1])
			if err != nil {
				return nil, apperrors.NewParsingError(fmt.Sprintf("line %d column %q", line, t.Columns[i]), err)
			}
			values[i] = v
		}
		t.AppendRow(date, values...)
	}
	return t, nil
}
