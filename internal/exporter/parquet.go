package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

// columnOrderKey holds the JSON encoded column order. Parquet groups sort
// their fields by name, so the order of the canonical CSV is kept here.
const columnOrderKey = "tourismfx.columns"

// ParquetWriter writes Snappy-compressed Parquet mirrors of canonical tables.
type ParquetWriter struct {
	dir    string
	logger *slog.Logger
}

// NewParquetWriter creates a writer targeting dir.
func NewParquetWriter(dir string, logger *slog.Logger) *ParquetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParquetWriter{dir: dir, logger: logger.With(slog.String("component", "parquet_writer"))}
}

// Path returns the Parquet path of a domain.
func (w *ParquetWriter) Path(d domain.Domain) string {
	return filepath.Join(w.dir, d.ParquetFile())
}

// WriteTable writes t as the Parquet mirror of d and returns the path.
func (w *ParquetWriter) WriteTable(d domain.Domain, t *frame.Table) (string, error) {
	path := w.Path(d)
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(w.dir, "."+d.ParquetFile()+".*")
	if err != nil {
		return "", apperrors.NewStorageError("failed to create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeParquet(tmp, t); err != nil {
		tmp.Close()
		return "", apperrors.NewStorageError("failed to encode parquet", err).
			WithContext("domain", d.String())
	}
	if err := tmp.Close(); err != nil {
		return "", apperrors.NewStorageError("failed to close parquet file", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", apperrors.NewStorageError("failed to set permissions", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", apperrors.NewStorageError("failed to move parquet file into place", err)
	}

	w.logger.Info("Parquet file written",
		slog.String("domain", d.String()),
		slog.String("file_path", path),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Columns)))
	return path, nil
}

func tableSchema(t *frame.Table) *parquet.Schema {
	group := parquet.Group{domain.DateColumn: parquet.String()}
	for _, c := range t.Columns {
		group[c] = parquet.Optional(parquet.Leaf(parquet.DoubleType))
	}
	name := t.Name
	if name == "" {
		name = "table"
	}
	return parquet.NewSchema(name, group)
}

// EncodeParquet writes t to out in Parquet format. Missing values are
// stored as nulls.
func EncodeParquet(out io.Writer, t *frame.Table) error {
	if t.HasColumn(domain.DateColumn) {
		return fmt.Errorf("column name %q is reserved", domain.DateColumn)
	}
	schema := tableSchema(t)

	dateLeaf, ok := schema.Lookup(domain.DateColumn)
	if !ok {
		return errors.New("date column missing from schema")
	}
	leaves := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		leaf, ok := schema.Lookup(c)
		if !ok {
			return fmt.Errorf("column %q missing from schema", c)
		}
		leaves[i] = leaf.ColumnIndex
	}

	order, err := json.Marshal(t.Columns)
	if err != nil {
		return err
	}
	writer := parquet.NewWriter(out, schema,
		parquet.Compression(&parquet.Snappy),
		parquet.KeyValueMetadata(columnOrderKey, string(order)),
	)

	width := len(t.Columns) + 1
	rows := make([]parquet.Row, 0, t.Len())
	for _, r := range t.Rows {
		row := make(parquet.Row, width)
		row[dateLeaf.ColumnIndex] = parquet.ByteArrayValue([]byte(formatDate(r.Date))).Level(0, 0, dateLeaf.ColumnIndex)
		for i, v := range r.Values {
			col := leaves[i]
			if frame.IsMissing(v) {
				row[col] = parquet.NullValue().Level(0, 0, col)
			} else {
				row[col] = parquet.DoubleValue(v).Level(0, 1, col)
			}
		}
		rows = append(rows, row)
	}
	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return writer.Close()
}

// ReadParquet loads a Parquet mirror written by ParquetWriter.
func ReadParquet(path, name string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return DecodeParquet(f, info.Size(), name)
}

// DecodeParquet reads a table from Parquet content of the given size.
func DecodeParquet(r io.ReaderAt, size int64, name string) (*frame.Table, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open parquet file", err)
	}

	var columns []string
	if raw, ok := pf.Lookup(columnOrderKey); ok {
		if err := json.Unmarshal([]byte(raw), &columns); err != nil {
			return nil, apperrors.NewParsingError("invalid column order metadata", err)
		}
	}
	schema := pf.Schema()
	if columns == nil {
		for _, path := range schema.Columns() {
			if len(path) == 1 && path[0] != domain.DateColumn {
				columns = append(columns, path[0])
			}
		}
	}

	dateLeaf, ok := schema.Lookup(domain.DateColumn)
	if !ok {
		return nil, apperrors.NewParsingError("parquet file has no Date column", nil)
	}
	position := make(map[int]int, len(columns))
	for i, c := range columns {
		leaf, ok := schema.Lookup(c)
		if !ok {
			return nil, apperrors.NewParsingError(fmt.Sprintf("column %q listed in metadata but absent", c), nil)
		}
		position[leaf.ColumnIndex] = i
	}

	t := frame.New(name, columns...)
	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				if err := appendParquetRow(t, row, dateLeaf.ColumnIndex, position); err != nil {
					rows.Close()
					return nil, err
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, apperrors.NewParsingError("failed to read parquet rows", err)
			}
		}
		rows.Close()
	}
	return t, nil
}

func appendParquetRow(t *frame.Table, row parquet.Row, dateCol int, position map[int]int) error {
	values := make([]float64, len(t.Columns))
	for i := range values {
		values[i] = frame.Missing
	}
	var dateText string
	for _, v := range row {
		col := v.Column()
		if col == dateCol {
			dateText = string(v.ByteArray())
			continue
		}
		i, ok := position[col]
		if !ok || v.IsNull() {
			continue
		}
		values[i] = v.Double()
	}
	date, err := parseDate(dateText)
	if err != nil {
		return apperrors.NewParsingError("invalid date in parquet row", err)
	}
	t.AppendRow(date, values...)
	return nil
}
