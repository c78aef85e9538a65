// Package exporter persists canonical tables.
//
// CSVWriter writes the canonical CSV files that every reader treats as the
// source of truth. ParquetWriter derives a Snappy-compressed columnar copy
// from them, and SQLiteStore optionally mirrors them into a long-format
// observations table. ReadTableCSV and ReadParquet load the files back.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(cleanDir, logger)
//	path, err := w.WriteTable(domain.DomainInbound, table)
//
//	cx := exporter.NewColumnarExporter(cleanDir, logger)
//	results := cx.ExportAll(ctx)
package exporter
