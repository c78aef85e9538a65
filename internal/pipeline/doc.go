// Package pipeline runs the ETL: for each domain it discovers the raw files
// in lexicographic order, normalizes every file into a partial table, merges
// the partials and writes the canonical CSV, then derives the columnar
// mirrors.
//
// Failures are contained at the file boundary. A file that cannot be read,
// has no landmark or yields no rows is logged, counted as skipped and the
// run continues. A domain without any usable file writes nothing.
package pipeline
