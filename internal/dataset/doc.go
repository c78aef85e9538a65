// Package dataset is the read path over the canonical tables.
//
// A Loader reads the three tables from the clean directory, preferring the
// Parquet mirror and falling back to the canonical CSV. Results are cached
// per fingerprint of the files on disk (path, size and modification time)
// for a bounded time, and concurrent loads of the same fingerprint are
// collapsed into one.
package dataset
