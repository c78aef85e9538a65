// Package frame provides the month-indexed table shared by the ETL pipeline
// and the read path.
//
// A Table is a list of dated rows over an ordered set of named float64
// columns. Missing values are NaN. Finished tables have unique ascending
// dates and unique column names.
package frame
