// Package services implements the read-side business logic over the
// canonical tourism and exchange-rate tables. It sits between the HTTP
// handlers and the dataset loader so that handlers never touch frames or
// files directly.
//
// # Services
//
//	- DatasetService: date-range table slices, column listings, per-pair and
//	  summary correlations, the correlation matrix and the dataset overview.
//	- HealthService: liveness, readiness (based on which canonical tables
//	  are available) and version information.
//
// # Missing values
//
// Tables carry missing values as NaN. Every response type converts them to
// nil pointers so that they serialize as JSON null.
//
// # Errors
//
// Invalid input is reported as a VALIDATION AppError wrapping one of the
// sentinel errors in errors.go; unknown countries or currencies are
// NOT_FOUND AppErrors. The HTTP layer maps both to problem documents.
package services
