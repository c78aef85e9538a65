package config

import (
	"time"

	"tourismfx/pkg/contracts"
)

// Application constants
const (
	AppName    = "tourismfx"
	AppVersion = contracts.Version

	// File Paths (relative to the data directory unless absolute)
	DefaultDataDir = "data"
	DefaultLogsDir = "logs"
	RawDirName     = "original_data"
	CleanDirName   = "cleaned_data"
	SQLiteFileName = "tourism.db"

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second per client
	DefaultBurstSize = 40

	// Cache Settings
	DefaultDataCacheTTL = 1 * time.Hour

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints
	APIBasePath     = "/api"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)
