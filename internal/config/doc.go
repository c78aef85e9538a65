// Package config provides centralized configuration management.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones taking
// precedence:
//
//	1. Default values (Default)
//	2. A YAML file (TOURISM_CONFIG_FILE, config.yaml or configs/config.yaml)
//	3. A .env file in the working directory
//	4. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern TOURISM_<SECTION>_<FIELD>:
//
//	TOURISM_SERVER_PORT=8080
//	TOURISM_SERVER_DATA_CACHE_TTL=30m
//	TOURISM_LOGGING_LEVEL=debug
//	TOURISM_PATHS_DATA_DIR=/srv/tourism
//	TOURISM_PIPELINE_CURRENCIES=USD,JPY
//	TOURISM_STORAGE_SQLITE_ENABLED=true
//
// # Path Management
//
// Paths resolves the data layout:
//
//	<data>/original_data/{inbound,outbound,exchange}   raw inputs
//	<data>/cleaned_data/cleaned_*.csv|.parquet          canonical outputs
//
// # Validation
//
// Configuration is validated at load time with go-playground/validator
// struct tags.
package config
