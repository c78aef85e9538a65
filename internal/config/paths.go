package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tourismfx/pkg/contracts/domain"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	DataDir     string
	RawDir      string
	InboundDir  string
	OutboundDir string
	ExchangeDir string
	CleanDir    string
	LogsDir     string
	SQLiteFile  string
}

// ResolvePaths turns the configured directories into absolute paths.
// Relative directories are resolved against the working directory. Unset
// raw, clean and logs directories default to original_data/, cleaned_data/
// and logs/ under the data directory.
func (c *Config) ResolvePaths() (*Paths, error) {
	dataDir, err := filepath.Abs(c.Paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	under := func(configured, fallback string) string {
		if configured == "" {
			return filepath.Join(dataDir, fallback)
		}
		if filepath.IsAbs(configured) {
			return configured
		}
		abs, err := filepath.Abs(configured)
		if err != nil {
			return filepath.Join(dataDir, configured)
		}
		return abs
	}

	rawDir := under(c.Paths.RawDir, RawDirName)
	cleanDir := under(c.Paths.CleanDir, CleanDirName)
	sqlite := c.Storage.SQLitePath
	if sqlite == "" {
		sqlite = filepath.Join(cleanDir, SQLiteFileName)
	}

	return NewPaths(dataDir, rawDir, cleanDir, under(c.Paths.LogsDir, DefaultLogsDir), sqlite), nil
}

// NewPaths builds a Paths value from explicit directories.
func NewPaths(dataDir, rawDir, cleanDir, logsDir, sqliteFile string) *Paths {
	return &Paths{
		DataDir:     dataDir,
		RawDir:      rawDir,
		InboundDir:  filepath.Join(rawDir, string(domain.DomainInbound)),
		OutboundDir: filepath.Join(rawDir, string(domain.DomainOutbound)),
		ExchangeDir: filepath.Join(rawDir, string(domain.DomainExchange)),
		CleanDir:    cleanDir,
		LogsDir:     logsDir,
		SQLiteFile:  sqliteFile,
	}
}

// RawDirFor returns the raw input directory of a domain.
func (p *Paths) RawDirFor(d domain.Domain) string {
	switch d {
	case domain.DomainInbound:
		return p.InboundDir
	case domain.DomainOutbound:
		return p.OutboundDir
	case domain.DomainExchange:
		return p.ExchangeDir
	}
	return filepath.Join(p.RawDir, d.String())
}

// RawTargets maps every domain to its raw input directory.
func (p *Paths) RawTargets() map[domain.Domain]string {
	targets := make(map[domain.Domain]string, len(domain.Domains))
	for _, d := range domain.Domains {
		targets[d] = p.RawDirFor(d)
	}
	return targets
}

// CleanCSVPath returns the canonical CSV path of a domain.
func (p *Paths) CleanCSVPath(d domain.Domain) string {
	return filepath.Join(p.CleanDir, d.CSVFile())
}

// CleanParquetPath returns the Parquet mirror path of a domain.
func (p *Paths) CleanParquetPath(d domain.Domain) string {
	return filepath.Join(p.CleanDir, d.ParquetFile())
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.InboundDir,
		p.OutboundDir,
		p.ExchangeDir,
		p.CleanDir,
		p.LogsDir,
	}

	logger := slog.Default()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}
	return nil
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("data", p.DataDir),
			slog.String("raw", p.RawDir),
			slog.String("clean", p.CleanDir),
			slog.String("logs", p.LogsDir),
		),
		slog.String("sqlite", p.SQLiteFile))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
