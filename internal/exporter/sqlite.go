package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	apperrors "tourismfx/internal/errors"
	"tourismfx/internal/frame"
	"tourismfx/pkg/contracts/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS table_columns (
	domain   TEXT NOT NULL,
	position INTEGER NOT NULL,
	category TEXT NOT NULL,
	PRIMARY KEY (domain, category)
);
CREATE TABLE IF NOT EXISTS observations (
	domain   TEXT NOT NULL,
	date     TEXT NOT NULL,
	category TEXT NOT NULL,
	value    REAL NOT NULL,
	PRIMARY KEY (domain, date, category)
);
CREATE INDEX IF NOT EXISTS idx_observations_domain_date ON observations (domain, date);
`

// SQLiteStore mirrors canonical tables into a long-format SQLite database.
// Missing values are not stored.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma foreign_keys: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger.With(slog.String("component", "sqlite_store"))}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WriteTable replaces everything stored for d with the contents of t.
func (s *SQLiteStore) WriteTable(ctx context.Context, d domain.Domain, t *frame.Table) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewStorageError("begin transaction", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM observations WHERE domain = ?`,
		`DELETE FROM table_columns WHERE domain = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, d.String()); err != nil {
			return 0, apperrors.NewStorageError("clear domain", err)
		}
	}

	colStmt, err := tx.PrepareContext(ctx, `INSERT INTO table_columns (domain, position, category) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, apperrors.NewStorageError("prepare column insert", err)
	}
	defer colStmt.Close()
	for i, c := range t.Columns {
		if _, err := colStmt.ExecContext(ctx, d.String(), i, c); err != nil {
			return 0, apperrors.NewStorageError("insert column", err)
		}
	}

	obsStmt, err := tx.PrepareContext(ctx, `INSERT INTO observations (domain, date, category, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, apperrors.NewStorageError("prepare observation insert", err)
	}
	defer obsStmt.Close()

	written := 0
	for _, r := range t.Rows {
		date := formatDate(r.Date)
		for i, v := range r.Values {
			if frame.IsMissing(v) {
				continue
			}
			if _, err := obsStmt.ExecContext(ctx, d.String(), date, t.Columns[i], v); err != nil {
				return 0, apperrors.NewStorageError("insert observation", err).
					WithContext("date", date).
					WithContext("category", t.Columns[i])
			}
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewStorageError("commit", err)
	}
	s.logger.Info("SQLite mirror updated",
		slog.String("domain", d.String()),
		slog.Int("observations", written))
	return written, nil
}

// ReadTable rebuilds the table stored for d. Months where every value was
// missing are not stored and therefore do not come back.
func (s *SQLiteStore) ReadTable(ctx context.Context, d domain.Domain) (*frame.Table, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category FROM table_columns WHERE domain = ? ORDER BY position`, d.String())
	if err != nil {
		return nil, apperrors.NewStorageError("query columns", err)
	}
	var columns []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			rows.Close()
			return nil, apperrors.NewStorageError("scan column", err)
		}
		columns = append(columns, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate columns", err)
	}

	t := frame.New(d.String(), columns...)
	obs, err := s.db.QueryContext(ctx,
		`SELECT date, category, value FROM observations WHERE domain = ? ORDER BY date`, d.String())
	if err != nil {
		return nil, apperrors.NewStorageError("query observations", err)
	}
	defer obs.Close()

	last := -1
	for obs.Next() {
		var (
			dateText, category string
			value              float64
		)
		if err := obs.Scan(&dateText, &category, &value); err != nil {
			return nil, apperrors.NewStorageError("scan observation", err)
		}
		date, err := parseDate(dateText)
		if err != nil {
			return nil, apperrors.NewParsingError("stored date", err)
		}
		if last < 0 || !t.Rows[last].Date.Equal(date) {
			t.AppendRow(date)
			last = len(t.Rows) - 1
		}
		if i := t.ColumnIndex(category); i >= 0 {
			t.Rows[last].Values[i] = value
		}
	}
	if err := obs.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate observations", err)
	}
	return t, nil
}
