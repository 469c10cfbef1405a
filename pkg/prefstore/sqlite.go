// Package prefstore provides durable PreferenceBackend implementations:
// a JSON file store for single-node installs and a SQLite store for
// hosts that already carry a database.
package prefstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	dashboard "github.com/minetrics/go-minedash/components/dashboard"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS dashboard_preferences (
    key        TEXT PRIMARY KEY,
    document   BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLiteStore keeps preference documents in a single key/value table.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (or creates) a SQLite store at the provided path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefstore: storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("prefstore: open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("prefstore: ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("prefstore: create schema: %w", err)
	}

	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReadRaw returns the stored document or dashboard.ErrNotFound.
func (s *SQLiteStore) ReadRaw(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("prefstore: key is required")
	}
	var document []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT document FROM dashboard_preferences WHERE key = ?`, key,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dashboard.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("prefstore: read %s: %w", key, err)
	}
	return document, nil
}

// WriteRaw upserts the document with last-writer-wins semantics.
func (s *SQLiteStore) WriteRaw(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("prefstore: key is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO dashboard_preferences (key, document, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   document = excluded.document,
		   updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("prefstore: write %s: %w", key, err)
	}
	return nil
}

var _ dashboard.PreferenceBackend = (*SQLiteStore)(nil)
