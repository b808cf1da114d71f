package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"newswatch/pkg/domain"
)

// SQLiteStore keeps the dedup history in a single sqlite table. Same
// append-only contract as the file backend; INSERT OR IGNORE makes repeated
// appends of the same key harmless.
type SQLiteStore struct {
	db *sqlx.DB
}

const sentItemsSchema = `
	CREATE TABLE IF NOT EXISTS sent_items (
		url     TEXT PRIMARY KEY,
		title   TEXT NOT NULL DEFAULT '',
		sent_at TIMESTAMP NOT NULL DEFAULT (datetime('now'))
	)
`

// NewSQLiteStore opens the database and ensures the schema
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// durability first: the orchestrator treats every append as final
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, sentItemsSchema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads all recorded keys, failing open to an empty set on error
func (s *SQLiteStore) Load(ctx context.Context) map[string]bool {
	keys := map[string]bool{}

	var urls []string
	if err := s.db.SelectContext(ctx, &urls, "SELECT url FROM sent_items"); err != nil {
		lgr.Printf("[WARN] history table unreadable, starting with empty history: %v", err)
		return keys
	}

	for _, u := range urls {
		keys[u] = true
	}
	lgr.Printf("[INFO] loaded %d history keys from sqlite", len(keys))
	return keys
}

// Append records one delivered item, retrying on transient lock errors
func (s *SQLiteStore) Append(ctx context.Context, rec domain.Record) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO sent_items (url, title) VALUES (?, ?)", rec.URL, rec.Title)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("append history record: %w", err)}
		}
		return nil
	})
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
