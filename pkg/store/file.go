package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"

	"newswatch/pkg/domain"
)

// utf8BOM may prefix history files written by earlier tooling
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileStore keeps the dedup history as an append-only two-column csv file,
// one (url, title) record per delivered item. The file is read fully at
// construction time and the append handle stays open for the process life;
// every append is flushed and fsynced before returning.
type FileStore struct {
	path string
	file *os.File
}

// NewFileStore opens (or creates) the history file for appending
func NewFileStore(path string) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("open history file %s: %w", path, err)
	}
	return &FileStore{path: path, file: f}, nil
}

// Load reads all previously recorded keys. Unreadable or malformed history
// degrades to an empty set with a warning, it never blocks the run.
func (s *FileStore) Load(_ context.Context) map[string]bool {
	keys := map[string]bool{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		lgr.Printf("[WARN] history file %s unreadable, starting with empty history: %v", s.path, err)
		return keys
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // tolerate legacy rows with extra columns
	records, err := reader.ReadAll()
	if err != nil {
		lgr.Printf("[WARN] history file %s malformed, starting with empty history: %v", s.path, err)
		return keys
	}

	for _, row := range records {
		if len(row) > 0 && row[0] != "" {
			keys[row[0]] = true
		}
	}

	lgr.Printf("[INFO] loaded %d history keys from %s", len(keys), s.path)
	return keys
}

// Append records one delivered item and fsyncs before returning, the
// orchestrator relies on every append being immediately crash-durable
func (s *FileStore) Append(_ context.Context, rec domain.Record) error {
	w := csv.NewWriter(s.file)
	if err := w.Write([]string{rec.URL, rec.Title}); err != nil {
		return fmt.Errorf("write history record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush history record: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync history file: %w", err)
	}
	return nil
}

// Close closes the append handle
func (s *FileStore) Close() error {
	return s.file.Close()
}
