package store

import (
	"context"
	"fmt"

	"newswatch/pkg/config"
	"newswatch/pkg/domain"
)

// Store is the persistent dedup history. Membership and append are the only
// operations: keys are never deleted or updated, the set grows monotonically
// across runs and a key's presence is the sole idempotence guard.
type Store interface {
	// Load reads all persisted keys. It fails open: an unreadable backing
	// resource yields an empty set, because re-notifying is recoverable
	// while silently stopping delivery is not.
	Load(ctx context.Context) map[string]bool
	// Append durably records one delivered item; it must be crash-durable
	// before returning.
	Append(ctx context.Context, rec domain.Record) error
	Close() error
}

// New creates the configured store backend
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Type {
	case "file":
		return NewFileStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
