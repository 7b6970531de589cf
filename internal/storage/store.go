// Package storage provides SQLite-based persistent state for a vault.
// It records document activity, panes and opaque plugin data.
package storage

import (
	"context"

	"github.com/runger/recents/internal/host"
)

// Store defines the interface for all storage operations.
type Store interface {
	host.DataStore

	// Activity
	RecordOpen(ctx context.Context, path string) error
	RecentFiles(ctx context.Context, limit int) ([]FileActivity, error)
	ForgetFile(ctx context.Context, path string) error

	// Panes
	SavePane(ctx context.Context, p *Pane) error
	TouchPane(ctx context.Context, paneID string) error
	LastPane(ctx context.Context) (*Pane, error)

	// Lifecycle
	Close() error
}

// FileActivity is one row of the activity log.
type FileActivity struct {
	Path             string
	LastOpenedUnixMs int64
	OpenCount        int
}

// Pane is a persisted pane record.
type Pane struct {
	PaneID          string
	Kind            string
	Command         string
	CreatedAtUnixMs int64
	LastUsedUnixMs  int64
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
