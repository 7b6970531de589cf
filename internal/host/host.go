// Package host declares the capabilities the recent files extension needs
// from the application hosting it. The picker and the plugin only see these
// interfaces; package vault provides the on-disk implementation.
package host

import (
	"context"
	"os/exec"
)

// PaneKind selects how a new pane is created.
type PaneKind string

// PaneTab opens documents in a new tab, which for a terminal host means a
// fresh editor process.
const PaneTab PaneKind = "tab"

// File is a document resolved against the host's file registry.
type File struct {
	Path    string // Vault-relative, slash separated
	AbsPath string // Absolute path on disk
}

// Workspace is the host's view of open documents and panes.
type Workspace interface {
	// RecentlyActive returns recently opened paths, most recent first.
	// The host caps the list; it is never an error to call.
	RecentlyActive(ctx context.Context) []string

	// Resolve looks path up in the file registry.
	Resolve(path string) (File, bool)

	// MostRecentPane returns the pane used last, if any.
	MostRecentPane(ctx context.Context) (Pane, bool)

	// CreatePane creates a new pane of the given kind.
	CreatePane(ctx context.Context, kind PaneKind) Pane
}

// Pane is a viewport that can display a document.
type Pane interface {
	ID() string
	Kind() PaneKind

	// Open marks f as the pane's document and returns the process that
	// displays it. The caller decides how to run it.
	Open(ctx context.Context, f File) *exec.Cmd
}

// DataStore persists opaque plugin data.
type DataStore interface {
	// LoadData returns the stored blob, or nil when nothing was saved yet.
	LoadData(ctx context.Context, pluginID string) ([]byte, error)
	SaveData(ctx context.Context, pluginID string, data []byte) error
}
