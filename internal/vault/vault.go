// Package vault implements the host workspace on a directory of documents.
//
// The vault's state database remembers which documents were opened and
// which panes opened them; the file registry is the directory itself.
package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/runger/recents/internal/host"
	"github.com/runger/recents/internal/storage"
)

// LastOpenLimit caps RecentlyActive, like a host's own recent list.
const LastOpenLimit = 10

// ErrOutsideVault is returned for paths that escape the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// Vault is a host.Workspace backed by a directory and a Store.
type Vault struct {
	root   string
	store  storage.Store
	editor string
	logger *slog.Logger
	newID  func() string
}

// Compile-time check that Vault implements host.Workspace.
var _ host.Workspace = (*Vault)(nil)

// Option configures a Vault.
type Option func(*Vault)

// WithEditor sets the command line new panes open documents with.
func WithEditor(command string) Option {
	return func(v *Vault) {
		if command != "" {
			v.editor = command
		}
	}
}

// WithLogger sets the logger for store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithIDGenerator overrides pane ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(v *Vault) {
		if fn != nil {
			v.newID = fn
		}
	}
}

// New opens the vault rooted at root.
func New(root string, store storage.Store, opts ...Option) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root %s is not a directory", abs)
	}

	v := &Vault{
		root:   abs,
		store:  store,
		editor: "vi",
		logger: slog.Default(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Normalize converts an absolute or vault-relative path to the vault's
// slash-separated relative form.
func (v *Vault) Normalize(p string) (string, error) {
	if p == "" {
		return "", errors.New("path is required")
	}

	native := filepath.FromSlash(p)
	if filepath.IsAbs(native) {
		rel, err := filepath.Rel(v.root, native)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrOutsideVault, p)
		}
		native = rel
	}

	clean := path.Clean(filepath.ToSlash(native))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, p)
	}
	return clean, nil
}

// RecentlyActive returns up to LastOpenLimit recently opened paths, most
// recent first. Store failures are logged and yield an empty list.
func (v *Vault) RecentlyActive(ctx context.Context) []string {
	rows, err := v.store.RecentFiles(ctx, LastOpenLimit)
	if err != nil {
		v.logger.Warn("failed to read recent files", "error", err)
		return nil
	}

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Path)
	}
	return out
}

// Resolve finds a regular file in the vault.
func (v *Vault) Resolve(p string) (host.File, bool) {
	rel, err := v.Normalize(p)
	if err != nil {
		return host.File{}, false
	}

	abs := filepath.Join(v.root, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return host.File{}, false
	}
	return host.File{Path: rel, AbsPath: abs}, true
}

// Touch records p as opened now.
func (v *Vault) Touch(ctx context.Context, p string) error {
	rel, err := v.Normalize(p)
	if err != nil {
		return err
	}
	return v.store.RecordOpen(ctx, rel)
}

// Forget drops p from the recently opened documents.
func (v *Vault) Forget(ctx context.Context, p string) error {
	rel, err := v.Normalize(p)
	if err != nil {
		return err
	}
	return v.store.ForgetFile(ctx, rel)
}

// MostRecentPane returns the pane used last.
func (v *Vault) MostRecentPane(ctx context.Context) (host.Pane, bool) {
	row, err := v.store.LastPane(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrPaneNotFound) {
			v.logger.Warn("failed to read last pane", "error", err)
		}
		return nil, false
	}

	command := row.Command
	if command == "" {
		command = v.editor
	}
	return &editorPane{
		id:      row.PaneID,
		kind:    host.PaneKind(row.Kind),
		command: command,
		vault:   v,
	}, true
}

// CreatePane creates and remembers a pane that opens documents with the
// vault's editor.
func (v *Vault) CreatePane(ctx context.Context, kind host.PaneKind) host.Pane {
	p := &editorPane{
		id:      v.newID(),
		kind:    kind,
		command: v.editor,
		vault:   v,
	}

	err := v.store.SavePane(ctx, &storage.Pane{
		PaneID:  p.id,
		Kind:    string(kind),
		Command: p.command,
	})
	if err != nil {
		v.logger.Warn("failed to save pane", "pane_id", p.id, "error", err)
	}
	return p
}
