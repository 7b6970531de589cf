package picker

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/runger/recents/internal/host"
	"github.com/runger/recents/internal/logging"
)

// Activator turns a chosen path into the editor process that displays it.
// Both the builtin modal and the fzf backend activate through it.
type Activator struct {
	workspace host.Workspace
	logger    *slog.Logger
}

// NewActivator creates an Activator for ws. A nil logger discards output.
func NewActivator(ws host.Workspace, logger *slog.Logger) *Activator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Activator{workspace: ws, logger: logger}
}

// Prepare resolves path and opens it in the most recently used pane, or in
// a new tab when no pane exists yet. It reports false when the path is not
// in the file registry; nothing is opened in that case.
//
// The returned command may be nil if the pane displays the file without a
// separate process.
func (a *Activator) Prepare(ctx context.Context, path string) (*exec.Cmd, bool) {
	f, ok := a.workspace.Resolve(path)
	if !ok {
		a.logger.Debug("recent file no longer exists", "path", path)
		return nil, false
	}

	pane, ok := a.workspace.MostRecentPane(ctx)
	if !ok {
		pane = a.workspace.CreatePane(ctx, host.PaneTab)
		a.logger.Debug("created pane", "pane_id", pane.ID(), "kind", string(pane.Kind()))
	}

	a.logger.Info("opening recent file", "path", f.Path, "pane_id", pane.ID())
	return pane.Open(ctx, f), true
}
