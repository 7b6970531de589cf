package vault

import (
	"context"
	"os/exec"

	"github.com/google/shlex"

	"github.com/runger/recents/internal/host"
)

// editorPane opens documents by running an editor command with the
// document's absolute path appended.
type editorPane struct {
	id      string
	kind    host.PaneKind
	command string
	vault   *Vault
}

func (p *editorPane) ID() string { return p.id }

func (p *editorPane) Kind() host.PaneKind { return p.kind }

// Open records the document as active, marks the pane as used and returns
// the editor process.
func (p *editorPane) Open(ctx context.Context, f host.File) *exec.Cmd {
	argv, err := shlex.Split(p.command)
	if err != nil || len(argv) == 0 {
		p.vault.logger.Warn("unusable editor command, falling back to vi",
			"command", p.command, "error", err)
		argv = []string{"vi"}
	}

	if err := p.vault.store.RecordOpen(ctx, f.Path); err != nil {
		p.vault.logger.Warn("failed to record open", "path", f.Path, "error", err)
	}
	if err := p.vault.store.TouchPane(ctx, p.id); err != nil {
		p.vault.logger.Debug("failed to touch pane", "pane_id", p.id, "error", err)
	}

	args := append(argv[1:], f.AbsPath)
	cmd := exec.Command(argv[0], args...)
	cmd.Dir = p.vault.root
	return cmd
}
