package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/recents/internal/picker"
	"github.com/runger/recents/internal/plugin"
)

// builtinPresenter runs the modal as a Bubble Tea program on the
// controlling terminal.
type builtinPresenter struct {
	mouse  bool
	logger *slog.Logger
}

func (b *builtinPresenter) Present(ctx context.Context, modal picker.Model) error {
	if err := preflight(); err != nil {
		modal.Close()
		return err
	}

	// Open the tty for TUI input/output so stdout stays usable for scripts.
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		modal.Close()
		return fmt.Errorf("cannot open %s: %w", ttyPath, err)
	}
	defer tty.Close()

	// Detect color profile from the tty and apply it to the default renderer.
	// When stdout is a pipe lipgloss would default to Ascii (no color).
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
		tea.WithContext(ctx),
	}
	if b.mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(modal, opts...).Run()
	if m, ok := final.(picker.Model); ok && !m.IsClosed() {
		// Interrupted before reaching a terminal state.
		m.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := final.(picker.Model); ok && m.Opened() != "" {
		b.logger.Info("picker closed", "opened", m.Opened())
	}
	return nil
}

// fzfPresenter pipes the candidate list through fzf and activates the
// chosen line. It falls back when fzf is not installed.
type fzfPresenter struct {
	activator *picker.Activator
	fallback  plugin.Presenter
	logger    *slog.Logger
	lookPath  func(string) (string, error)
	run       func(ctx context.Context, input string) (string, error)
}

func newFzfPresenter(activator *picker.Activator, fallback plugin.Presenter, logger *slog.Logger) *fzfPresenter {
	return &fzfPresenter{
		activator: activator,
		fallback:  fallback,
		logger:    logger,
		lookPath:  exec.LookPath,
		run:       runFzf,
	}
}

func (f *fzfPresenter) Present(ctx context.Context, modal picker.Model) error {
	if _, err := f.lookPath("fzf"); err != nil {
		f.logger.Debug("fzf not found on PATH, falling back to builtin")
		return f.fallback.Present(ctx, modal)
	}
	defer modal.Close()

	candidates := modal.Candidates()
	if len(candidates) == 0 {
		fmt.Fprintln(os.Stderr, "No recent files")
		return nil
	}

	line, err := f.run(ctx, fzfLines(candidates))
	if err != nil {
		// fzf exit code 130 = cancelled by user, exit code 1 = no match
		f.logger.Debug("fzf backend error", "error", err)
		return nil
	}
	choice, ok := fzfChoice(candidates, line)
	if !ok {
		return nil
	}

	cmd, ok := f.activator.Prepare(ctx, choice)
	if !ok || cmd == nil {
		return nil
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		f.logger.Warn("editor exited with error", "path", choice, "error", err)
	}
	return nil
}

// fzfLines numbers each candidate so the chosen line maps back to its path
// whatever the path contains. fzf shows and matches the display name only.
func fzfLines(candidates []string) string {
	var b strings.Builder
	for i, p := range candidates {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d\t%s", i, picker.CleanName(picker.DisplayName(p)))
	}
	return b.String()
}

// fzfChoice returns the candidate a line printed by fzf refers to.
func fzfChoice(candidates []string, line string) (string, bool) {
	idx, _, found := strings.Cut(line, "\t")
	if !found {
		return "", false
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(candidates) {
		return "", false
	}
	return candidates[i], true
}

// runFzf runs fzf over input and returns the chosen line.
func runFzf(ctx context.Context, input string) (string, error) {
	cmd := exec.CommandContext(ctx, "fzf",
		"--no-sort", "--exact", "-i",
		"--delimiter", "\t", "--with-nth", "2..",
		"--prompt", "Search> ",
		"--header", "Recent Files",
	)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = os.Stderr // Let fzf render its TUI on stderr/tty.

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(output), "\n"), nil
}
