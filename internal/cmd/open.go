package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/recents/internal/config"
	"github.com/runger/recents/internal/picker"
	"github.com/runger/recents/internal/plugin"
)

var openBackend string

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open recent files modal",
	Long: `Show the recently opened documents of the vault and open one.

Type to narrow the list, move with the arrow keys (or ctrl+p / ctrl+n),
press enter or click a row to open it, ctrl+y to copy its path and esc to
close. The list shown is remembered when the picker closes.

The picker backend is picker.backend from the config file (builtin or fzf)
unless --backend is given. The fzf backend falls back to builtin when fzf
is not installed.`,
	GroupID: groupPicker,
	Args:    cobra.NoArgs,
	RunE:    runOpen,
}

func init() {
	openCmd.Flags().StringVar(&openBackend, "backend", "", "picker backend: builtin or fzf")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend := cfg.Picker.Backend
	if openBackend != "" {
		backend = openBackend
	}
	if backend != "builtin" && backend != "fzf" {
		return fmt.Errorf("unknown picker backend %q (want builtin or fzf)", backend)
	}

	// The presenter needs the session's logger and workspace, so it is
	// bound after the session opens.
	var presenter plugin.Presenter
	s, err := openSession(ctx, cfg,
		plugin.WithPresenter(plugin.PresenterFunc(func(ctx context.Context, m picker.Model) error {
			return presenter.Present(ctx, m)
		})),
		plugin.WithModalOptions(picker.WithHelp(cfg.Picker.ShowHelp)),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	// One picker per vault at a time.
	lockFd, err := acquireLock(config.VaultPaths{Root: s.vault.Root()}.LockFile())
	if err != nil {
		return err
	}
	defer releaseLock(lockFd)

	builtin := &builtinPresenter{mouse: cfg.Picker.Mouse, logger: s.logger}
	presenter = builtin
	if backend == "fzf" {
		presenter = newFzfPresenter(s.plugin.Activator(), builtin, s.logger)
	}

	return s.plugin.ExecuteCommand(ctx, plugin.OpenModalCommandID)
}
