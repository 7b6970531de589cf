// Package plugin wires the recent files list to a host: it owns the
// persisted settings, registers the command that opens the modal and
// builds the modal's candidate list.
package plugin

import (
	"context"
	"errors"
	"log/slog"

	"github.com/runger/recents/internal/host"
	"github.com/runger/recents/internal/logging"
	"github.com/runger/recents/internal/picker"
	"github.com/runger/recents/internal/recent"
)

const (
	// ID keys the plugin's blob in the host data store.
	ID = "recent-files"

	// OpenModalCommandID is the id of the command that opens the modal.
	OpenModalCommandID = "open-recent-files-modal-simple"

	// OpenModalCommandName is that command's display name.
	OpenModalCommandName = "Open recent files modal"
)

// ErrNoPresenter is returned when the open command runs without a way to
// show the modal.
var ErrNoPresenter = errors.New("no presenter configured")

// Presenter shows a modal and blocks until it is dismissed.
type Presenter interface {
	Present(ctx context.Context, modal picker.Model) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, modal picker.Model) error

// Present calls f.
func (f PresenterFunc) Present(ctx context.Context, modal picker.Model) error {
	return f(ctx, modal)
}

// Plugin is the recent files extension bound to one host.
type Plugin struct {
	workspace host.Workspace
	store     host.DataStore
	presenter Presenter
	logger    *slog.Logger
	modalOpts []picker.Option

	settings Settings
	commands []Command

	// skipLoad leaves the settings at their defaults on Onload.
	skipLoad bool
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPresenter sets how the open command shows the modal.
func WithPresenter(presenter Presenter) Option {
	return func(p *Plugin) { p.presenter = presenter }
}

// WithModalOptions adds options applied to every modal.
func WithModalOptions(opts ...picker.Option) Option {
	return func(p *Plugin) { p.modalOpts = append(p.modalOpts, opts...) }
}

// WithoutStoredSettings makes Onload ignore the stored blob and start from
// the defaults. Used to recover from a blob that no longer decodes.
func WithoutStoredSettings() Option {
	return func(p *Plugin) { p.skipLoad = true }
}

// New creates a plugin for the given host. Call Onload before use.
func New(ws host.Workspace, store host.DataStore, opts ...Option) *Plugin {
	p := &Plugin{
		workspace: ws,
		store:     store,
		logger:    logging.Discard(),
		settings:  DefaultSettings(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Onload loads the settings and then registers the open command.
func (p *Plugin) Onload(ctx context.Context) error {
	if !p.skipLoad {
		if err := p.LoadSettings(ctx); err != nil {
			return err
		}
	}
	return p.AddCommand(Command{
		ID:       OpenModalCommandID,
		Name:     OpenModalCommandName,
		Callback: p.openModal,
	})
}

// Candidates returns the merged recent list a new modal would show.
func (p *Plugin) Candidates(ctx context.Context) []string {
	return recent.Build(p.workspace.RecentlyActive(ctx), p.settings.Files, p.settings.HistoryLength)
}

// Activator returns an activator for the plugin's workspace.
func (p *Plugin) Activator() *picker.Activator {
	return picker.NewActivator(p.workspace, p.logger)
}

// NewModal builds a modal over the current candidates. Closing it saves
// its candidate list as the persisted files.
func (p *Plugin) NewModal(ctx context.Context) picker.Model {
	persist := func(files []string) {
		if err := p.SaveFiles(ctx, files); err != nil {
			p.logger.Error("failed to save recent files", "error", err)
		}
	}
	opts := append([]picker.Option{
		picker.WithLogger(p.logger),
		picker.WithContext(ctx),
	}, p.modalOpts...)
	return picker.New(p.Candidates(ctx), p.Activator(), persist, opts...)
}

func (p *Plugin) openModal(ctx context.Context) error {
	if p.presenter == nil {
		return ErrNoPresenter
	}
	return p.presenter.Present(ctx, p.NewModal(ctx))
}
