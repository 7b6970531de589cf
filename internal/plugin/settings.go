package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/runger/recents/internal/recent"
)

// ErrInvalidHistoryLength is returned for history sizes below 1 or not
// numeric.
var ErrInvalidHistoryLength = errors.New("history length must be a whole number of at least 1")

// Settings is the plugin's persisted state.
type Settings struct {
	// HistoryLength caps the merged recent list.
	HistoryLength int `json:"historyLength"`

	// Files is the candidate list saved when the modal last closed.
	Files []string `json:"files"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		HistoryLength: recent.DefaultHistoryLength,
		Files:         []string{},
	}
}

// ParseHistoryLength parses a history size typed by the user.
func ParseHistoryLength(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHistoryLength, s)
	}
	return n, nil
}

// LoadSettings reads the stored settings and merges them over the
// defaults; keys missing from the stored object keep their default.
// A stored history length below 1 is replaced by the default.
func (p *Plugin) LoadSettings(ctx context.Context) error {
	s := DefaultSettings()

	data, err := p.store.LoadData(ctx, ID)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode settings: %w", err)
		}
	}

	if s.HistoryLength < 1 {
		p.logger.Warn("stored history length is invalid, using default",
			"history_length", s.HistoryLength,
			"default", recent.DefaultHistoryLength,
		)
		s.HistoryLength = recent.DefaultHistoryLength
	}
	if s.Files == nil {
		s.Files = []string{}
	}

	p.settings = s
	return nil
}

// SaveSettings writes the current settings.
func (p *Plugin) SaveSettings(ctx context.Context) error {
	return p.save(ctx, p.settings)
}

// SaveFiles stores files as the persisted candidate list, keeping every
// other setting.
func (p *Plugin) SaveFiles(ctx context.Context, files []string) error {
	s := p.settings
	s.Files = append([]string{}, files...)
	if err := p.save(ctx, s); err != nil {
		return err
	}
	p.settings = s
	return nil
}

// ForgetFile removes path from the persisted files. It reports whether
// the path was present; nothing is saved when it was not.
func (p *Plugin) ForgetFile(ctx context.Context, path string) (bool, error) {
	kept := make([]string, 0, len(p.settings.Files))
	for _, f := range p.settings.Files {
		if f != path {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(p.settings.Files) {
		return false, nil
	}
	return true, p.SaveFiles(ctx, kept)
}

// SetHistoryLength validates n, applies it and saves immediately.
func (p *Plugin) SetHistoryLength(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidHistoryLength, n)
	}
	p.settings.HistoryLength = n
	return p.SaveSettings(ctx)
}

// ResetSettings restores and saves the defaults.
func (p *Plugin) ResetSettings(ctx context.Context) error {
	p.settings = DefaultSettings()
	return p.SaveSettings(ctx)
}

// Settings returns a copy of the current settings.
func (p *Plugin) Settings() Settings {
	s := p.settings
	s.Files = append([]string{}, s.Files...)
	return s
}

func (p *Plugin) save(ctx context.Context, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := p.store.SaveData(ctx, ID, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
