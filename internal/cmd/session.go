package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/runger/recents/internal/config"
	"github.com/runger/recents/internal/logging"
	"github.com/runger/recents/internal/plugin"
	"github.com/runger/recents/internal/storage"
	"github.com/runger/recents/internal/vault"
)

// session is everything a command needs to work on one vault.
type session struct {
	cfg    *config.Config
	paths  *config.Paths
	vault  *vault.Vault
	store  *storage.SQLiteStore
	plugin *plugin.Plugin
	logger *slog.Logger

	logFile io.Closer
}

// loadConfig loads the config file and applies environment and flag
// overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	if vaultFlag != "" {
		cfg.Vault.Root = vaultFlag
	}
	return cfg, nil
}

// openSession opens the vault's state database and loads the plugin. A nil
// cfg is loaded with loadConfig. The caller must Close the session.
func openSession(ctx context.Context, cfg *config.Config, opts ...plugin.Option) (*session, error) {
	if cfg == nil {
		var err error
		if cfg, err = loadConfig(); err != nil {
			return nil, err
		}
	}
	s := &session{cfg: cfg, paths: config.DefaultPaths()}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = s.paths.LogFile()
	}
	logger, closer, err := logging.OpenFile(logPath, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	s.logger, s.logFile = logger, closer

	root, err := cfg.VaultRoot()
	if err != nil {
		s.Close()
		return nil, err
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		s.Close()
		return nil, fmt.Errorf("vault %s is not a directory", root)
	}
	vp := config.VaultPaths{Root: root}
	if err := os.MkdirAll(vp.StateDir(), 0755); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	s.store, err = storage.NewSQLiteStore(vp.DatabaseFile(), storage.WithLogger(logger))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	s.vault, err = vault.New(root, s.store,
		vault.WithEditor(cfg.EditorCommand()),
		vault.WithLogger(logger),
	)
	if err != nil {
		s.Close()
		return nil, err
	}

	opts = append([]plugin.Option{plugin.WithLogger(logger)}, opts...)
	s.plugin = plugin.New(s.vault, s.store, opts...)
	if err := s.plugin.Onload(ctx); err != nil {
		s.Close()
		return nil, err
	}

	logger.Debug("session opened", "vault", root)
	return s, nil
}

// Close releases the database and the log file.
func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil && s.logger != nil {
			s.logger.Warn("failed to close state database", "error", err)
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}
