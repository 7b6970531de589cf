// Package config provides configuration management for recents.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// StateDirName is the per-vault directory holding the state database and
// the picker lock.
const StateDirName = ".recents"

// Paths holds all the path configurations for recents.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/recents)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/recents)
	DataDir string

	// CacheDir is the directory for cache files (~/.cache/recents)
	CacheDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir: filepath.Join(appData, "recents"),
			DataDir:   filepath.Join(localAppData, "recents"),
			CacheDir:  filepath.Join(localAppData, "recents", "cache"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "recents"),
		DataDir:   filepath.Join(dataHome, "recents"),
		CacheDir:  filepath.Join(cacheHome, "recents"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// LogDir returns the path to the log directory.
func (p *Paths) LogDir() string {
	return filepath.Join(p.DataDir, "logs")
}

// LogFile returns the path to the CLI log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogDir(), "recents.log")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.ConfigDir,
		p.DataDir,
		p.CacheDir,
		p.LogDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// VaultPaths locates the state kept inside a vault.
type VaultPaths struct {
	Root string
}

// StateDir returns <root>/.recents.
func (v VaultPaths) StateDir() string {
	return filepath.Join(v.Root, StateDirName)
}

// DatabaseFile returns the path to the vault's SQLite database.
func (v VaultPaths) DatabaseFile() string {
	return filepath.Join(v.StateDir(), "state.db")
}

// LockFile returns the path of the picker's advisory lock.
func (v VaultPaths) LockFile() string {
	return filepath.Join(v.StateDir(), "picker.lock")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
