package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the recents configuration.
type Config struct {
	Vault  VaultConfig  `yaml:"vault"`
	Picker PickerConfig `yaml:"picker"`
	Log    LogConfig    `yaml:"log"`
}

// VaultConfig selects the vault and how documents are opened.
type VaultConfig struct {
	Root   string `yaml:"root"`   // Vault directory (empty = current directory)
	Editor string `yaml:"editor"` // Command used by new panes (empty = $VISUAL, $EDITOR, vi)
}

// PickerConfig holds picker settings.
type PickerConfig struct {
	Backend  string `yaml:"backend"`   // builtin or fzf
	Mouse    bool   `yaml:"mouse"`     // Enable row clicks
	ShowHelp bool   `yaml:"show_help"` // Show the key help line
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Vault: VaultConfig{
			Root:   "",
			Editor: "",
		},
		Picker: PickerConfig{
			Backend:  "builtin",
			Mouse:    true,
			ShowHelp: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "picker.backend" or "vault.root"
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "vault":
		return c.getVaultField(field)
	case "picker":
		return c.getPickerField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "vault":
		return c.setVaultField(field, value)
	case "picker":
		return c.setPickerField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (string, string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

func (c *Config) getVaultField(field string) (string, error) {
	switch field {
	case "root":
		return c.Vault.Root, nil
	case "editor":
		return c.Vault.Editor, nil
	default:
		return "", fmt.Errorf("unknown field: vault.%s", field)
	}
}

func (c *Config) setVaultField(field, value string) error {
	switch field {
	case "root":
		c.Vault.Root = value
	case "editor":
		c.Vault.Editor = value
	default:
		return fmt.Errorf("unknown field: vault.%s", field)
	}
	return nil
}

func (c *Config) getPickerField(field string) (string, error) {
	switch field {
	case "backend":
		return c.Picker.Backend, nil
	case "mouse":
		return strconv.FormatBool(c.Picker.Mouse), nil
	case "show_help":
		return strconv.FormatBool(c.Picker.ShowHelp), nil
	default:
		return "", fmt.Errorf("unknown field: picker.%s", field)
	}
}

func (c *Config) setPickerField(field, value string) error {
	switch field {
	case "backend":
		if !isValidPickerBackend(value) {
			return fmt.Errorf("invalid backend: %s (must be builtin or fzf)", value)
		}
		c.Picker.Backend = value
	case "mouse":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for mouse: %w", err)
		}
		c.Picker.Mouse = v
	case "show_help":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for show_help: %w", err)
		}
		c.Picker.ShowHelp = v
	default:
		return fmt.Errorf("unknown field: picker.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	if !isValidPickerBackend(c.Picker.Backend) {
		return fmt.Errorf("picker.backend must be builtin or fzf (got: %s)", c.Picker.Backend)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidPickerBackend(backend string) bool {
	switch backend {
	case "builtin", "fzf":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RECENTS_VAULT"); v != "" {
		c.Vault.Root = v
	}
	if v := os.Getenv("RECENTS_EDITOR"); v != "" {
		c.Vault.Editor = v
	}
	if v := os.Getenv("RECENTS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("RECENTS_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"vault.root",
		"vault.editor",
		"picker.backend",
		"picker.mouse",
		"picker.show_help",
		"log.level",
		"log.file",
	}
}

// VaultRoot returns the absolute vault directory, falling back to the
// working directory when none is configured.
func (c *Config) VaultRoot() (string, error) {
	root := c.Vault.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve vault root: %w", err)
	}
	return abs, nil
}

// EditorCommand returns the configured editor command line, falling back
// to $VISUAL, $EDITOR and finally vi.
func (c *Config) EditorCommand() string {
	if c.Vault.Editor != "" {
		return c.Vault.Editor
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "vi"
}
