package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/recents/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set recents configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/recents/config.yaml (XDG compliant).
Per-vault state (recent files, panes, settings) lives in <vault>/.recents/.

Keys are in the format: section.key
Sections: vault, picker, log

Examples:
  recents config                          # List all keys
  recents config picker.backend           # Get picker.backend value
  recents config picker.backend fzf       # Use fzf as the picker
  recents config vault.editor "code -w"   # Open documents in VS Code`,
	GroupID: groupSetup,
	Args:    cobra.MaximumNArgs(2),
	RunE:    runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		effective, err := loadConfig()
		if err != nil {
			return err
		}
		return listConfig(cfg, effective, paths)
	case 1:
		return getConfig(cfg, args[0])
	case 2:
		return setConfig(cfg, paths, args[0], args[1])
	}

	return nil
}

// listConfig prints the stored keys, noting where RECENTS_* variables or
// --vault change the value a session would use, followed by the files of
// the resolved vault.
func listConfig(stored, effective *config.Config, paths *config.Paths) error {
	fmt.Printf("%sConfiguration Keys%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))

	var failedKeys []string
	for _, key := range config.ListKeys() {
		value, err := stored.Get(key)
		if err != nil {
			failedKeys = append(failedKeys, key)
			continue
		}
		inUse, _ := effective.Get(key)

		displayValue := value
		if displayValue == "" {
			displayValue = colorDim + "(not set)" + colorReset
		}
		if inUse != value {
			displayValue += fmt.Sprintf(" %s(overridden: %s)%s", colorYellow, inUse, colorReset)
		}
		fmt.Printf("  %s%s%s = %s\n", colorCyan, key, colorReset, displayValue)
	}

	if len(failedKeys) > 0 {
		fmt.Printf("\n%sWarning:%s Failed to retrieve keys: %s\n", colorYellow, colorReset, strings.Join(failedKeys, ", "))
	}

	fmt.Println()
	fmt.Printf("%sVault%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	root, err := effective.VaultRoot()
	if err != nil {
		return err
	}
	vp := config.VaultPaths{Root: root}
	logFile := effective.Log.File
	if logFile == "" {
		logFile = paths.LogFile()
	}
	fmt.Printf("  root     %s\n", root)
	fmt.Printf("  state    %s\n", vp.DatabaseFile())
	fmt.Printf("  lock     %s\n", vp.LockFile())
	fmt.Printf("  editor   %s\n", effective.EditorCommand())
	fmt.Printf("  log      %s\n", logFile)

	fmt.Println()
	fmt.Printf("Config file: %s\n", paths.ConfigFile())

	return nil
}

func getConfig(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		fmt.Printf("%s(not set)%s\n", colorDim, colorReset)
	} else {
		fmt.Println(value)
	}

	return nil
}

func setConfig(cfg *config.Config, paths *config.Paths, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := cfg.SaveToFile(paths.ConfigFile()); err != nil {
		return err
	}

	fmt.Printf("%s%s%s = %s\n", colorCyan, key, colorReset, value)
	fmt.Printf("Saved to: %s\n", paths.ConfigFile())

	return nil
}
