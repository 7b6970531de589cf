package cmd

import (
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	groupPicker = "picker"
	groupVault  = "vault"
	groupSetup  = "setup"
)

// vaultFlag overrides vault.root from the config file and RECENTS_VAULT.
var vaultFlag string

var rootCmd = &cobra.Command{
	Use:   "recents",
	Short: "jump back to recently opened documents",
	Long: `recents - a searchable list of recently opened documents
  - recents open      pick a recent document and open it in your editor
  - recents settings  change how many documents are remembered`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyColorMode()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupPicker, Title: "Picker:"},
		&cobra.Group{ID: groupVault, Title: "Vault:"},
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
	)
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "vault directory (default: vault.root, $RECENTS_VAULT or the current directory)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(versionCmd)
}
