package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var touchCmd = &cobra.Command{
	Use:   "touch <path>...",
	Short: "Record documents as recently opened",
	Long: `Record one or more documents as opened just now.

Paths may be absolute or relative to the vault. Use this from editor or
shell hooks so documents opened outside recents show up in the list.`,
	GroupID: groupVault,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTouch,
}

func init() {
	rootCmd.AddCommand(touchCmd)
}

func runTouch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, p := range args {
		if err := s.vault.Touch(ctx, p); err != nil {
			return fmt.Errorf("touch %s: %w", p, err)
		}
	}
	return nil
}
