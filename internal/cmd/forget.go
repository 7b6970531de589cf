package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var forgetCmd = &cobra.Command{
	Use:   "forget <path>...",
	Short: "Remove documents from the recent files list",
	Long: `Remove documents from the recently opened documents and from the
remembered list, so the picker stops showing them.`,
	GroupID: groupVault,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runForget,
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}

func runForget(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, p := range args {
		rel, err := s.vault.Normalize(p)
		if err != nil {
			return err
		}
		if err := s.vault.Forget(ctx, rel); err != nil {
			return fmt.Errorf("forget %s: %w", p, err)
		}
		if _, err := s.plugin.ForgetFile(ctx, rel); err != nil {
			return err
		}
		fmt.Printf("%sforgot%s %s\n", colorDim, colorReset, rel)
	}
	return nil
}
