package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchQuiet bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Record documents as they are written",
	Long: `Watch the vault and record every document that is created or saved
as recently opened, until interrupted. Hidden directories (such as .git and
.recents) are ignored.`,
	GroupID: groupVault,
	Args:    cobra.NoArgs,
	RunE:    runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "do not print recorded paths")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if !watchQuiet {
		fmt.Printf("%sWatching%s %s\n", colorBold, colorReset, s.vault.Root())
	}
	return s.vault.Watch(ctx, func(p string) {
		if !watchQuiet {
			fmt.Printf("  %s%s%s\n", colorCyan, p, colorReset)
		}
	})
}
