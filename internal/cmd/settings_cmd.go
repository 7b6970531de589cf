package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/runger/recents/internal/plugin"
	"github.com/runger/recents/internal/recent"
)

var (
	settingsHistoryLength int
	settingsShow          bool
	settingsReset         bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Settings for recent files list",
	Long: `Change the recent files settings of the vault.

Without flags, opens a form to edit the history size. Changes are saved
as soon as they are submitted.

Examples:
  recents settings                      # Edit interactively
  recents settings --history-length 30  # Keep 30 files
  recents settings --show               # Print current settings
  recents settings --reset              # Restore defaults`,
	GroupID: groupSetup,
	Args:    cobra.NoArgs,
	RunE:    runSettings,
}

func init() {
	settingsCmd.Flags().IntVar(&settingsHistoryLength, "history-length", 0, "number of files to show in the list")
	settingsCmd.Flags().BoolVar(&settingsShow, "show", false, "print the current settings")
	settingsCmd.Flags().BoolVar(&settingsReset, "reset", false, "restore the default settings")
	settingsCmd.MarkFlagsMutuallyExclusive("history-length", "show", "reset")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var opts []plugin.Option
	if settingsReset {
		opts = append(opts, plugin.WithoutStoredSettings())
	}
	s, err := openSession(ctx, nil, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	switch {
	case settingsShow:
		printSettings(s.plugin.Settings())
		return nil

	case settingsReset:
		if err := s.plugin.ResetSettings(ctx); err != nil {
			return err
		}
		fmt.Printf("%sSettings reset to defaults%s\n", colorGreen, colorReset)
		return nil

	case cmd.Flags().Changed("history-length"):
		if err := s.plugin.SetHistoryLength(ctx, settingsHistoryLength); err != nil {
			return err
		}
		fmt.Printf("%shistoryLength%s = %d\n", colorCyan, colorReset, settingsHistoryLength)
		return nil
	}

	n, err := promptHistoryLength(s.plugin.Settings().HistoryLength)
	if err != nil {
		return err
	}
	if err := s.plugin.SetHistoryLength(ctx, n); err != nil {
		return err
	}
	fmt.Printf("%shistoryLength%s = %d\n", colorCyan, colorReset, n)
	return nil
}

// historySizeField builds the form input editing value.
func historySizeField(value *string) *huh.Input {
	return huh.NewInput().
		Title("History Size").
		Description("Number of files to show in the list").
		Placeholder(strconv.Itoa(recent.DefaultHistoryLength)).
		Value(value).
		Validate(func(s string) error {
			_, err := plugin.ParseHistoryLength(s)
			return err
		})
}

func promptHistoryLength(current int) (int, error) {
	value := strconv.Itoa(current)
	form := huh.NewForm(huh.NewGroup(historySizeField(&value)))
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("prompt cancelled: %w", err)
	}
	return plugin.ParseHistoryLength(value)
}

func printSettings(st plugin.Settings) {
	fmt.Printf("%sSettings for recent files list%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("  %shistoryLength%s = %d\n", colorCyan, colorReset, st.HistoryLength)
	fmt.Printf("  %sfiles%s (%d)\n", colorCyan, colorReset, len(st.Files))
	for _, f := range st.Files {
		fmt.Printf("    %s\n", f)
	}
}
