package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/recents/internal/picker"
)

var (
	listNames bool
	listFull  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the recent files list",
	Long: `Print the list the picker would show, most recent first.

Printing does not change the remembered list.`,
	GroupID: groupPicker,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listNames, "names", false, "print display names (extension removed)")
	listCmd.Flags().BoolVar(&listFull, "full", false, "do not truncate long paths")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	width := 0
	if !listFull && isTerminal() {
		width = terminalWidth()
	}
	for _, p := range s.plugin.Candidates(ctx) {
		line := p
		if listNames {
			line = picker.DisplayName(line)
		}
		if width > 0 {
			line = picker.TruncatePath(picker.CleanName(line), width)
		}
		fmt.Println(line)
	}
	return nil
}
