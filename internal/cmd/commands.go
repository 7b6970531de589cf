package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:     "commands",
	Short:   "List registered commands",
	GroupID: groupPicker,
	Args:    cobra.NoArgs,
	RunE:    runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func runCommands(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), nil)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, c := range s.plugin.Commands() {
		fmt.Printf("%s%s%s  %s\n", colorCyan, c.ID, colorReset, c.Name)
	}
	return nil
}
