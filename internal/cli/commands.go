package cli

import (
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:     "commands",
	Short:   "Manage command templates",
	Long:    `Install command templates into .claude/commands and check installed versions.`,
	GroupID: GroupSetup,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
