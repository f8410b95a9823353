package cli

import (
	"encoding/json"

	"github.com/digital-fluid/fluidspec/internal/commands"
	"github.com/digital-fluid/fluidspec/internal/output"
	"github.com/spf13/cobra"
)

var statusJSON bool

var commandsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Compare installed commands with the available templates",
	Long: `Show every command the templates provide, the version installed in
.claude/commands and whether it is missing, outdated, current or newer than
the template. Versions are compared as semantic versions when both parse.`,
	Example: `  fluidspec commands status
  fluidspec commands status --json`,
	Args: noArgs,
	RunE: runCommandsStatus,
}

func init() {
	commandsCmd.AddCommand(commandsStatusCmd)
	commandsStatusCmd.Flags().BoolVar(&statusJSON, "json", false, "print the report as JSON")
}

func runCommandsStatus(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	src, err := env.resolveSource()
	if err != nil {
		return err
	}
	opts, err := commandOptions(env, src)
	if err != nil {
		return err
	}

	statuses, err := commands.CheckVersions(opts)
	if err != nil {
		return env.toCLIError(err, src)
	}

	if statusJSON {
		if statuses == nil {
			statuses = []commands.CommandStatus{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}
	output.PrintCommandStatus(cmd.OutOrStdout(), statuses)
	return nil
}
