// Package cli implements the fluidspec command line.
package cli

import (
	"fmt"

	clierrors "github.com/digital-fluid/fluidspec/internal/errors"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupSetup         = "setup"
	GroupConfiguration = "configuration"
)

// Persistent flag values shared by all commands.
var (
	configPath   string
	projectDir   string
	templatesDir string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "fluidspec",
	Short: "Install FluidSpec command templates and spec files into a project",
	Long: `fluidspec sets up a project for spec-driven work with Claude.

It installs command templates into .claude/commands and specification
documents into .fluidspec/spec (base and project) and .fluidspec/agents.
Templates come from the installed @digital-fluid/fluid-agent-spec package,
a directory given with --templates, or the templates built into fluidspec.`,
	Example: `  # Set up the current project
  fluidspec init

  # Refresh installed commands and base specs
  fluidspec init --force

  # Use a local template checkout
  fluidspec --templates ../fluid-agent-spec init`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupSetup, Title: "Setup:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "project config file (default: .fluidspec/config.yml)")
	flags.StringVarP(&projectDir, "project", "p", "", "project root (default: git repository root, else current directory)")
	flags.StringVarP(&templatesDir, "templates", "t", "", "template package directory containing templates/ (implies source: path)")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

// noArgs rejects positional arguments with an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return clierrors.UnexpectedArguments(cmd.UseLine(), args)
	}
	return nil
}

// Execute runs the root command and prints any error to stderr. The returned
// error can be passed to ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.Wrap(err, clierrors.Runtime)
	}
	clierrors.FprintError(rootCmd.ErrOrStderr(), cliErr)
	return cliErr
}
