package cli

import (
	"encoding/json"

	"github.com/digital-fluid/fluidspec/internal/installer"
	"github.com/digital-fluid/fluidspec/internal/output"
	"github.com/spf13/cobra"
)

var initJSON bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install command templates and spec files into the project",
	Long: `Install everything a project needs to work with FluidSpec.

This command:
  1. Installs command templates to .claude/commands/
  2. Installs base spec files to .fluidspec/spec/base/ (always refreshed)
  3. Installs project spec templates to .fluidspec/spec/project/,
     renaming *.template.md to *.md
  4. Installs agent files to .fluidspec/agents/ (always refreshed)

Existing command files are kept unless --force is given. Project spec files
are yours once installed: they are never overwritten, even with --force.
Running init again is safe.`,
	Example: `  fluidspec init
  fluidspec init --force
  fluidspec init --json`,
	GroupID: GroupSetup,
	Args:    noArgs,
	RunE:    runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false,
		"overwrite existing command files (project spec files are never overwritten)")
	initCmd.Flags().BoolVar(&initJSON, "json", false, "print the result as JSON")
}

func runInit(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	src, err := env.resolveSource()
	if err != nil {
		return err
	}

	opts := installer.Options{
		Source:      src,
		ProjectRoot: env.projectRoot,
		Force:       env.cfg.Force,
		Exclude:     env.cfg.Exclude,
		Logger:      &env.log,
	}
	if !initJSON {
		opts.Reporter = output.NewTextReporter(cmd.OutOrStdout(), env.cfg.Force)
	}

	result, err := installer.Init(opts)
	if err != nil {
		return env.toCLIError(err, src)
	}

	if initJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return nil
}
