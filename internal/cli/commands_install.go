package cli

import (
	"fmt"

	"github.com/digital-fluid/fluidspec/internal/commands"
	clierrors "github.com/digital-fluid/fluidspec/internal/errors"
	"github.com/digital-fluid/fluidspec/internal/fsutil"
	"github.com/digital-fluid/fluidspec/internal/output"
	"github.com/digital-fluid/fluidspec/internal/source"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var installTargetDir string

var commandsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install command templates",
	Long: `Install command templates to .claude/commands/.

Single-command templates are copied as they are. Multi-command templates are
expanded into one <template>-<id> directory per command, each holding a
command.json and a prompt.md.

Existing files are kept unless --force is given.`,
	Example: `  fluidspec commands install
  fluidspec commands install --force
  fluidspec commands install --target ./custom/commands`,
	Args: noArgs,
	RunE: runCommandsInstall,
}

func init() {
	commandsCmd.AddCommand(commandsInstallCmd)
	commandsInstallCmd.Flags().BoolP("force", "f", false, "overwrite existing command files")
	commandsInstallCmd.Flags().StringVar(&installTargetDir, "target", "", "target directory (default: <project>/.claude/commands)")
}

// commandOptions builds installer options for the commands subcommands.
func commandOptions(env *runEnv, src *source.Source) (commands.Options, error) {
	if !fsutil.IsDir(src.Fs, src.CommandsDir()) {
		return commands.Options{}, clierrors.TemplatesNotFound(src.CommandsDir())
	}

	targetDir := installTargetDir
	if targetDir == "" {
		targetDir = commands.DefaultCommandsDir(env.projectRoot)
	}
	return commands.Options{
		Source:       src.Fs,
		TemplatesDir: src.CommandsDir(),
		Target:       afero.NewOsFs(),
		TargetDir:    targetDir,
		Force:        env.cfg.Force,
		Exclude:      env.cfg.Exclude,
		Logger:       &env.log,
	}, nil
}

func runCommandsInstall(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintf(cmd.OutOrStdout(), "Installing command templates to %s...\n", opts.TargetDir)
	result, err := commands.InstallTemplates(opts)
	if err != nil {
		return env.toCLIError(err, src)
	}

	output.PrintCommandsResult(cmd.OutOrStdout(), result)
	return nil
}
