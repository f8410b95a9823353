package cli

import (
	"github.com/digital-fluid/fluidspec/internal/output"
	"github.com/digital-fluid/fluidspec/internal/specfiles"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var specCmd = &cobra.Command{
	Use:     "spec",
	Short:   "Manage spec files",
	GroupID: GroupSetup,
}

var specInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install spec files into .fluidspec",
	Long: `Install spec files without touching .claude/commands.

  base     -> .fluidspec/spec/base     always overwritten
  project  -> .fluidspec/spec/project  never overwritten, *.template.md becomes *.md
  agents   -> .fluidspec/agents        always overwritten

--force does not change any of these policies; it only adds a note when
existing project files were kept.`,
	Args: noArgs,
	RunE: runSpecInstall,
}

func init() {
	rootCmd.AddCommand(specCmd)
	specCmd.AddCommand(specInstallCmd)
	specInstallCmd.Flags().BoolP("force", "f", false, "accepted for symmetry with init; project spec files are never overwritten")
}

func runSpecInstall(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	src, err := env.resolveSource()
	if err != nil {
		return err
	}

	result, err := specfiles.Install(specfiles.Options{
		Source:      src.Fs,
		SpecDir:     src.SpecDir(),
		Target:      afero.NewOsFs(),
		ProjectRoot: env.projectRoot,
		Force:       env.cfg.Force,
		Exclude:     env.cfg.Exclude,
		Logger:      &env.log,
	})
	if err != nil {
		return env.toCLIError(err, src)
	}

	output.PrintSpecResult(cmd.OutOrStdout(), env.projectRoot, result, env.cfg.Force)
	return nil
}
