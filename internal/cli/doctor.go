package cli

import (
	"encoding/json"
	"fmt"

	clierrors "github.com/digital-fluid/fluidspec/internal/errors"
	"github.com/digital-fluid/fluidspec/internal/git"
	"github.com/digital-fluid/fluidspec/internal/health"
	"github.com/spf13/cobra"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the template source and the project for problems",
	Long: `Run health checks against the resolved template source and the project:

  - command templates exist and every command.json is valid
  - the base, project and agents spec templates are present
  - the project directory exists
  - every command is installed and up to date

Exits with code 4 when any check fails.`,
	Example: `  fluidspec doctor
  fluidspec doctor --json`,
	GroupID: GroupSetup,
	Args:    noArgs,
	RunE:    runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "print the report as JSON")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	src, err := env.resolveSource()
	if err != nil {
		return err
	}

	report := health.RunHealthChecks(health.Options{
		Source:       src,
		ProjectRoot:  env.projectRoot,
		IsRepository: git.IsRepository,
	})

	out := cmd.OutOrStdout()
	if doctorJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Templates: %s\n\n", src)
		fmt.Fprint(out, health.FormatReport(report))
	}

	if report.Passed {
		return nil
	}
	failed := 0
	for _, c := range report.Checks {
		if !c.Passed {
			failed++
		}
	}
	return clierrors.HealthChecksFailed(failed)
}
