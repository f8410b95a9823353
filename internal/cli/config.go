package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/digital-fluid/fluidspec/internal/config"
	clierrors "github.com/digital-fluid/fluidspec/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create fluidspec configuration",
	Long: `Inspect and create fluidspec configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (FLUIDSPEC_*)
  3. Project config (.fluidspec/config.yml, or .fluidspec/config.json)
  4. User config (~/.config/fluidspec/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  fluidspec config show

  # Create a commented project config
  fluidspec config init`,
	GroupID: GroupConfiguration,
}

var configShowJSON bool

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if configShowJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(env.cfg)
		}

		data, err := yaml.Marshal(env.cfg)
		if err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		fmt.Fprintf(out, "# project: %s\n", env.projectRoot)
		_, err = out.Write(data)
		return err
	},
}

var (
	configInitUser  bool
	configInitForce bool
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file with the defaults",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if configInitUser {
			p, err := config.UserConfigPath()
			if err != nil {
				return clierrors.Wrap(err, clierrors.Configuration)
			}
			path = p
		} else {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			path = config.ProjectConfigPath(env.projectRoot)
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return clierrors.NewConfigError(
				fmt.Sprintf("config already exists at %s", path),
				"Use --force to replace it",
			)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config: created %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "print as JSON")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "write the user config instead of the project config")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "replace an existing config file")
}
