package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/digital-fluid/fluidspec/internal/config"
	clierrors "github.com/digital-fluid/fluidspec/internal/errors"
	"github.com/digital-fluid/fluidspec/internal/git"
	"github.com/digital-fluid/fluidspec/internal/installer"
	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/digital-fluid/fluidspec/internal/manifest"
	"github.com/digital-fluid/fluidspec/internal/pkgroot"
	"github.com/digital-fluid/fluidspec/internal/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runEnv is what every command needs: the project, its configuration, a
// logger and the template source.
type runEnv struct {
	projectRoot string
	cfg         *config.Configuration
	log         zerolog.Logger
}

// loadEnv resolves the project root and loads configuration, applying
// persistent flags and the command's own --force flag on top.
func loadEnv(cmd *cobra.Command) (*runEnv, error) {
	if projectDir != "" {
		if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
			return nil, clierrors.DirectoryNotFound(projectDir)
		}
	}
	root, err := git.ProjectRoot(projectDir)
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Prerequisite, "cannot determine project root",
			"Pass the project directory with --project")
	}

	overrides := map[string]interface{}{}
	if templatesDir != "" {
		overrides["source"] = string(source.StrategyPath)
		overrides["base_path"] = templatesDir
	}
	if debug {
		overrides["log_level"] = "debug"
	}
	if f := cmd.Flags().Lookup("force"); f != nil && f.Changed {
		force, _ := cmd.Flags().GetBool("force")
		overrides["force"] = force
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectRoot:       root,
		ProjectConfigPath: configPath,
		Overrides:         overrides,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, configError(err)
	}

	env := &runEnv{projectRoot: root, cfg: cfg, log: newLogger(cmd.ErrOrStderr(), cfg.LogLevel)}
	git.SetLogger(&env.log)
	env.log.Debug().Str("project", root).Str("source", cfg.Source).Msg("loaded configuration")
	return env, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lc := logging.DefaultConfig()
	lc.Output = w
	lc.NoColor = !logging.IsTerminal(w)
	lc.Level = logging.ParseLevel(level)
	return logging.New(lc)
}

// resolveSource picks the template source configured for env.
func (e *runEnv) resolveSource() (*source.Source, error) {
	src, err := source.Resolve(source.Options{
		Strategy:    source.Strategy(e.cfg.Source),
		BasePath:    e.cfg.BasePath,
		PackageName: e.cfg.PackageName,
		SearchFrom:  source.DefaultSearchDirs(),
		Logger:      &e.log,
	})
	if err != nil {
		return nil, e.toCLIError(err, nil)
	}
	return src, nil
}

// toCLIError attaches remediation to the errors the installers return.
func (e *runEnv) toCLIError(err error, src *source.Source) error {
	var cliErr *clierrors.CLIError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &cliErr):
		return cliErr
	case errors.Is(err, source.ErrBasePathRequired):
		cliErr = clierrors.BasePathRequired()
	case errors.Is(err, source.ErrBasePathNotFound):
		cliErr = clierrors.BasePathNotFound(e.cfg.BasePath)
	case errors.Is(err, pkgroot.ErrNotFound):
		cliErr = clierrors.PackageRootNotFound(e.cfg.PackageName)
	case errors.Is(err, installer.ErrTemplatesNotFound) && src != nil:
		cliErr = clierrors.TemplatesNotFound(src.CommandsDir())
	case errors.Is(err, manifest.ErrInvalid):
		return clierrors.InvalidManifest(err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	cliErr.Cause = err
	return cliErr
}

func configError(err error) error {
	var verr *config.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		cliErr := clierrors.NewConfigError(
			fmt.Sprintf("invalid value for %s: %s", verr.Field, verr.Message),
			"Check your config files and FLUIDSPEC_* environment variables",
		)
		cliErr.Cause = err
		return cliErr
	}
	if errors.As(err, &verr) {
		return clierrors.ConfigParseError(verr.FilePath, err)
	}
	return clierrors.Wrap(err, clierrors.Configuration,
		"Check your config files and FLUIDSPEC_* environment variables")
}
