// Package installer runs a full project setup: command templates first, then
// spec files.
package installer

import (
	"errors"
	"fmt"

	"github.com/digital-fluid/fluidspec/internal/commands"
	"github.com/digital-fluid/fluidspec/internal/fsutil"
	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/digital-fluid/fluidspec/internal/source"
	"github.com/digital-fluid/fluidspec/internal/specfiles"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ErrTemplatesNotFound is returned when the source has no command templates
// directory, which means the template package is broken.
var ErrTemplatesNotFound = errors.New("command templates directory not found")

// Reporter receives progress of an install.
type Reporter interface {
	Starting(templatesDir, targetDir string)
	CommandsInstalled(targetDir string, result *commands.InstallResult)
	SpecInstalled(projectRoot string, result *specfiles.Result)
	Finished(result *Result)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) Starting(string, string)                           {}
func (NopReporter) CommandsInstalled(string, *commands.InstallResult) {}
func (NopReporter) SpecInstalled(string, *specfiles.Result)           {}
func (NopReporter) Finished(*Result)                                  {}

// Options configures Init.
type Options struct {
	Source      *source.Source
	Target      afero.Fs // defaults to the OS filesystem
	ProjectRoot string
	Force       bool
	Exclude     []string
	Logger      *zerolog.Logger
	Reporter    Reporter
}

// Result combines the results of both install phases.
type Result struct {
	ProjectRoot string                  `json:"project_root"`
	Source      string                  `json:"source"`
	Commands    *commands.InstallResult `json:"commands"`
	Spec        *specfiles.Result       `json:"spec"`
}

// Init installs command templates into .claude/commands and spec files into
// .fluidspec. Files written by a phase stay on disk if a later phase fails;
// rerunning converges to the same state.
func Init(opts Options) (*Result, error) {
	log := logging.OrNop(opts.Logger)
	if opts.Source == nil {
		opts.Source = source.Embedded()
	}
	if opts.Target == nil {
		opts.Target = afero.NewOsFs()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	templatesDir := opts.Source.CommandsDir()
	if !fsutil.IsDir(opts.Source.Fs, templatesDir) {
		return nil, fmt.Errorf("%w: %s", ErrTemplatesNotFound, templatesDir)
	}

	targetDir := commands.DefaultCommandsDir(opts.ProjectRoot)
	reporter.Starting(templatesDir, targetDir)
	log.Debug().
		Str("source", opts.Source.String()).
		Str("project", opts.ProjectRoot).
		Bool("force", opts.Force).
		Msg("starting install")

	cmdResult, err := commands.InstallTemplates(commands.Options{
		Source:       opts.Source.Fs,
		TemplatesDir: templatesDir,
		Target:       opts.Target,
		TargetDir:    targetDir,
		Force:        opts.Force,
		Exclude:      opts.Exclude,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("installing command templates: %w", err)
	}
	reporter.CommandsInstalled(targetDir, cmdResult)

	specResult, err := specfiles.Install(specfiles.Options{
		Source:      opts.Source.Fs,
		SpecDir:     opts.Source.SpecDir(),
		Target:      opts.Target,
		ProjectRoot: opts.ProjectRoot,
		Force:       opts.Force,
		Exclude:     opts.Exclude,
		Logger:      log,
	})
	if err != nil {
		return nil, fmt.Errorf("installing spec files: %w", err)
	}
	reporter.SpecInstalled(opts.ProjectRoot, specResult)

	result := &Result{
		ProjectRoot: opts.ProjectRoot,
		Source:      opts.Source.String(),
		Commands:    cmdResult,
		Spec:        specResult,
	}
	reporter.Finished(result)
	return result, nil
}
