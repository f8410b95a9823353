// Package specfiles installs the specification documents of a template
// package into a project's .fluidspec directory.
//
// Three categories are installed, each with its own policy:
//
//	base     -> .fluidspec/spec/base     always overwritten
//	project  -> .fluidspec/spec/project  never overwritten; *.template.md becomes *.md
//	agents   -> .fluidspec/agents        always overwritten
//
// The project category is owned by the user once installed, so Force does not
// apply to it.
package specfiles

import (
	"path/filepath"
	"strings"

	"github.com/digital-fluid/fluidspec/internal/fsutil"
	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// TemplateSuffix marks project spec files that are renamed on install.
const TemplateSuffix = ".template.md"

// Category names a group of spec files sharing an install policy.
type Category string

const (
	CategoryBase    Category = "base"
	CategoryProject Category = "project"
	CategoryAgents  Category = "agents"
)

// Options configures a spec install.
type Options struct {
	Source      afero.Fs // template package filesystem
	SpecDir     string   // templates/spec on Source
	Target      afero.Fs // project filesystem
	ProjectRoot string
	Force       bool
	Exclude     []string
	Logger      *zerolog.Logger
}

// Result holds per-category counts of an install.
type Result struct {
	BaseCopied     int `json:"base_copied"`
	ProjectCopied  int `json:"project_copied"`
	ProjectSkipped int `json:"project_skipped"`
	AgentsCopied   int `json:"agents_copied"`
}

// SpecDir returns the spec directory of a project.
func SpecDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".fluidspec", "spec")
}

// AgentsDir returns the agents directory of a project.
func AgentsDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".fluidspec", "agents")
}

// TargetDir returns where a category is installed in a project.
func TargetDir(projectRoot string, c Category) string {
	if c == CategoryAgents {
		return AgentsDir(projectRoot)
	}
	return filepath.Join(SpecDir(projectRoot), string(c))
}

// StripTemplateSuffix turns "name.template.md" into "name.md". Other names are
// returned unchanged.
func StripTemplateSuffix(name string) string {
	if base, ok := strings.CutSuffix(name, TemplateSuffix); ok {
		return base + ".md"
	}
	return name
}

// Install copies the base, project and agents categories from opts.SpecDir
// into the project. A missing spec directory or category is logged and
// leaves the corresponding counts at zero.
func Install(opts Options) (*Result, error) {
	log := logging.OrNop(opts.Logger)
	result := &Result{}

	if !fsutil.IsDir(opts.Source, opts.SpecDir) {
		log.Warn().Str("path", opts.SpecDir).Msg("Spec templates directory not found, skipping spec installation")
		return result, nil
	}

	if err := fsutil.EnsureDir(opts.Target, SpecDir(opts.ProjectRoot)); err != nil {
		return nil, err
	}

	copier := fsutil.NewCopier(opts.Source, opts.Target, log)

	base, err := installCategory(opts, copier, log, CategoryBase, fsutil.Policy{Overwrite: true, Exclude: opts.Exclude})
	if err != nil {
		return nil, err
	}
	result.BaseCopied = base.Copied

	project, err := installCategory(opts, copier, log, CategoryProject, fsutil.Policy{
		Overwrite: false,
		Rename:    StripTemplateSuffix,
		Exclude:   opts.Exclude,
	})
	if err != nil {
		return nil, err
	}
	result.ProjectCopied = project.Copied
	result.ProjectSkipped = project.Skipped

	agents, err := installCategory(opts, copier, log, CategoryAgents, fsutil.Policy{Overwrite: true, Exclude: opts.Exclude})
	if err != nil {
		return nil, err
	}
	result.AgentsCopied = agents.Copied

	return result, nil
}

func installCategory(opts Options, copier *fsutil.Copier, log *zerolog.Logger, c Category, policy fsutil.Policy) (fsutil.Counts, error) {
	src := filepath.Join(opts.SpecDir, string(c))
	if !fsutil.IsDir(opts.Source, src) {
		log.Warn().
			Str("category", string(c)).
			Str("path", src).
			Msg("Spec template category not found, skipping")
		return fsutil.Counts{}, nil
	}

	dst := TargetDir(opts.ProjectRoot, c)
	if err := fsutil.EnsureDir(opts.Target, dst); err != nil {
		return fsutil.Counts{}, err
	}
	return copier.CopyTree(src, dst, policy)
}
