// Package health checks a template source and a project for problems that
// would make an install fail or leave it incomplete. Results back the
// 'fluidspec doctor' command.
package health

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/digital-fluid/fluidspec/internal/commands"
	"github.com/digital-fluid/fluidspec/internal/fsutil"
	"github.com/digital-fluid/fluidspec/internal/manifest"
	"github.com/digital-fluid/fluidspec/internal/source"
	"github.com/digital-fluid/fluidspec/internal/specfiles"
	"github.com/spf13/afero"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult `json:"checks"`
	Passed bool          `json:"passed"`
}

// Options selects what to check.
type Options struct {
	Source      *source.Source
	Target      afero.Fs
	ProjectRoot string
	// IsRepository, when set, annotates the project check with whether the
	// project root is inside a git repository.
	IsRepository func(dir string) bool
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(opts Options) *HealthReport {
	if opts.Target == nil {
		opts.Target = afero.NewOsFs()
	}

	report := &HealthReport{Passed: true}
	add := func(c CheckResult) {
		report.Checks = append(report.Checks, c)
		if !c.Passed {
			report.Passed = false
		}
	}

	add(CheckCommandTemplates(opts.Source))
	add(CheckSpecTemplates(opts.Source))
	project := CheckProject(opts.Target, opts.ProjectRoot)
	if project.Passed && opts.IsRepository != nil {
		if opts.IsRepository(opts.ProjectRoot) {
			project.Message += " (git repository)"
		} else {
			project.Message += " (not a git repository)"
		}
	}
	add(project)
	add(CheckInstalledCommands(opts))
	return report
}

// CheckCommandTemplates verifies the source has command templates and that
// every command.json parses.
func CheckCommandTemplates(src *source.Source) CheckResult {
	const name = "Command templates"

	dir := src.CommandsDir()
	if !fsutil.IsDir(src.Fs, dir) {
		return CheckResult{Name: name, Message: fmt.Sprintf("not found at %s", dir)}
	}

	names, err := commands.ListTemplates(src.Fs, dir)
	if err != nil {
		return CheckResult{Name: name, Message: err.Error()}
	}
	if len(names) == 0 {
		return CheckResult{Name: name, Message: fmt.Sprintf("%s has no templates", dir)}
	}

	var manifests int
	for _, n := range names {
		tplDir := filepath.Join(dir, n)
		if !fsutil.PathExists(src.Fs, filepath.Join(tplDir, manifest.FileName)) {
			continue
		}
		if _, err := commands.LoadTemplate(src.Fs, tplDir); err != nil {
			return CheckResult{Name: name, Message: err.Error()}
		}
		manifests++
	}

	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%d templates, %d with a valid command.json", len(names), manifests),
	}
}

// CheckSpecTemplates verifies the source carries every spec file category.
func CheckSpecTemplates(src *source.Source) CheckResult {
	const name = "Spec templates"

	var missing []string
	for _, c := range []specfiles.Category{specfiles.CategoryBase, specfiles.CategoryProject, specfiles.CategoryAgents} {
		if !fsutil.IsDir(src.Fs, filepath.Join(src.SpecDir(), string(c))) {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    name,
			Message: fmt.Sprintf("missing %s under %s", strings.Join(missing, ", "), src.SpecDir()),
		}
	}
	return CheckResult{Name: name, Passed: true, Message: "base, project and agents present"}
}

// CheckProject verifies the project root is an existing directory.
func CheckProject(target afero.Fs, projectRoot string) CheckResult {
	const name = "Project directory"
	if !fsutil.IsDir(target, projectRoot) {
		return CheckResult{Name: name, Message: fmt.Sprintf("%s is not a directory", projectRoot)}
	}
	return CheckResult{Name: name, Passed: true, Message: projectRoot}
}

// CheckInstalledCommands compares installed commands against the source.
// Missing or outdated commands fail the check.
func CheckInstalledCommands(opts Options) CheckResult {
	const name = "Installed commands"

	statuses, err := commands.CheckVersions(commands.Options{
		Source:       opts.Source.Fs,
		TemplatesDir: opts.Source.CommandsDir(),
		Target:       opts.Target,
		TargetDir:    commands.DefaultCommandsDir(opts.ProjectRoot),
	})
	if err != nil {
		return CheckResult{Name: name, Message: err.Error()}
	}

	counts := map[commands.State]int{}
	for _, s := range statuses {
		counts[s.State]++
	}
	msg := fmt.Sprintf("%d current, %d outdated, %d missing",
		counts[commands.StateCurrent]+counts[commands.StateNewer],
		counts[commands.StateOutdated],
		counts[commands.StateMissing])

	return CheckResult{
		Name:    name,
		Passed:  counts[commands.StateOutdated] == 0 && counts[commands.StateMissing] == 0,
		Message: msg,
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder
	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&b, "✗ %s: %s\n", check.Name, check.Message)
		}
	}
	return b.String()
}
