package output

import (
	"io"

	"github.com/digital-fluid/fluidspec/internal/commands"
	"github.com/digital-fluid/fluidspec/internal/installer"
	"github.com/digital-fluid/fluidspec/internal/specfiles"
)

// TextReporter prints install progress for people.
type TextReporter struct {
	Out io.Writer
	// Force is the --force setting of the run, used to explain skipped project files.
	Force bool
}

var _ installer.Reporter = (*TextReporter)(nil)

// NewTextReporter creates a TextReporter writing to out.
func NewTextReporter(out io.Writer, force bool) *TextReporter {
	return &TextReporter{Out: out, Force: force}
}

func (r *TextReporter) Starting(templatesDir, targetDir string) {
	PrintPath(r.Out, "Creating .claude/commands directory at:", targetDir)
	PrintPath(r.Out, "Processing command templates from:", templatesDir)
}

func (r *TextReporter) CommandsInstalled(_ string, result *commands.InstallResult) {
	PrintCommandsResult(r.Out, result)
}

func (r *TextReporter) SpecInstalled(projectRoot string, result *specfiles.Result) {
	PrintSpecResult(r.Out, projectRoot, result, r.Force)
}

func (r *TextReporter) Finished(*installer.Result) {
	PrintHeading(r.Out, "You can now use these commands in Claude!")
}

// PrintCommandsResult prints the counts and the commands of a command install.
func PrintCommandsResult(out io.Writer, result *commands.InstallResult) {
	io.WriteString(out, "\n")
	PrintSuccess(out, "Command templates initialized successfully!")
	PrintDetail(out, "Copied: %d files", result.TotalCopied)
	if result.TotalSkipped > 0 {
		PrintDetail(out, "Skipped: %d files (already exist)", result.TotalSkipped)
		PrintTip(out, "Use --force to overwrite existing files")
	}

	if len(result.InstalledCommands) == 0 {
		return
	}
	PrintHeading(out, "Available commands:")
	for _, cmd := range result.InstalledCommands {
		PrintDetail(out, "- %s", cyan("/"+cmd))
	}
}

// PrintSpecResult prints per-category counts of a spec install.
func PrintSpecResult(out io.Writer, projectRoot string, result *specfiles.Result, force bool) {
	PrintHeading(out, "Spec files:")
	PrintDetail(out, "Base files copied: %d (overwritten if existed) %s",
		result.BaseCopied, dim(specfiles.TargetDir(projectRoot, specfiles.CategoryBase)))
	PrintDetail(out, "Project templates copied: %d %s",
		result.ProjectCopied, dim(specfiles.TargetDir(projectRoot, specfiles.CategoryProject)))
	if result.ProjectSkipped > 0 {
		PrintDetail(out, "Project templates skipped (existing): %d", result.ProjectSkipped)
		if force {
			PrintDetail(out, "Note: Project spec files are not overwritten, even with --force.")
		}
	}
	PrintDetail(out, "Agent files copied: %d (overwritten if existed) %s",
		result.AgentsCopied, dim(specfiles.TargetDir(projectRoot, specfiles.CategoryAgents)))
}
