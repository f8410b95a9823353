// Package commands installs command templates into a project's
// .claude/commands directory and reports on installed versions.
package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options configures an install or a version check.
type Options struct {
	Source       afero.Fs // template package filesystem
	TemplatesDir string   // directory of command template folders on Source
	Target       afero.Fs // project filesystem
	TargetDir    string   // commands directory on Target
	Force        bool     // overwrite existing files
	Exclude      []string // doublestar patterns skipped when copying single-command templates
	Logger       *zerolog.Logger
}

// InstallResult represents the result of installing command templates.
type InstallResult struct {
	TotalCopied       int      `json:"total_copied"`
	TotalSkipped      int      `json:"total_skipped"`
	InstalledCommands []string `json:"installed_commands"`
}

// State is the comparison of an installed command against its template.
type State string

const (
	StateMissing  State = "missing"
	StateOutdated State = "outdated"
	StateCurrent  State = "current"
	StateNewer    State = "newer"
)

// CommandStatus represents version information about one installable command.
type CommandStatus struct {
	Name             string `json:"name"`              // installed command identifier
	InstalledVersion string `json:"installed_version"` // empty if not installed or undeclared
	SourceVersion    string `json:"source_version"`    // version declared by the template
	State            State  `json:"state"`
	Path             string `json:"path"` // installed command directory
}
