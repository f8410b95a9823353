package errors

import "fmt"

// Messages for the failures users hit most. Each names the failing path and
// how to get past it.

// TemplatesNotFound is returned when a template source has no command templates.
func TemplatesNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("command templates not found at %s", path),
		"The template package looks incomplete; reinstall it",
		"Or point to a template directory with: fluidspec --templates <dir> init",
	)
}

// PackageRootNotFound is returned when the template package cannot be located.
func PackageRootNotFound(packageName string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("could not locate the %s package", packageName),
		"Install the template package next to fluidspec",
		"Or set base_path in .fluidspec/config.yml (or FLUIDSPEC_BASE_PATH)",
		"Or use the built-in templates with: source: embedded",
	)
}

// BasePathNotFound is returned when the configured base path is not a directory.
func BasePathNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("template base path does not exist: %s", path),
		"Check base_path in your config or the --templates flag",
		"The base path must contain a templates/ directory",
	)
}

// BasePathRequired is returned when source is "path" and no base path is set.
func BasePathRequired() *CLIError {
	return NewConfigError(
		"source is set to \"path\" but no base_path is configured",
		"Set base_path in .fluidspec/config.yml",
		"Or pass --templates <dir>",
	)
}

// ConfigParseError is returned when a configuration file cannot be read.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file %s", path),
		"Check the file for YAML or JSON syntax errors",
		"Run 'fluidspec config show' once the file is fixed to see the effective values",
	)
}

// InvalidManifest is returned for a command.json that cannot be used.
func InvalidManifest(err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"invalid command template",
		"Multi-command manifests need an id and an entry for every command",
		"Entries must be relative paths inside the template directory",
	)
}

// DirectoryNotFound is returned when a required directory does not exist.
func DirectoryNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("directory not found: %s", path),
		"Check that the path is correct",
	)
}

// UnexpectedArguments is returned when a command receives positional arguments.
func UnexpectedArguments(usage string, args []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unexpected arguments: %v", args),
		usage,
		"Run the command with --help to see its flags",
	)
}

// HealthChecksFailed is returned by doctor when any check fails.
func HealthChecksFailed(failed int) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%d health check(s) failed", failed),
		"Run 'fluidspec init' to install missing commands and spec files",
		"Run 'fluidspec commands install --force' to update outdated commands",
	)
}
