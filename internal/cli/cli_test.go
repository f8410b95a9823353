// Package cli tests the fluidspec commands end to end against temp projects.
// Related: internal/cli/root.go, internal/cli/init.go, internal/cli/env.go
// Tags: cli, init, commands, spec, config, version, exit-codes

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/digital-fluid/fluidspec/internal/commands"
	clierrors "github.com/digital-fluid/fluidspec/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The command tree is package state, so tests that execute it run serially.

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs fluidspec with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	return out.String(), errOut.String(), err
}

// embeddedProject returns a project configured to use the built-in templates.
func embeddedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".fluidspec", "config.yml"), "source: embedded\n")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "fluidspec", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)

	for _, name := range []string{"config", "project", "templates", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s", name)
	}

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "commands", "spec", "config", "doctor", "version"})
	assert.Len(t, rootCmd.Groups(), 2)
}

func TestInitCmd_ForceHelpMentionsProjectSpecs(t *testing.T) {
	flag := initCmd.Flags().Lookup("force")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
	assert.Contains(t, flag.Usage, "project spec files are never overwritten")
	assert.Contains(t, initCmd.Long, "never overwritten, even with --force")
}

func TestInit_EmbeddedTemplates(t *testing.T) {
	project := embeddedProject(t)

	out, _, err := execute(t, "init", "--project", project)
	require.NoError(t, err)

	assert.Contains(t, out, "Creating .claude/commands directory at:")
	assert.Contains(t, out, "Copied: 6 files")
	assert.Contains(t, out, "- /fluidspec-specify")
	assert.Contains(t, out, "- /spec-review")
	assert.Contains(t, out, "You can now use these commands in Claude!")

	assert.FileExists(t, filepath.Join(project, ".claude", "commands", "fluidspec-plan", "prompt.md"))
	assert.FileExists(t, filepath.Join(project, ".fluidspec", "spec", "project", "overview.md"))
	assert.FileExists(t, filepath.Join(project, ".fluidspec", "agents", "agents.md"))

	// A second run keeps everything and suggests --force.
	out, _, err = execute(t, "init", "--project", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped: 6 files (already exist)")
	assert.Contains(t, out, "Tip: Use --force to overwrite existing files")
}

func TestInit_JSON(t *testing.T) {
	project := embeddedProject(t)

	out, _, err := execute(t, "init", "--json", "-p", project)
	require.NoError(t, err)

	var result struct {
		ProjectRoot string                 `json:"project_root"`
		Commands    commands.InstallResult `json:"commands"`
		Spec        map[string]int         `json:"spec"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"fluidspec-specify", "fluidspec-plan", "spec-review"}, result.Commands.InstalledCommands)
	assert.Equal(t, 2, result.Spec["base_copied"])
	assert.Equal(t, 2, result.Spec["project_copied"])
	assert.Equal(t, 1, result.Spec["agents_copied"])
}

func TestInit_TemplatesFlag(t *testing.T) {
	pkg := t.TempDir()
	writeFile(t, filepath.Join(pkg, "templates", "claude", "lint", "command.json"),
		`{"commands":[{"id":"fix","name":"Fix","version":"1.0","description":"d","entry":"fix.md","input_type":"text"}]}`)
	writeFile(t, filepath.Join(pkg, "templates", "claude", "lint", "fix.md"), "Do X")
	writeFile(t, filepath.Join(pkg, "templates", "spec", "project", "goals.template.md"), "goals")
	project := t.TempDir()

	_, _, err := execute(t, "--templates", pkg, "init", "-p", project)
	require.NoError(t, err)

	cmdDir := filepath.Join(project, ".claude", "commands", "lint-fix")
	assert.Equal(t,
		"{\n  \"name\": \"Fix\",\n  \"version\": \"1.0\",\n  \"description\": \"d\",\n  \"entry\": \"prompt.md\",\n  \"input_type\": \"text\"\n}",
		readFile(t, filepath.Join(cmdDir, "command.json")))
	assert.Equal(t, "Do X", readFile(t, filepath.Join(cmdDir, "prompt.md")))
	assert.Equal(t, "goals", readFile(t, filepath.Join(project, ".fluidspec", "spec", "project", "goals.md")))
}

func TestInit_ForceKeepsProjectSpecs(t *testing.T) {
	project := embeddedProject(t)
	_, _, err := execute(t, "init", "-p", project)
	require.NoError(t, err)

	overview := filepath.Join(project, ".fluidspec", "spec", "project", "overview.md")
	prompt := filepath.Join(project, ".claude", "commands", "spec-review", "prompt.md")
	writeFile(t, overview, "my overview")
	writeFile(t, prompt, "my prompt")

	out, stderr, err := execute(t, "init", "--force", "-p", project)
	require.NoError(t, err)

	assert.Equal(t, "my overview", readFile(t, overview))
	assert.NotEqual(t, "my prompt", readFile(t, prompt))
	assert.Equal(t, 1, strings.Count(out+stderr, "not overwritten, even with --force"))
}

func TestExecute_Errors(t *testing.T) {
	emptyPkg := t.TempDir()

	tests := map[string]struct {
		args         []string
		wantExit     int
		wantCategory clierrors.ErrorCategory
		wantStderr   string
	}{
		"missing command templates": {
			args:         []string{"--templates", emptyPkg, "init"},
			wantExit:     ExitMissingDependencies,
			wantCategory: clierrors.Prerequisite,
			wantStderr:   "command templates not found",
		},
		"base path does not exist": {
			args:         []string{"--templates", filepath.Join(emptyPkg, "nope"), "init"},
			wantExit:     ExitFailure,
			wantCategory: clierrors.Configuration,
			wantStderr:   "template base path does not exist",
		},
		"unexpected argument": {
			args:         []string{"init", "extra"},
			wantExit:     ExitInvalidArguments,
			wantCategory: clierrors.Argument,
			wantStderr:   "unexpected arguments",
		},
		"unknown flag": {
			args:         []string{"init", "--bogus"},
			wantExit:     ExitInvalidArguments,
			wantCategory: clierrors.Argument,
			wantStderr:   "unknown flag",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			args := append(tt.args, "--project", t.TempDir())
			_, stderr, err := execute(t, args...)
			require.Error(t, err)

			assert.Equal(t, tt.wantExit, ExitCode(err))
			cliErr := clierrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, tt.wantCategory, cliErr.Category)
			assert.Contains(t, stderr, tt.wantStderr)
			assert.Contains(t, stderr, "To fix this:")
		})
	}
}

func TestExecute_MissingProjectDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, stderr, err := execute(t, "init", "--project", missing)
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
	assert.Contains(t, stderr, "directory not found: "+missing)
	assert.NoDirExists(t, missing)
}

func TestExecute_InvalidConfig(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".fluidspec", "config.yml"), "source: git\n")

	_, stderr, err := execute(t, "config", "show", "-p", project)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stderr, "invalid value for source")
}

func TestCommandsInstallAndStatus(t *testing.T) {
	project := embeddedProject(t)

	out, _, err := execute(t, "commands", "status", "--json", "-p", project)
	require.NoError(t, err)
	var before []commands.CommandStatus
	require.NoError(t, json.Unmarshal([]byte(out), &before))
	require.Len(t, before, 3)
	for _, s := range before {
		assert.Equal(t, commands.StateMissing, s.State, s.Name)
	}

	out, _, err = execute(t, "commands", "install", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Installing command templates to")
	assert.Contains(t, out, "Copied: 6 files")
	assert.NoDirExists(t, filepath.Join(project, ".fluidspec", "spec"))

	out, _, err = execute(t, "commands", "status", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "/fluidspec-plan")
	assert.Contains(t, out, "current")
	assert.NotContains(t, out, "can be updated")
}

func TestDoctor(t *testing.T) {
	project := embeddedProject(t)

	out, _, err := execute(t, "doctor", "-p", project)
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
	assert.Contains(t, out, "Templates: embedded templates")
	assert.Contains(t, out, "✓ Command templates:")
	assert.Contains(t, out, "git repository)")
	assert.Contains(t, out, "✗ Installed commands: 0 current, 0 outdated, 3 missing")

	_, _, err = execute(t, "init", "-p", project)
	require.NoError(t, err)

	out, _, err = execute(t, "doctor", "--json", "-p", project)
	require.NoError(t, err)
	var report struct {
		Passed bool `json:"passed"`
		Checks []struct {
			Name   string `json:"name"`
			Passed bool   `json:"passed"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Passed)
	assert.Len(t, report.Checks, 4)
}

func TestCommandsInstall_Target(t *testing.T) {
	project := embeddedProject(t)
	target := filepath.Join(t.TempDir(), "custom")

	_, _, err := execute(t, "commands", "install", "--target", target, "-p", project)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(target, "spec-review", "command.json"))
	assert.NoDirExists(t, filepath.Join(project, ".claude"))
}

func TestSpecInstall(t *testing.T) {
	project := embeddedProject(t)

	out, _, err := execute(t, "spec", "install", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Base files copied: 2")
	assert.Contains(t, out, "Project templates copied: 2")
	assert.NoDirExists(t, filepath.Join(project, ".claude"))

	out, _, err = execute(t, "spec", "install", "--force", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Project templates skipped (existing): 2")
	assert.Contains(t, out, "even with --force")
}

func TestConfigShow(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".fluidspec", "config.yml"), "exclude:\n  - \"*.bak\"\n")

	out, _, err := execute(t, "config", "show", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "source: auto")
	assert.Contains(t, out, "*.bak")

	out, _, err = execute(t, "config", "show", "--json", "--debug", "-p", project)
	require.NoError(t, err)
	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "debug", cfg["log_level"])
}

func TestConfigInit(t *testing.T) {
	project := t.TempDir()
	path := filepath.Join(project, ".fluidspec", "config.yml")

	out, _, err := execute(t, "config", "init", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Config: created")
	assert.Contains(t, readFile(t, path), "source: auto")

	_, _, err = execute(t, "config", "init", "-p", project)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config already exists")

	_, _, err = execute(t, "config", "init", "--force", "-p", project)
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	project := embeddedProject(t)

	out, _, err := execute(t, "version", "--plain", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "fluidspec dev\n")
	assert.Contains(t, out, "templates: embedded templates\n")

	out, _, err = execute(t, "version", "-p", project)
	require.NoError(t, err)
	assert.Contains(t, out, "development build")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":           {err: nil, want: ExitSuccess},
		"plain error":   {err: errors.New("boom"), want: ExitFailure},
		"argument":      {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"prerequisite":  {err: clierrors.TemplatesNotFound("/x"), want: ExitMissingDependencies},
		"configuration": {err: clierrors.NewConfigError("bad"), want: ExitFailure},
		"runtime":       {err: clierrors.NewRuntimeError("bad"), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
