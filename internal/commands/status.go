package commands

import (
	"errors"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/digital-fluid/fluidspec/internal/manifest"
	"github.com/spf13/afero"
)

// CheckVersions compares every command the installer would install against
// what is currently in opts.TargetDir. Templates without a command.json are
// left out, as they are by the installer.
func CheckVersions(opts Options) ([]CommandStatus, error) {
	log := logging.OrNop(opts.Logger)

	names, err := ListTemplates(opts.Source, opts.TemplatesDir)
	if err != nil {
		return nil, err
	}

	var statuses []CommandStatus
	for _, name := range names {
		tpl, err := LoadTemplate(opts.Source, filepath.Join(opts.TemplatesDir, name))
		if errors.Is(err, errNoManifest) {
			log.Debug().Str("template", name).Msg("no command.json, not installable")
			continue
		}
		if err != nil {
			return nil, err
		}

		if tpl.Kind == manifest.Multi {
			for _, entry := range tpl.Entries {
				statuses = append(statuses, checkCommand(opts, CommandID(name, entry.ID), entry.Version))
			}
			continue
		}
		statuses = append(statuses, checkCommand(opts, name, tpl.Version))
	}

	return statuses, nil
}

func checkCommand(opts Options, id, sourceVersion string) CommandStatus {
	dir := filepath.Join(opts.TargetDir, id)
	status := CommandStatus{Name: id, SourceVersion: sourceVersion, Path: dir}

	data, err := afero.ReadFile(opts.Target, filepath.Join(dir, manifest.FileName))
	if err != nil {
		status.State = StateMissing
		return status
	}

	// An unparseable installed manifest reads as an undeclared version.
	installed, _ := manifest.ParseVersion(data)
	status.InstalledVersion = installed
	status.State = CompareVersions(installed, sourceVersion)
	return status
}

// CompareVersions classifies an installed version against a source version.
// Semantic versions are compared numerically; anything else must match
// exactly to count as current.
func CompareVersions(installed, source string) State {
	iv, ierr := semver.NewVersion(installed)
	sv, serr := semver.NewVersion(source)
	if ierr == nil && serr == nil {
		switch iv.Compare(sv) {
		case -1:
			return StateOutdated
		case 1:
			return StateNewer
		default:
			return StateCurrent
		}
	}

	if installed == source {
		return StateCurrent
	}
	return StateOutdated
}
