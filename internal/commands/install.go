package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/digital-fluid/fluidspec/internal/fsutil"
	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/digital-fluid/fluidspec/internal/manifest"
	"github.com/spf13/afero"
)

// DefaultCommandsDir returns the commands directory of a project.
func DefaultCommandsDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".claude", "commands")
}

// CommandID returns the installed identifier of an expanded command.
func CommandID(templateName, entryID string) string {
	return templateName + "-" + entryID
}

var errNoManifest = errors.New("no command.json found")

// ListTemplates returns the names of the template directories under dir in
// lexical order. Plain files are ignored.
func ListTemplates(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// LoadTemplate reads and parses the command.json of the template directory dir.
func LoadTemplate(fsys afero.Fs, dir string) (*manifest.Template, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, manifest.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errNoManifest
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Join(dir, manifest.FileName), err)
	}

	tpl, err := manifest.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", filepath.Base(dir), err)
	}
	return tpl, nil
}

// InstallTemplates installs every command template found in opts.TemplatesDir
// into opts.TargetDir. Single-command templates are mirrored under their
// directory name; multi-command templates are expanded into one directory per
// entry holding a generated command.json and the entry's prompt as prompt.md.
// Existing files are only replaced when opts.Force is set.
func InstallTemplates(opts Options) (*InstallResult, error) {
	log := logging.OrNop(opts.Logger)

	if err := fsutil.EnsureDir(opts.Target, opts.TargetDir); err != nil {
		return nil, err
	}

	names, err := ListTemplates(opts.Source, opts.TemplatesDir)
	if err != nil {
		return nil, err
	}

	copier := fsutil.NewCopier(opts.Source, opts.Target, log)
	result := &InstallResult{InstalledCommands: []string{}}

	for _, name := range names {
		srcDir := filepath.Join(opts.TemplatesDir, name)

		tpl, err := LoadTemplate(opts.Source, srcDir)
		if errors.Is(err, errNoManifest) {
			log.Warn().Str("template", name).Msg("Skipping template: no command.json found")
			continue
		}
		if err != nil {
			return nil, err
		}

		switch tpl.Kind {
		case manifest.Multi:
			for _, entry := range tpl.Entries {
				copied, skipped, err := installEntry(opts, copier, srcDir, name, entry)
				if err != nil {
					return nil, err
				}
				result.TotalCopied += copied
				result.TotalSkipped += skipped
				result.InstalledCommands = append(result.InstalledCommands, CommandID(name, entry.ID))
			}
		default:
			counts, err := copier.CopyTree(srcDir, filepath.Join(opts.TargetDir, name), fsutil.Policy{
				Overwrite: opts.Force,
				Exclude:   opts.Exclude,
			})
			if err != nil {
				return nil, fmt.Errorf("installing template %s: %w", name, err)
			}
			result.TotalCopied += counts.Copied
			result.TotalSkipped += counts.Skipped
			result.InstalledCommands = append(result.InstalledCommands, name)
		}
		log.Debug().Str("template", name).Str("kind", tpl.Kind.String()).Msg("installed template")
	}

	return result, nil
}

// installEntry writes the generated command.json and copies the prompt of a
// single multi-command entry. Each file is decided on its own.
func installEntry(opts Options, copier *fsutil.Copier, srcDir, templateName string, entry manifest.Entry) (copied, skipped int, err error) {
	cmdDir := filepath.Join(opts.TargetDir, CommandID(templateName, entry.ID))
	if err := fsutil.EnsureDir(opts.Target, cmdDir); err != nil {
		return 0, 0, err
	}

	descPath := filepath.Join(cmdDir, manifest.FileName)
	if opts.Force || !fsutil.PathExists(opts.Target, descPath) {
		data, err := entry.Descriptor().Marshal()
		if err != nil {
			return 0, 0, err
		}
		if err := afero.WriteFile(opts.Target, descPath, data, 0o644); err != nil {
			return 0, 0, fmt.Errorf("writing %s: %w", descPath, err)
		}
		copied++
	} else {
		skipped++
	}

	promptSrc := filepath.Join(srcDir, filepath.FromSlash(entry.Entry))
	promptDst := filepath.Join(cmdDir, manifest.PromptFile)
	ok, err := copier.CopyFile(promptSrc, promptDst, opts.Force)
	if err != nil {
		return 0, 0, fmt.Errorf("installing %s: %w", CommandID(templateName, entry.ID), err)
	}
	if ok {
		copied++
	} else {
		skipped++
	}

	return copied, skipped, nil
}
