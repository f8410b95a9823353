// Package source decides where template packages are read from: an explicit
// base path, an installed package located on disk, or the pack embedded in
// the binary.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/digital-fluid/fluidspec/internal/assets"
	"github.com/digital-fluid/fluidspec/internal/fsutil"
	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/digital-fluid/fluidspec/internal/pkgroot"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Strategy selects how the template source is resolved.
type Strategy string

const (
	StrategyAuto     Strategy = "auto"
	StrategyPath     Strategy = "path"
	StrategyPackage  Strategy = "package"
	StrategyEmbedded Strategy = "embedded"
)

// Kind reports where a resolved source lives.
type Kind string

const (
	KindPath     Kind = "path"
	KindPackage  Kind = "package"
	KindEmbedded Kind = "embedded"
)

var (
	// ErrBasePathRequired is returned by the path strategy without a base path.
	ErrBasePathRequired = errors.New("base path is required")

	// ErrBasePathNotFound is returned when the configured base path is not a
	// directory.
	ErrBasePathNotFound = errors.New("base path not found")

	// ErrUnknownStrategy is returned for a strategy name that is not recognized.
	ErrUnknownStrategy = errors.New("unknown source strategy")
)

// Source is a resolved template package.
type Source struct {
	Fs   afero.Fs // read-only
	Root string   // package root on Fs
	Kind Kind
}

// CommandsDir returns the command templates directory of the package.
func (s *Source) CommandsDir() string {
	return pkgroot.Resolve(s.Root, "templates", "claude")
}

// SpecDir returns the spec templates directory of the package.
func (s *Source) SpecDir() string {
	return pkgroot.Resolve(s.Root, "templates", "spec")
}

// String describes the source for messages.
func (s *Source) String() string {
	if s.Kind == KindEmbedded {
		return "embedded templates"
	}
	return s.Root
}

// Embedded returns the template pack compiled into the binary.
func Embedded() *Source {
	return &Source{Fs: assets.FS(), Root: assets.Root, Kind: KindEmbedded}
}

// Options configures Resolve.
type Options struct {
	Strategy    Strategy
	BasePath    string
	PackageName string   // identity matched by the package locator
	SearchFrom  []string // directories the locator starts from, in order
	Fs          afero.Fs // disk filesystem; defaults to the OS
	Logger      *zerolog.Logger
}

// Resolve picks the template source according to opts.Strategy.
func Resolve(opts Options) (*Source, error) {
	log := logging.OrNop(opts.Logger)
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.PackageName == "" {
		opts.PackageName = pkgroot.DefaultIdentity
	}

	switch opts.Strategy {
	case StrategyPath:
		if opts.BasePath == "" {
			return nil, ErrBasePathRequired
		}
		return fromPath(opts)

	case StrategyPackage:
		return locate(opts, log)

	case StrategyEmbedded:
		return Embedded(), nil

	case StrategyAuto, "":
		if opts.BasePath != "" {
			return fromPath(opts)
		}
		src, err := locate(opts, log)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, pkgroot.ErrNotFound) {
			return nil, err
		}
		log.Debug().Str("package", opts.PackageName).Msg("template package not found, using embedded templates")
		return Embedded(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
	}
}

func fromPath(opts Options) (*Source, error) {
	root, err := filepath.Abs(opts.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolving base path %s: %w", opts.BasePath, err)
	}
	if !fsutil.IsDir(opts.Fs, root) {
		return nil, fmt.Errorf("%w: %s", ErrBasePathNotFound, root)
	}
	return &Source{Fs: afero.NewReadOnlyFs(opts.Fs), Root: root, Kind: KindPath}, nil
}

func locate(opts Options, log *zerolog.Logger) (*Source, error) {
	locator := &pkgroot.Locator{Fs: opts.Fs, Identity: opts.PackageName, Logger: log}
	for _, dir := range opts.SearchFrom {
		if dir == "" {
			continue
		}
		root, err := locator.Locate(dir)
		if errors.Is(err, pkgroot.ErrNotFound) {
			log.Debug().Str("from", dir).Msg("template package not found")
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", root).Msg("located template package")
		return &Source{Fs: afero.NewReadOnlyFs(opts.Fs), Root: root, Kind: KindPackage}, nil
	}
	return nil, fmt.Errorf("%w: %s", pkgroot.ErrNotFound, opts.PackageName)
}

// DefaultSearchDirs returns the directory of the running executable followed
// by the working directory.
func DefaultSearchDirs() []string {
	var dirs []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dirs = append(dirs, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}
