// Package pkgroot locates the root directory of an installed template package
// by walking up from a starting directory until it finds a package.json that
// declares the expected package name.
package pkgroot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	// ManifestFile is the package manifest looked for in each directory.
	ManifestFile = "package.json"

	// DefaultIdentity is the package name of the FluidSpec template package.
	DefaultIdentity = "@digital-fluid/fluid-agent-spec"

	// DefaultMaxDepth bounds how many directories are examined.
	DefaultMaxDepth = 10
)

var (
	// ErrNotFound is returned when no matching package root is found within
	// the search bound.
	ErrNotFound = errors.New("package root not found")

	// ErrMalformedManifest is returned by ReadManifest for a manifest that is
	// not valid JSON.
	ErrMalformedManifest = errors.New("malformed package manifest")
)

// Manifest is the subset of package.json the locator cares about.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Locator searches ancestor directories for a package root.
type Locator struct {
	Fs       afero.Fs
	Identity string
	MaxDepth int
	Logger   *zerolog.Logger
}

// Locate is a convenience wrapper using DefaultMaxDepth and no logger.
func Locate(fsys afero.Fs, start, identity string) (string, error) {
	l := &Locator{Fs: fsys, Identity: identity}
	return l.Locate(start)
}

// Locate returns the first directory at or above start whose manifest names
// the locator's identity. Unreadable or malformed manifests are logged and
// treated as non-matches.
func (l *Locator) Locate(start string) (string, error) {
	maxDepth := l.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	dir := filepath.Clean(start)
	for i := 0; i < maxDepth; i++ {
		m, err := ReadManifest(l.Fs, dir)
		switch {
		case err == nil && m.Name == l.Identity:
			return dir, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			l.warn(dir, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: no %s named %q within %d levels of %s",
		ErrNotFound, ManifestFile, l.Identity, maxDepth, start)
}

func (l *Locator) warn(dir string, err error) {
	if l.Logger == nil {
		return
	}
	l.Logger.Warn().Err(err).Str("path", filepath.Join(dir, ManifestFile)).
		Msg("Ignoring unreadable package manifest")
}

// ReadManifest reads and parses the package.json in root.
func ReadManifest(fsys afero.Fs, root string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading package manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedManifest, filepath.Join(root, ManifestFile), err)
	}
	return &m, nil
}

// Resolve joins path elements onto the package root.
func Resolve(root string, elem ...string) string {
	return filepath.Join(append([]string{root}, elem...)...)
}
