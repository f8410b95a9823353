// Package fsutil provides the filesystem primitives the installers are built on.
// Every helper works against an afero.Fs so the same code copies from the real
// disk, from the embedded template pack, or between in-memory trees in tests.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// EnsureDir creates path and any missing parents. It is a no-op when the
// directory already exists.
func EnsureDir(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(path, dirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// PathExists reports whether path exists on fsys.
func PathExists(fsys afero.Fs, path string) bool {
	ok, err := afero.Exists(fsys, path)
	return err == nil && ok
}

// IsDir reports whether path exists on fsys and is a directory.
func IsDir(fsys afero.Fs, path string) bool {
	ok, err := afero.IsDir(fsys, path)
	return err == nil && ok
}

// copyFile streams src from one filesystem to dst on another, creating the
// destination's parent directory. The destination always ends up owner-writable
// so a later overwrite of a file that came from a read-only source succeeds.
func copyFile(srcFs afero.Fs, src string, dstFs afero.Fs, dst string) error {
	in, err := srcFs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	perm := filePerm
	if info, err := in.Stat(); err == nil && info.Mode().Perm() != 0 {
		perm = info.Mode().Perm() | 0o200
	}

	if err := EnsureDir(dstFs, filepath.Dir(dst)); err != nil {
		return err
	}

	out, err := dstFs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
