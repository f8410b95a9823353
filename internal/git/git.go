// Package git finds the repository a project lives in. It uses go-git, so no
// git binary is needed.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/digital-fluid/fluidspec/internal/logging"
	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
)

var logger = logging.OrNop(nil)

// SetLogger sets the logger used for debug output. Nil disables it.
func SetLogger(l *zerolog.Logger) {
	logger = logging.OrNop(l)
}

// openRepo opens the repository containing path, walking up the directory
// tree to find .git. If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logger.Debug().Str("path", path).Msg("opening git repository")

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// RepositoryRoot returns the absolute worktree root of the repository
// containing dir.
func RepositoryRoot(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root, err := filepath.Abs(worktree.Filesystem.Root())
	if err != nil {
		return "", err
	}
	logger.Debug().Str("root", root).Msg("found repository root")
	return root, nil
}

// IsRepository reports whether dir is inside a git repository.
func IsRepository(dir string) bool {
	_, err := openRepo(dir)
	return err == nil
}

// ProjectRoot returns the repository root containing dir, or dir itself
// (made absolute) when it is not inside a repository.
func ProjectRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}

	root, err := RepositoryRoot(dir)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		logger.Debug().Err(err).Msg("ignoring unusable repository")
	}
	return filepath.Abs(dir)
}
