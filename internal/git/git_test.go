package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolved evaluates symlinks so temp dirs compare equal on macOS.
func resolved(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return p
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := resolved(t, t.TempDir())
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestRepositoryRoot(t *testing.T) {
	t.Parallel()

	repo := initRepo(t)
	nested := filepath.Join(repo, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	tests := map[string]struct {
		dir string
	}{
		"at root":    {dir: repo},
		"nested dir": {dir: nested},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			root, err := RepositoryRoot(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, repo, root)
		})
	}
}

func TestRepositoryRoot_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := RepositoryRoot(t.TempDir())
	assert.ErrorIs(t, err, git.ErrRepositoryNotExists)
}

func TestIsRepository(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRepository(initRepo(t)))
	assert.False(t, IsRepository(t.TempDir()))
}

func TestProjectRoot(t *testing.T) {
	t.Parallel()

	repo := initRepo(t)
	nested := filepath.Join(repo, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, err := ProjectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, repo, root)

	plain := resolved(t, t.TempDir())
	root, err = ProjectRoot(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, root)
}
