package assets

import (
	"testing"

	"github.com/digital-fluid/fluidspec/internal/manifest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateFS_ContainsLayout(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{
		"templates/claude",
		"templates/spec/base",
		"templates/spec/project",
		"templates/spec/agents",
	} {
		entries, err := TemplateFS.ReadDir(dir)
		require.NoError(t, err, "should read %s", dir)
		assert.NotEmpty(t, entries, "%s should not be empty", dir)
	}
}

func commandTemplateNames(t *testing.T) []string {
	t.Helper()
	entries, err := afero.ReadDir(FS(), "templates/claude")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestFS_CommandTemplates(t *testing.T) {
	t.Parallel()

	names := commandTemplateNames(t)
	assert.Contains(t, names, "fluidspec")
	assert.Contains(t, names, "spec-review")
}

func TestFS_ManifestsParse(t *testing.T) {
	t.Parallel()

	for _, name := range commandTemplateNames(t) {
		data, err := afero.ReadFile(FS(), "templates/claude/"+name+"/"+manifest.FileName)
		require.NoError(t, err, "%s should have a command.json", name)

		_, err = manifest.Parse(data)
		assert.NoError(t, err, "%s command.json should parse", name)
	}
}

func TestFS_ReadsThroughAfero(t *testing.T) {
	t.Parallel()

	fsys := FS()
	ok, err := afero.DirExists(fsys, "templates/spec/project")
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := afero.ReadDir(fsys, "templates/spec/project")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "overview.template.md")
}
