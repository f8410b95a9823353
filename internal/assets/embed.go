// Package assets provides the default template pack compiled into the binary.
// It is used when no template package is configured or found on disk.
package assets

import (
	"embed"

	"github.com/spf13/afero"
)

// TemplateFS embeds the default template pack. Paths mirror an installed
// template package: templates/claude/<template>/ and templates/spec/<category>/.
//
//go:embed all:templates
var TemplateFS embed.FS

// Root is the package root inside the embedded filesystem.
const Root = "."

// FS returns the embedded pack as a read-only afero filesystem.
func FS() afero.Fs {
	return afero.FromIOFS{FS: TemplateFS}
}
