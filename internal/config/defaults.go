package config

import "github.com/digital-fluid/fluidspec/internal/pkgroot"

// GetDefaults returns the default value of every configuration key.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"source":       "auto",
		"base_path":    "",
		"package_name": pkgroot.DefaultIdentity,
		"force":        false,
		"exclude":      []string{},
		"log_level":    "info",
	}
}

// GetDefaultConfigTemplate returns a commented config file holding the defaults.
func GetDefaultConfigTemplate() string {
	return `# FluidSpec configuration
# Precedence: defaults < user config < project config < FLUIDSPEC_* env < flags

# Where templates come from: auto | path | package | embedded
#   auto      base_path if set, else the installed package, else built-in templates
source: auto

# Template package root (contains templates/). Used by source: path and auto.
base_path: ""

# package.json name of the template package
package_name: "` + pkgroot.DefaultIdentity + `"

# Overwrite installed command and base spec files by default.
# Project spec files (.fluidspec/spec/project) are never overwritten.
force: false

# Template files never installed (doublestar patterns, relative to each template directory)
exclude: []

# debug | info | warn | error
log_level: info
`
}
