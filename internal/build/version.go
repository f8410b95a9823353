// Package build holds version information set at link time, e.g.
//
//	go build -ldflags "-X github.com/digital-fluid/fluidspec/internal/build.Version=1.2.0"
package build

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}
