// Package version holds build metadata injected with -ldflags.
package version

import "runtime/debug"

// Set at build time:
//
//	go build -ldflags "-X github.com/benvon/healthz-api/internal/version.Version=1.4.2"
var (
	Version = ""
	Commit  = ""
)

// Default is reported when no version is available from the environment or build.
const Default = "1.0.0"

// Resolve returns the build version: the ldflags value, then the main module
// version from build info, then Default.
func Resolve() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Default
}
