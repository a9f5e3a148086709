// Package version provides build metadata and version information.
package version

import (
	"fmt"
	"runtime"
)

var (
	// BuildVersion is the semantic version of the build
	BuildVersion = "0.1.0"

	// BuildCommit is set with -ldflags at release time
	BuildCommit = "unknown"

	// BuildDate is set with -ldflags at release time
	BuildDate = "unknown"

	// GoVersion is the toolchain the binary was built with
	GoVersion = runtime.Version()
)

// String returns a one-line version banner for kmapmcp.
func String() string {
	return fmt.Sprintf("kmapmcp version %s (%s) built on %s with %s",
		BuildVersion, BuildCommit, BuildDate, GoVersion)
}

// UserAgent returns the User-Agent sent to the map service.
func UserAgent() string {
	return "kmapmcp/" + BuildVersion
}

// Info returns the build metadata as log attributes.
func Info() map[string]string {
	return map[string]string{
		"version":    BuildVersion,
		"commit":     BuildCommit,
		"build_date": BuildDate,
		"go_version": GoVersion,
	}
}
