package version

import (
	"fmt"
	"runtime"
)

// Build information, set via ldflags during build
var (
	// Version is the release version of the service
	Version = "dev"

	// GitCommit is the git commit hash this binary was built from
	GitCommit = "unknown"

	// BuildDate is the date this binary was built
	BuildDate = "unknown"

	// GoVersion is the version of Go this was compiled with
	GoVersion = runtime.Version()
)

// GetVersion returns the current version string
func GetVersion() string {
	if Version == "dev" && len(GitCommit) >= 8 {
		return fmt.Sprintf("dev-%s", GitCommit[:8])
	}
	return Version
}

// GetFullVersion returns a detailed version string
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, go: %s)",
		GetVersion(), GitCommit, BuildDate, GoVersion)
}
