package version

import "fmt"

// These variables are set via ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with the commit appended when known
func GetFullVersion() string {
	if Version == "dev" || GitCommit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}
