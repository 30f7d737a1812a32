/*
Package version carries build metadata for skillhub and the release
update check.

The variables are stamped via ldflags at release build time; a plain
`go build` produces a "dev" binary.
*/
package version

import "fmt"

var (
	// Version is the release tag (e.g., v0.3.0).
	Version = "dev"
	// Commit is the short git commit hash.
	Commit = "none"
	// Date is the UTC build date (YYYY-MM-DD).
	Date = "unknown"
)

// String formats the build metadata for display.
func String() string {
	if Version == "dev" {
		return "dev (development build)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
