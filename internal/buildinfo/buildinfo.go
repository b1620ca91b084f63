// Package buildinfo carries version data stamped in at link time with
// -ldflags "-X github.com/sanverite/number-classifier/internal/buildinfo.Version=...".
package buildinfo

import "fmt"

// Link-time build metadata. The defaults identify an unstamped dev build.
var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String formats the build metadata for the version command.
func String() string {
	return fmt.Sprintf("numclass %s (commit=%s, date=%s)", Version, Commit, Date)
}
