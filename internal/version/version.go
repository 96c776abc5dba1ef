// Package version provides build-time version information.
package version

// Set at build time via -ldflags, e.g.
// -ldflags "-X palette-engine/internal/version.Version=1.2.0"
var (
	// Version is the semantic version.
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built.
	BuildTime = "unknown"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"
)
