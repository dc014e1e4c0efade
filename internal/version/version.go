// Package version exposes build metadata.
package version

// Version is the application version, overridden at build time via ldflags.
var Version = "0.0.0"

// GitCommit is the git commit hash, set at build time via ldflags.
var GitCommit = "unknown"

// BuildDate is the build timestamp, set at build time via ldflags.
var BuildDate = "unknown"
