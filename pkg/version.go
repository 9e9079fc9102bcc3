// Package kurodb holds application-wide metadata.
package kurodb

// Version and Build are set during compilation via ldflags.
var (
	// Version is the semantic version of the application.
	Version = "v0.1.0"

	// Build is the build timestamp or commit hash.
	Build = "n/a"
)
