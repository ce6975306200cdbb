// Package version holds the build version string, stamped at build time via
// -ldflags "-X .../internal/version.Version=v1.2.3".
package version

// Version is the running build's version. Defaults to dev for local builds.
var Version = "dev"
