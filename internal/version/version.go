// Package version holds the hv version string.
package version

// Version is the current hv version. Overridden at build time via
// -ldflags "-X github.com/deeklead/apiary/internal/version.Version=...".
var Version = "0.2.0-dev"
