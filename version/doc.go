// Package version provides build version information for mailkit
// binaries.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/mailkit/mailkit/version.Version=1.0.0"
//
// When ldflags are absent the package falls back to the module build
// info recorded by the Go toolchain.
package version
