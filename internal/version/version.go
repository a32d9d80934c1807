// SPDX-License-Identifier: Apache-2.0

// Package version exposes build identification for the tool. The version and
// commit are embedded at build time from the VERSION and COMMIT files, which
// the release pipeline rewrites before compiling.
package version

import (
	_ "embed"
	"runtime"
	"strings"
)

//go:embed VERSION
var rawVersion string

//go:embed COMMIT
var rawCommit string

// Version returns the semantic version of this build.
func Version() string {
	return strings.TrimSpace(rawVersion)
}

// Commit returns the VCS commit of this build.
func Commit() string {
	return strings.TrimSpace(rawCommit)
}

// Get returns the full build identification.
func Get() Info {
	return Info{
		Version:   Version(),
		Commit:    Commit(),
		GoVersion: runtime.Version(),
		Os:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
