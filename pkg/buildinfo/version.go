// Package buildinfo carries the version stamp baked in at build time.
//
// Release builds override the defaults with ldflags, for example:
//
//	go build -ldflags "-X github.com/phytolab/herbnet/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/phytolab/herbnet/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/phytolab/herbnet/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag, or "dev" for untagged builds.
	Version = "dev"

	// Commit is the short git revision.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the stamp for the version subcommand and log preambles.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, commit(), Date)
}

// Template is the cobra version template, so `herbnet --version` prints
// the same stamp as String.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, commit(), Date)
}

// commit falls back to the revision recorded by the Go toolchain when the
// binary was built without ldflags (`go install` straight from the module
// proxy leaves Commit at its default).
func commit() string {
	if Commit != "none" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return Commit
}
