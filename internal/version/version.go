// Package version reports the build version of the i18n-extract binary.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X bennypowers.dev/i18n-extract/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = "" // "dirty" when built from a modified tree
)

// Info is the build information of the running binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Tag       string `json:"tag,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Current collects the linked build information
func Current() Info {
	info := Info{Version: resolve(), Dirty: GitDirty == "dirty"}
	if GitCommit != "unknown" {
		info.Commit = GitCommit
	}
	if GitTag != "unknown" {
		info.Tag = GitTag
	}
	if BuildTime != "unknown" {
		info.BuildTime = BuildTime
	}
	return info
}

// resolve prefers the linked version, then the module version, then tag-commit
func resolve() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}
	v := GitTag
	short := GitCommit[:min(7, len(GitCommit))]
	if short != "" && !strings.HasSuffix(GitTag, short) {
		v += "-" + short
	}
	if GitDirty == "dirty" {
		v += "-dirty"
	}
	return v
}

// String returns the version, with the commit when known
func (i Info) String() string {
	if i.Commit == "" {
		return i.Version
	}
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.Commit)
}
