// Package version reports which build of tgxmeta is running. Values are taken from ldflags when set, and from the VCS
// metadata the Go toolchain embeds otherwise.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Masterminds/semver"
)

// These variables can be set via ldflags at build time.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// GitCommit is the git commit hash.
	GitCommit = ""
	// GitCommitTime is the RFC 3339 timestamp of the git commit.
	GitCommitTime = ""
	// GitTreeDirty is "true" if the tree had uncommitted changes at build time.
	GitTreeDirty = ""
)

// Info describes the running build.
type Info struct {
	Version       string    `json:"version"`
	GitCommit     string    `json:"gitCommit,omitempty"`
	GitCommitTime time.Time `json:"gitCommitTime"`
	GitTreeDirty  bool      `json:"gitTreeDirty"`
	GoVersion     string    `json:"goVersion"`
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string, len(info.Settings))
	for _, kv := range info.Settings {
		settings[kv.Key] = kv.Value
	}
	if GitCommit == "" {
		GitCommit = settings["vcs.revision"]
	}
	if GitCommitTime == "" {
		GitCommitTime = settings["vcs.time"]
	}
	if GitTreeDirty == "" {
		GitTreeDirty = settings["vcs.modified"]
	}
}

// GetInfo returns the information of the running build. An unparsable commit time is left zero.
func GetInfo() Info {
	info := Info{
		Version:      Version,
		GitCommit:    GitCommit,
		GitTreeDirty: GitTreeDirty == "true",
		GoVersion:    runtime.Version(),
	}
	if t, err := time.Parse(time.RFC3339, GitCommitTime); err == nil {
		info.GitCommitTime = t.UTC()
	}
	return info
}

// shortCommit returns the abbreviated commit hash, suffixed when the tree was dirty.
func (i Info) shortCommit() string {
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.GitTreeDirty {
		commit += "-dirty"
	}
	return commit
}

// Short returns a single-line semver string suitable for --version output, carrying the commit as build metadata in
// place of any metadata Version already has. A Version that is not valid semver is returned with the commit appended.
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return i.Version + "+" + i.shortCommit()
	}
	withCommit, err := v.SetMetadata(i.shortCommit())
	if err != nil {
		return i.Version + "+" + i.shortCommit()
	}
	return withCommit.String()
}

// String returns a formatted multi-line version string.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tgxmeta version %s\n", i.Version)
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, "  Commit:     %s\n", i.shortCommit())
	}
	if !i.GitCommitTime.IsZero() {
		fmt.Fprintf(&sb, "  Built:      %s\n", i.GitCommitTime.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&sb, "  Go version: %s\n", i.GoVersion)
	return sb.String()
}
