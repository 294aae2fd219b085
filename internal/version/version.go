// Package version reports which tokensmith build is running. Release builds
// stamp Version, Commit and Date with -ldflags "-X"; other builds fall back to
// the module and VCS data the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// unset marks a field that neither ldflags nor build info supplied.
const unset = "unknown"

var (
	// Version is the release tag, e.g. -X .../internal/version.Version=v0.3.0.
	Version = "dev"

	// Commit is the full git revision.
	Commit = unset

	// Date is the RFC3339 build time.
	Date = unset

	// GoVersion is the toolchain that built the binary.
	GoVersion = runtime.Version()
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is the resolved build description.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo resolves the build description. Stamped values win over embedded
// build info.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unset {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unset {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String is the one-line description printed by "tokensmith version".
func String() string {
	info := GetInfo()
	if info.Commit == unset || info.Date == unset {
		return fmt.Sprintf("tokensmith version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
	}
	commit := shortCommit(info.Commit)
	if info.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("tokensmith version %s (commit: %s, built: %s, %s, %s)",
		info.Version, commit, info.Date, info.GoVersion, info.Platform)
}

// Short is the bare version, used for --version and file headers.
func Short() string {
	return GetInfo().Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
