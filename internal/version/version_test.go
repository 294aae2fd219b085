package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

// stubBuildInfo replaces the embedded build info for one test.
func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

// stamp sets the ldflags variables for one test.
func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })
	Version, Commit, Date = version, commit, date
}

func vcsInfo(mainVersion, revision, time, modified string) *debug.BuildInfo {
	bi := &debug.BuildInfo{Main: debug.Module{Path: "github.com/jmylchreest/tokensmith", Version: mainVersion}}
	for k, v := range map[string]string{"vcs.revision": revision, "vcs.time": time, "vcs.modified": modified} {
		if v != "" {
			bi.Settings = append(bi.Settings, debug.BuildSetting{Key: k, Value: v})
		}
	}
	return bi
}

func TestString(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commit    string
		date      string
		buildInfo *debug.BuildInfo
		want      string
	}{
		{"unreleased", "dev", unset, unset, nil, "tokensmith version dev ("},
		{"stamped full commit", "v1.0.0", "0123456789abcdef", "2026-01-02T03:04:05Z", nil, "version v1.0.0 (commit: 01234567, built: 2026-01-02T03:04:05Z,"},
		{"stamped short commit", "dev", "abc", "2026-01-02T03:04:05Z", nil, "commit: abc,"},
		{"from vcs", "dev", unset, unset, vcsInfo("(devel)", "fedcba9876543210", "2026-03-04T05:06:07Z", "false"), "version dev (commit: fedcba98, built: 2026-03-04T05:06:07Z,"},
		{"dirty tree", "dev", unset, unset, vcsInfo("", "fedcba9876543210", "2026-03-04T05:06:07Z", "true"), "commit: fedcba98-dirty,"},
		{"module version", "dev", unset, unset, vcsInfo("v0.4.1", "", "", ""), "tokensmith version v0.4.1 ("},
		{"stamp wins", "v2.0.0", "1111111122222222", "2026-05-06T00:00:00Z", vcsInfo("v0.4.1", "fedcba9876543210", "2026-03-04T05:06:07Z", ""), "version v2.0.0 (commit: 11111111, built: 2026-05-06T00:00:00Z,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit, tt.date)
			stubBuildInfo(t, tt.buildInfo)
			if got := String(); !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestGetInfo(t *testing.T) {
	stubBuildInfo(t, nil)
	info := GetInfo()
	if info.Version != Version || info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("GetInfo() = %+v", info)
	}
}

func TestShort(t *testing.T) {
	stamp(t, "dev", unset, unset)
	stubBuildInfo(t, vcsInfo("v0.4.1", "", "", ""))
	if got := Short(); got != "v0.4.1" {
		t.Errorf("Short() = %q, want v0.4.1", got)
	}
}
