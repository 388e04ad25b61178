package version

import (
	"runtime/debug"
	"testing"
)

func TestGetVersionPrefersStampedVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = " v1.4.0 "

	if got := GetVersion(); got != "v1.4.0" {
		t.Fatalf("GetVersion() = %q", got)
	}
}

func TestGetVersionWithoutBuildInfo(t *testing.T) {
	origRead := readBuildInfo
	origVersion := Version
	t.Cleanup(func() {
		readBuildInfo = origRead
		Version = origVersion
	})
	Version = ""
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	if got := GetVersion(); got != "dev" {
		t.Fatalf("GetVersion() = %q", got)
	}
}

func TestFromSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings []debug.BuildSetting
		want     string
	}{
		{name: "no vcs", want: "dev"},
		{
			name:     "clean",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			want:     "0123456",
		},
		{
			name: "dirty",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "abc (dirty)",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := fromSettings(tc.settings); got != tc.want {
				t.Fatalf("fromSettings() = %q, want %q", got, tc.want)
			}
		})
	}
}
