// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Report a release tag when one is stamped in, otherwise the VCS state of the build.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is set at link time: -ldflags "-X github.com/poruru/svcgen/cli/internal/version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the stamped Version when present. Otherwise it returns the
// short VCS revision, suffixed with "(dirty)" for a modified tree, or "dev".
func GetVersion() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	return fromSettings(info.Settings)
}

func fromSettings(settings []debug.BuildSetting) string {
	var revision string
	var modified bool

	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
