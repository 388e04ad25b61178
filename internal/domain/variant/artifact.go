// Where: cli/internal/domain/variant/artifact.go
// What: Artifact type profiles for generated projects.
// Why: Keep packaging decisions in one table instead of scattered conditionals.
package variant

import (
	"fmt"
	"strings"
)

// ArtifactType selects how the generated project is packaged.
type ArtifactType string

const (
	// ExecutableArchive is a self-running jar.
	ExecutableArchive ArtifactType = "executable-archive"
	// WebArchive is a war deployed into a servlet container.
	WebArchive ArtifactType = "web-archive"
)

// Profile describes build-level facts for an artifact type.
type Profile struct {
	Type      ArtifactType
	Packaging string
	// EmbedsPort is true when the port is baked into the application's own config.
	EmbedsPort bool
}

var profiles = map[ArtifactType]Profile{
	ExecutableArchive: {Type: ExecutableArchive, Packaging: "jar", EmbedsPort: true},
	WebArchive:        {Type: WebArchive, Packaging: "war"},
}

// ParseArtifactType accepts the canonical names plus their packaging aliases.
func ParseArtifactType(value string) (ArtifactType, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	switch normalized {
	case string(ExecutableArchive), "jar":
		return ExecutableArchive, nil
	case string(WebArchive), "war":
		return WebArchive, nil
	default:
		return "", fmt.Errorf("unsupported artifact type: %q", value)
	}
}

// Resolve returns the profile for t.
func (t ArtifactType) Resolve() (Profile, error) {
	profile, ok := profiles[t]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported artifact type: %q", string(t))
	}
	return profile, nil
}

func (t ArtifactType) String() string { return string(t) }
