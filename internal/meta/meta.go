// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep the tool's name and environment prefix in one place.
package meta

const (
	// Project Identity
	AppName   = "svcgen"
	Slug      = "svcgen"
	EnvPrefix = "SVCGEN"
)
