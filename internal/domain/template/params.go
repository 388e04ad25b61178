// Where: cli/internal/domain/template/params.go
// What: Substitution parameters derived from a variant.
// Why: Templates see a flat map so undefined placeholders can be detected by name.
package template

import "github.com/poruru/svcgen/cli/internal/domain/variant"

// Params builds the substitution map for v. Keys not in variant.Fields are derived
// values and never trigger unused-parameter warnings.
func Params(v variant.Variant) map[string]any {
	packaging := ""
	if profile, err := v.ArtifactType.Resolve(); err == nil {
		packaging = profile.Packaging
	}
	return map[string]any{
		"Name":         v.Name,
		"Port":         v.Port,
		"ArtifactType": string(v.ArtifactType),
		"ServiceName":  v.ServiceName,
		"EntryPoint":   v.EntryPoint,

		"Packaging":    packaging,
		"ArtifactID":   v.ServiceName,
		"GroupID":      v.GroupID(),
		"EntryPackage": v.EntryPackage(),
		"EntryClass":   v.EntryClass(),
		"PackagePath":  v.PackagePath(),
	}
}
