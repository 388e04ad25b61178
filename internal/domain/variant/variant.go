// Where: cli/internal/domain/variant/variant.go
// What: Application variant model and its derived naming.
// Why: A variant is the full parameter set the renderer and planner consume.
package variant

import (
	"path"
	"strings"
)

// Variant is one supported application flavor bound to a fixed port and artifact type.
type Variant struct {
	Name         string       `json:"name"`
	Port         int          `json:"port"`
	ArtifactType ArtifactType `json:"artifact_type"`
	ServiceName  string       `json:"service_name"`
	// EntryPoint is the fully qualified Java class, e.g. com.company.Application.
	EntryPoint string `json:"entry_point"`
}

// Fields lists the variant's own parameter names as templates see them.
var Fields = []string{"Name", "Port", "ArtifactType", "ServiceName", "EntryPoint"}

// EntryPackage returns the package portion of EntryPoint ("" for the default package).
func (v Variant) EntryPackage() string {
	idx := strings.LastIndex(v.EntryPoint, ".")
	if idx < 0 {
		return ""
	}
	return v.EntryPoint[:idx]
}

// EntryClass returns the simple class name of EntryPoint.
func (v Variant) EntryClass() string {
	idx := strings.LastIndex(v.EntryPoint, ".")
	return v.EntryPoint[idx+1:]
}

// PackagePath returns EntryPackage with '/' separators.
func (v Variant) PackagePath() string {
	return strings.ReplaceAll(v.EntryPackage(), ".", "/")
}

// SourceFile returns the slash-separated path of the entry class below src/main/java.
func (v Variant) SourceFile() string {
	return path.Join(v.PackagePath(), v.EntryClass()+".java")
}

// GroupID is the Maven groupId; it follows the entry package.
func (v Variant) GroupID() string {
	if pkg := v.EntryPackage(); pkg != "" {
		return pkg
	}
	return "app"
}

// UnitFile is the systemd unit file name for the variant.
func (v Variant) UnitFile() string {
	return v.ServiceName + ".service"
}
