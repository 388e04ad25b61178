// Where: cli/internal/domain/template/kind.go
// What: Template kinds emitted for each variant.
// Why: Kinds drive file placement, permissions, and the shell-safety boundary.
package template

// Kind identifies one generated file kind.
type Kind string

const (
	BuildDescriptor  Kind = "build-descriptor"
	SourceStub       Kind = "source-stub"
	RuntimeConfig    Kind = "runtime-config"
	WebappDescriptor Kind = "webapp-descriptor"
	ServiceUnit      Kind = "service-unit"
	InstallScript    Kind = "install-script"
	UninstallScript  Kind = "uninstall-script"
	ControlScript    Kind = "control-script"
)

// ShellFacing reports whether rendered text is interpreted by a shell or by the
// installer's sed/tee pipeline. Values interpolated into these kinds are allow-listed.
func (k Kind) ShellFacing() bool {
	switch k {
	case ServiceUnit, InstallScript, UninstallScript, ControlScript:
		return true
	default:
		return false
	}
}

// Executable reports whether files of this kind get the executable bit.
func (k Kind) Executable() bool {
	switch k {
	case InstallScript, UninstallScript, ControlScript:
		return true
	default:
		return false
	}
}

func (k Kind) String() string { return string(k) }
