// Where: cli/internal/domain/plan/plan.go
// What: Compute the output file set of a variant.
// Why: Paths are decided up front so collisions surface before anything is written.
package plan

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"github.com/poruru/svcgen/cli/internal/domain/template"
	"github.com/poruru/svcgen/cli/internal/domain/variant"
)

// Entry is one file to generate, relative to the variant root (slash separated).
type Entry struct {
	Kind         template.Kind
	RelativePath string
	Executable   bool
}

// Plan is the ordered file set for one variant.
type Plan struct {
	Variant variant.Variant
	BaseDir string
	// Root is BaseDir joined with the variant name.
	Root    string
	Entries []Entry
}

// Build lays out v below baseDir. Entries are in dependency order:
// build descriptor, sources and config, service unit, then scripts.
func Build(baseDir string, v variant.Variant) (Plan, error) {
	if strings.TrimSpace(baseDir) == "" {
		return Plan{}, &failure.ConfigurationError{Variant: v.Name, Field: "base_dir", Reason: "output directory is required"}
	}
	profile, err := v.ArtifactType.Resolve()
	if err != nil {
		return Plan{}, &failure.ConfigurationError{Variant: v.Name, Field: "artifact_type", Reason: err.Error()}
	}

	entries := []Entry{
		{Kind: template.BuildDescriptor, RelativePath: "pom.xml"},
		{Kind: template.SourceStub, RelativePath: path.Join("src/main/java", v.SourceFile())},
	}
	if profile.EmbedsPort {
		entries = append(entries, Entry{Kind: template.RuntimeConfig, RelativePath: "src/main/resources/application.properties"})
	} else {
		entries = append(entries, Entry{Kind: template.WebappDescriptor, RelativePath: "src/main/webapp/WEB-INF/web.xml"})
	}
	entries = append(entries,
		Entry{Kind: template.ServiceUnit, RelativePath: v.UnitFile()},
		Entry{Kind: template.InstallScript, RelativePath: "install_service.sh"},
		Entry{Kind: template.UninstallScript, RelativePath: "uninstall_service.sh"},
		Entry{Kind: template.ControlScript, RelativePath: "control.sh"},
	)
	for i := range entries {
		entries[i].Executable = entries[i].Kind.Executable()
	}

	cleanBase := filepath.Clean(baseDir)
	return Plan{
		Variant: v,
		BaseDir: cleanBase,
		Root:    filepath.Join(cleanBase, v.Name),
		Entries: entries,
	}, nil
}

// Paths returns the entries' relative paths prefixed with the variant name,
// i.e. relative to BaseDir.
func (p Plan) Paths() []string {
	out := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = path.Join(p.Variant.Name, e.RelativePath)
	}
	return out
}

// Validate checks that the variant directory is a single element below BaseDir and
// that entry paths are pairwise distinct and stay inside the variant root.
func (p Plan) Validate() error {
	name := p.Variant.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &failure.PathConflictError{
			Path:   filepath.Join(p.BaseDir, name),
			Reason: fmt.Sprintf("variant name %q is not a single directory name", name),
		}
	}
	if len(p.Entries) == 0 {
		return &failure.PathConflictError{Path: p.Root, Reason: "plan has no files"}
	}
	seen := make(map[string]struct{}, len(p.Entries))
	for _, e := range p.Entries {
		rel := path.Clean(e.RelativePath)
		if rel != e.RelativePath || path.IsAbs(rel) || rel == "." || strings.HasPrefix(rel, "../") || rel == ".." {
			return &failure.PathConflictError{Path: e.RelativePath, Reason: "path escapes the variant directory"}
		}
		if _, dup := seen[rel]; dup {
			return &failure.PathConflictError{Path: filepath.Join(p.Root, filepath.FromSlash(rel)), Reason: "planned twice"}
		}
		seen[rel] = struct{}{}
	}
	return nil
}

// Disjoint reports an error when a and b would write the same path or bind the same port.
func Disjoint(a, b Plan) error {
	if a.Variant.Port == b.Variant.Port {
		return &failure.ConfigurationError{
			Variant: b.Variant.Name,
			Field:   "port",
			Reason:  fmt.Sprintf("port %d shared with variant %q", b.Variant.Port, a.Variant.Name),
		}
	}
	if filepath.Clean(a.BaseDir) == filepath.Clean(b.BaseDir) && a.Variant.Name == b.Variant.Name {
		return &failure.PathConflictError{Path: b.Root, Reason: "variants share an output directory"}
	}
	taken := make(map[string]struct{}, len(a.Entries))
	for _, e := range a.Entries {
		taken[filepath.Join(a.Root, filepath.FromSlash(e.RelativePath))] = struct{}{}
	}
	for _, e := range b.Entries {
		full := filepath.Join(b.Root, filepath.FromSlash(e.RelativePath))
		if _, dup := taken[full]; dup {
			return &failure.PathConflictError{Path: full, Reason: fmt.Sprintf("also planned by variant %q", a.Variant.Name)}
		}
	}
	return nil
}

// StatFunc matches os.Stat; symlinked directories count as directories.
type StatFunc func(name string) (fs.FileInfo, error)

// CheckConflicts refuses to write over an incompatible existing entry: a directory that is
// needed as a parent but exists as a file, or a file path that exists as a directory.
func (p Plan) CheckConflicts(stat StatFunc) error {
	dirs := map[string]struct{}{}
	for _, e := range p.Entries {
		dir := path.Dir(e.RelativePath)
		for dir != "." && dir != "/" {
			dirs[dir] = struct{}{}
			dir = path.Dir(dir)
		}
	}

	if err := expectDir(stat, p.BaseDir); err != nil {
		return err
	}
	if err := expectDir(stat, p.Root); err != nil {
		return err
	}
	ordered := make([]string, 0, len(dirs))
	for dir := range dirs {
		ordered = append(ordered, dir)
	}
	// Parents sort before children, so the outermost mismatch is reported.
	sort.Strings(ordered)
	for _, dir := range ordered {
		if err := expectDir(stat, filepath.Join(p.Root, filepath.FromSlash(dir))); err != nil {
			return err
		}
	}
	for _, e := range p.Entries {
		full := filepath.Join(p.Root, filepath.FromSlash(e.RelativePath))
		info, err := stat(full)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &failure.IOError{Op: "stat", Path: full, Err: err}
		}
		if !info.Mode().IsRegular() {
			return &failure.PathConflictError{Path: full, Reason: "exists and is not a regular file"}
		}
	}
	return nil
}

func expectDir(stat StatFunc, dir string) error {
	info, err := stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &failure.IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &failure.PathConflictError{Path: dir, Reason: "exists and is not a directory"}
	}
	return nil
}
