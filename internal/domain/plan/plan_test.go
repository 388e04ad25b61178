// Where: cli/internal/domain/plan/plan_test.go
// What: Tests for output path planning.
// Why: Plans must be distinct within and across variants and refuse type mismatches.
package plan

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"github.com/poruru/svcgen/cli/internal/domain/template"
	"github.com/poruru/svcgen/cli/internal/domain/variant"
)

func buildAll(t *testing.T, base string) []Plan {
	t.Helper()
	var plans []Plan
	for _, v := range variant.DefaultRegistry().List() {
		p, err := Build(base, v)
		if err != nil {
			t.Fatalf("Build(%s): %v", v.Name, err)
		}
		plans = append(plans, p)
	}
	return plans
}

func TestBuildModernLayout(t *testing.T) {
	plans := buildAll(t, "/srv/out")
	want := []string{
		"modern/pom.xml",
		"modern/src/main/java/com/company/Application.java",
		"modern/src/main/resources/application.properties",
		"modern/my-spring-app.service",
		"modern/install_service.sh",
		"modern/uninstall_service.sh",
		"modern/control.sh",
	}
	if got := plans[0].Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	if plans[0].Root != filepath.Join("/srv/out", "modern") {
		t.Fatalf("unexpected root: %s", plans[0].Root)
	}
}

func TestBuildLegacyLayout(t *testing.T) {
	p := buildAll(t, "/srv/out")[1]
	want := []string{
		"legacy/pom.xml",
		"legacy/src/main/java/com/company/HelloServlet.java",
		"legacy/src/main/webapp/WEB-INF/web.xml",
		"legacy/my-servlet-app.service",
		"legacy/install_service.sh",
		"legacy/uninstall_service.sh",
		"legacy/control.sh",
	}
	if got := p.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for _, e := range p.Entries {
		wantExec := e.Kind == template.InstallScript || e.Kind == template.UninstallScript || e.Kind == template.ControlScript
		if e.Executable != wantExec {
			t.Fatalf("%s executable = %v", e.RelativePath, e.Executable)
		}
	}
}

func TestPlansAreValidAndDisjoint(t *testing.T) {
	plans := buildAll(t, t.TempDir())
	for _, p := range plans {
		if len(p.Entries) == 0 {
			t.Fatalf("%s: empty plan", p.Variant.Name)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("%s: %v", p.Variant.Name, err)
		}
	}
	for i := range plans {
		for j := i + 1; j < len(plans); j++ {
			if err := Disjoint(plans[i], plans[j]); err != nil {
				t.Fatalf("%s vs %s: %v", plans[i].Variant.Name, plans[j].Variant.Name, err)
			}
		}
	}
}

func TestBuildRequiresBaseDir(t *testing.T) {
	_, err := Build("  ", variant.Defaults()[0])
	if failure.KindOf(err) != failure.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateRejectsEscapingNames(t *testing.T) {
	for _, name := range []string{"..", "a/b", `a\b`, "."} {
		v := variant.Defaults()[0]
		v.Name = name
		p, err := Build("/srv/out", v)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if err := p.Validate(); failure.KindOf(err) != failure.KindPathConflict {
			t.Fatalf("name %q: expected path conflict, got %v", name, err)
		}
	}
}

func TestValidateRejectsDuplicateEntries(t *testing.T) {
	p := buildAll(t, "/srv/out")[0]
	p.Entries = append(p.Entries, Entry{Kind: template.ControlScript, RelativePath: "control.sh"})
	if err := p.Validate(); failure.KindOf(err) != failure.KindPathConflict {
		t.Fatalf("expected path conflict, got %v", err)
	}
}

func TestDisjointDetectsSharedDirectory(t *testing.T) {
	p := buildAll(t, "/srv/out")[0]
	other := p
	other.Variant.Port = 9999
	if err := Disjoint(p, other); failure.KindOf(err) != failure.KindPathConflict {
		t.Fatalf("expected path conflict, got %v", err)
	}
	other.Variant.Port = p.Variant.Port
	if err := Disjoint(p, other); failure.KindOf(err) != failure.KindConfiguration {
		t.Fatalf("expected port collision, got %v", err)
	}
}

func TestCheckConflicts(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, root string)
		want    failure.Kind
	}{
		{name: "fresh", prepare: func(*testing.T, string) {}, want: ""},
		{
			name: "existing generated output",
			prepare: func(t *testing.T, root string) {
				writeFile(t, filepath.Join(root, "modern", "pom.xml"))
				writeFile(t, filepath.Join(root, "modern", "src", "main", "java", "com", "company", "Application.java"))
			},
			want: "",
		},
		{
			name: "variant dir is a file",
			prepare: func(t *testing.T, root string) {
				writeFile(t, filepath.Join(root, "modern"))
			},
			want: failure.KindPathConflict,
		},
		{
			name: "intermediate dir is a file",
			prepare: func(t *testing.T, root string) {
				writeFile(t, filepath.Join(root, "modern", "src", "main"))
			},
			want: failure.KindPathConflict,
		},
		{
			name: "file path is a directory",
			prepare: func(t *testing.T, root string) {
				if err := os.MkdirAll(filepath.Join(root, "modern", "control.sh"), 0o755); err != nil {
					t.Fatal(err)
				}
			},
			want: failure.KindPathConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			tc.prepare(t, root)
			p := buildAll(t, root)[0]
			err := p.CheckConflicts(os.Stat)
			if got := failure.KindOf(err); got != tc.want {
				t.Fatalf("CheckConflicts() kind = %q (%v), want %q", got, err, tc.want)
			}
		})
	}
}

func TestCheckConflictsBaseDirIsFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out")
	writeFile(t, base)
	p := buildAll(t, base)[1]
	var conflict *failure.PathConflictError
	if err := p.CheckConflicts(os.Stat); !errors.As(err, &conflict) || conflict.Path != base {
		t.Fatalf("expected conflict at base dir, got %v", err)
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
