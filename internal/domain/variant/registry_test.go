// Where: cli/internal/domain/variant/registry_test.go
// What: Tests for variant registry validation and ordering.
// Why: Ports and output names must never collide across variants.
package variant

import (
	"errors"
	"reflect"
	"testing"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
)

func TestDefaultRegistryOrderAndPorts(t *testing.T) {
	r := DefaultRegistry()
	if got := r.Names(); !reflect.DeepEqual(got, []string{"modern", "legacy"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	modern, ok := r.Lookup("modern")
	if !ok {
		t.Fatalf("expected modern variant")
	}
	if modern.Port != 8080 || modern.ArtifactType != ExecutableArchive {
		t.Fatalf("unexpected modern variant: %+v", modern)
	}
	legacy, ok := r.Lookup("legacy")
	if !ok {
		t.Fatalf("expected legacy variant")
	}
	if legacy.Port != 8081 || legacy.ArtifactType != WebArchive || legacy.ServiceName != "my-servlet-app" {
		t.Fatalf("unexpected legacy variant: %+v", legacy)
	}
}

func TestRegistryListReturnsCopy(t *testing.T) {
	r := DefaultRegistry()
	list := r.List()
	list[0].Port = 1
	again, _ := r.Lookup("modern")
	if again.Port != 8080 {
		t.Fatalf("registry was mutated through List(): %+v", again)
	}
}

func TestNewRegistryRejectsCollisions(t *testing.T) {
	base := Defaults()
	tests := []struct {
		name  string
		extra Variant
		field string
	}{
		{
			name:  "duplicate name",
			extra: Variant{Name: "modern", Port: 9000, ArtifactType: WebArchive, ServiceName: "x", EntryPoint: "a.B"},
			field: "name",
		},
		{
			name:  "duplicate port",
			extra: Variant{Name: "third", Port: 8081, ArtifactType: WebArchive, ServiceName: "x", EntryPoint: "a.B"},
			field: "port",
		},
		{
			name:  "duplicate service",
			extra: Variant{Name: "third", Port: 9000, ArtifactType: WebArchive, ServiceName: "my-spring-app", EntryPoint: "a.B"},
			field: "service_name",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(append(base, tc.extra)...)
			var cfgErr *failure.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, cfgErr.Field)
			}
		})
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	valid := Defaults()[0]
	tests := []struct {
		name   string
		mutate func(*Variant)
	}{
		{name: "empty name", mutate: func(v *Variant) { v.Name = " " }},
		{name: "port zero", mutate: func(v *Variant) { v.Port = 0 }},
		{name: "port too high", mutate: func(v *Variant) { v.Port = 70000 }},
		{name: "unknown artifact", mutate: func(v *Variant) { v.ArtifactType = "ear" }},
		{name: "empty service", mutate: func(v *Variant) { v.ServiceName = "" }},
		{name: "bad entry point", mutate: func(v *Variant) { v.EntryPoint = "com..Bad" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := valid
			tc.mutate(&v)
			if err := Validate(v); failure.KindOf(err) != failure.KindConfiguration {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestValidateLeavesShellSafetyToRenderer(t *testing.T) {
	v := Defaults()[0]
	v.Name = "; rm -rf /"
	if err := Validate(v); err != nil {
		t.Fatalf("expected registry to accept name, got %v", err)
	}
}

func TestVariantDerivedNames(t *testing.T) {
	v := Defaults()[0]
	if v.EntryPackage() != "com.company" || v.EntryClass() != "Application" {
		t.Fatalf("unexpected entry split: %s / %s", v.EntryPackage(), v.EntryClass())
	}
	if v.SourceFile() != "com/company/Application.java" {
		t.Fatalf("unexpected source file: %s", v.SourceFile())
	}
	if v.UnitFile() != "my-spring-app.service" {
		t.Fatalf("unexpected unit file: %s", v.UnitFile())
	}

	bare := Variant{EntryPoint: "App"}
	if bare.EntryPackage() != "" || bare.SourceFile() != "App.java" || bare.GroupID() != "app" {
		t.Fatalf("unexpected default-package derivations: %q %q %q", bare.EntryPackage(), bare.SourceFile(), bare.GroupID())
	}
}

func TestParseArtifactTypeAliases(t *testing.T) {
	for input, want := range map[string]ArtifactType{
		"jar":                ExecutableArchive,
		"Executable-Archive": ExecutableArchive,
		" war ":              WebArchive,
	} {
		got, err := ParseArtifactType(input)
		if err != nil || got != want {
			t.Fatalf("ParseArtifactType(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseArtifactType("ear"); err == nil {
		t.Fatalf("expected error for ear")
	}
}
