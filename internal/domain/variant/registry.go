// Where: cli/internal/domain/variant/registry.go
// What: Immutable, ordered table of supported variants.
// Why: Downstream components iterate variants without knowing how many exist.
package variant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
)

const (
	minPort = 1
	maxPort = 65535
)

var entryPointPattern = regexp.MustCompile(`^([A-Za-z_$][A-Za-z0-9_$]*\.)*[A-Za-z_$][A-Za-z0-9_$]*$`)

// Defaults returns the built-in variants in generation order.
func Defaults() []Variant {
	return []Variant{
		{
			Name:         "modern",
			Port:         8080,
			ArtifactType: ExecutableArchive,
			ServiceName:  "my-spring-app",
			EntryPoint:   "com.company.Application",
		},
		{
			Name:         "legacy",
			Port:         8081,
			ArtifactType: WebArchive,
			ServiceName:  "my-servlet-app",
			EntryPoint:   "com.company.HelloServlet",
		},
	}
}

// Registry is a read-only ordered set of validated variants.
type Registry struct {
	variants []Variant
	byName   map[string]int
}

// NewRegistry validates variants individually and as a set.
// Names, ports and service names must be unique so that output trees and bound ports never collide.
func NewRegistry(variants ...Variant) (*Registry, error) {
	r := &Registry{
		variants: make([]Variant, 0, len(variants)),
		byName:   make(map[string]int, len(variants)),
	}
	ports := map[int]string{}
	services := map[string]string{}
	for _, v := range variants {
		if err := Validate(v); err != nil {
			return nil, err
		}
		if _, dup := r.byName[v.Name]; dup {
			return nil, &failure.ConfigurationError{Variant: v.Name, Field: "name", Reason: "duplicate variant name"}
		}
		if owner, dup := ports[v.Port]; dup {
			return nil, &failure.ConfigurationError{
				Variant: v.Name,
				Field:   "port",
				Reason:  fmt.Sprintf("port %d already bound by variant %q", v.Port, owner),
			}
		}
		if owner, dup := services[v.ServiceName]; dup {
			return nil, &failure.ConfigurationError{
				Variant: v.Name,
				Field:   "service_name",
				Reason:  fmt.Sprintf("service %q already used by variant %q", v.ServiceName, owner),
			}
		}
		ports[v.Port] = v.Name
		services[v.ServiceName] = v.Name
		r.byName[v.Name] = len(r.variants)
		r.variants = append(r.variants, v)
	}
	return r, nil
}

// DefaultRegistry builds the registry of built-in variants.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Defaults()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks a single variant. Shell safety of names is enforced at render time.
func Validate(v Variant) error {
	if strings.TrimSpace(v.Name) == "" {
		return &failure.ConfigurationError{Field: "name", Reason: "variant name is required"}
	}
	if v.Port < minPort || v.Port > maxPort {
		return &failure.ConfigurationError{
			Variant: v.Name,
			Field:   "port",
			Reason:  fmt.Sprintf("port %d out of range %d-%d", v.Port, minPort, maxPort),
		}
	}
	if _, err := v.ArtifactType.Resolve(); err != nil {
		return &failure.ConfigurationError{Variant: v.Name, Field: "artifact_type", Reason: err.Error()}
	}
	if strings.TrimSpace(v.ServiceName) == "" {
		return &failure.ConfigurationError{Variant: v.Name, Field: "service_name", Reason: "service name is required"}
	}
	if !entryPointPattern.MatchString(v.EntryPoint) {
		return &failure.ConfigurationError{
			Variant: v.Name,
			Field:   "entry_point",
			Reason:  fmt.Sprintf("invalid java class name %q", v.EntryPoint),
		}
	}
	return nil
}

// List returns the variants in registry order.
func (r *Registry) List() []Variant {
	out := make([]Variant, len(r.variants))
	copy(out, r.variants)
	return out
}

// Lookup returns the variant named name.
func (r *Registry) Lookup(name string) (Variant, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return Variant{}, false
	}
	return r.variants[idx], true
}

// Names returns variant names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.variants))
	for i, v := range r.variants {
		names[i] = v.Name
	}
	return names
}

// Len reports the number of variants.
func (r *Registry) Len() int {
	return len(r.variants)
}
