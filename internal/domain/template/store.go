// Where: cli/internal/domain/template/store.go
// What: Parsed template bodies keyed by kind and artifact type.
// Why: Templates are loaded once and shared read-only by every render.
package template

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"github.com/poruru/svcgen/cli/internal/domain/variant"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const templateExt = ".tmpl"

// Template is one parsed blueprint. An empty ArtifactType means the body is shared.
type Template struct {
	Kind         Kind
	ArtifactType variant.ArtifactType
	Name         string

	tmpl   *template.Template
	fields []string
}

// Fields returns the root-level parameters referenced by the body.
func (t Template) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// Parse compiles body with the sprig function map. Execution fails on missing map keys.
func Parse(kind Kind, artifact variant.ArtifactType, name, body string) (Template, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(body)
	if err != nil {
		return Template{}, fmt.Errorf("parse template %s: %w", name, err)
	}
	fields, err := referencedFields(tmpl)
	if err != nil {
		return Template{}, fmt.Errorf("parse template %s: %w", name, err)
	}
	return Template{
		Kind:         kind,
		ArtifactType: artifact,
		Name:         name,
		tmpl:         tmpl,
		fields:       fields,
	}, nil
}

type storeKey struct {
	kind     Kind
	artifact variant.ArtifactType
}

// Store holds templates; it has no mutation API after construction.
type Store struct {
	templates map[storeKey]Template
}

// NewStore builds a store from parsed templates. Later entries win on duplicate keys.
func NewStore(templates ...Template) *Store {
	s := &Store{templates: make(map[storeKey]Template, len(templates))}
	for _, t := range templates {
		s.templates[storeKey{kind: t.Kind, artifact: t.ArtifactType}] = t
	}
	return s
}

var (
	defaultStoreOnce sync.Once
	defaultStore     *Store
	defaultStoreErr  error
)

// DefaultStore returns the store built from the embedded templates.
func DefaultStore() (*Store, error) {
	defaultStoreOnce.Do(func() {
		defaultStore, defaultStoreErr = LoadFS(templateFS, "templates")
	})
	return defaultStore, defaultStoreErr
}

// LoadFS parses every *.tmpl file in dir. File names follow
// "<kind>.tmpl" (shared) or "<kind>.<artifact-type>.tmpl" (specialised).
func LoadFS(fsys fs.FS, dir string) (*Store, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}
	templates := make([]Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateExt) {
			continue
		}
		kind, artifact, err := splitTemplateName(entry.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		parsed, err := Parse(kind, artifact, entry.Name(), string(body))
		if err != nil {
			return nil, err
		}
		templates = append(templates, parsed)
	}
	return NewStore(templates...), nil
}

func splitTemplateName(fileName string) (Kind, variant.ArtifactType, error) {
	base := strings.TrimSuffix(fileName, templateExt)
	kindPart, artifactPart, specialised := strings.Cut(base, ".")
	if kindPart == "" {
		return "", "", fmt.Errorf("invalid template file name: %s", fileName)
	}
	if !specialised {
		return Kind(kindPart), "", nil
	}
	artifact, err := variant.ParseArtifactType(artifactPart)
	if err != nil {
		return "", "", fmt.Errorf("template %s: %w", fileName, err)
	}
	return Kind(kindPart), artifact, nil
}

// Lookup prefers the artifact-specific body and falls back to the shared one.
func (s *Store) Lookup(kind Kind, artifact variant.ArtifactType) (Template, error) {
	if t, ok := s.templates[storeKey{kind: kind, artifact: artifact}]; ok {
		return t, nil
	}
	if t, ok := s.templates[storeKey{kind: kind}]; ok {
		return t, nil
	}
	return Template{}, &failure.ConfigurationError{
		Field:  "template",
		Reason: fmt.Sprintf("no %s template for artifact type %s", kind, artifact),
	}
}

// Names lists template names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for _, t := range s.templates {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
