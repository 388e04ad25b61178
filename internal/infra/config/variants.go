// Where: cli/internal/infra/config/variants.go
// What: Operator-supplied variant file loading.
// Why: Let operators add or replace variants without rebuilding the generator.
package config

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"github.com/poruru/svcgen/cli/internal/domain/variant"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const schemaURL = "https://svcgen.local/schema/variants.schema.json"

//go:embed schema/variants.schema.json
var schemaFS embed.FS

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

var errVariantFilePathRequired = errors.New("variant file path is required")

// VariantFile is the decoded form of a variants YAML document.
type VariantFile struct {
	ReplaceDefaults bool           `json:"replace_defaults"`
	Variants        []VariantEntry `json:"variants"`
}

// VariantEntry mirrors variant.Variant with the artifact type still in its textual form.
type VariantEntry struct {
	Name         string `json:"name"`
	Port         int    `json:"port"`
	ArtifactType string `json:"artifact_type"`
	ServiceName  string `json:"service_name"`
	EntryPoint   string `json:"entry_point"`
}

// LoadVariantFile reads and validates the variant file at path.
func LoadVariantFile(path string) (VariantFile, error) {
	if strings.TrimSpace(path) == "" {
		return VariantFile{}, errVariantFilePathRequired
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return VariantFile{}, &failure.IOError{Op: "read", Path: path, Err: err}
	}
	file, err := ParseVariantFile(content)
	if err != nil {
		return VariantFile{}, fmt.Errorf("variant file %s: %w", path, err)
	}
	return file, nil
}

// ParseVariantFile converts YAML to JSON, validates it against the embedded schema, and decodes it.
func ParseVariantFile(content []byte) (VariantFile, error) {
	sch, err := loadSchema()
	if err != nil {
		return VariantFile{}, fmt.Errorf("load variant schema: %w", err)
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return VariantFile{}, &failure.ConfigurationError{Field: "variants", Reason: fmt.Sprintf("invalid yaml: %v", err)}
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return VariantFile{}, fmt.Errorf("decode json: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return VariantFile{}, &failure.ConfigurationError{Field: "variants", Reason: schemaReason(err)}
	}

	var file VariantFile
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return VariantFile{}, fmt.Errorf("decode variant file: %w", err)
	}
	return file, nil
}

// Resolve merges the file's variants onto defaults.
// Without replace_defaults an entry whose name matches a default replaces it in place;
// other entries are appended in file order.
func (f VariantFile) Resolve(defaults []variant.Variant) ([]variant.Variant, error) {
	var merged []variant.Variant
	if !f.ReplaceDefaults {
		merged = append(merged, defaults...)
	}
	index := make(map[string]int, len(merged))
	for i, v := range merged {
		index[v.Name] = i
	}

	for _, entry := range f.Variants {
		v, err := entry.toVariant()
		if err != nil {
			return nil, err
		}
		if i, ok := index[v.Name]; ok {
			merged[i] = v
			continue
		}
		index[v.Name] = len(merged)
		merged = append(merged, v)
	}
	return merged, nil
}

func (e VariantEntry) toVariant() (variant.Variant, error) {
	artifact, err := variant.ParseArtifactType(e.ArtifactType)
	if err != nil {
		return variant.Variant{}, &failure.ConfigurationError{
			Variant: e.Name,
			Field:   "artifact_type",
			Reason:  err.Error(),
		}
	}
	return variant.Variant{
		Name:         strings.TrimSpace(e.Name),
		Port:         e.Port,
		ArtifactType: artifact,
		ServiceName:  strings.TrimSpace(e.ServiceName),
		EntryPoint:   strings.TrimSpace(e.EntryPoint),
	}, nil
}

// LoadRegistry builds the registry from the built-in defaults plus the optional variant file.
func LoadRegistry(path string) (*variant.Registry, error) {
	if strings.TrimSpace(path) == "" {
		return variant.NewRegistry(variant.Defaults()...)
	}
	file, err := LoadVariantFile(path)
	if err != nil {
		return nil, err
	}
	variants, err := file.Resolve(variant.Defaults())
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, &failure.ConfigurationError{Field: "variants", Reason: "no variants defined"}
	}
	return variant.NewRegistry(variants...)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := schemaFS.ReadFile("schema/variants.schema.json")
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

func schemaReason(err error) string {
	var validation *jsonschema.ValidationError
	if errors.As(err, &validation) {
		leaf := validation
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		location := leaf.InstanceLocation
		if location == "" {
			location = "/"
		}
		return fmt.Sprintf("%s: %s", location, leaf.Message)
	}
	return err.Error()
}
