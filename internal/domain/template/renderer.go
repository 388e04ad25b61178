// Where: cli/internal/domain/template/renderer.go
// What: Substitute variant parameters into templates.
// Why: Fail loudly on unresolved placeholders and unsafe shell values before any file is written.
package template

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"github.com/poruru/svcgen/cli/internal/domain/variant"
	"github.com/rs/zerolog"
)

var errNilTemplate = errors.New("template is not parsed")

// missingKeyPattern extracts the key from text/template's missingkey=error message.
var missingKeyPattern = regexp.MustCompile(`map has no entry for key "([^"]+)"`)

// Result is the rendered text plus non-fatal findings.
type Result struct {
	Content  string
	Fields   []string
	Warnings []failure.UnusedParameterWarning
}

// Renderer renders templates against variants.
type Renderer struct {
	Logger zerolog.Logger
}

// NewRenderer returns a Renderer that logs warnings to logger.
func NewRenderer(logger zerolog.Logger) *Renderer {
	return &Renderer{Logger: logger}
}

// Render substitutes v's parameters into t.
func (r *Renderer) Render(t Template, v variant.Variant) (Result, error) {
	return r.RenderParams(t, v.Name, Params(v))
}

// RenderParams renders t against an explicit parameter map; owner names the variant in logs.
func (r *Renderer) RenderParams(t Template, owner string, params map[string]any) (Result, error) {
	if t.tmpl == nil {
		return Result{}, errNilTemplate
	}
	if t.Kind.ShellFacing() {
		narrowed, err := shellParams(t.Name, params)
		if err != nil {
			return Result{}, err
		}
		params = narrowed
	}
	for _, field := range t.fields {
		if _, ok := params[field]; !ok {
			return Result{}, &failure.MissingParameterError{Template: t.Name, Field: field}
		}
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, params); err != nil {
		if match := missingKeyPattern.FindStringSubmatch(err.Error()); match != nil {
			return Result{}, &failure.MissingParameterError{Template: t.Name, Field: match[1], Err: err}
		}
		return Result{}, err
	}

	result := Result{
		Content:  normalizeNewline(buf.String()),
		Fields:   t.Fields(),
		Warnings: unusedFields(t),
	}
	for _, warning := range result.Warnings {
		r.Logger.Info().
			Str("variant", owner).
			Str("template", warning.Template).
			Str("field", warning.Field).
			Msg("unused parameter")
	}
	return result, nil
}

func unusedFields(t Template) []failure.UnusedParameterWarning {
	used := make(map[string]struct{}, len(t.fields))
	for _, f := range t.fields {
		used[f] = struct{}{}
	}
	var warnings []failure.UnusedParameterWarning
	for _, field := range variant.Fields {
		if _, ok := used[field]; ok {
			continue
		}
		warnings = append(warnings, failure.UnusedParameterWarning{Template: t.Name, Field: field})
	}
	return warnings
}

// normalizeNewline guarantees generated text files end with exactly one newline.
func normalizeNewline(content string) string {
	return strings.TrimRight(content, "\n") + "\n"
}
