// Where: cli/internal/domain/template/safety.go
// What: Allow-list validation for values interpolated into shell text.
// Why: Variant values must never be able to inject shell syntax into generated scripts.
package template

import (
	"fmt"
	"regexp"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
)

var shellSafePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsShellSafe reports whether value may be interpolated into shell text.
func IsShellSafe(value string) bool {
	return shellSafePattern.MatchString(value)
}

// shellFields are the only parameters a shell-facing template can see.
var shellFields = []string{"Name", "ServiceName", "ArtifactType", "Packaging", "Port"}

// shellParams narrows params to shellFields and validates every value in the
// narrowed map, referenced or not. Other keys are absent, so a shell-facing
// template that reaches for them fails as a missing parameter.
func shellParams(templateName string, params map[string]any) (map[string]any, error) {
	narrowed := make(map[string]any, len(shellFields))
	for _, field := range shellFields {
		value, ok := params[field]
		if !ok {
			continue
		}
		if err := checkShellValue(templateName, field, value); err != nil {
			return nil, err
		}
		narrowed[field] = value
	}
	return narrowed, nil
}

// Integers are formatted by the template engine and cannot carry shell syntax.
func checkShellValue(templateName, field string, value any) error {
	switch typed := value.(type) {
	case int, int64, uint16:
		return nil
	case string:
		if !IsShellSafe(typed) {
			return &failure.UnsafeValueError{Template: templateName, Field: field, Value: typed}
		}
	default:
		text := fmt.Sprint(typed)
		if !IsShellSafe(text) {
			return &failure.UnsafeValueError{Template: templateName, Field: field, Value: text}
		}
	}
	return nil
}
