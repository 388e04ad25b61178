// Where: cli/internal/domain/failure/failure.go
// What: Error taxonomy shared by planning, rendering, and writing.
// Why: Let the orchestrator classify per-variant failures without string matching.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindConfiguration    Kind = "configuration"
	KindMissingParameter Kind = "missing-parameter"
	KindUnsafeValue      Kind = "unsafe-value"
	KindPathConflict     Kind = "path-conflict"
	KindIO               Kind = "io"
)

// ConfigurationError reports a bad or missing variant parameter.
type ConfigurationError struct {
	Variant string
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Variant != "" {
		fmt.Fprintf(&b, " in variant %q", e.Variant)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *ConfigurationError) Kind() Kind { return KindConfiguration }

// MissingParameterError reports a template placeholder with no matching parameter.
type MissingParameterError struct {
	Template string
	Field    string
	Err      error
}

func (e *MissingParameterError) Error() string {
	msg := fmt.Sprintf("template %s references undefined parameter %q", e.Template, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingParameterError) Unwrap() error { return e.Err }

func (e *MissingParameterError) Kind() Kind { return KindMissingParameter }

// UnsafeValueError reports a value rejected before it reached shell text.
type UnsafeValueError struct {
	Template string
	Field    string
	Value    string
}

func (e *UnsafeValueError) Error() string {
	return fmt.Sprintf(
		"unsafe value for %s in template %s: %q (allowed: letters, digits, '-', '_')",
		e.Field, e.Template, e.Value,
	)
}

func (e *UnsafeValueError) Kind() Kind { return KindUnsafeValue }

// PathConflictError reports a path collision or a file/directory type mismatch.
type PathConflictError struct {
	Path   string
	Reason string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("path conflict at %s: %s", e.Path, e.Reason)
}

func (e *PathConflictError) Kind() Kind { return KindPathConflict }

// IOError wraps a filesystem failure with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Kind() Kind { return KindIO }

// UnusedParameterWarning is informational: a variant field was never referenced by a template.
type UnusedParameterWarning struct {
	Template string
	Field    string
}

func (w UnusedParameterWarning) String() string {
	return fmt.Sprintf("template %s does not use parameter %q", w.Template, w.Field)
}

type kinded interface {
	Kind() Kind
}

// KindOf returns the Kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}
