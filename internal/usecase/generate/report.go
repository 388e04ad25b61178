// Where: cli/internal/usecase/generate/report.go
// What: Outcome of a generation run.
// Why: Callers decide exit status and output from one value instead of scattered errors.
package generate

import (
	"errors"
	"fmt"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"github.com/poruru/svcgen/cli/internal/domain/variant"
)

// State is the terminal state of a run.
type State string

const (
	StateCompleted           State = "completed"
	StateCompletedWithErrors State = "completed-with-errors"
)

// VariantResult records what happened to one variant.
type VariantResult struct {
	Name         string
	Port         int
	ArtifactType variant.ArtifactType
	OutputDir    string
	// Files are relative to OutputDir, in write order.
	Files []string
	// Removed lists stale files from a previous run; in dry-run mode, the files that would be removed.
	Removed  []string
	Warnings []failure.UnusedParameterWarning
	Err      error
}

// Failed reports whether the variant produced an error.
func (r VariantResult) Failed() bool {
	return r.Err != nil
}

// Report aggregates the per-variant results in processing order.
type Report struct {
	BaseDir  string
	DryRun   bool
	Variants []VariantResult
}

// State is StateCompletedWithErrors when any variant failed.
func (r Report) State() State {
	for _, v := range r.Variants {
		if v.Failed() {
			return StateCompletedWithErrors
		}
	}
	return StateCompleted
}

// Failed returns the failed variants.
func (r Report) Failed() []VariantResult {
	var failed []VariantResult
	for _, v := range r.Variants {
		if v.Failed() {
			failed = append(failed, v)
		}
	}
	return failed
}

// Succeeded returns the variants generated without error.
func (r Report) Succeeded() []VariantResult {
	var ok []VariantResult
	for _, v := range r.Variants {
		if !v.Failed() {
			ok = append(ok, v)
		}
	}
	return ok
}

// Err joins every variant error, each prefixed with its variant name; nil on success.
func (r Report) Err() error {
	var errs []error
	for _, v := range r.Failed() {
		errs = append(errs, fmt.Errorf("variant %s: %w", v.Name, v.Err))
	}
	return errors.Join(errs...)
}
