// Where: cli/internal/usecase/generate/generate.go
// What: Generation workflow across all registered variants.
// Why: Plan, render, and write each variant in isolation so one failure never blocks the rest.
package generate

import (
	"errors"
	"os"

	"github.com/poruru/svcgen/cli/internal/domain/failure"
	"github.com/poruru/svcgen/cli/internal/domain/plan"
	"github.com/poruru/svcgen/cli/internal/domain/template"
	"github.com/poruru/svcgen/cli/internal/domain/variant"
	"github.com/poruru/svcgen/cli/internal/infra/fileops"
	"github.com/poruru/svcgen/cli/internal/infra/logging"
	"github.com/rs/zerolog"
)

var errRegistryNotConfigured = errors.New("variant registry is not configured")

// Generator emits one project tree per variant below a base directory.
// Nil collaborators fall back to the embedded templates, the disk writer, and os.Stat.
type Generator struct {
	Registry *variant.Registry
	Store    *template.Store
	Writer   fileops.Writer
	Stat     plan.StatFunc
	Logger   zerolog.Logger
	// DryRun plans and renders without touching the filesystem.
	DryRun bool
	// Only restricts the run to the named variants; empty means all.
	Only []string
}

type renderedFile struct {
	entry   plan.Entry
	content string
}

// Run generates every selected variant and never stops at the first failure.
func (g *Generator) Run(baseDir string) Report {
	report := Report{BaseDir: baseDir, DryRun: g.DryRun}
	logger := logging.Component(g.Logger, "generate")

	if g.Registry == nil {
		report.Variants = append(report.Variants, VariantResult{Err: errRegistryNotConfigured})
		return report
	}
	store, err := g.store()
	if err != nil {
		for _, v := range g.Registry.List() {
			report.Variants = append(report.Variants, newResult(v, err))
		}
		return report
	}

	selected, unknown := g.selectVariants()
	renderer := template.NewRenderer(logger)
	var planned []plan.Plan
	for _, v := range selected {
		done := logging.StartOperation(logger.With().Str("variant", v.Name).Logger(), "generate variant")
		result, p := g.runVariant(baseDir, v, store, renderer, planned)
		done()
		if p != nil {
			planned = append(planned, *p)
		}
		if result.Failed() {
			logger.Info().Err(result.Err).Str("variant", v.Name).Str("kind", string(failure.KindOf(result.Err))).Msg("variant failed")
		} else {
			logger.Info().Str("variant", v.Name).Int("files", len(result.Files)).Bool("dry_run", g.DryRun).Msg("variant generated")
		}
		report.Variants = append(report.Variants, result)
	}
	for _, name := range unknown {
		report.Variants = append(report.Variants, VariantResult{
			Name: name,
			Err:  &failure.ConfigurationError{Variant: name, Field: "name", Reason: "unknown variant"},
		})
	}
	return report
}

// runVariant returns the plan when it was accepted, so later variants are checked against it.
func (g *Generator) runVariant(
	baseDir string,
	v variant.Variant,
	store *template.Store,
	renderer *template.Renderer,
	planned []plan.Plan,
) (VariantResult, *plan.Plan) {
	result := newResult(v, nil)

	p, err := plan.Build(baseDir, v)
	if err != nil {
		result.Err = err
		return result, nil
	}
	result.OutputDir = p.Root

	files := make([]renderedFile, 0, len(p.Entries))
	for _, entry := range p.Entries {
		tmpl, err := store.Lookup(entry.Kind, v.ArtifactType)
		if err != nil {
			result.Err = err
			return result, nil
		}
		rendered, err := renderer.Render(tmpl, v)
		if err != nil {
			result.Err = err
			return result, nil
		}
		result.Warnings = append(result.Warnings, rendered.Warnings...)
		files = append(files, renderedFile{entry: entry, content: rendered.Content})
	}

	if err := p.Validate(); err != nil {
		result.Err = err
		return result, nil
	}
	for _, other := range planned {
		if err := plan.Disjoint(other, p); err != nil {
			result.Err = err
			return result, nil
		}
	}
	if err := p.CheckConflicts(g.stat()); err != nil {
		result.Err = err
		return result, &p
	}

	keep := make([]string, len(files))
	for i, f := range files {
		keep[i] = f.entry.RelativePath
	}
	previous, _, err := fileops.ReadManifest(p.Root)
	if err != nil {
		result.Err = err
		return result, &p
	}

	if g.DryRun {
		result.Files = keep
		result.Removed = fileops.Stale(previous, keep)
		return result, &p
	}

	writer := g.writer()
	removed, err := fileops.PruneStale(writer, p.Root, previous, keep)
	result.Removed = removed
	if err != nil {
		result.Err = err
		return result, &p
	}

	manifest := fileops.Manifest{
		Variant:      v.Name,
		Port:         v.Port,
		ArtifactType: v.ArtifactType.String(),
	}
	for _, f := range files {
		if err := writer.Write(p.Root, f.entry.RelativePath, f.content, f.entry.Executable); err != nil {
			result.Err = err
			return result, &p
		}
		result.Files = append(result.Files, f.entry.RelativePath)
		manifest.Files = append(manifest.Files, fileops.NewManifestFile(f.entry.RelativePath, f.content, f.entry.Executable))
	}

	payload, err := fileops.EncodeManifest(manifest)
	if err != nil {
		result.Err = err
		return result, &p
	}
	if err := writer.Write(p.Root, fileops.ManifestName, string(payload), false); err != nil {
		result.Err = err
	}
	return result, &p
}

// selectVariants applies Only in registry order and returns names the registry lacks.
func (g *Generator) selectVariants() ([]variant.Variant, []string) {
	if len(g.Only) == 0 {
		return g.Registry.List(), nil
	}
	wanted := make(map[string]bool, len(g.Only))
	var unknown []string
	for _, name := range g.Only {
		if wanted[name] {
			continue
		}
		wanted[name] = true
		if _, ok := g.Registry.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	var selected []variant.Variant
	for _, v := range g.Registry.List() {
		if wanted[v.Name] {
			selected = append(selected, v)
		}
	}
	return selected, unknown
}

func (g *Generator) store() (*template.Store, error) {
	if g.Store != nil {
		return g.Store, nil
	}
	return template.DefaultStore()
}

func (g *Generator) writer() fileops.Writer {
	if g.Writer != nil {
		return g.Writer
	}
	return fileops.NewDiskWriter()
}

func (g *Generator) stat() plan.StatFunc {
	if g.Stat != nil {
		return g.Stat
	}
	return os.Stat
}

func newResult(v variant.Variant, err error) VariantResult {
	return VariantResult{
		Name:         v.Name,
		Port:         v.Port,
		ArtifactType: v.ArtifactType,
		Err:          err,
	}
}
