// Where: cli/internal/command/generate.go
// What: generate command adapter.
// Why: Translate flags and environment into a generator run and render its report.
package command

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/poruru/svcgen/cli/internal/domain/variant"
	"github.com/poruru/svcgen/cli/internal/infra/config"
	"github.com/poruru/svcgen/cli/internal/infra/envutil"
	"github.com/poruru/svcgen/cli/internal/infra/interaction"
	"github.com/poruru/svcgen/cli/internal/infra/logging"
	"github.com/poruru/svcgen/cli/internal/infra/ui"
	"github.com/poruru/svcgen/cli/internal/usecase/generate"
	"github.com/rs/zerolog"
)

var (
	errPickRequiresTerminal = errors.New("--pick requires an interactive terminal")
	errNoVariantsSelected   = errors.New("no variants selected")
)

func runGenerate(cli CLI, deps Dependencies, out io.Writer) int {
	flags := cli.Generate
	emojiEnabled, err := resolveEmojiEnabled(out, flags.Emoji, flags.NoEmoji)
	if err != nil {
		return exitWithError(deps.ErrOut, fmt.Errorf("generate: %w", err))
	}
	logger := newLogger(cli.Verbose, deps.ErrOut)

	registry, err := config.LoadRegistry(resolveVariantsFile(flags.VariantsFile))
	if err != nil {
		return exitWithSuggestion(deps.ErrOut, err.Error(), []string{
			fmt.Sprintf("Check the file given by --variants or %s.", envutil.HostEnvKey(envutil.SuffixVariants)),
			fmt.Sprintf("Run `%s variants` to see the built-in registry.", cliName()),
		})
	}

	baseDir, err := resolveBaseDir(flags.BaseDir, deps.Getwd)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	only := flags.Only
	if flags.Pick {
		only, err = pickVariants(registry, only, deps)
		if err != nil {
			return exitWithError(deps.ErrOut, err)
		}
	}

	gen := &generate.Generator{
		Registry: registry,
		Writer:   deps.Writer,
		Logger:   logger,
		DryRun:   flags.DryRun,
		Only:     only,
	}
	report := gen.Run(baseDir)
	printReport(ui.NewUI(out, emojiEnabled), ui.NewUI(deps.ErrOut, emojiEnabled), report)

	if report.State() != generate.StateCompleted {
		return 1
	}
	return 0
}

func printReport(out, errOut ui.UserInterface, report generate.Report) {
	for _, result := range report.Succeeded() {
		out.Block("📦", result.Name, []ui.KeyValue{
			{Key: "Output", Value: result.OutputDir},
			{Key: "Port", Value: result.Port},
			{Key: "Artifact", Value: result.ArtifactType},
			{Key: "Files", Value: len(result.Files)},
		})
		out.List(result.Files)
		for _, removed := range result.Removed {
			verb := "removed stale"
			if report.DryRun {
				verb = "would remove stale"
			}
			out.List([]string{fmt.Sprintf("%s %s", verb, removed)})
		}
	}
	for _, result := range report.Failed() {
		errOut.Error(fmt.Sprintf("%s: %v", displayName(result.Name), result.Err))
	}

	total := len(report.Variants)
	failed := len(report.Failed())
	switch {
	case failed > 0:
		errOut.Warn(fmt.Sprintf("%s: %d of %d variant(s) failed", report.State(), failed, total))
	case report.DryRun:
		out.Success(fmt.Sprintf("Dry run: %d variant(s) planned under %s, nothing written", total, report.BaseDir))
	default:
		out.Success(fmt.Sprintf("Generated %d variant(s) under %s", total, report.BaseDir))
	}
}

func displayName(name string) string {
	if name == "" {
		return "(registry)"
	}
	return fmt.Sprintf("%q", name)
}

func newLogger(verbosity int, errOut io.Writer) zerolog.Logger {
	level, err := logging.ResolveLevel(verbosity, envutil.GetHostEnv(envutil.SuffixLogLevel))
	if err != nil {
		plainUI(errOut).Warn(err.Error())
	}
	return logging.New(errOut, level, !isTerminalWriter(errOut))
}

func resolveVariantsFile(flag string) string {
	if trimmed := strings.TrimSpace(flag); trimmed != "" {
		return trimmed
	}
	return envutil.GetHostEnv(envutil.SuffixVariants)
}

func resolveBaseDir(arg string, getwd func() (string, error)) (string, error) {
	dir := strings.TrimSpace(arg)
	if dir == "" {
		dir = envutil.GetHostEnv(envutil.SuffixOutputDir)
	}
	if dir == "" {
		wd, err := getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	return abs, nil
}

func pickVariants(registry *variant.Registry, preselected []string, deps Dependencies) ([]string, error) {
	if !deps.Interactive() {
		return nil, errPickRequiresTerminal
	}
	variants := registry.List()
	options := make([]interaction.SelectOption, len(variants))
	for i, v := range variants {
		options[i] = interaction.SelectOption{
			Label: fmt.Sprintf("%s (port %d, %s)", v.Name, v.Port, v.ArtifactType),
			Value: v.Name,
		}
	}
	if len(preselected) == 0 {
		preselected = registry.Names()
	}
	selected, err := deps.Prompter.MultiSelect("Variants to generate", options, preselected)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, errNoVariantsSelected
	}
	return selected, nil
}
