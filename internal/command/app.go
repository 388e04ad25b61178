// Where: cli/internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/poruru/svcgen/cli/internal/infra/envutil"
	"github.com/poruru/svcgen/cli/internal/infra/fileops"
	"github.com/poruru/svcgen/cli/internal/infra/interaction"
	"github.com/poruru/svcgen/cli/internal/meta"
	"github.com/poruru/svcgen/cli/internal/version"
)

// Dependencies holds the collaborators injected into command execution.
// Nil fields fall back to the process environment.
type Dependencies struct {
	Out      io.Writer
	ErrOut   io.Writer
	Prompter interaction.Prompter
	// Interactive reports whether prompts can be shown.
	Interactive func() bool
	Getwd       func() (string, error)
	Writer      fileops.Writer
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	EnvFile  string      `name:"env-file" help:"Path to .env file (default: ./.env when present)"`
	Verbose  int         `short:"v" type:"counter" help:"Increase log verbosity (repeatable)"`
	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate a project tree for every variant (default command)"`
	Variants VariantsCmd `cmd:"" help:"List the variant registry"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

type (
	// GenerateCmd defines the generate command flags.
	GenerateCmd struct {
		BaseDir      string   `arg:"" optional:"" name:"base-dir" help:"Output directory (default: $SVCGEN_OUTPUT_DIR or the working directory)"`
		Only         []string `name:"only" sep:"," help:"Generate only the named variants (repeatable or comma-separated)"`
		VariantsFile string   `name:"variants" help:"YAML file adding or replacing variants (default: $SVCGEN_VARIANTS)"`
		DryRun       bool     `name:"dry-run" help:"Plan and render without writing files"`
		Pick         bool     `name:"pick" help:"Choose variants interactively"`
		Emoji        bool     `name:"emoji" help:"Enable emoji output (default: auto)"`
		NoEmoji      bool     `name:"no-emoji" help:"Disable emoji output"`
	}

	// VariantsCmd defines the variants command flags.
	VariantsCmd struct {
		VariantsFile string `name:"variants" help:"YAML file adding or replacing variants (default: $SVCGEN_VARIANTS)"`
		NoEmoji      bool   `name:"no-emoji" help:"Disable emoji output"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}
	if deps.Interactive == nil {
		deps.Interactive = func() bool { return interaction.IsTerminal(os.Stdin) }
	}
	if deps.Prompter == nil {
		deps.Prompter = interaction.HuhPrompter{}
	}

	cli := CLI{}
	parser, err := kong.New(
		&cli,
		kong.Name(cliName()),
		kong.Description("Generate Maven projects and systemd service scripts for each application variant."),
		kong.Writers(out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, deps.ErrOut)
	}

	// Load environment file if provided or if .env exists in current directory
	if _, err := envutil.LoadEnvFile(cli.EnvFile); err != nil {
		plainUI(deps.ErrOut).Warn(fmt.Sprintf("failed to load env file: %v", err))
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	plainUI(deps.ErrOut).Warn(fmt.Sprintf("unknown command: %s", command))
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"generate":            runGenerate,
		"generate <base-dir>": runGenerate,
		"variants":            runVariants,
		"version":             func(cli CLI, _ Dependencies, out io.Writer) int { return runVersion(cli, out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(_ CLI, out io.Writer) int {
	plainUI(out).Info(fmt.Sprintf("%s %s", meta.AppName, version.GetVersion()))
	return 0
}

// handleParseError prints the parse failure with a usage hint.
func handleParseError(err error, errOut io.Writer) int {
	return exitWithSuggestion(errOut, err.Error(), []string{
		fmt.Sprintf("Run `%s --help` for usage.", cliName()),
	})
}
