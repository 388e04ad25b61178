// Where: cli/cmd/svcgen/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/poruru/svcgen/cli/internal/command"
	"github.com/poruru/svcgen/cli/internal/infra/fileops"
	"github.com/poruru/svcgen/cli/internal/infra/interaction"
)

var getwd = os.Getwd

// buildDependencies constructs the runtime dependencies required by the CLI.
func buildDependencies() command.Dependencies {
	return command.Dependencies{
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Prompter:    interaction.HuhPrompter{},
		Interactive: func() bool { return interaction.IsTerminal(os.Stdin) },
		Getwd:       getwd,
		Writer:      fileops.NewDiskWriter(),
	}
}
