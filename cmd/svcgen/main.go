// Where: cli/cmd/svcgen/main.go
// What: CLI entrypoint.
// Why: Execute svcgen commands with configured dependencies.
package main

import (
	"os"

	"github.com/poruru/svcgen/cli/internal/command"
)

func main() {
	os.Exit(command.Run(os.Args[1:], buildDependencies()))
}
