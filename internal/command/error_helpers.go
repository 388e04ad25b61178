// Where: cli/internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure messages and follow-up hints consistent across commands.
package command

import (
	"fmt"
	"io"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	plainUI(out).Info(fmt.Sprintf("✗ %v", err))
	return 1
}

// exitWithSuggestion prints a message followed by next-step hints and returns exit code 1.
func exitWithSuggestion(out io.Writer, message string, suggestions []string) int {
	u := plainUI(out)
	u.Info(fmt.Sprintf("⚠️  %s", message))
	if len(suggestions) > 0 {
		u.Info("")
		u.Info("Next steps:")
		for _, s := range suggestions {
			u.Info(fmt.Sprintf("  - %s", s))
		}
	}
	return 1
}
