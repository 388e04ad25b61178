// Where: cli/internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction and emoji resolution.
package command

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/poruru/svcgen/cli/internal/infra/interaction"
	"github.com/poruru/svcgen/cli/internal/infra/ui"
)

var errEmojiFlagConflict = errors.New("--emoji and --no-emoji cannot be used together")

func plainUI(out io.Writer) ui.UserInterface {
	return ui.NewUI(out, false)
}

// resolveEmojiEnabled applies explicit flags first, then NO_EMOJI and TERM=dumb,
// then enables emoji only when out is a terminal.
func resolveEmojiEnabled(out io.Writer, emoji, noEmoji bool) (bool, error) {
	if emoji && noEmoji {
		return false, errEmojiFlagConflict
	}
	if emoji {
		return true, nil
	}
	if noEmoji {
		return false, nil
	}
	if strings.TrimSpace(os.Getenv("NO_EMOJI")) != "" {
		return false, nil
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "dumb" {
		return false, nil
	}
	return isTerminalWriter(out), nil
}

func isTerminalWriter(out io.Writer) bool {
	if file, ok := out.(*os.File); ok {
		return interaction.IsTerminal(file)
	}
	return false
}
