// Where: cli/internal/infra/ui/ui.go
// What: High-level output surface for commands.
// Why: Commands print through one interface so output can be captured in tests.
package ui

import "io"

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by commands.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Error(msg string)
	Block(emoji, title string, rows []KeyValue)
	List(items []string)
}

// NewUI returns a UserInterface on out; emoji toggles pictographic prefixes.
func NewUI(out io.Writer, emojiEnabled bool) UserInterface {
	return consoleUI{console: NewWithEmoji(out, emojiEnabled)}
}

type consoleUI struct {
	console *Console
}

func (c consoleUI) Info(msg string) {
	c.console.Info(msg)
}

func (c consoleUI) Warn(msg string) {
	c.console.Warn(msg)
}

func (c consoleUI) Success(msg string) {
	c.console.Success(msg)
}

func (c consoleUI) Error(msg string) {
	c.console.Error(msg)
}

func (c consoleUI) Block(emoji, title string, rows []KeyValue) {
	c.console.BlockStart(emoji, title)
	for _, kv := range rows {
		c.console.Item(kv.Key, kv.Value)
	}
	c.console.BlockEnd()
}

func (c consoleUI) List(items []string) {
	for _, item := range items {
		c.console.ItemPlain(item)
	}
}
