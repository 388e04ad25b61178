// Where: cli/internal/infra/interaction/selector.go
// What: Interactive selection helpers using the huh library.
// Why: Provide keyboard-based variant selection for generate --pick.
package interaction

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

var errNothingSelected = errors.New("select at least one option")

var runMultiSelectPrompt = func(title string, options []huh.Option[string], selected *[]string) error {
	return huh.NewMultiSelect[string]().
		Title(title).
		Options(options...).
		Validate(func(values []string) error {
			if len(values) == 0 {
				return errNothingSelected
			}
			return nil
		}).
		Value(selected).
		Run()
}

// HuhPrompter implements the Prompter interface using the huh TUI library.
type HuhPrompter struct{}

// MultiSelect returns the chosen option values in option order.
func (p HuhPrompter) MultiSelect(title string, options []SelectOption, preselected []string) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}

	checked := make(map[string]bool, len(preselected))
	for _, value := range preselected {
		checked[value] = true
	}
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value).Selected(checked[opt.Value])
	}

	selected := append([]string(nil), preselected...)
	if err := runMultiSelectPrompt(title, huhOptions, &selected); err != nil {
		return nil, fmt.Errorf("prompt multi-select: %w", err)
	}
	return orderBy(options, selected), nil
}

func orderBy(options []SelectOption, selected []string) []string {
	chosen := make(map[string]bool, len(selected))
	for _, value := range selected {
		chosen[value] = true
	}
	ordered := make([]string, 0, len(selected))
	for _, opt := range options {
		if chosen[opt.Value] {
			ordered = append(ordered, opt.Value)
		}
	}
	return ordered
}
