package interaction

import (
	"errors"
	"reflect"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestHuhPrompterMultiSelectUsesRunner(t *testing.T) {
	orig := runMultiSelectPrompt
	t.Cleanup(func() { runMultiSelectPrompt = orig })

	var gotTitle string
	var gotOptions int
	var gotPreselected []string
	runMultiSelectPrompt = func(title string, options []huh.Option[string], selected *[]string) error {
		gotTitle = title
		gotOptions = len(options)
		gotPreselected = append([]string(nil), (*selected)...)
		*selected = []string{"legacy", "modern"}
		return nil
	}

	options := []SelectOption{
		{Label: "modern (8080)", Value: "modern"},
		{Label: "legacy (8081)", Value: "legacy"},
	}
	got, err := (HuhPrompter{}).MultiSelect("Variants", options, []string{"modern"})
	if err != nil {
		t.Fatalf("MultiSelect() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"modern", "legacy"}) {
		t.Fatalf("MultiSelect() = %v, want option order", got)
	}
	if gotTitle != "Variants" || gotOptions != 2 {
		t.Fatalf("title=%q options=%d", gotTitle, gotOptions)
	}
	if !reflect.DeepEqual(gotPreselected, []string{"modern"}) {
		t.Fatalf("preselected = %v", gotPreselected)
	}
}

func TestHuhPrompterMultiSelectWrapsError(t *testing.T) {
	orig := runMultiSelectPrompt
	t.Cleanup(func() { runMultiSelectPrompt = orig })
	runMultiSelectPrompt = func(string, []huh.Option[string], *[]string) error {
		return errors.New("tty unavailable")
	}

	_, err := (HuhPrompter{}).MultiSelect("Variants", []SelectOption{{Label: "a", Value: "a"}}, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "prompt multi-select: tty unavailable" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHuhPrompterMultiSelectEmptyOptions(t *testing.T) {
	orig := runMultiSelectPrompt
	t.Cleanup(func() { runMultiSelectPrompt = orig })
	runMultiSelectPrompt = func(string, []huh.Option[string], *[]string) error {
		t.Fatal("runner must not be called without options")
		return nil
	}

	got, err := (HuhPrompter{}).MultiSelect("Variants", nil, nil)
	if err != nil || got != nil {
		t.Fatalf("got=%v err=%v", got, err)
	}
}
