// Where: cli/internal/command/variants.go
// What: variants command adapter.
// Why: Show the effective registry, including operator overrides, and the template set before generating.
package command

import (
	"fmt"
	"io"

	"github.com/poruru/svcgen/cli/internal/domain/template"
	"github.com/poruru/svcgen/cli/internal/infra/config"
	"github.com/poruru/svcgen/cli/internal/infra/ui"
)

func runVariants(cli CLI, deps Dependencies, out io.Writer) int {
	flags := cli.Variants
	emojiEnabled, err := resolveEmojiEnabled(out, false, flags.NoEmoji)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	registry, err := config.LoadRegistry(resolveVariantsFile(flags.VariantsFile))
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	u := ui.NewUI(out, emojiEnabled)
	for _, v := range registry.List() {
		u.Block("🧩", v.Name, []ui.KeyValue{
			{Key: "Port", Value: v.Port},
			{Key: "Artifact", Value: v.ArtifactType},
			{Key: "Service", Value: v.UnitFile()},
			{Key: "Entry point", Value: v.EntryPoint},
		})
	}
	u.Info(fmt.Sprintf("%d variant(s)", registry.Len()))

	store, err := template.DefaultStore()
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	names := store.Names()
	u.Info(fmt.Sprintf("%d template(s)", len(names)))
	u.List(names)
	return 0
}
