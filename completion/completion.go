// Package completion bridges cmdtree's suggestion engine (Manager.Suggest)
// to carapace, so a host CLI gets real bash/zsh/fish completion scripts
// generated from the partial-parse walk instead of a second, separately
// maintained completion spec. Grounded on the teacher's
// gen/completions/command.go and group.go, which do the analogous job for
// its reflective tag scanner; cmdtree drives carapace from Manager.Suggest
// directly instead of reflecting over a struct.
package completion

import (
	"strings"

	carapace "github.com/rsteube/carapace"
	"github.com/spf13/cobra"

	"github.com/kingfisher-cli/cmdtree"
)

// Action returns a carapace.Action that reconstructs the full command line
// typed so far (prefix, any already-confirmed carapace args, and the
// current word) and delegates it to manager.Suggest.
func Action(manager *cmdtree.Manager, sender any, prefix string) carapace.Action {
	return carapace.ActionCallback(func(c carapace.Context) carapace.Action {
		line := joinLine(prefix, c.Args, c.Value)

		words := manager.Suggest(sender, line)

		return carapace.ActionValues(words...)
	})
}

func joinLine(prefix string, args []string, current string) string {
	var parts []string

	if prefix != "" {
		parts = append(parts, strings.Fields(prefix)...)
	}

	parts = append(parts, args...)

	line := strings.Join(parts, " ")
	if line != "" {
		line += " "
	}

	return line + current
}

// Generate attaches a single suggestion-engine-backed completer to cmd's
// every positional argument, and returns the resulting carapace so callers
// may further customize it before cmd.Execute. Unlike
// the teacher's per-struct-field scanner, one Action suffices here — cmdtree
// itself decides what's valid at any given cursor position.
func Generate(cmd *cobra.Command, manager *cmdtree.Manager, sender any) *carapace.Carapace {
	gen := carapace.Gen(cmd)
	gen.PositionalAnyCompletion(Action(manager, sender, ""))

	return gen
}
