package cmdtree

import (
	"context"
	"strings"
)

// Suggest walks as far into the tree as the confirmed (whitespace-terminated)
// prefix of input unambiguously reaches, then returns completion candidates
// for the final, still-being-typed token (spec §4.6). Unlike Execute, a
// dead end never surfaces as an error — suggestion degrades to an empty (or,
// with Settings.ForceSuggestion, single blank) result instead.
func (m *Manager) Suggest(sender any, input string) []string {
	settings := m.Settings()

	count, partial := splitForSuggest(input)

	probe := NewCursor(input)
	for i := 0; i < count; i++ {
		if _, err := probe.ReadString(); err != nil {
			break
		}
	}

	ctx := NewContext(context.Background(), sender)
	cur := NewCursor(input[:probe.Position()])

	n := m.walkForSuggest(ctx, cur)

	var out []string
	if !cur.HasRemaining() {
		out = m.collectSuggestions(n, ctx, partial, settings)
	}

	for _, p := range m.snapshotSuggestionProcessors() {
		out = p(ctx, out)
	}

	if settings.ForceSuggestion && len(out) == 0 {
		out = []string{""}
	}

	return out
}

// splitForSuggest separates input into a count of fully confirmed tokens and
// the trailing in-progress partial token. A trailing space means every token
// is confirmed and the partial is empty; an unterminated quote at the tail
// is itself treated as the partial text.
func splitForSuggest(input string) (confirmedCount int, partial string) {
	hasTrailingSpace := strings.HasSuffix(input, " ")

	cur := NewCursor(input)

	var tokens []string

	for cur.HasRemaining() {
		tok, err := cur.ReadString()
		if err != nil {
			break
		}

		tokens = append(tokens, tok)
	}

	if leftover := strings.TrimLeft(cur.Remaining(), " "); leftover != "" {
		return len(tokens), leftover
	}

	if hasTrailingSpace || len(tokens) == 0 {
		return len(tokens), ""
	}

	return len(tokens) - 1, tokens[len(tokens)-1]
}

// walkForSuggest descends the tree over cur's confirmed tokens, reusing the
// same literal/argument matching and optional-cascade rules Execute's walk
// applies, but never fails — a stuck point just stops the descent where it
// is, for collectSuggestions to work from.
func (m *Manager) walkForSuggest(ctx *Context, cur *Cursor) *node {
	n := m.tree.root
	settings := m.Settings()

	for cur.HasRemaining() {
		permitted, _ := filterPermission(n.children, ctx.Sender)

		if settings.LiberalFlagParsing {
			if fg := findReachableFlagGroup(n); fg != nil {
				_, _ = ConsumeFlags(fg, ctx, cur)
			}

			if !cur.HasRemaining() {
				break
			}
		}

		matched, _ := matchChild(ctx, cur, permitted)
		if matched != nil {
			n = matched

			continue
		}

		opt := firstOptionalChild(permitted)
		if opt == nil {
			break
		}

		bindDefault(ctx, opt.component)
		n = opt
	}

	return n
}

// collectSuggestions gathers candidates for partial from n's
// permission-filtered children: literal aliases prefix-matched
// case-insensitively (spec §9's adopted suggestion rule), argument
// components delegating to their parser/override, and flag names from a
// reachable flag group.
func (m *Manager) collectSuggestions(n *node, ctx *Context, partial string, settings Settings) []string {
	permitted, _ := filterPermission(n.children, ctx.Sender)

	var out []string

	seen := make(map[string]bool)
	lowerPartial := strings.ToLower(partial)

	for _, child := range permitted {
		switch child.component.Kind {
		case KindLiteral:
			for _, alias := range child.component.Aliases {
				if strings.HasPrefix(strings.ToLower(alias), lowerPartial) {
					addUnique(&out, seen, alias)
				}
			}
		case KindArgument:
			for _, s := range child.component.Suggestions(ctx, partial) {
				if strings.HasPrefix(strings.ToLower(s), lowerPartial) {
					addUnique(&out, seen, s)
				}
			}
		case KindFlagGroup:
			for _, s := range flagSuggestions(child.component.flagGroup, ctx, partial) {
				addUnique(&out, seen, s)
			}
		}
	}

	if settings.LiberalFlagParsing {
		if fg := findReachableFlagGroup(n); fg != nil {
			for _, s := range flagSuggestions(fg, ctx, partial) {
				addUnique(&out, seen, s)
			}
		}
	}

	return out
}

// flagSuggestions returns the long-form `--name` surfaces of fg's flags that
// the sender may use and whose name is prefixed by partial's `--`/`-` form.
func flagSuggestions(fg *FlagGroup, ctx *Context, partial string) []string {
	if !strings.HasPrefix(partial, "-") {
		return nil
	}

	want := strings.TrimLeft(partial, "-")

	var out []string

	for _, f := range fg.Flags {
		if !f.Permission.Allows(ctx.Sender) {
			continue
		}

		for _, name := range f.longNames() {
			if strings.HasPrefix(name, want) {
				out = append(out, "--"+name)
			}
		}
	}

	return out
}

func addUnique(out *[]string, seen map[string]bool, s string) {
	if seen[s] {
		return
	}

	seen[s] = true
	*out = append(*out, s)
}
