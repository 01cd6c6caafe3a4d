package cmdtree

import (
	"context"
	"strings"
)

// Outcome is the result of a dispatch attempt (spec §6's exit surface).
// Success is true only once a handler has actually run to completion without
// error; every other case carries a populated Failure.
type Outcome struct {
	Success bool
	Failure *Failure
	Context *Context
}

// Execute tokenizes input, walks the command tree, and — on a fully
// consumed match — runs postprocessors and the command's handler. It always
// returns a non-nil Outcome; errors never propagate as a Go error from this
// method, per spec §4.4's contract that parsing "can never fail" outright.
func (m *Manager) Execute(goCtx context.Context, sender any, input string) *Outcome {
	if goCtx == nil {
		goCtx = context.Background()
	}

	ctx := NewContext(goCtx, sender)

	processed, failure := m.runPreProcessors(ctx, input)
	if failure != nil {
		return m.outcome(ctx, failure)
	}

	trimmed := strings.TrimRight(processed, " ")
	if strings.TrimSpace(trimmed) == "" {
		// Kept as its own Kind rather than folded into ErrInvalidSyntax: an
		// empty command is a distinct, common case worth routing separately
		// via OnError, even though it's also "invalid syntax at position 0".
		return m.outcome(ctx, &Failure{Kind: ErrEmptyCommand, Position: 0, Message: "empty command"})
	}

	cur := NewCursor(trimmed)

	return m.walk(ctx, cur)
}

// ExecuteAsync runs Execute on the goroutine run spawns, rather than the
// calling goroutine, and delivers the Outcome on the returned channel (spec
// §5's "caller-supplied executor" asynchronous mode). Cancelling goCtx before
// run's goroutine observes the cancellation yields a Cancelled outcome
// instead of invoking the handler.
func (m *Manager) ExecuteAsync(goCtx context.Context, sender any, input string, run func(func())) <-chan *Outcome {
	result := make(chan *Outcome, 1)

	run(func() {
		result <- m.Execute(goCtx, sender, input)
		close(result)
	})

	return result
}

func (m *Manager) runPreProcessors(ctx *Context, input string) (string, *Failure) {
	pre, _ := m.snapshotProcessors()

	processed := input

	for _, p := range pre {
		next, err := p(ctx, processed)
		if err != nil {
			return "", &Failure{Kind: ErrExecution, Message: "preprocessor rejected input", Err: err}
		}

		processed = next
	}

	return processed, nil
}

// walk is the single-pass, cursor-driven descent spec §4.4 describes.
func (m *Manager) walk(ctx *Context, cur *Cursor) *Outcome {
	n := m.tree.root
	settings := m.Settings()

	for {
		permitted, denied := filterPermission(n.children, ctx.Sender)
		if len(n.children) > 0 && len(permitted) == 0 {
			return m.outcome(ctx, &Failure{Kind: ErrNoPermission, Message: "no permission", Permission: denied})
		}

		if n.command != nil && !cur.HasRemaining() {
			return m.finish(ctx, n.command)
		}

		if settings.LiberalFlagParsing {
			if fg := findReachableFlagGroup(n); fg != nil {
				if _, failure := ConsumeFlags(fg, ctx, cur); failure != nil {
					return m.outcome(ctx, failure)
				}
			}
		}

		if !cur.HasRemaining() {
			opt := firstOptionalChild(permitted)
			if opt == nil {
				return m.outcome(ctx, m.unmatched(n, cur, permitted))
			}

			bindDefault(ctx, opt.component)
			n = opt

			continue
		}

		if n.command != nil && len(n.children) == 0 {
			return m.outcome(ctx, &Failure{Kind: ErrInvalidSyntax, Position: cur.Position(), Message: "too many arguments"})
		}

		matched, matchFailure := matchChild(ctx, cur, permitted)
		if matched != nil {
			n = matched

			continue
		}

		// A concrete parse failure (e.g. an unknown flag) always outranks
		// falling back to an optional sibling: the sender typed something
		// meant for this position, and it was wrong, rather than having
		// left the position empty.
		if matchFailure != nil {
			return m.outcome(ctx, matchFailure)
		}

		if opt := firstOptionalChild(permitted); opt != nil {
			bindDefault(ctx, opt.component)
			n = opt

			continue
		}

		if n.command != nil {
			return m.outcome(ctx, &Failure{Kind: ErrInvalidSyntax, Position: cur.Position(), Message: "too many arguments"})
		}

		return m.outcome(ctx, m.unmatched(n, cur, permitted))
	}
}

// unmatched builds the diagnostic failure for a node where no child matched
// and none was optional: UnknownCommand at the root (nothing recognized
// yet), InvalidSyntax everywhere else (spec §7's distinction between the two
// kinds).
func (m *Manager) unmatched(n *node, cur *Cursor, permitted []*node) *Failure {
	if n.parent == nil {
		token, _ := cur.PeekString()

		names := literalNames(permitted)

		failure := &Failure{Kind: ErrUnknownCommand, Position: cur.Position(), Message: "unknown command: " + token}

		settings := m.Settings()
		if settings.SuggestionMinDistance > 0 && token != "" {
			if best, dist := closestMatch(token, names); dist >= 0 && dist <= settings.SuggestionMinDistance {
				failure.Message += " (did you mean \"" + best + "\"?)"
			}
		}

		return failure
	}

	return &Failure{Kind: ErrInvalidSyntax, Position: cur.Position(), Message: expectedMessage(permitted)}
}

func literalNames(nodes []*node) []string {
	var names []string

	for _, n := range nodes {
		if n.component.Kind == KindLiteral {
			names = append(names, n.component.Name)
		}
	}

	return names
}

func expectedMessage(permitted []*node) string {
	if len(permitted) == 0 {
		return "invalid syntax"
	}

	var parts []string

	for _, n := range permitted {
		switch n.component.Kind {
		case KindLiteral:
			parts = append(parts, n.component.Name)
		case KindArgument:
			parts = append(parts, "<"+n.component.Name+">")
		case KindFlagGroup:
			parts = append(parts, "[flags]")
		}
	}

	return "expected token of kind " + strings.Join(parts, " | ")
}

// filterPermission splits children into those whose component permission
// allows sender, and returns the first denied permission's name for
// diagnostics.
func filterPermission(children []*node, sender any) (permitted []*node, deniedName string) {
	for _, c := range children {
		if c.component.Permission.Allows(sender) {
			permitted = append(permitted, c)
		} else if deniedName == "" {
			deniedName = c.component.Permission.Name()
		}
	}

	return permitted, deniedName
}

// firstOptionalChild returns the first non-required child in declared order,
// used both for exhausted-input defaulting and "no child matched" fallback
// (spec §4.4 step 5).
func firstOptionalChild(nodes []*node) *node {
	for _, n := range nodes {
		if !n.component.Required {
			return n
		}
	}

	return nil
}

func bindDefault(ctx *Context, c *Component) {
	if c.Kind == KindFlagGroup {
		return
	}

	ctx.bind(c.Name, c.Default())
}

// matchChild tries every permitted literal child (exact surface match) then
// every permitted argument/flag-group child (parser attempt, cursor
// save/restore on failure), per spec §4.4 steps 3–4. It returns the node to
// descend into, or the first argument-parse failure encountered for
// diagnostics.
func matchChild(ctx *Context, cur *Cursor, permitted []*node) (*node, *Failure) {
	token, err := cur.PeekString()
	if err == nil {
		for _, child := range permitted {
			if child.component.Kind == KindLiteral && child.component.Matches(token) {
				_, _ = cur.ReadString()
				ctx.bind(child.component.Name, token)

				return child, nil
			}
		}
	}

	var first *Failure

	for _, child := range permitted {
		switch child.component.Kind {
		case KindArgument:
			mark := cur.Save()

			val, failure := child.component.parser.parseAny(ctx, cur)
			if failure == nil {
				ctx.bind(child.component.Name, val)

				return child, nil
			}

			cur.Restore(mark)

			if first == nil {
				failure.Kind = ErrArgumentParse
				failure.Component = child.component.Name
				failure.Position = mark.pos
				first = failure
			}
		case KindFlagGroup:
			mark := cur.Save()

			if _, failure := ConsumeFlags(child.component.flagGroup, ctx, cur); failure == nil {
				return child, nil
			} else if first == nil {
				cur.Restore(mark)
				first = failure
			}
		}
	}

	return nil, first
}

// findReachableFlagGroup follows a chain of single-child nodes looking for a
// flag-group component, used by liberal-flag-parsing mode to decide whether
// flag tokens may be consumed ahead of the next positional (spec §4.5). It
// only recognizes the flag group when the path to it is unambiguous (no
// sibling branching along the way).
func findReachableFlagGroup(n *node) *FlagGroup {
	cur := n

	for {
		if len(cur.children) != 1 {
			return nil
		}

		child := cur.children[0]
		if child.component.Kind == KindFlagGroup {
			return child.component.flagGroup
		}

		cur = child
	}
}

// finish runs the command-permission and sender-type checks, postprocessor
// chain and handler for a terminal node reached with input fully consumed
// (spec §4.4 step 7).
func (m *Manager) finish(ctx *Context, cmd *Command) *Outcome {
	if !cmd.Permission.Allows(ctx.Sender) {
		return m.outcome(ctx, &Failure{Kind: ErrNoPermission, Message: "no permission", Permission: cmd.Permission.Name()})
	}

	if name, required := cmd.RequiresSender(); required && !cmd.SenderSatisfies(ctx.Sender) {
		return m.outcome(ctx, &Failure{Kind: ErrInvalidSenderType, Message: "sender does not satisfy required type", Permission: name})
	}

	select {
	case <-ctx.GoContext().Done():
		return m.outcome(ctx, &Failure{Kind: ErrCancelled, Message: "invocation cancelled before handler ran"})
	default:
	}

	_, post := m.snapshotProcessors()

	for _, p := range post {
		if err := p(ctx); err != nil {
			return m.outcome(ctx, &Failure{Kind: ErrExecution, Message: "postprocessor rejected invocation", Err: err})
		}
	}

	if err := cmd.Handler(ctx); err != nil {
		return m.outcome(ctx, &Failure{Kind: ErrExecution, Message: err.Error(), Err: err})
	}

	return &Outcome{Success: true, Context: ctx}
}

func (m *Manager) outcome(ctx *Context, f *Failure) *Outcome {
	return &Outcome{Success: false, Failure: m.routeFailure(f), Context: ctx}
}
