package cmdtree

import "strings"

// Flag is one named side-channel parameter a flag-group component owns
// (spec §3/§4.5). A nil value parser marks a presence flag; otherwise each
// occurrence consumes one value token.
type Flag struct {
	Name        string
	Aliases     []string // additional long names
	Short       rune     // 0 if this flag has no short form
	Repeatable  bool
	Permission  Permission
	Description string

	parser anyParser // nil => presence flag
}

// NewPresenceFlag declares a boolean-style flag with no value (`--flag`).
func NewPresenceFlag(name string, short rune, opts ...FlagOption) *Flag {
	f := &Flag{Name: name, Short: short}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// NewValueFlag declares a flag that consumes the next cursor token as its
// value (`--name value` / `-n value`), parsed by parser.
func NewValueFlag[T any](name string, short rune, parser Parser[T], opts ...FlagOption) *Flag {
	f := &Flag{Name: name, Short: short, parser: erase(parser)}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// IsValue reports whether the flag expects a value token.
func (f *Flag) IsValue() bool {
	return f.parser != nil
}

// FlagOption configures optional Flag fields.
type FlagOption func(*Flag)

// WithFlagAliases adds alternate long names for a flag.
func WithFlagAliases(aliases ...string) FlagOption {
	return func(f *Flag) { f.Aliases = append(f.Aliases, aliases...) }
}

// WithFlagPermission gates a flag behind a Permission.
func WithFlagPermission(p Permission) FlagOption {
	return func(f *Flag) { f.Permission = p }
}

// WithFlagDescription sets a flag's description text.
func WithFlagDescription(desc string) FlagOption {
	return func(f *Flag) { f.Description = desc }
}

// WithFlagRepeatable allows a flag to appear more than once; its context
// entry accumulates every occurrence instead of failing "duplicate flag".
func WithFlagRepeatable() FlagOption {
	return func(f *Flag) { f.Repeatable = true }
}

// longNames returns every long surface (primary + aliases) this flag matches.
func (f *Flag) longNames() []string {
	return append([]string{f.Name}, f.Aliases...)
}

// FlagGroup is the ordered set of flags a command's single flag-group
// component owns. Flag names (primary + aliases, and short runes) must be
// unique within the group.
type FlagGroup struct {
	Flags []*Flag

	byLong  map[string]*Flag
	byShort map[rune]*Flag
}

// NewFlagGroup builds a FlagGroup from flags, rejecting duplicate names.
func NewFlagGroup(flags ...*Flag) (*FlagGroup, error) {
	g := &FlagGroup{
		byLong:  make(map[string]*Flag),
		byShort: make(map[rune]*Flag),
	}

	for _, f := range flags {
		for _, name := range f.longNames() {
			if _, exists := g.byLong[name]; exists {
				return nil, newFailuref(ErrBuilder, "duplicate flag name %q", name)
			}

			g.byLong[name] = f
		}

		if f.Short != 0 {
			if _, exists := g.byShort[f.Short]; exists {
				return nil, newFailuref(ErrBuilder, "duplicate short flag -%c", f.Short)
			}

			g.byShort[f.Short] = f
		}

		g.Flags = append(g.Flags, f)
	}

	return g, nil
}

func (g *FlagGroup) findLong(name string) (*Flag, bool) {
	f, ok := g.byLong[name]

	return f, ok
}

func (g *FlagGroup) findShort(r rune) (*Flag, bool) {
	f, ok := g.byShort[r]

	return f, ok
}

// flagParseState enumerates the flag state machine's states, spec §4.5.
type flagParseState int

const (
	stateSeeking flagParseState = iota
	stateTerminal
)

// ConsumeFlags runs the flag-group state machine against cur for as long as
// the next token looks like a flag, recording presence/values into ctx. It
// returns (consumed, failure): consumed is true if at least one flag token
// was handled; a non-flag token or exhausted input simply yields — it is
// left for the walker to interpret (in liberal mode, as "try the next
// positional"; in terminal mode, as "end of this component").
func ConsumeFlags(group *FlagGroup, ctx *Context, cur *Cursor) (consumed bool, failure *Failure) {
	for {
		state, one, failure := consumeOneFlag(group, ctx, cur)
		if failure != nil {
			return consumed, failure
		}

		if state == stateTerminal {
			return consumed, nil
		}

		consumed = consumed || one
		if !one {
			return consumed, nil
		}
	}
}

func consumeOneFlag(group *FlagGroup, ctx *Context, cur *Cursor) (flagParseState, bool, *Failure) {
	if !cur.HasRemaining() {
		return stateTerminal, false, nil
	}

	mark := cur.Save()

	tok, err := cur.PeekString()
	if err != nil {
		return stateSeeking, false, nil
	}

	switch {
	case tok == "--":
		_, _ = cur.ReadString()

		return stateTerminal, true, nil

	case strings.HasPrefix(tok, "--") && len(tok) > 2:
		_, _ = cur.ReadString()

		name, inlineValue, hasInline := splitInlineValue(tok[2:])

		f, ok := group.findLong(name)
		if !ok {
			cur.Restore(mark)

			return stateSeeking, false, newFailuref(ErrFlagParse, "unknown flag --%s", name)
		}

		return stateSeeking, true, applyFlag(group, ctx, cur, f, f.Name, inlineValue, hasInline)

	case strings.HasPrefix(tok, "-") && len(tok) > 1 && tok != "--":
		_, _ = cur.ReadString()

		return stateSeeking, true, consumeShortCluster(group, ctx, cur, tok[1:])

	default:
		return stateSeeking, false, nil
	}
}

// splitInlineValue splits a long flag token's name from an optional
// `=value` suffix (`--mode=755`).
func splitInlineValue(name string) (string, string, bool) {
	if idx := strings.IndexByte(name, '='); idx >= 0 {
		return name[:idx], name[idx+1:], true
	}

	return name, "", false
}

// consumeShortCluster handles `-abc`: every rune but the last is forced to
// presence semantics; the trailing rune may be a value flag, consuming the
// next cursor token (spec §4.5).
func consumeShortCluster(group *FlagGroup, ctx *Context, cur *Cursor, runes string) *Failure {
	chars := []rune(runes)

	for i, r := range chars {
		f, ok := group.findShort(r)
		if !ok {
			return newFailuref(ErrFlagParse, "unknown flag -%c", r)
		}

		last := i == len(chars)-1

		if f.IsValue() && !last {
			return newFailuref(ErrFlagParse, "value flag -%c must be last in a combined short flag group", r)
		}

		if f.IsValue() && last {
			if failure := applyFlag(group, ctx, cur, f, f.Name, "", false); failure != nil {
				return failure
			}

			continue
		}

		if failure := recordPresence(ctx, f); failure != nil {
			return failure
		}
	}

	return nil
}

// applyFlag records or parses one flag occurrence (long form, possibly with
// an inline `=value`), enforcing its permission and repeatability.
func applyFlag(group *FlagGroup, ctx *Context, cur *Cursor, f *Flag, boundName, inlineValue string, hasInline bool) *Failure {
	if !f.Permission.Allows(ctx.Sender) {
		return &Failure{Kind: ErrNoPermission, Flag: f.Name, Message: "no permission for flag", Permission: f.Permission.Name()}
	}

	if !f.IsValue() {
		if hasInline {
			return newFailuref(ErrFlagParse, "flag --%s does not take a value", f.Name)
		}

		return recordPresence(ctx, f)
	}

	st := ctx.flagSlot(boundName)
	if st.present && !f.Repeatable {
		return newFailuref(ErrFlagParse, "duplicate flag --%s", f.Name)
	}

	var value any
	var failure *Failure

	if hasInline {
		sub := NewCursor(inlineValue)

		value, failure = f.parser.parseAny(ctx, sub)
	} else {
		value, failure = f.parser.parseAny(ctx, cur)
	}

	if failure != nil {
		return &Failure{Kind: ErrFlagParse, Flag: f.Name, Message: failure.Message, Err: failure}
	}

	st.present = true
	st.count++
	st.values = append(st.values, value)

	return nil
}

func recordPresence(ctx *Context, f *Flag) *Failure {
	if !f.Permission.Allows(ctx.Sender) {
		return &Failure{Kind: ErrNoPermission, Flag: f.Name, Message: "no permission for flag", Permission: f.Permission.Name()}
	}

	st := ctx.flagSlot(f.Name)
	if st.present && !f.Repeatable {
		return newFailuref(ErrFlagParse, "duplicate flag --%s", f.Name)
	}

	st.present = true
	st.count++

	return nil
}
