package cmdtree

// ComponentKind distinguishes the three component variants spec §3 defines.
type ComponentKind uint

const (
	KindLiteral ComponentKind = iota
	KindArgument
	KindFlagGroup
)

func (k ComponentKind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindArgument:
		return "argument"
	case KindFlagGroup:
		return "flag-group"
	default:
		return "unknown"
	}
}

// SuggestFunc produces completion candidates for a partial token, optionally
// consulting previously bound context values. Used as a component's
// suggestion-provider override (spec §3).
type SuggestFunc func(ctx *Context, partial string) []string

// Component is one parsing unit within a Command: a fixed literal keyword, a
// typed argument, or the single flag-group. It is a tagged variant rather
// than an interface hierarchy (spec §9's re-architecture hint) — the walker
// dispatches on Kind.
type Component struct {
	Name        string
	Kind        ComponentKind
	Required    bool
	Description string
	Permission  Permission

	// ValueType tags the component's declared value type, used both for
	// registry inference (spec §4.7) and the tree's argument-equivalence
	// check at insertion (spec §4.3).
	ValueType string

	// Aliases is only meaningful for KindLiteral: the full set of
	// surfaces (including Name) that match this literal.
	Aliases []string

	parser       anyParser // KindArgument only
	defaultValue func() any
	suggest      SuggestFunc
	flagGroup    *FlagGroup // KindFlagGroup only
}

// Matches reports whether token is one of a literal component's alias
// surfaces. Dispatch compares case-sensitively, per spec §9's adopted rule.
func (c *Component) Matches(token string) bool {
	if c.Kind != KindLiteral {
		return false
	}

	for _, alias := range c.Aliases {
		if alias == token {
			return true
		}
	}

	return false
}

// aliasOverlap reports whether c and other (both literals) share any alias
// surface — the tree's sibling-conflict check (spec §3/§4.3).
func (c *Component) aliasOverlap(other *Component) bool {
	for _, a := range c.Aliases {
		for _, b := range other.Aliases {
			if a == b {
				return true
			}
		}
	}

	return false
}

// argumentEquivalent reports whether c and other (both arguments) are the
// "same name and same parser identity" the tree treats as prefix-shareable
// (spec §4.3). Parser identity is tracked via ValueType, the declared tag
// every Required/Optional call assigns.
func (c *Component) argumentEquivalent(other *Component) bool {
	return c.Name == other.Name && c.ValueType == other.ValueType
}

// Default evaluates the optional component's default-value supplier. Callers
// must only invoke this when Required is false.
func (c *Component) Default() any {
	if c.defaultValue == nil {
		return nil
	}

	return c.defaultValue()
}

// Suggestions returns completion candidates for partial, preferring an
// explicit override over the underlying parser's own Suggest.
func (c *Component) Suggestions(ctx *Context, partial string) []string {
	if c.suggest != nil {
		return c.suggest(ctx, partial)
	}

	if c.parser != nil {
		return c.parser.suggestAny(ctx, partial)
	}

	return nil
}

// Literal constructs a fixed-keyword component. name is also the primary
// alias; additional aliases are accepted as alternate surfaces.
func Literal(name string, aliases ...string) *Component {
	return &Component{
		Name:     name,
		Kind:     KindLiteral,
		Required: true,
		Aliases:  append([]string{name}, aliases...),
	}
}

// ComponentOption configures optional Component fields. Applied by
// Required/Optional/FlagGroupComponent after the base component is built.
type ComponentOption func(*Component)

// WithDescription sets a component's description text.
func WithDescription(desc string) ComponentOption {
	return func(c *Component) { c.Description = desc }
}

// WithPermission gates a component behind a Permission.
func WithPermission(p Permission) ComponentOption {
	return func(c *Component) { c.Permission = p }
}

// WithSuggestions overrides a component's suggestion source.
func WithSuggestions(fn SuggestFunc) ComponentOption {
	return func(c *Component) { c.suggest = fn }
}

// Required declares a typed, mandatory argument component backed by parser.
// valueType tags the component's declared type for registry inference and
// tree sharing (spec §4.3/§4.7) — callers typically pass the same string
// their registry factory is keyed by.
//
// Required is a free function, not a Builder method, because Go does not
// allow a method to introduce its own type parameter.
func Required[T any](name, valueType string, parser Parser[T], opts ...ComponentOption) *Component {
	c := &Component{
		Name:      name,
		Kind:      KindArgument,
		Required:  true,
		ValueType: valueType,
		parser:    erase(parser),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Optional declares a typed argument component with a default value used
// when input is exhausted (spec §4.4 step 5).
func Optional[T any](name, valueType string, parser Parser[T], def T, opts ...ComponentOption) *Component {
	c := Required(name, valueType, parser, opts...)
	c.Required = false
	c.defaultValue = func() any { return def }

	return c
}

// OptionalFunc is Optional, but computes the default lazily at walk time
// rather than capturing a fixed value up front.
func OptionalFunc[T any](name, valueType string, parser Parser[T], def func() T, opts ...ComponentOption) *Component {
	c := Required(name, valueType, parser, opts...)
	c.Required = false
	c.defaultValue = func() any { return def() }

	return c
}

// FlagGroupComponent wraps a FlagGroup as the single flag-owning component of
// a command. Per spec §3, at most one may exist per command, and it must be
// the last component — enforced by Builder.Build.
func FlagGroupComponent(group *FlagGroup, opts ...ComponentOption) *Component {
	c := &Component{
		Name:      "flags",
		Kind:      KindFlagGroup,
		Required:  false,
		flagGroup: group,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
