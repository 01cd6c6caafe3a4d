package cmdtree

// HandlerFunc is a command's handler, invoked with the fully-populated
// context once the walk reaches a terminal node with input exhausted (spec
// §4.4 step 7). A synchronous handler just returns; a handler wanting
// asynchronous completion should respect ctx.GoContext()'s cancellation and
// may be dispatched onto a caller-supplied executor by the Manager (spec §5).
type HandlerFunc func(ctx *Context) error

// Command is an ordered sequence of components, a handler, an optional
// required sender type, a permission and descriptive metadata (spec §3).
// Built immutably through Builder; once Build succeeds, a Command's
// component list never changes.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Metadata    map[string]string

	Components []*Component
	Handler    HandlerFunc
	Permission Permission

	requiredSenderName  string
	requiredSenderCheck func(any) bool
}

// RequiresSender reports whether a Command declared a required sender
// subtype, and its diagnostic name.
func (c *Command) RequiresSender() (name string, required bool) {
	return c.requiredSenderName, c.requiredSenderCheck != nil
}

// SenderSatisfies evaluates a command's required-sender-type check (spec
// §4.4's "sender-type enforcement"). A command with no requirement accepts
// any sender.
func (c *Command) SenderSatisfies(sender any) bool {
	if c.requiredSenderCheck == nil {
		return true
	}

	return c.requiredSenderCheck(sender)
}

// FlagComponent returns the command's flag-group component, if it declared
// one (spec §3: "at most one flag-group component").
func (c *Command) FlagComponent() *Component {
	for _, comp := range c.Components {
		if comp.Kind == KindFlagGroup {
			return comp
		}
	}

	return nil
}

// Builder constructs a Command immutably: every mutator returns a new
// Builder value rather than mutating the receiver, per spec §3 ("Built
// immutably via a builder that returns a new builder on each mutation") and
// §9's "move semantics + self by value for fluent chains" note — in Go that
// is approximated by copying the accumulated slice on each call.
type Builder struct {
	cmd        Command
	components []*Component
	errs       []*Failure
}

// NewBuilder starts a Command builder. meta is copied into Command.Metadata.
func NewBuilder(name string, meta map[string]string, description string, aliases ...string) *Builder {
	metaCopy := make(map[string]string, len(meta))
	for k, v := range meta {
		metaCopy[k] = v
	}

	b := &Builder{}
	b.cmd = Command{
		Name:        name,
		Aliases:     aliases,
		Description: description,
		Metadata:    metaCopy,
		Permission:  NoPermission,
	}

	if failure := validateIdentifier("command", name); failure != nil {
		b = b.withError(failure)
	}

	return b
}

// clone returns a shallow copy of b suitable for a fluent mutator to modify
// and return, leaving the receiver untouched.
func (b *Builder) clone() *Builder {
	nb := &Builder{
		cmd:        b.cmd,
		components: append([]*Component(nil), b.components...),
		errs:       append([]*Failure(nil), b.errs...),
	}
	nb.cmd.Aliases = append([]string(nil), b.cmd.Aliases...)
	nb.cmd.Metadata = make(map[string]string, len(b.cmd.Metadata))
	for k, v := range b.cmd.Metadata {
		nb.cmd.Metadata[k] = v
	}

	return nb
}

func (b *Builder) withError(f *Failure) *Builder {
	nb := b.clone()
	nb.errs = append(nb.errs, f)

	return nb
}

// Literal appends a fixed-keyword component.
func (b *Builder) Literal(name string, aliases ...string) *Builder {
	return b.Component(Literal(name, aliases...))
}

// Component appends an already-constructed Component (the product of
// Literal, Required[T], Optional[T] or FlagGroupComponent) to the builder,
// enforcing name validity, name uniqueness within the command and the
// argument-ordering invariant as it goes.
func (b *Builder) Component(c *Component) *Builder {
	nb := b.clone()

	if c.Kind != KindFlagGroup {
		if failure := validateIdentifier(c.Kind.String(), c.Name); failure != nil {
			nb.errs = append(nb.errs, failure)
		}

		for _, existing := range nb.components {
			if existing.Name == c.Name {
				nb.errs = append(nb.errs, newFailuref(ErrBuilder, "duplicate component name %q", c.Name))
			}
		}
	}

	if len(nb.components) > 0 {
		prev := nb.components[len(nb.components)-1]
		if !prev.Required && c.Required {
			nb.errs = append(nb.errs, newFailuref(ErrBuilder,
				"component %q is required but follows optional component %q", c.Name, prev.Name))
		}
	}

	if c.Kind == KindFlagGroup {
		for _, existing := range nb.components {
			if existing.Kind == KindFlagGroup {
				nb.errs = append(nb.errs, newFailuref(ErrBuilder, "command already has a flag-group component"))
			}
		}
	}

	nb.components = append(nb.components, c)

	return nb
}

// Permission gates the whole command behind a Permission.
func (b *Builder) Permission(p Permission) *Builder {
	nb := b.clone()
	nb.cmd.Permission = p

	return nb
}

// SenderType sets a required sender subtype, built from RequireSenderType[T].
func (b *Builder) SenderType(name string, check func(sender any) bool) *Builder {
	nb := b.clone()
	nb.cmd.requiredSenderName = name
	nb.cmd.requiredSenderCheck = check

	return nb
}

// Handler installs the command's handler.
func (b *Builder) Handler(fn HandlerFunc) *Builder {
	nb := b.clone()
	nb.cmd.Handler = fn

	return nb
}

// Build finalizes the command, validating that no builder error has
// accumulated, a handler is installed, and the flag-group (if any) is the
// final component. Build does not count components: a command with none
// builds, and Tree.Insert rejects it at registration.
func (b *Builder) Build() (*Command, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}

	if b.cmd.Handler == nil {
		return nil, newFailure(ErrBuilder, "command has no handler")
	}

	for i, c := range b.components {
		if c.Kind == KindFlagGroup && i != len(b.components)-1 {
			return nil, newFailuref(ErrBuilder, "flag-group component must be the last component")
		}
	}

	cmd := b.cmd
	cmd.Components = append([]*Component(nil), b.components...)

	return &cmd, nil
}
