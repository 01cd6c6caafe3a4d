package cmdtree

import "context"

// Key is a typed token for reading a value previously bound into a Context,
// modeled on spec §9's "heterogenous map... keyed by typed tokens carrying a
// phantom of the value type". Two Keys with the same name but different T
// are distinct slots.
type Key[T any] struct {
	name string
}

// NewKey creates a typed context key. Component and flag names double as key
// names, so Get[T](ctx, NewKey[T](componentName)) retrieves a bound value.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the key's string name.
func (k Key[T]) Name() string {
	return k.name
}

// flagState accumulates what the flag parser recorded for one flag: presence
// and, for repeatable flags, every parsed value in encounter order.
type flagState struct {
	present bool
	count   int
	values  []any
}

// Context is the per-invocation carrier threaded through a single parse: the
// sender, every component value bound so far, flag state, and arbitrary
// processor-added entries. It is created fresh for each Execute/Suggest call
// and is never shared across invocations, so it needs no internal locking.
type Context struct {
	goCtx  context.Context
	Sender any

	values map[string]any
	flags  map[string]*flagState
	extra  map[string]any
}

// NewContext seeds a fresh execution context for sender, carrying goCtx for
// cancellation propagation into asynchronous parsers (spec §5).
func NewContext(goCtx context.Context, sender any) *Context {
	if goCtx == nil {
		goCtx = context.Background()
	}

	return &Context{
		goCtx:  goCtx,
		Sender: sender,
		values: make(map[string]any),
		flags:  make(map[string]*flagState),
		extra:  make(map[string]any),
	}
}

// GoContext returns the underlying context.Context, for cancellation checks
// and deadlines.
func (c *Context) GoContext() context.Context {
	return c.goCtx
}

// bind records a component's parsed value under its name.
func (c *Context) bind(name string, value any) {
	c.values[name] = value
}

// Get retrieves a previously bound component value by typed key. ok is false
// if nothing was bound under that name, or it was bound with a different
// type.
func Get[T any](ctx *Context, key Key[T]) (T, bool) {
	var zero T

	raw, found := ctx.values[key.name]
	if !found {
		return zero, false
	}

	v, ok := raw.(T)
	if !ok {
		return zero, false
	}

	return v, true
}

// MustGet retrieves a previously bound value, panicking if absent — intended
// for handler code reading a component the command declaration guarantees is
// present (e.g. a required argument).
func MustGet[T any](ctx *Context, key Key[T]) T {
	v, ok := Get(ctx, key)
	if !ok {
		panic("cmdtree: no value bound for key " + key.name)
	}

	return v
}

// Raw returns a bound value without type narrowing, for generic diagnostic
// or logging code that doesn't know T statically.
func (c *Context) Raw(name string) (any, bool) {
	v, ok := c.values[name]

	return v, ok
}

// SetExtra stores a processor-added scratch entry, keyed by an arbitrary
// string the pre/post-processor chain agrees on.
func (c *Context) SetExtra(key string, value any) {
	c.extra[key] = value
}

// Extra retrieves a processor-added scratch entry.
func (c *Context) Extra(key string) (any, bool) {
	v, ok := c.extra[key]

	return v, ok
}

func (c *Context) flagSlot(name string) *flagState {
	st, ok := c.flags[name]
	if !ok {
		st = &flagState{}
		c.flags[name] = st
	}

	return st
}

// FlagPresent reports whether a flag was encountered during parsing.
func (c *Context) FlagPresent(name string) bool {
	st, ok := c.flags[name]

	return ok && st.present
}

// FlagCount returns how many times a flag was encountered (0 if never).
func (c *Context) FlagCount(name string) int {
	st, ok := c.flags[name]
	if !ok {
		return 0
	}

	return st.count
}

// FlagValue returns a single flag's bound value (the last one seen for a
// repeatable value-flag), narrowed to T.
func FlagValue[T any](ctx *Context, name string) (T, bool) {
	var zero T

	st, ok := ctx.flags[name]
	if !ok || len(st.values) == 0 {
		return zero, false
	}

	v, ok := st.values[len(st.values)-1].(T)

	return v, ok
}

// FlagValues returns every value a repeatable value-flag accumulated, in
// encounter order, narrowed to T.
func FlagValues[T any](ctx *Context, name string) []T {
	st, ok := ctx.flags[name]
	if !ok {
		return nil
	}

	out := make([]T, 0, len(st.values))

	for _, raw := range st.values {
		if v, ok := raw.(T); ok {
			out = append(out, v)
		}
	}

	return out
}
