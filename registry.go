package cmdtree

import "sync"

// ParserFactory builds a type-erased parser from a parameter set (e.g.
// {"min": "0", "max": "100"} for a bounded integer). Registered per
// value-type tag (spec §4.7).
type ParserFactory func(params map[string]string) (anyParser, error)

// Registry maps a value-type tag to the factory that builds its parser,
// letting a Builder declare an argument component "by type" without
// constructing the Parser itself. Lookup is read-mostly and safe for
// concurrent use; registration may happen in any manager lifecycle state
// (spec §4.7's rules), unlike the tree, which locks after registration.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ParserFactory
}

// NewRegistry returns an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ParserFactory)}
}

// Register installs (or replaces) the factory for valueType.
func (r *Registry) Register(valueType string, factory ParserFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[valueType] = factory
}

// RegisterParser adapts a strongly typed factory into the registry's
// type-erased form, for the common case of registering a Parser[T].
func RegisterParser[T any](r *Registry, valueType string, factory func(params map[string]string) (Parser[T], error)) {
	r.Register(valueType, func(params map[string]string) (anyParser, error) {
		p, err := factory(params)
		if err != nil {
			return nil, err
		}

		return erase(p), nil
	})
}

// Lookup resolves valueType to a parser instance built from params. A
// missing type tag fails the builder at build time (spec §4.7: "Unknown
// type ⇒ builder fails at build time").
func (r *Registry) Lookup(valueType string, params map[string]string) (anyParser, error) {
	r.mu.RLock()
	factory, ok := r.factories[valueType]
	r.mu.RUnlock()

	if !ok {
		return nil, newFailuref(ErrRegistryUnknownType, "no parser registered for value type %q", valueType)
	}

	return factory(params)
}

// RequiredByType appends a mandatory argument component whose parser is
// resolved from registry by valueType, rather than supplied directly —
// spec §4.7's "inference when a component is declared by value type alone".
func (b *Builder) RequiredByType(registry *Registry, name, valueType string, params map[string]string, opts ...ComponentOption) *Builder {
	parser, err := registry.Lookup(valueType, params)
	if err != nil {
		var f *Failure
		if !asFailure(err, &f) {
			f = newFailure(ErrRegistryUnknownType, err.Error())
		}

		return b.withError(f)
	}

	c := &Component{Name: name, Kind: KindArgument, Required: true, ValueType: valueType, parser: parser}
	for _, opt := range opts {
		opt(c)
	}

	return b.Component(c)
}

// OptionalByType is RequiredByType with a default value used when input is
// exhausted.
func (b *Builder) OptionalByType(registry *Registry, name, valueType string, params map[string]string, def any, opts ...ComponentOption) *Builder {
	parser, err := registry.Lookup(valueType, params)
	if err != nil {
		var f *Failure
		if !asFailure(err, &f) {
			f = newFailure(ErrRegistryUnknownType, err.Error())
		}

		return b.withError(f)
	}

	c := &Component{Name: name, Kind: KindArgument, Required: false, ValueType: valueType, parser: parser, defaultValue: func() any { return def }}
	for _, opt := range opts {
		opt(c)
	}

	return b.Component(c)
}

func asFailure(err error, target **Failure) bool {
	f, ok := err.(*Failure)
	if ok {
		*target = f
	}

	return ok
}
