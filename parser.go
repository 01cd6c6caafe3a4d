package cmdtree

// Parser is the capability contract a leaf value type must implement to back
// an argument component: consume some input and produce a typed value, or
// fail leaving the cursor untouched; and separately, produce completion
// candidates for a partial token.
//
// Individual leaf parsers for domain types (numbers, identifiers, enums, ...)
// are out of scope for this module — see cmdtree/values for a small starter
// set — but the contract they implement lives here.
type Parser[T any] interface {
	// Parse consumes some prefix of the cursor's remaining input and
	// returns a value, or fails. On failure the cursor must be left at
	// its pre-call position; callers may rely on this instead of saving
	// their own marker around every Parse call.
	Parse(ctx *Context, cur *Cursor) (T, *Failure)

	// Suggest returns completion candidates for the given in-progress
	// partial token. Implementations may consult previously bound
	// component values via ctx.
	Suggest(ctx *Context, partial string) []string
}

// ContextFree is an optional capability: a parser that declares itself
// context-free promises its Suggest results depend only on the partial
// token, never on ctx, which lets a suggestion cache key purely off the
// partial string.
type ContextFree interface {
	ContextFree() bool
}

// AcceptsEmpty is an optional capability used by the tree's ambiguity
// check (spec §4.3): a parser that can succeed having consumed nothing is
// "greedy", and two such parsers as sibling argument children of the same
// node are rejected when Manager.Finalize runs the tree's ambiguity check.
type AcceptsEmpty interface {
	AcceptsEmpty() bool
}

// Func adapts a pair of plain functions into a Parser[T], the common case
// for hand-written leaf parsers (spec's "Parser as a capability bundle, not
// inheritance").
type Func[T any] struct {
	ParseFunc   func(ctx *Context, cur *Cursor) (T, *Failure)
	SuggestFunc func(ctx *Context, partial string) []string
}

// Parse implements Parser[T].
func (f Func[T]) Parse(ctx *Context, cur *Cursor) (T, *Failure) {
	return f.ParseFunc(ctx, cur)
}

// Suggest implements Parser[T]. A nil SuggestFunc yields no suggestions.
func (f Func[T]) Suggest(ctx *Context, partial string) []string {
	if f.SuggestFunc == nil {
		return nil
	}

	return f.SuggestFunc(ctx, partial)
}

// MapParser transforms a Parser[T]'s successful result through fn, producing
// a Parser[U]. A failing fn is reported as an ArgumentParse failure; the
// inner parser's own Suggest is reused unchanged, since suggestions operate
// on raw token text, not parsed values.
func MapParser[T, U any](p Parser[T], fn func(T) (U, error)) Parser[U] {
	return Func[U]{
		ParseFunc: func(ctx *Context, cur *Cursor) (U, *Failure) {
			var zero U

			mark := cur.Save()

			v, failure := p.Parse(ctx, cur)
			if failure != nil {
				return zero, failure
			}

			mapped, err := fn(v)
			if err != nil {
				cur.Restore(mark)

				return zero, &Failure{Kind: ErrArgumentParse, Message: err.Error(), Err: err}
			}

			return mapped, nil
		},
		SuggestFunc: p.Suggest,
	}
}

// FlatMapParser threads a Parser[T]'s successful result into a function
// that picks the next Parser[U] to run against the remaining cursor. This is
// the combinator spec §4.2 calls "flat-map": useful when the shape of later
// input depends on an earlier argument's parsed value.
func FlatMapParser[T, U any](p Parser[T], fn func(T) Parser[U]) Parser[U] {
	return Func[U]{
		ParseFunc: func(ctx *Context, cur *Cursor) (U, *Failure) {
			var zero U

			mark := cur.Save()

			v, failure := p.Parse(ctx, cur)
			if failure != nil {
				return zero, failure
			}

			u, failure := fn(v).Parse(ctx, cur)
			if failure != nil {
				cur.Restore(mark)

				return zero, failure
			}

			return u, nil
		},
		SuggestFunc: func(ctx *Context, partial string) []string {
			return p.Suggest(ctx, partial)
		},
	}
}

// anyParser is the type-erased form of Parser[T] the tree/components store,
// so a Component can hold "a Parser of some type" without the Component type
// itself becoming generic (Go methods cannot introduce new type parameters,
// so the typed side of the API is all free functions — see Required/Optional
// below).
type anyParser interface {
	parseAny(ctx *Context, cur *Cursor) (any, *Failure)
	suggestAny(ctx *Context, partial string) []string
	acceptsEmpty() bool
}

type erasedParser[T any] struct {
	inner Parser[T]
}

func erase[T any](p Parser[T]) anyParser {
	return erasedParser[T]{inner: p}
}

func (e erasedParser[T]) parseAny(ctx *Context, cur *Cursor) (any, *Failure) {
	v, f := e.inner.Parse(ctx, cur)
	if f != nil {
		return nil, f
	}

	return v, nil
}

func (e erasedParser[T]) suggestAny(ctx *Context, partial string) []string {
	return e.inner.Suggest(ctx, partial)
}

func (e erasedParser[T]) acceptsEmpty() bool {
	if ae, ok := e.inner.(AcceptsEmpty); ok {
		return ae.AcceptsEmpty()
	}

	return false
}
