package cmdtree

import (
	"errors"
	"fmt"
)

// Kind is a closed taxonomy of dispatch failure categories, per the result
// surface in spec §6.
type Kind uint

// ORDER IN WHICH THE KIND CONSTANTS APPEAR MATTERS: String() indexes into a
// parallel slice.
const (
	// ErrUnknownCommand indicates no matching root surface was found.
	ErrUnknownCommand Kind = iota

	// ErrNoPermission indicates the sender lacks permission on the path
	// or flag it reached.
	ErrNoPermission

	// ErrInvalidSyntax indicates the walk ended before a terminal node,
	// or excess tokens remained after one.
	ErrInvalidSyntax

	// ErrInvalidSenderType indicates the sender failed a command's
	// required-type check.
	ErrInvalidSenderType

	// ErrArgumentParse indicates a component parser failed.
	ErrArgumentParse

	// ErrFlagParse indicates the flag parser failed.
	ErrFlagParse

	// ErrExecution indicates the handler raised an error.
	ErrExecution

	// ErrCancelled indicates the caller cancelled the invocation before
	// the handler ran.
	ErrCancelled

	// ErrEmptyCommand indicates the input was empty or all-whitespace.
	ErrEmptyCommand

	// ErrMalformedQuotedString indicates an unterminated quoted token.
	ErrMalformedQuotedString

	// ErrUnparseableNumber indicates a numeric cursor read failed.
	ErrUnparseableNumber

	// ErrAmbiguousCommand indicates two commands would own the same tree
	// node, or two literal siblings share an alias.
	ErrAmbiguousCommand

	// ErrBuilder indicates a command builder invariant was violated.
	ErrBuilder

	// ErrRegistryUnknownType indicates a component was declared by a
	// value-type tag with no registered parser factory.
	ErrRegistryUnknownType

	// ErrRegistrationLocked indicates a tree/registry mutation was
	// attempted outside the manager's mutable lifecycle state.
	ErrRegistrationLocked
)

var kindNames = [...]string{
	"unknown command",
	"no permission",
	"invalid syntax",
	"invalid sender type",
	"argument parse failure",
	"flag parse failure",
	"execution failure",
	"cancelled",
	"empty command",
	"malformed quoted string",
	"unparseable number",
	"ambiguous command",
	"builder error",
	"unknown parser type",
	"registration locked",
}

// String renders the Kind's canonical diagnostic name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unrecognized error kind"
}

// Failure is the structured error cmdtree returns from Parse/Execute/builder
// operations. It carries enough context (component/flag name, position) to
// synthesize the Outcome values in spec §6.
type Failure struct {
	Kind Kind
	// Message is a short, human-readable description.
	Message string
	// Component names the argument component that failed, if any.
	Component string
	// Flag names the flag that failed, if any.
	Flag string
	// Position is the cursor offset the failure occurred at, if known.
	Position int
	// Permission is the permission string that denied access, if any.
	Permission string
	// Err is the wrapped underlying error, if any (e.g. the error a handler
	// returned, leaf parser error). A handler panic is not recovered.
	Err error
}

func (f *Failure) Error() string {
	switch {
	case f.Component != "":
		return fmt.Sprintf("%s (%s): %s", f.Kind, f.Component, f.Message)
	case f.Flag != "":
		return fmt.Sprintf("%s (--%s): %s", f.Kind, f.Flag, f.Message)
	default:
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
}

// Unwrap exposes the wrapped error, if any, for errors.As/errors.Is.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Is reports whether target is a *Failure of the same Kind, so callers may
// write errors.Is(err, &cmdtree.Failure{Kind: cmdtree.ErrNoPermission})
// without a type assertion — Kind itself does not implement error, so it
// must be wrapped in a Failure for the comparison.
func (f *Failure) Is(target error) bool {
	var other *Failure
	if errors.As(target, &other) {
		return f.Kind == other.Kind
	}

	return false
}

func newFailure(kind Kind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

func newFailuref(kind Kind, format string, args ...any) *Failure {
	return newFailure(kind, fmt.Sprintf(format, args...))
}
