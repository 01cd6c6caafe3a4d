package cmdtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFailureErrorFormatting(t *testing.T) {
	t.Parallel()

	f := &Failure{Kind: ErrArgumentParse, Component: "amount", Message: "not a number"}
	require.Contains(t, f.Error(), "argument parse failure")
	require.Contains(t, f.Error(), "amount")

	f = &Failure{Kind: ErrFlagParse, Flag: "mode", Message: "unknown flag"}
	require.Contains(t, f.Error(), "--mode")
}

func TestFailureIsMatchesByKind(t *testing.T) {
	t.Parallel()

	a := &Failure{Kind: ErrNoPermission, Message: "nope"}
	b := &Failure{Kind: ErrNoPermission, Message: "different message"}
	c := &Failure{Kind: ErrInvalidSyntax, Message: "nope"}

	require.True(t, errors.Is(a, b))
	require.False(t, errors.Is(a, c))
}

func TestFailureUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	f := &Failure{Kind: ErrExecution, Message: "handler failed", Err: inner}

	require.ErrorIs(t, f, inner)
}

func TestKindStringUnknown(t *testing.T) {
	t.Parallel()

	var k Kind = 999
	require.Equal(t, "unrecognized error kind", k.String())
}
