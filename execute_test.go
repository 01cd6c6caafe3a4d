package cmdtree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRegister(t *testing.T, m *Manager, cmd *Command) {
	t.Helper()
	require.NoError(t, m.Register(cmd))
}

func TestExecuteSuccessfulDispatch(t *testing.T) {
	t.Parallel()

	m := NewManager()

	var got string
	cmd, err := NewBuilder("give", nil, "").
		Literal("give").
		Component(Required[string]("item", "string", stringParser())).
		Handler(func(ctx *Context) error {
			got = MustGet(ctx, NewKey[string]("item"))

			return nil
		}).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "give stick")
	require.True(t, out.Success)
	require.Equal(t, "stick", got)
}

func TestExecuteUnknownCommandWithTypoHint(t *testing.T) {
	t.Parallel()

	m := NewManager(WithSuggestionMinDistance(2))
	mustRegister(t, m, buildCommand(t, "give"))

	out := m.Execute(context.Background(), nil, "gvie stick")
	require.False(t, out.Success)
	require.Equal(t, ErrUnknownCommand, out.Failure.Kind)
	require.Contains(t, out.Failure.Message, "did you mean \"give\"?")
}

func TestExecuteUnknownCommandWithoutHintWhenDistanceTooFar(t *testing.T) {
	t.Parallel()

	m := NewManager(WithSuggestionMinDistance(1))
	mustRegister(t, m, buildCommand(t, "give"))

	out := m.Execute(context.Background(), nil, "gvie stick")
	require.False(t, out.Success)
	require.NotContains(t, out.Failure.Message, "did you mean")
}

func TestExecuteNoPermission(t *testing.T) {
	t.Parallel()

	m := NewManager()

	adminOnly := NewPermission("admin", func(s any) bool { _, ok := s.(admin); return ok })
	cmd, err := NewBuilder("ban", nil, "").
		Literal("ban").
		Permission(adminOnly).
		Handler(func(*Context) error { return nil }).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), guest{}, "ban")
	require.False(t, out.Success)
	require.Equal(t, ErrNoPermission, out.Failure.Kind)
}

func TestExecuteInvalidSyntaxExpectedMessage(t *testing.T) {
	t.Parallel()

	m := NewManager()
	cmd, err := NewBuilder("give", nil, "").
		Literal("give").
		Component(Required[string]("item", "string", stringParser())).
		Handler(func(*Context) error { return nil }).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "give alice extra")
	require.False(t, out.Success)
	require.Equal(t, ErrInvalidSyntax, out.Failure.Kind)
	require.Contains(t, out.Failure.Message, "too many arguments")
}

func TestExecuteInvalidSenderType(t *testing.T) {
	t.Parallel()

	m := NewManager()
	cmd, err := NewBuilder("ban", nil, "").
		Literal("ban").
		SenderType(RequireSenderType[admin]()).
		Handler(func(*Context) error { return nil }).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), guest{}, "ban")
	require.False(t, out.Success)
	require.Equal(t, ErrInvalidSenderType, out.Failure.Kind)
}

func TestExecuteArgumentParseFailure(t *testing.T) {
	t.Parallel()

	m := NewManager()
	cmd, err := NewBuilder("give", nil, "").
		Literal("give").
		Component(Required[int]("amount", "int", intParser())).
		Handler(func(*Context) error { return nil }).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "give notanumber")
	require.False(t, out.Success)
	require.Equal(t, ErrArgumentParse, out.Failure.Kind)
	require.Equal(t, "amount", out.Failure.Component)
}

func TestExecuteFlagParseFailure(t *testing.T) {
	t.Parallel()

	m := NewManager()
	group := newTestGroup(t)
	cmd, err := NewBuilder("mkdir", nil, "").
		Literal("mkdir").
		Component(FlagGroupComponent(group)).
		Handler(func(*Context) error { return nil }).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "mkdir --bogus")
	require.False(t, out.Success)
	require.Equal(t, ErrFlagParse, out.Failure.Kind)
}

func TestExecuteExecutionFailureFromHandler(t *testing.T) {
	t.Parallel()

	m := NewManager()
	boom := errors.New("boom")

	cmd, err := NewBuilder("ping", nil, "").
		Literal("ping").
		Handler(func(*Context) error { return boom }).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "ping")
	require.False(t, out.Success)
	require.Equal(t, ErrExecution, out.Failure.Kind)
	require.ErrorIs(t, out.Failure.Err, boom)
}

func TestExecuteCancelledBeforeHandlerRuns(t *testing.T) {
	t.Parallel()

	m := NewManager()
	cmd, err := NewBuilder("ping", nil, "").
		Literal("ping").
		Handler(func(*Context) error {
			t.Fatal("handler must not run once the context is already cancelled")

			return nil
		}).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := m.Execute(ctx, nil, "ping")
	require.False(t, out.Success)
	require.Equal(t, ErrCancelled, out.Failure.Kind)
}

func TestExecuteEmptyInput(t *testing.T) {
	t.Parallel()

	m := NewManager()

	out := m.Execute(context.Background(), nil, "   ")
	require.False(t, out.Success)
	require.Equal(t, ErrEmptyCommand, out.Failure.Kind)
}

func TestExecuteOptionalArgumentDefaulting(t *testing.T) {
	t.Parallel()

	m := NewManager()

	var got string
	cmd, err := NewBuilder("give", nil, "").
		Literal("give").
		Component(Optional[string]("item", "string", stringParser(), "stick")).
		Handler(func(ctx *Context) error {
			got = MustGet(ctx, NewKey[string]("item"))

			return nil
		}).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "give")
	require.True(t, out.Success)
	require.Equal(t, "stick", got)
}

func TestExecuteTerminalFlagGroupParsesAfterLiterals(t *testing.T) {
	t.Parallel()

	m := NewManager()
	group := newTestGroup(t)

	var verbose bool
	cmd, err := NewBuilder("mkdir", nil, "").
		Literal("mkdir").
		Component(FlagGroupComponent(group)).
		Handler(func(ctx *Context) error {
			verbose = ctx.FlagPresent("verbose")

			return nil
		}).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "mkdir --verbose")
	require.True(t, out.Success)
	require.True(t, verbose)
}

func TestExecuteLiberalFlagParsingInterleavesFlags(t *testing.T) {
	t.Parallel()

	m := NewManager(WithLiberalFlagParsing(true))
	group := newTestGroup(t)

	var item string
	cmd, err := NewBuilder("give", nil, "").
		Literal("give").
		Component(Required[string]("item", "string", stringParser())).
		Component(FlagGroupComponent(group)).
		Handler(func(ctx *Context) error {
			item = MustGet(ctx, NewKey[string]("item"))

			return nil
		}).
		Build()
	require.NoError(t, err)
	mustRegister(t, m, cmd)

	out := m.Execute(context.Background(), nil, "give --verbose stick")
	require.True(t, out.Success)
	require.Equal(t, "stick", item)
}
