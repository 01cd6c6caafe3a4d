package cmdtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerStateTransitionsBeforeDuringAfter(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.Equal(t, StateBefore, m.State())

	cmd := buildCommand(t, "ping")
	require.NoError(t, m.Register(cmd))
	require.Equal(t, StateDuring, m.State())

	require.NoError(t, m.Finalize())
	require.Equal(t, StateAfter, m.State())
}

func TestManagerRegisterAfterFinalizeRejectedByDefault(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.NoError(t, m.Register(buildCommand(t, "ping")))
	require.NoError(t, m.Finalize())

	err := m.Register(buildCommand(t, "pong"))
	require.Error(t, err)
}

func TestManagerRegisterAfterFinalizeAllowedWithUnsafeSetting(t *testing.T) {
	t.Parallel()

	m := NewManager(WithAllowUnsafeRegistration(true))
	require.NoError(t, m.Register(buildCommand(t, "ping")))
	require.NoError(t, m.Finalize())

	require.NoError(t, m.Register(buildCommand(t, "pong")))
}

func TestManagerFinalizeRunsAmbiguityCheck(t *testing.T) {
	t.Parallel()

	m := NewManager()

	a, err := NewBuilder("a", nil, "").
		Component(Required[string]("a", "string", greedyParser{})).
		Handler(func(*Context) error { return nil }).
		Build()
	require.NoError(t, err)

	b, err := NewBuilder("b", nil, "").
		Component(Required[string]("b", "string", greedyParser{})).
		Handler(func(*Context) error { return nil }).
		Build()
	require.NoError(t, err)

	require.NoError(t, m.Register(a))
	require.NoError(t, m.Register(b))

	require.Error(t, m.Finalize())
	require.Equal(t, StateDuring, m.State(), "a failed Finalize must not lock registration")
}

func TestManagerDeleteRootPrunesTree(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.NoError(t, m.Register(buildCommand(t, "ping")))

	require.True(t, m.DeleteRoot("ping"))
	require.False(t, m.DeleteRoot("ping"))
}

func TestManagerConfigureSettings(t *testing.T) {
	t.Parallel()

	m := NewManager()
	m.ConfigureSettings(WithLiberalFlagParsing(true), WithSuggestionMinDistance(2))

	s := m.Settings()
	require.True(t, s.LiberalFlagParsing)
	require.Equal(t, 2, s.SuggestionMinDistance)
}

func TestManagerAddProcessorsAreLIFOAndSnapshot(t *testing.T) {
	t.Parallel()

	m := NewManager()

	var order []string
	m.AddPreProcessor(func(ctx *Context, input string) (string, error) {
		order = append(order, "first")

		return input, nil
	})
	m.AddPreProcessor(func(ctx *Context, input string) (string, error) {
		order = append(order, "second")

		return input, nil
	})

	pre, _ := m.snapshotProcessors()
	require.Len(t, pre, 2)

	for _, p := range pre {
		_, err := p(nil, "x")
		require.NoError(t, err)
	}
	require.Equal(t, []string{"second", "first"}, order, "most recently added pre-processor runs first")
}

func TestManagerOnErrorRoutesSynchronously(t *testing.T) {
	t.Parallel()

	m := NewManager()

	var routed *Failure
	m.OnError(ErrNoPermission, func(f *Failure) { routed = f })

	f := newFailure(ErrNoPermission, "denied")
	got := m.routeFailure(f)

	require.Same(t, f, got)
	require.Same(t, f, routed)
}

func TestManagerRouteFailureNilIsNoop(t *testing.T) {
	t.Parallel()

	m := NewManager()
	require.Nil(t, m.routeFailure(nil))
}

func TestManagerRouteFailureWithoutHandlerReturnsUnchanged(t *testing.T) {
	t.Parallel()

	m := NewManager()
	f := newFailure(ErrInvalidSyntax, "bad")

	require.Same(t, f, m.routeFailure(f))
}
