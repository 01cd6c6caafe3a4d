package cmdtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stringParser() Parser[string] {
	return Func[string]{
		ParseFunc: func(_ *Context, cur *Cursor) (string, *Failure) {
			tok, err := cur.ReadString()
			if err != nil {
				return "", &Failure{Kind: ErrArgumentParse, Message: "expected a token"}
			}

			return tok, nil
		},
	}
}

func TestLiteralMatchesAllAliases(t *testing.T) {
	t.Parallel()

	c := Literal("give", "g", "grant")

	require.True(t, c.Matches("give"))
	require.True(t, c.Matches("g"))
	require.True(t, c.Matches("grant"))
	require.False(t, c.Matches("gift"))
}

func TestRequiredComponentDefaults(t *testing.T) {
	t.Parallel()

	c := Required[string]("name", "string", stringParser())
	require.True(t, c.Required)
	require.Equal(t, KindArgument, c.Kind)
	require.Nil(t, c.Default())
}

func TestOptionalComponentUsesDefault(t *testing.T) {
	t.Parallel()

	c := Optional[string]("name", "string", stringParser(), "bob")
	require.False(t, c.Required)
	require.Equal(t, "bob", c.Default())
}

func TestOptionalFuncComputesLazily(t *testing.T) {
	t.Parallel()

	calls := 0
	c := OptionalFunc[string]("name", "string", stringParser(), func() string {
		calls++

		return "computed"
	})

	require.Equal(t, 0, calls)
	require.Equal(t, "computed", c.Default())
	require.Equal(t, 1, calls)
}

func TestArgumentEquivalence(t *testing.T) {
	t.Parallel()

	a := Required[string]("name", "string", stringParser())
	b := Required[string]("name", "string", stringParser())
	c := Required[string]("name", "int", stringParser())
	d := Required[string]("other", "string", stringParser())

	require.True(t, a.argumentEquivalent(b))
	require.False(t, a.argumentEquivalent(c))
	require.False(t, a.argumentEquivalent(d))
}

func TestAliasOverlapDetection(t *testing.T) {
	t.Parallel()

	a := Literal("give", "g")
	b := Literal("grant", "g")
	c := Literal("take")

	require.True(t, a.aliasOverlap(b))
	require.False(t, a.aliasOverlap(c))
}

func TestComponentSuggestionsPrefersOverride(t *testing.T) {
	t.Parallel()

	c := Required[string]("name", "string", stringParser(), WithSuggestions(func(_ *Context, partial string) []string {
		return []string{"override:" + partial}
	}))

	out := c.Suggestions(nil, "al")
	require.Equal(t, []string{"override:al"}, out)
}

func TestFlagGroupComponentIsNeverRequired(t *testing.T) {
	t.Parallel()

	group, err := NewFlagGroup()
	require.NoError(t, err)

	c := FlagGroupComponent(group)
	require.False(t, c.Required)
	require.Equal(t, KindFlagGroup, c.Kind)
}
