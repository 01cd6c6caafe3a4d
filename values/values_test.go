package values

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kingfisher-cli/cmdtree"
)

func TestStringParserRoundTrip(t *testing.T) {
	t.Parallel()

	p := NewString("default")
	v, failure := p.Parse(nil, cmdtree.NewCursor("hello"))
	require.Nil(t, failure)
	require.Equal(t, "hello", v)

	require.NoError(t, p.Set("changed"))
	require.Equal(t, "changed", p.String())
	require.Equal(t, "string", p.Type())
}

func TestIntParserParseAndSet(t *testing.T) {
	t.Parallel()

	p := NewInt(0)
	v, failure := p.Parse(nil, cmdtree.NewCursor("42"))
	require.Nil(t, failure)
	require.Equal(t, 42, v)

	require.NoError(t, p.Set("7"))
	require.Equal(t, "7", p.String())
}

func TestIntParserRejectsNonInteger(t *testing.T) {
	t.Parallel()

	p := NewInt(0)
	_, failure := p.Parse(nil, cmdtree.NewCursor("nope"))
	require.NotNil(t, failure)
	require.Equal(t, cmdtree.ErrArgumentParse, failure.Kind)

	require.Error(t, p.Set("nope"))
}

func TestFloatParserParseAndSet(t *testing.T) {
	t.Parallel()

	p := NewFloat(0)
	v, failure := p.Parse(nil, cmdtree.NewCursor("3.5"))
	require.Nil(t, failure)
	require.InDelta(t, 3.5, v, 0.0001)
}

func TestBoolParserParseAndSuggest(t *testing.T) {
	t.Parallel()

	p := NewBool(false)
	v, failure := p.Parse(nil, cmdtree.NewCursor("true"))
	require.Nil(t, failure)
	require.True(t, v)

	require.Equal(t, []string{"true"}, p.Suggest(nil, "tr"))
}

func TestBoolParserRejectsNonBoolean(t *testing.T) {
	t.Parallel()

	p := NewBool(false)
	_, failure := p.Parse(nil, cmdtree.NewCursor("maybe"))
	require.NotNil(t, failure)
	require.Equal(t, cmdtree.ErrArgumentParse, failure.Kind)
}

func TestDurationParserParseAndSet(t *testing.T) {
	t.Parallel()

	p := NewDuration(0)
	v, failure := p.Parse(nil, cmdtree.NewCursor("5s"))
	require.Nil(t, failure)
	require.Equal(t, 5*time.Second, v)

	require.Error(t, p.Set("not-a-duration"))
}

func TestChoiceParserAcceptsOnlyAllowedValues(t *testing.T) {
	t.Parallel()

	p := NewChoice("red", "red", "green", "blue")

	v, failure := p.Parse(nil, cmdtree.NewCursor("green"))
	require.Nil(t, failure)
	require.Equal(t, "green", v)

	_, failure = p.Parse(nil, cmdtree.NewCursor("purple"))
	require.NotNil(t, failure)
	require.Equal(t, cmdtree.ErrArgumentParse, failure.Kind)

	require.Equal(t, []string{"green"}, p.Suggest(nil, "gr"))
}

func TestChoiceParserSetRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	p := NewChoice("red", "red", "green", "blue")
	require.NoError(t, p.Set("blue"))
	require.Error(t, p.Set("purple"))
}

func TestRegisterDefaultsWiresEveryBuiltinType(t *testing.T) {
	t.Parallel()

	r := cmdtree.NewRegistry()
	RegisterDefaults(r)

	for _, valueType := range []string{"string", "int", "float", "bool", "duration"} {
		_, err := r.Lookup(valueType, nil)
		require.NoError(t, err, "value type %q should be registered", valueType)
	}

	_, err := r.Lookup("bogus", nil)
	require.Error(t, err)
}
