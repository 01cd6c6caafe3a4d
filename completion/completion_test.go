package completion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinLineWithPrefixAndArgs(t *testing.T) {
	t.Parallel()

	line := joinLine("give", []string{"alice"}, "sti")
	require.Equal(t, "give alice sti", line)
}

func TestJoinLineNoPrefixNoArgs(t *testing.T) {
	t.Parallel()

	line := joinLine("", nil, "giv")
	require.Equal(t, "giv", line)
}

func TestJoinLineEmptyCurrentWordKeepsTrailingSpace(t *testing.T) {
	t.Parallel()

	line := joinLine("give", []string{"alice"}, "")
	require.Equal(t, "give alice ", line)
}
