package cmdtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateIdentifierRejectsEmpty(t *testing.T) {
	t.Parallel()

	f := validateIdentifier("command", "")
	require.NotNil(t, f)
	require.Equal(t, ErrBuilder, f.Kind)
}

func TestValidateIdentifierRejectsEmbeddedSpace(t *testing.T) {
	t.Parallel()

	f := validateIdentifier("argument", "not valid")
	require.NotNil(t, f)
}

func TestValidateIdentifierAcceptsNormalName(t *testing.T) {
	t.Parallel()

	require.Nil(t, validateIdentifier("command", "give"))
}
