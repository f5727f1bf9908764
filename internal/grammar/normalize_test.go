package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEquivalence(t *testing.T) {
	// "está" composed (U+00E1) vs decomposed (a + combining acute U+0301).
	composed := "est\u00e1"
	decomposed := "esta\u0301"
	require.NotEqual(t, composed, decomposed)
	require.True(t, FormsEqual(composed, decomposed))

	require.True(t, FormsEqual("ESTÁ", "está"))
	require.True(t, FormsEqual("  hablo \n", "hablo"))
}

func TestNormalizeDistinguishesOrthography(t *testing.T) {
	// A missing accent is a different letter, not a different encoding.
	require.False(t, FormsEqual("esta", "está"))
	require.False(t, FormsEqual("hablas", "habla"))
}
