package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesSharedVocabulary(t *testing.T) {
	assert.True(t, Matches("El culpable es el jardinero con un cuchillo", "El jardinero mató con un cuchillo", DefaultThreshold))
}

func TestMatchesEdgeCases(t *testing.T) {
	assert.False(t, Matches("", "algo", DefaultThreshold))
	assert.True(t, Matches("x", "", DefaultThreshold))
	assert.True(t, Matches("", "¡¿...?!", DefaultThreshold), "punctuation-only actual has no tokens")
}

func TestMatchesBelowThreshold(t *testing.T) {
	assert.False(t, Matches("murió de un infarto", "El hombre tenía hipo y el camarero lo curó con un susto", DefaultThreshold))
}

func TestScoreIsRecallOverActual(t *testing.T) {
	// actual = {a, b, c, d, e}; attempt covers a, b, c plus noise.
	assert.InDelta(t, 0.6, Score("a b c x y z w", "a b c d e"), 1e-9)
	assert.True(t, Matches("a b c x y z w", "a b c d e", 0.6))
	assert.False(t, Matches("a b", "a b c d e", 0.6))
}

func TestTokensCollapseDuplicatesAndCase(t *testing.T) {
	got := Tokens("Veneno, VENENO y veneno.")
	assert.Len(t, got, 2)
	assert.Contains(t, got, "veneno")
	assert.Contains(t, got, "y")
}

func TestTokensKeepUnicodeLetters(t *testing.T) {
	got := Tokens("El niño mató al pingüino")
	assert.Contains(t, got, "niño")
	assert.Contains(t, got, "mató")
	assert.Contains(t, got, "pingüino")
}

func TestTokensNormaliseComposition(t *testing.T) {
	composed := "mat\u00f3"
	decomposed := "mato\u0301"
	assert.True(t, Matches(decomposed, composed, 1))
}

func TestTokensSplitOnUnderscoreAndPunctuation(t *testing.T) {
	got := Tokens("foo_bar-baz")
	assert.Len(t, got, 3)
}
