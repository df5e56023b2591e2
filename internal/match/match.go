// Package match grades a freeform solution attempt against the secret
// solution by word overlap.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the fraction of the solution's vocabulary an attempt
// must cover.
const DefaultThreshold = 0.6

// Tokens lower-cases s and returns its set of word tokens. A token is a run
// of letters, digits or combining marks; everything else separates tokens.
func Tokens(s string) map[string]struct{} {
	s = strings.ToLower(norm.NFC.String(s))
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Score returns |tokens(attempt) ∩ tokens(actual)| / |tokens(actual)|.
// An empty actual scores 1.
func Score(attempt, actual string) float64 {
	want := Tokens(actual)
	if len(want) == 0 {
		return 1
	}
	got := Tokens(attempt)
	overlap := 0
	for w := range want {
		if _, ok := got[w]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(want))
}

// Matches reports whether attempt covers at least threshold of actual's
// vocabulary. Extra words in attempt are not penalised.
func Matches(attempt, actual string, threshold float64) bool {
	return Score(attempt, actual) >= threshold
}
