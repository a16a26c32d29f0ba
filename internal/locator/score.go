package locator

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinMatchScore is the lowest score that counts as a match.
	MinMatchScore = 2
	// ShortTextLen marks text too short to be a meaningful match.
	ShortTextLen = 25
)

// MatchScore counts the words found as substrings of the lowercased text,
// minus one when the text is shorter than ShortTextLen. Empty text scores 0.
func MatchScore(text string, words []string) int {
	t := strings.ToLower(text)
	if t == "" {
		return 0
	}
	score := 0
	for _, w := range words {
		if strings.Contains(t, w) {
			score++
		}
	}
	if utf8.RuneCountInString(t) < ShortTextLen {
		score--
	}
	return score
}
