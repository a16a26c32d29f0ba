package locator

import "strings"

// MinWordLen is the shortest token kept by Normalize, exclusive.
const MinWordLen = 3

// Normalize lowercases text, turns everything outside [a-z0-9] and
// whitespace into spaces and keeps the distinct tokens longer than
// MinWordLen, in first-seen order.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\f', r == '\v':
			return r
		default:
			return ' '
		}
	}, lower)

	var words []string
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= MinWordLen {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
