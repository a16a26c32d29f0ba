// Package authors pulls plausible author names out of page text and
// metadata.
package authors

import (
	"regexp"
	"strings"

	"github.com/karandeol-26/VeriCura/internal/domains"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// byline matches "by" in any case followed by one to four capitalized words.
// There is no leading word boundary: "nearby Clinic" yields "Clinic".
var byline = regexp.MustCompile(`[Bb][Yy]\s+([A-Z][a-z]+(?:\s[A-Z][a-z]+){0,3})`)

// Extract returns the author names found in meta.Author and in "by Name"
// bylines in text, deduplicated in first-seen order. Names containing a
// known non-person phrase are skipped.
func Extract(text string, meta model.Meta) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || domains.IsBadAuthor(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	add(meta.Author)
	for _, m := range byline.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return names
}

// Filter drops bad-phrase names from a list, keeping order.
func Filter(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !domains.IsBadAuthor(n) {
			out = append(out, n)
		}
	}
	return out
}
