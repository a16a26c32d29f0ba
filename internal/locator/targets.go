package locator

import "github.com/karandeol-26/VeriCura/internal/model"

const (
	articleCandidates = "article p, article li"
	candidates        = "p, li, div"
	descendants       = "p, li, span, div"
)

// fallbackHeadings are tried when neither the issue nor the text matched.
var fallbackHeadings = []string{"article h1, article h2", "h1, h2"}

const outboundLinks = "article a[href^='http'], a[href^='http']"

// targets lists, per issue, the selectors tried in order; the first
// selector with any match supplies the target.
var targets = map[model.IssueID][]string{
	model.IssueNoAuthor: {
		"[itemprop='author']",
		".author, .byline, .article-byline",
		"h1, h2",
	},
	model.IssueNoTrustedSources:   {outboundLinks},
	model.IssueUnrecognizedDomain: {outboundLinks},
	model.IssueTrustedDomain:      {outboundLinks},
	model.IssueCommercialBias: {
		"a[href*='shop'], a[href*='buy'], a[href*='product']",
		"button",
	},
	model.IssueSensational: {"strong, b, h1, h2"},
}

// TargetSelectors returns the selectors tried for id, or nil.
func TargetSelectors(id model.IssueID) []string {
	return append([]string(nil), targets[id]...)
}
