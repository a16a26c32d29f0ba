package model

import "fmt"

// IssueID identifies a kind of credibility finding. It is the contract
// between the classifier that raises issues and the locator that targets
// them on the page; the set is closed.
type IssueID string

const (
	IssueNoTrustedSources   IssueID = "no-trusted-sources"
	IssueNoAuthor           IssueID = "no-author"
	IssueSensational        IssueID = "sensational-language"
	IssueCommercialBias     IssueID = "possible-commercial-bias"
	IssueTrustedDomain      IssueID = "trusted-domain"
	IssueUnrecognizedDomain IssueID = "unrecognized-domain"
)

var allIssueIDs = []IssueID{
	IssueNoTrustedSources,
	IssueNoAuthor,
	IssueSensational,
	IssueCommercialBias,
	IssueTrustedDomain,
	IssueUnrecognizedDomain,
}

// AllIssueIDs returns every known issue id.
func AllIssueIDs() []IssueID {
	return append([]IssueID(nil), allIssueIDs...)
}

// ParseIssueID returns the IssueID for s and whether s names a known id.
func ParseIssueID(s string) (IssueID, bool) {
	for _, id := range allIssueIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// DisplayOnly reports whether the id belongs to the always-shown domain
// trust factor rather than to a scored issue.
func (id IssueID) DisplayOnly() bool {
	return id == IssueTrustedDomain || id == IssueUnrecognizedDomain
}

// PlaceholderID is the positional id given to a factor that carries no
// IssueID. It never parses as a known id.
func PlaceholderID(index int) string {
	return fmt.Sprintf("issue-%d", index)
}

// Issue is one detected credibility problem.
type Issue struct {
	ID          IssueID `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"desc"`
}

// Factor is one row of the "why this score" explanation: the domain trust
// factor followed by every issue.
type Factor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Positive    bool   `json:"positive"`
}
