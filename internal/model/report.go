package model

import "time"

const (
	MinScore = 0
	MaxScore = 100
)

// ClampScore bounds s to [MinScore, MaxScore].
func ClampScore(s int) int {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

// Report is the result of one heuristic scan. Only Score and AIAdjusted
// change after construction, and only through the deep-analysis merge.
type Report struct {
	ID             string    `json:"id"`
	Score          int       `json:"score"`
	URL            string    `json:"url"`
	Issues         []Issue   `json:"issues"`
	AIAdjusted     bool      `json:"aiAdjusted"`
	AuthorNames    []string  `json:"authorNames"`
	ScoringVersion string    `json:"scoringVersion,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SetScore stores s clamped to [0,100].
func (r *Report) SetScore(s int) {
	r.Score = ClampScore(s)
}

// HasIssue reports whether the report carries an issue with the given id.
func (r *Report) HasIssue(id IssueID) bool {
	for _, is := range r.Issues {
		if is.ID == id {
			return true
		}
	}
	return false
}

// Label is the human band a score falls in.
type Label string

const (
	LabelCredible          Label = "Credible"
	LabelLooksCredible     Label = "Looks credible"
	LabelNeedsVerification Label = "Needs verification"
	LabelBeCautious        Label = "Be cautious"
	LabelMisleading        Label = "Misleading"
)

// LabelFor returns the band for a report. Heuristic scores below 80 read
// "Needs verification"; once the score is AI-adjusted the lower range is
// split into "Be cautious" (above 50) and "Misleading".
func LabelFor(score int, aiAdjusted bool) Label {
	switch {
	case score >= 90:
		return LabelCredible
	case score >= 80:
		return LabelLooksCredible
	case !aiAdjusted:
		return LabelNeedsVerification
	case score > 50:
		return LabelBeCautious
	default:
		return LabelMisleading
	}
}

// Label returns the report's current band.
func (r *Report) Label() Label {
	return LabelFor(r.Score, r.AIAdjusted)
}
