package analyzer

import (
	"github.com/karandeol-26/VeriCura/internal/domains"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// InstitutionalFloor is the lowest merged score an always-credible host
// can have.
const InstitutionalFloor = 95

// Merge folds the model score into report. Results without a numeric score
// leave the report untouched. Returns whether the report changed.
func Merge(report *model.Report, result *model.AnalysisResult) bool {
	if report == nil || result == nil || result.AIScore == nil {
		return false
	}
	score := model.ClampScore(*result.AIScore)
	if domains.IsAlwaysCredibleURL(report.URL) && score < InstitutionalFloor {
		score = InstitutionalFloor
	}
	report.SetScore(score)
	report.AIAdjusted = true
	return true
}

// FilterAuthors drops model-reported authors whose names carry a bad
// phrase such as "your genes".
func FilterAuthors(list []model.AuthorAssessment) []model.AuthorAssessment {
	out := make([]model.AuthorAssessment, 0, len(list))
	for _, a := range list {
		if !domains.IsBadAuthor(a.Name) {
			out = append(out, a)
		}
	}
	return out
}

// EvidenceOrFallback returns the suggested links, or the fixed institutional
// set when the model suggested none.
func EvidenceOrFallback(links []model.EvidenceLink) []model.EvidenceLink {
	if len(links) > 0 {
		return links
	}
	return append([]model.EvidenceLink(nil), domains.FallbackEvidence...)
}
