package assessor

import (
	"strings"

	"github.com/karandeol-26/VeriCura/internal/domains"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// ExplainFactors lists the rows behind a score: the domain trust factor
// first, then one negative factor per issue. Issues without an id get a
// slug of their title, or a positional placeholder.
func ExplainFactors(report *model.Report) []model.Factor {
	if report == nil {
		return nil
	}
	factors := make([]model.Factor, 0, len(report.Issues)+1)

	if domains.IsFactorTrustedURL(report.URL) {
		factors = append(factors, model.Factor{
			ID:          string(model.IssueTrustedDomain),
			Title:       "Trusted medical source",
			Description: "This domain is a known, reputable health source.",
			Positive:    true,
		})
	} else {
		factors = append(factors, model.Factor{
			ID:          string(model.IssueUnrecognizedDomain),
			Title:       "Unrecognized domain",
			Description: "Domain is not in the pre-approved medical list.",
		})
	}

	for _, is := range report.Issues {
		id := string(is.ID)
		if id == "" {
			id = strings.Join(strings.Fields(strings.ToLower(is.Title)), "-")
		}
		if id == "" {
			id = model.PlaceholderID(len(factors))
		}
		factors = append(factors, model.Factor{
			ID:          id,
			Title:       is.Title,
			Description: is.Description,
		})
	}
	return factors
}
