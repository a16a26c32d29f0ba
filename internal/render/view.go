// Package render paints a session's state as Markdown or HTML.
package render

import (
	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// Disclaimer closes every deep-analysis section.
const Disclaimer = "AI analysis is based on content provided and does not replace professional medical advice."

// NotHealthHint is shown under the not-health state.
const NotHealthHint = "Open an article about a condition, treatment, symptom, or public-health guidance."

// View is everything a renderer needs. Build it with NewView.
type View struct {
	URL  string
	Scan app.ScanOutcome

	// Analysis is nil until deep analysis has been requested.
	Analysis *app.AnalysisOutcome
}

// NewView pairs a scan with an optional analysis. When the analysis
// carries a merged report it replaces the scanned one for display.
func NewView(url string, scan app.ScanOutcome, analysis *app.AnalysisOutcome) View {
	return View{URL: url, Scan: scan, Analysis: analysis}
}

// Report returns the report to display, merged when available.
func (v View) Report() *model.Report {
	if v.Analysis != nil && v.Analysis.Report != nil {
		return v.Analysis.Report
	}
	return v.Scan.Report
}

// Label returns the band of the displayed report.
func (v View) Label() model.Label {
	if r := v.Report(); r != nil {
		return r.Label()
	}
	return ""
}

// Tone classifies a label for styling: good, mid or bad.
func Tone(l model.Label) string {
	switch l {
	case model.LabelCredible:
		return "good"
	case model.LabelLooksCredible:
		return "mid"
	default:
		return "bad"
	}
}

func claimPositive(c model.Claim) bool {
	return c.Assessment == model.AssessmentEvidenceBased
}

func authorPositive(a model.AuthorAssessment) bool {
	return a.Credibility == model.CredibilityHigh
}

func linkTitle(l model.EvidenceLink) string {
	if l.Name != "" {
		return l.Name
	}
	return l.URL
}

func linkWhy(l model.EvidenceLink) string {
	if l.Why != "" {
		return l.Why
	}
	return l.URL
}

func verdictText(r *model.AnalysisResult) string {
	if r.Verdict != "" {
		return r.Verdict
	}
	return "No verdict"
}
