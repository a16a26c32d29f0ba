package model

// Assessment is the model's judgement of a single claim.
type Assessment string

const (
	AssessmentEvidenceBased     Assessment = "evidence-based"
	AssessmentNeedsVerification Assessment = "needs-verification"
	AssessmentLikelyFalse       Assessment = "likely-false"
)

// Credibility is the model's judgement of an author.
type Credibility string

const (
	CredibilityHigh   Credibility = "high"
	CredibilityMedium Credibility = "medium"
	CredibilityLow    Credibility = "low"
)

// Claim is one health claim extracted from the page.
type Claim struct {
	Text       string     `json:"text" jsonschema:"description=claim text"`
	Assessment Assessment `json:"assessment" jsonschema:"enum=evidence-based,enum=needs-verification,enum=likely-false"`
	Reason     string     `json:"reason" jsonschema:"description=why"`
}

// AuthorAssessment is the model's view of one author.
type AuthorAssessment struct {
	Name        string      `json:"name"`
	Credibility Credibility `json:"credibility" jsonschema:"enum=high,enum=medium,enum=low"`
	Notes       string      `json:"notes"`
}

// EvidenceLink is a reputable page the reader can use to verify claims.
type EvidenceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Why  string `json:"why,omitempty"`
}

// AnalysisResult is the structured deep-analysis judgement. When the model
// answer could not be parsed, Raw is true and Verdict holds the raw text.
type AnalysisResult struct {
	AIScore       *int               `json:"ai_score,omitempty" jsonschema:"minimum=0,maximum=100"`
	Verdict       string             `json:"verdict" jsonschema:"description=short sentence about overall credibility"`
	Claims        []Claim            `json:"claims"`
	Authors       []AuthorAssessment `json:"authors"`
	EvidenceLinks []EvidenceLink     `json:"evidence_links"`
	Raw           bool               `json:"-"`
}
