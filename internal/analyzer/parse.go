package analyzer

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/karandeol-26/VeriCura/internal/model"
)

// wireResult accepts any JSON type for ai_score; only numbers count.
type wireResult struct {
	AIScore       any                      `json:"ai_score"`
	Verdict       string                   `json:"verdict"`
	Claims        []model.Claim            `json:"claims"`
	Authors       []model.AuthorAssessment `json:"authors"`
	EvidenceLinks []model.EvidenceLink     `json:"evidence_links"`
}

// ParseContent decodes a model answer. Markdown code fences around the JSON
// are ignored. Anything that is not a JSON object becomes a Raw result whose
// verdict is the original text.
func ParseContent(content string) *model.AnalysisResult {
	body := stripFence(content)
	if !strings.HasPrefix(body, "{") {
		return &model.AnalysisResult{Verdict: content, Raw: true}
	}
	var w wireResult
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return &model.AnalysisResult{Verdict: content, Raw: true}
	}

	res := &model.AnalysisResult{
		Verdict:       w.Verdict,
		Claims:        w.Claims,
		Authors:       w.Authors,
		EvidenceLinks: w.EvidenceLinks,
	}
	if f, ok := w.AIScore.(float64); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		// Clamp before converting; out-of-range floats do not fit an int.
		score := int(math.Max(0, math.Min(100, math.Floor(f))))
		res.AIScore = &score
	}
	return res
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
