package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/karandeol-26/VeriCura/internal/model"
)

const systemIntro = "You are MedicheckAI, an evidence-based medical fact checker. Always output valid JSON."

const promptTemplate = `You are given a webpage that appears to contain health/medical information.

Your task:
1. Read the excerpt below.
2. Extract up to 3 main health/medical claims.
3. Check whether these claims match mainstream, evidence-based sources (CDC, NIH, WHO, Mayo Clinic).
4. Look at the author names (if any) and decide if they appear medically credible (MD, DO, NP, RN, or writing on behalf of a major medical institution).
5. Based on the content + authorship, propose an updated credibility score from 0 to 100.
6. ALSO suggest up to 3 reputable links (CDC, NIH, WHO, Mayo Clinic, or other national health authorities) that a user can read to verify these claims.
7. Respond ONLY in JSON in this shape:

{
  "ai_score": 0-100,
  "verdict": "short sentence about overall credibility",
  "claims": [
    {
      "text": "claim text",
      "assessment": "evidence-based | needs-verification | likely-false",
      "reason": "why"
    }
  ],
  "authors": [
    {
      "name": "name here",
      "credibility": "high | medium | low",
      "notes": "why"
    }
  ],
  "evidence_links": [
    {
      "name": "CDC on topic",
      "url": "https://www.cdc.gov/...",
      "why": "official guidance"
    }
  ]
}

IMPORTANT: never list "your genes", "genes", or "genetics" as an author name. Authors must be people or organizations.

Page URL: %s
Heuristic score (from extension): %d
Author names found on page: %s

Page excerpt:
%s`

// ResultSchema is the JSON schema of the expected answer.
var ResultSchema = sync.OnceValue(func() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return r.Reflect(&model.AnalysisResult{})
})

// SystemPrompt is the system message: the fact-checker persona plus the
// answer schema.
func SystemPrompt() string {
	schema, err := json.Marshal(ResultSchema())
	if err != nil {
		return systemIntro
	}
	return systemIntro + "\nThe JSON must validate against this schema:\n" + string(schema)
}

// BuildPrompt renders the user message. The page text is cut to
// excerptLen characters.
func BuildPrompt(in Input, excerptLen int) string {
	names := strings.Join(in.AuthorNames, ", ")
	if names == "" {
		names = "none"
	}
	return strings.TrimSpace(fmt.Sprintf(promptTemplate,
		in.URL, in.HeuristicScore, names, Excerpt(in.Text, excerptLen)))
}

// Excerpt returns the first n characters of text.
func Excerpt(text string, n int) string {
	if n <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
