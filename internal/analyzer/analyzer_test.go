package analyzer_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/karandeol-26/VeriCura/internal/analyzer"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// fakeXAI records chat completion requests and answers with a fixed
// status and assistant content.
type fakeXAI struct {
	mu       sync.Mutex
	status   int
	content  string
	requests []map[string]any
}

func (f *fakeXAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var req map[string]any
	_ = json.Unmarshal(body, &req)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	status, content := f.status, f.content
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != "/v1/chat/completions" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
		return
	}
	resp := map[string]any{
		"id":      "cmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "grok-3",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeXAI) last() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeXAI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

var _ = Describe("XAIAnalyzer", func() {
	var (
		fake *fakeXAI
		ts   *httptest.Server
		cfg  analyzer.Config
		in   analyzer.Input
	)

	BeforeEach(func() {
		fake = &fakeXAI{status: http.StatusOK}
		ts = httptest.NewServer(fake)
		DeferCleanup(ts.Close)

		cfg = analyzer.DefaultConfig()
		cfg.APIKey = "test-key"
		cfg.BaseURL = ts.URL + "/v1/"
		in = analyzer.Input{
			Text:           "Vitamin C cures the flu in a day.",
			URL:            "https://blog.example.com/flu",
			HeuristicScore: 40,
			AuthorNames:    []string{"Kim Park"},
		}
	})

	newAnalyzer := func(c analyzer.Config) *analyzer.XAIAnalyzer {
		a, err := analyzer.NewXAIAnalyzer(c, logging.NopLogger{}, ts.Client())
		Expect(err).NotTo(HaveOccurred())
		return a
	}

	It("rejects a nil logger", func() {
		_, err := analyzer.NewXAIAnalyzer(cfg, nil, nil)
		Expect(err).To(HaveOccurred())
	})

	It("returns ErrNotConfigured without a key and sends nothing", func() {
		cfg.APIKey = ""
		_, err := newAnalyzer(cfg).Analyze(context.Background(), in)
		Expect(errors.Is(err, analyzer.ErrNotConfigured)).To(BeTrue())
		Expect(fake.count()).To(BeZero())
	})

	It("parses a structured answer", func() {
		fake.content = `{"ai_score": 35, "verdict": "Mostly unsupported.",
			"claims": [{"text": "Vitamin C cures flu", "assessment": "likely-false", "reason": "no evidence"}],
			"authors": [{"name": "Kim Park", "credibility": "low", "notes": "no credentials"}],
			"evidence_links": [{"name": "CDC flu", "url": "https://www.cdc.gov/flu", "why": "official guidance"}]}`

		res, err := newAnalyzer(cfg).Analyze(context.Background(), in)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Raw).To(BeFalse())
		Expect(res.AIScore).NotTo(BeNil())
		Expect(*res.AIScore).To(Equal(35))
		Expect(res.Verdict).To(Equal("Mostly unsupported."))
		Expect(res.Claims).To(HaveLen(1))
		Expect(res.Claims[0].Assessment).To(Equal(model.AssessmentLikelyFalse))
		Expect(res.Authors[0].Credibility).To(Equal(model.CredibilityLow))
		Expect(res.EvidenceLinks[0].URL).To(Equal("https://www.cdc.gov/flu"))
	})

	It("sends the configured model, temperature and prompts", func() {
		fake.content = `{"verdict": "ok"}`
		_, err := newAnalyzer(cfg).Analyze(context.Background(), in)
		Expect(err).NotTo(HaveOccurred())

		req := fake.last()
		Expect(req["model"]).To(Equal("grok-3"))
		Expect(req["temperature"]).To(BeNumerically("~", 0.2))

		msgs, ok := req["messages"].([]any)
		Expect(ok).To(BeTrue())
		Expect(msgs).To(HaveLen(2))
		system := msgs[0].(map[string]any)
		user := msgs[1].(map[string]any)
		Expect(system["role"]).To(Equal("system"))
		Expect(system["content"]).To(ContainSubstring("MedicheckAI"))
		Expect(user["role"]).To(Equal("user"))
		Expect(user["content"]).To(ContainSubstring("Heuristic score (from extension): 40"))
		Expect(user["content"]).To(ContainSubstring("Author names found on page: Kim Park"))
	})

	It("degrades to a raw verdict when the answer is not JSON", func() {
		fake.content = "I cannot assess this page."
		res, err := newAnalyzer(cfg).Analyze(context.Background(), in)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Raw).To(BeTrue())
		Expect(res.Verdict).To(Equal("I cannot assess this page."))
		Expect(res.AIScore).To(BeNil())
	})

	It("reports a non-2xx answer as a RequestError", func() {
		fake.status = http.StatusUnauthorized
		_, err := newAnalyzer(cfg).Analyze(context.Background(), in)

		var reqErr *analyzer.RequestError
		Expect(errors.As(err, &reqErr)).To(BeTrue())
		Expect(reqErr.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(reqErr.Error()).To(HavePrefix("xAI request failed (401)"))
		Expect(fake.count()).To(Equal(1))
	})

	It("wraps transport failures", func() {
		cfg.BaseURL = "http://127.0.0.1:1/v1/"
		_, err := newAnalyzer(cfg).Analyze(context.Background(), in)
		Expect(err).To(HaveOccurred())

		var reqErr *analyzer.RequestError
		Expect(errors.As(err, &reqErr)).To(BeFalse())
		Expect(errors.Is(err, analyzer.ErrNotConfigured)).To(BeFalse())
	})
})

var _ = Describe("BuildPrompt", func() {
	It("says none when no authors were found", func() {
		p := analyzer.BuildPrompt(analyzer.Input{URL: "https://x.example", HeuristicScore: 60}, 2600)
		Expect(p).To(HavePrefix("You are given a webpage"))
		Expect(p).To(ContainSubstring("Author names found on page: none"))
		Expect(p).To(ContainSubstring("Page URL: https://x.example"))
	})

	It("truncates the excerpt by characters", func() {
		text := strings.Repeat("é", 3000)
		p := analyzer.BuildPrompt(analyzer.Input{Text: text}, 2600)
		Expect(p).To(HaveSuffix("Page excerpt:\n" + strings.Repeat("é", 2600)))
	})

	It("embeds the result schema in the system prompt", func() {
		Expect(analyzer.SystemPrompt()).To(ContainSubstring(`"evidence_links"`))
		Expect(analyzer.ResultSchema().Properties.Len()).To(Equal(5))
	})
})

var _ = Describe("ParseContent", func() {
	DescribeTable("score handling",
		func(content string, want any) {
			res := analyzer.ParseContent(content)
			Expect(res.Raw).To(BeFalse())
			if want == nil {
				Expect(res.AIScore).To(BeNil())
				return
			}
			Expect(res.AIScore).NotTo(BeNil())
			Expect(*res.AIScore).To(Equal(want))
		},
		Entry("integer", `{"ai_score": 72}`, 72),
		Entry("fraction is floored", `{"ai_score": 72.9}`, 72),
		Entry("above range is clamped", `{"ai_score": 140}`, 100),
		Entry("below range is clamped", `{"ai_score": -3}`, 0),
		Entry("huge score is clamped", `{"ai_score": 1e20}`, 100),
		Entry("huge negative score is clamped", `{"ai_score": -1e300}`, 0),
		Entry("string score is ignored", `{"ai_score": "80"}`, nil),
		Entry("missing score", `{"verdict": "fine"}`, nil),
		Entry("fenced json", "```json\n{\"ai_score\": 55}\n```", 55),
	)

	It("keeps the raw text for non-JSON answers", func() {
		res := analyzer.ParseContent("[1, 2]")
		Expect(res.Raw).To(BeTrue())
		Expect(res.Verdict).To(Equal("[1, 2]"))
	})

	DescribeTable("JSON scalars are raw",
		func(content string) {
			res := analyzer.ParseContent(content)
			Expect(res.Raw).To(BeTrue())
			Expect(res.Verdict).To(Equal(content))
			Expect(res.AIScore).To(BeNil())
		},
		Entry("null", "null"),
		Entry("number", "42"),
		Entry("string", `"looks fine"`),
		Entry("fenced null", "```json\nnull\n```"),
	)
})

var _ = Describe("Merge", func() {
	score := func(n int) *int { return &n }

	DescribeTable("merged score",
		func(url string, ai *int, startScore, want int, adjusted bool) {
			r := &model.Report{URL: url, Score: startScore}
			changed := analyzer.Merge(r, &model.AnalysisResult{AIScore: ai})
			Expect(changed).To(Equal(adjusted))
			Expect(r.Score).To(Equal(want))
			Expect(r.AIAdjusted).To(Equal(adjusted))
		},
		Entry("plain site takes the model score", "https://blog.example.com/a", score(35), 60, 35, true),
		Entry("institutional floor", "https://www.mayoclinic.org/flu", score(70), 100, 95, true),
		Entry("subdomain of an institution", "https://news.health.harvard.edu/x", score(10), 100, 95, true),
		Entry("institution above floor keeps score", "https://www.cdc.gov/flu", score(98), 100, 98, true),
		Entry("out of range is clamped", "https://blog.example.com/a", score(250), 60, 100, true),
		Entry("no score leaves report", "https://blog.example.com/a", nil, 60, 60, false),
	)

	It("ignores nil inputs", func() {
		Expect(analyzer.Merge(nil, &model.AnalysisResult{})).To(BeFalse())
		Expect(analyzer.Merge(&model.Report{}, nil)).To(BeFalse())
	})
})

var _ = Describe("display filters", func() {
	It("drops bad-phrase authors", func() {
		got := analyzer.FilterAuthors([]model.AuthorAssessment{
			{Name: "Dr. Ana Ruiz"},
			{Name: "Your Genes"},
			{Name: "Genetic factors"},
		})
		Expect(got).To(HaveLen(1))
		Expect(got[0].Name).To(Equal("Dr. Ana Ruiz"))
	})

	It("falls back to the institutional links", func() {
		got := analyzer.EvidenceOrFallback(nil)
		Expect(got).To(HaveLen(3))
		Expect(got[0].URL).To(ContainSubstring("cdc.gov"))

		got[0].URL = "changed"
		Expect(analyzer.EvidenceOrFallback(nil)[0].URL).NotTo(Equal("changed"))

		own := []model.EvidenceLink{{Name: "NIH", URL: "https://www.nih.gov/x"}}
		Expect(analyzer.EvidenceOrFallback(own)).To(Equal(own))
	})
})
