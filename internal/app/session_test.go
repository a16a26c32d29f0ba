package app

import (
	"context"
	"errors"
	"testing"

	"github.com/karandeol-26/VeriCura/internal/analyzer"
	"github.com/karandeol-26/VeriCura/internal/assessor"
	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/testutil"
)

const healthText = "Vitamin D treatment basics. Sunlight and diet both matter."

func newTestAssessor(t *testing.T) assessor.Assessor {
	t.Helper()
	cfg := assessor.DefaultConfig()
	a, err := assessor.NewHeuristicsAssessor(&cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("new assessor: %v", err)
	}
	return a
}

func newTestSession(t *testing.T, page PageConn, an analyzer.Analyzer) *Session {
	t.Helper()
	s, err := NewSession("s1", page, newTestAssessor(t), an, &testutil.DummyLogger{}, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func healthPage(url string) *testutil.DummyPage {
	return &testutil.DummyPage{Snapshot: &model.PageSnapshot{Text: healthText, Links: []string{}, URL: url}}
}

// analyzerFunc adapts a function to analyzer.Analyzer.
type analyzerFunc func(ctx context.Context, in analyzer.Input) (*model.AnalysisResult, error)

func (f analyzerFunc) Analyze(ctx context.Context, in analyzer.Input) (*model.AnalysisResult, error) {
	return f(ctx, in)
}

func (f analyzerFunc) Close() error { return nil }

func intPtr(n int) *int { return &n }

func TestNewSession_Validation(t *testing.T) {
	t.Parallel()
	if _, err := NewSession("x", nil, nil, &testutil.DummyAnalyzer{}, &testutil.DummyLogger{}, nil); err == nil {
		t.Error("expected error for nil assessor")
	}
	if _, err := NewSession("x", nil, newTestAssessor(t), &testutil.DummyAnalyzer{}, nil, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}

func TestSession_ScanReport(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, healthPage("https://blog.example.com/vitd"), &testutil.DummyAnalyzer{})

	out := s.Scan(context.Background())
	if out.Kind != OutcomeReport {
		t.Fatalf("Kind = %q, want report (%+v)", out.Kind, out)
	}
	if out.Report.Score != 50 {
		t.Errorf("Score = %d, want 50", out.Report.Score)
	}
	if out.Label != model.LabelNeedsVerification {
		t.Errorf("Label = %q", out.Label)
	}
	// domain factor plus the two issues
	if len(out.Factors) != 3 {
		t.Errorf("Factors = %+v, want 3", out.Factors)
	}
	if s.Report() != out.Report {
		t.Error("session should hold the scanned report")
	}
}

// TestSession_ScanStates verifies the three scan states are distinct.
func TestSession_ScanStates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		page PageConn
		want OutcomeKind
		msg  string
	}{
		{"transport failure", &testutil.DummyPage{DataErr: errors.New("no listener")}, OutcomeScanFailed, MsgScanFailed},
		{"not health", &testutil.DummyPage{Snapshot: &model.PageSnapshot{Text: "Football scores tonight", URL: "https://sports.example.com"}}, OutcomeNotHealth, MsgNotHealth},
		{"no page", nil, OutcomeScanFailed, MsgScanFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := newTestSession(t, tc.page, &testutil.DummyAnalyzer{})
			out := s.Scan(context.Background())
			if out.Kind != tc.want || out.Message != tc.msg {
				t.Errorf("got %q %q, want %q %q", out.Kind, out.Message, tc.want, tc.msg)
			}
			if out.Report != nil || s.Report() != nil {
				t.Error("failed scan must not produce a report")
			}
		})
	}
}

func TestSession_FailedScanKeepsPreviousReport(t *testing.T) {
	t.Parallel()
	page := healthPage("https://blog.example.com/vitd")
	s := newTestSession(t, page, &testutil.DummyAnalyzer{})

	first := s.Scan(context.Background())
	page.DataErr = errors.New("navigated away")
	if out := s.Scan(context.Background()); out.Kind != OutcomeScanFailed {
		t.Fatalf("Kind = %q", out.Kind)
	}
	if s.Report() != first.Report {
		t.Error("previous report should survive a failed scan")
	}
}

func TestSession_DeepAnalyzeWithoutScan(t *testing.T) {
	t.Parallel()
	an := &testutil.DummyAnalyzer{}
	s := newTestSession(t, healthPage("https://blog.example.com/"), an)

	out := s.DeepAnalyze(context.Background())
	if out.Kind != OutcomeNoReport {
		t.Errorf("Kind = %q, want no-report", out.Kind)
	}
	if an.CallCount() != 0 {
		t.Error("analyzer must not be called without a scan")
	}
}

func TestSession_DeepAnalyzeFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want OutcomeKind
	}{
		{"not configured", analyzer.ErrNotConfigured, OutcomeNotConfigured},
		{"request failed", &analyzer.RequestError{StatusCode: 500, Body: "boom"}, OutcomeAnalysisFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := newTestSession(t, healthPage("https://blog.example.com/"), &testutil.DummyAnalyzer{Err: tc.err})
			scan := s.Scan(context.Background())

			out := s.DeepAnalyze(context.Background())
			if out.Kind != tc.want {
				t.Fatalf("Kind = %q, want %q", out.Kind, tc.want)
			}
			if s.Report() != scan.Report || s.Report().AIAdjusted {
				t.Error("failed analysis must leave the heuristic report intact")
			}
		})
	}
}

func TestSession_DeepAnalyzeMerges(t *testing.T) {
	t.Parallel()
	an := &testutil.DummyAnalyzer{Result: &model.AnalysisResult{
		AIScore: intPtr(30),
		Verdict: "Unsupported claims.",
		Authors: []model.AuthorAssessment{{Name: "Your genes"}, {Name: "Kim Park"}},
	}}
	s := newTestSession(t, healthPage("https://blog.example.com/vitd"), an)
	scan := s.Scan(context.Background())

	out := s.DeepAnalyze(context.Background())
	if out.Kind != OutcomeAnalyzed {
		t.Fatalf("Kind = %q", out.Kind)
	}
	if out.Report.Score != 30 || !out.Report.AIAdjusted || out.Label != model.LabelMisleading {
		t.Errorf("merged report = %+v label %q", out.Report, out.Label)
	}
	if scan.Report.Score != 50 || scan.Report.AIAdjusted {
		t.Error("scan report must not be mutated by the merge")
	}
	if s.Report() != out.Report || s.Analysis() == nil {
		t.Error("session should hold the merged report and analysis")
	}
	if len(out.Result.Authors) != 1 || out.Result.Authors[0].Name != "Kim Park" {
		t.Errorf("authors = %+v", out.Result.Authors)
	}
	if len(out.Result.EvidenceLinks) != 3 {
		t.Errorf("expected fallback evidence, got %+v", out.Result.EvidenceLinks)
	}

	in := an.Inputs[0]
	if in.HeuristicScore != 50 || in.Text != healthText || in.URL != "https://blog.example.com/vitd" {
		t.Errorf("analyzer input = %+v", in)
	}
}

func TestSession_DeepAnalyzeInstitutionFloor(t *testing.T) {
	t.Parallel()
	an := &testutil.DummyAnalyzer{Result: &model.AnalysisResult{AIScore: intPtr(0)}}
	s := newTestSession(t, healthPage("https://www.nih.gov/health-information"), an)
	s.Scan(context.Background())

	out := s.DeepAnalyze(context.Background())
	if out.Report.Score != 95 {
		t.Errorf("Score = %d, want floor 95", out.Report.Score)
	}
}

func TestSession_DeepAnalyzeRawVerdict(t *testing.T) {
	t.Parallel()
	an := &testutil.DummyAnalyzer{Result: &model.AnalysisResult{Verdict: "free text", Raw: true}}
	s := newTestSession(t, healthPage("https://blog.example.com/"), an)
	s.Scan(context.Background())

	out := s.DeepAnalyze(context.Background())
	if out.Kind != OutcomeRawVerdict || out.Result.Verdict != "free text" {
		t.Fatalf("out = %+v", out)
	}
	if out.Report.AIAdjusted || out.Report.Score != 50 {
		t.Errorf("raw verdict must not adjust the score: %+v", out.Report)
	}
}

// TestSession_RescanDuringAnalysisWins verifies an analysis of a replaced
// report does not overwrite the newer scan.
func TestSession_RescanDuringAnalysisWins(t *testing.T) {
	t.Parallel()
	var s *Session
	an := analyzerFunc(func(ctx context.Context, _ analyzer.Input) (*model.AnalysisResult, error) {
		s.Scan(ctx)
		return &model.AnalysisResult{AIScore: intPtr(10)}, nil
	})
	s = newTestSession(t, healthPage("https://blog.example.com/"), an)
	first := s.Scan(context.Background())

	out := s.DeepAnalyze(context.Background())
	if out.Report.Score != 10 {
		t.Fatalf("outcome score = %d", out.Report.Score)
	}
	cur := s.Report()
	if cur == first.Report || cur.AIAdjusted || cur.Score != 50 {
		t.Errorf("current report = %+v, want the newer heuristic report", cur)
	}
	if s.Analysis() != nil {
		t.Error("analysis of a stale report must not be stored")
	}
}

func TestSession_Highlight(t *testing.T) {
	t.Parallel()
	page := healthPage("https://blog.example.com/")
	page.Highlighted = model.HighlightResponse{OK: true, Via: model.ViaIssueID}
	s := newTestSession(t, page, &testutil.DummyAnalyzer{})

	f := model.Factor{ID: "no-author", Title: "No medical author/reviewer", Description: "Who wrote it?"}
	resp := s.Highlight(context.Background(), f)
	if !resp.OK || resp.Via != model.ViaIssueID {
		t.Errorf("resp = %+v", resp)
	}
	reqs := page.HighlightRequests()
	want := model.HighlightRequest{IssueID: "no-author", TextTitle: f.Title, TextFull: f.Title + "\n" + f.Description}
	if len(reqs) != 1 || reqs[0] != want {
		t.Errorf("requests = %+v, want %+v", reqs, want)
	}
}

func TestSession_HighlightErrorIsSilent(t *testing.T) {
	t.Parallel()
	page := healthPage("https://blog.example.com/")
	page.HighlightErr = errors.New("no listener")
	s := newTestSession(t, page, &testutil.DummyAnalyzer{})

	if resp := s.Highlight(context.Background(), model.Factor{ID: "x"}); resp.OK {
		t.Errorf("resp = %+v, want not ok", resp)
	}
}
