package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/karandeol-26/VeriCura/internal/analyzer"
	"github.com/karandeol-26/VeriCura/internal/assessor"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// PageConn reaches one page: its data and its highlighter. bridge.Client,
// bridge.Page and URLPage all satisfy it.
type PageConn interface {
	PageData(ctx context.Context) (*model.PageSnapshot, error)
	Highlight(ctx context.Context, req model.HighlightRequest) (model.HighlightResponse, error)
}

// OutcomeKind tells a caller which state to render.
type OutcomeKind string

const (
	// Scan outcomes.
	OutcomeReport     OutcomeKind = "report"
	OutcomeNotHealth  OutcomeKind = "not-health"
	OutcomeScanFailed OutcomeKind = "scan-failed"

	// Deep analysis outcomes.
	OutcomeAnalyzed       OutcomeKind = "analyzed"
	OutcomeRawVerdict     OutcomeKind = "raw-verdict"
	OutcomeNotConfigured  OutcomeKind = "not-configured"
	OutcomeAnalysisFailed OutcomeKind = "analysis-failed"
	OutcomeNoReport       OutcomeKind = "no-report"
)

// User-facing messages for the failure states.
const (
	MsgScanFailed    = "Can't scan this page (try reloading it)."
	MsgNotHealth     = "This page doesn't look like health or medical content."
	MsgNotConfigured = "Deep analysis is not configured. Set XAI_API_KEY to enable it."
	MsgNoReport      = "Scan the page before running deep analysis."
)

// ScanOutcome is the result of one Scan.
type ScanOutcome struct {
	Kind    OutcomeKind    `json:"kind"`
	URL     string         `json:"url,omitempty"`
	Report  *model.Report  `json:"report,omitempty"`
	Label   model.Label    `json:"label,omitempty"`
	Factors []model.Factor `json:"factors,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// AnalysisOutcome is the result of one DeepAnalyze. Report is the merged
// copy; the report of the preceding scan is not modified.
type AnalysisOutcome struct {
	Kind    OutcomeKind           `json:"kind"`
	Report  *model.Report         `json:"report,omitempty"`
	Label   model.Label           `json:"label,omitempty"`
	Result  *model.AnalysisResult `json:"result,omitempty"`
	Message string                `json:"message,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Session is the state of one popup lifetime over one page. Concurrent
// operations all run to completion; the last one to finish wins.
type Session struct {
	id       string
	assessor assessor.Assessor
	analyzer analyzer.Analyzer
	logger   logging.Logger
	onEvent  func(SessionEvent)

	mu       sync.Mutex
	page     PageConn
	snapshot *model.PageSnapshot
	report   *model.Report
	scan     *ScanOutcome
	analysis *AnalysisOutcome
	touched  time.Time
}

// NewSession binds a session to a page. onEvent may be nil.
func NewSession(id string, page PageConn, a assessor.Assessor, an analyzer.Analyzer, logger logging.Logger, onEvent func(SessionEvent)) (*Session, error) {
	if a == nil || an == nil {
		return nil, errors.New("app: session needs an assessor and an analyzer")
	}
	if logger == nil {
		return nil, errors.New("app: nil logger")
	}
	if onEvent == nil {
		onEvent = func(SessionEvent) {}
	}
	return &Session{
		id:       id,
		page:     page,
		assessor: a,
		analyzer: an,
		logger:   logger.With(logging.Field{Key: "session", Value: id}),
		onEvent:  onEvent,
		touched:  time.Now(),
	}, nil
}

func (s *Session) ID() string { return s.id }

// SetPage points the session at another page and forgets the last scan.
func (s *Session) SetPage(page PageConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	s.snapshot, s.report, s.scan, s.analysis = nil, nil, nil, nil
	s.touched = time.Now()
}

func (s *Session) currentPage() PageConn {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
	return s.page
}

// Scan asks the page for its data and classifies it. A successful scan
// replaces the session's report; failures leave it as it was.
func (s *Session) Scan(ctx context.Context) ScanOutcome {
	page := s.currentPage()
	if page == nil {
		return s.scanDone(ScanOutcome{Kind: OutcomeScanFailed, Message: MsgScanFailed, Error: "no page attached"})
	}
	var url string
	if u, ok := page.(interface{ URL() string }); ok {
		url = u.URL()
	}

	snap, err := page.PageData(ctx)
	if err != nil {
		s.logger.Warn("page data unavailable", logging.Field{Key: "error", Value: err.Error()})
		return s.scanDone(ScanOutcome{Kind: OutcomeScanFailed, URL: url, Message: MsgScanFailed, Error: err.Error()})
	}
	if snap.URL != "" {
		url = snap.URL
	}

	report, err := s.assessor.Classify(ctx, snap)
	if errors.Is(err, assessor.ErrNotHealthContent) {
		return s.scanDone(ScanOutcome{Kind: OutcomeNotHealth, URL: url, Message: MsgNotHealth})
	}
	if err != nil {
		return s.scanDone(ScanOutcome{Kind: OutcomeScanFailed, URL: url, Message: MsgScanFailed, Error: err.Error()})
	}

	s.mu.Lock()
	s.snapshot, s.report, s.analysis = snap, report, nil
	s.mu.Unlock()

	return s.scanDone(ScanOutcome{
		Kind:    OutcomeReport,
		URL:     url,
		Report:  report,
		Label:   report.Label(),
		Factors: assessor.ExplainFactors(report),
	})
}

// scanDone records out as the last scan and announces it.
func (s *Session) scanDone(out ScanOutcome) ScanOutcome {
	s.mu.Lock()
	s.scan = &out
	s.mu.Unlock()

	ev := SessionEvent{SessionID: s.id, Type: EventScan, Kind: out.Kind, Error: out.Error}
	if out.Report != nil {
		ev.Score = out.Report.Score
	}
	s.onEvent(ev)
	return out
}

// DeepAnalyze sends the last scanned page to the analyzer and merges the
// answer into a copy of the last report.
func (s *Session) DeepAnalyze(ctx context.Context) AnalysisOutcome {
	s.mu.Lock()
	snap, report := s.snapshot, s.report
	s.touched = time.Now()
	s.mu.Unlock()

	if report == nil || snap == nil {
		return s.analysisDone(AnalysisOutcome{Kind: OutcomeNoReport, Message: MsgNoReport})
	}

	res, err := s.analyzer.Analyze(ctx, analyzer.Input{
		Text:           snap.Text,
		URL:            snap.URL,
		HeuristicScore: report.Score,
		AuthorNames:    report.AuthorNames,
	})
	switch {
	case errors.Is(err, analyzer.ErrNotConfigured):
		return s.analysisDone(AnalysisOutcome{Kind: OutcomeNotConfigured, Message: MsgNotConfigured})
	case err != nil:
		s.logger.Warn("deep analysis failed", logging.Field{Key: "error", Value: err.Error()})
		return s.analysisDone(AnalysisOutcome{Kind: OutcomeAnalysisFailed, Error: err.Error()})
	}

	res.Authors = analyzer.FilterAuthors(res.Authors)
	res.EvidenceLinks = analyzer.EvidenceOrFallback(res.EvidenceLinks)

	merged := *report
	analyzer.Merge(&merged, res)

	out := AnalysisOutcome{Kind: OutcomeAnalyzed, Report: &merged, Label: merged.Label(), Result: res}
	if res.Raw {
		out.Kind = OutcomeRawVerdict
	}

	s.mu.Lock()
	if s.report == report {
		s.report = &merged
		s.analysis = &out
	}
	s.mu.Unlock()

	return s.analysisDone(out)
}

func (s *Session) analysisDone(out AnalysisOutcome) AnalysisOutcome {
	ev := SessionEvent{SessionID: s.id, Type: EventAnalysis, Kind: out.Kind, Error: out.Error}
	if out.Report != nil {
		ev.Score = out.Report.Score
	}
	s.onEvent(ev)
	return out
}

// Highlight asks the page to show the element behind a factor. Transport
// failures are logged and reported as not found.
func (s *Session) Highlight(ctx context.Context, f model.Factor) model.HighlightResponse {
	return s.HighlightRequest(ctx, model.HighlightRequestFor(f))
}

// HighlightRequest is Highlight with a prepared request.
func (s *Session) HighlightRequest(ctx context.Context, req model.HighlightRequest) model.HighlightResponse {
	page := s.currentPage()
	if page == nil {
		return model.HighlightResponse{}
	}
	resp, err := page.Highlight(ctx, req)
	if err != nil {
		s.logger.Debug("highlight dropped",
			logging.Field{Key: "issue", Value: req.IssueID},
			logging.Field{Key: "error", Value: err.Error()})
		resp = model.HighlightResponse{}
	}
	s.onEvent(SessionEvent{SessionID: s.id, Type: EventHighlight, Via: resp.Via, OK: resp.OK})
	return resp
}

// Report returns the current report, merged when deep analysis succeeded.
func (s *Session) Report() *model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// LastScan returns the outcome of the most recent scan, or nil. Unlike
// Report it also reflects failed and not-health scans.
func (s *Session) LastScan() *ScanOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scan
}

// Analysis returns the outcome of the last deep analysis of the current
// report, or nil.
func (s *Session) Analysis() *AnalysisOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

// Page returns the attached page.
func (s *Session) Page() PageConn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
