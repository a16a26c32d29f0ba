// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/karandeol-26/VeriCura/internal/analyzer"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// WarnCount returns how many warnings were recorded.
func (l *DummyLogger) WarnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Warns)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient.
// Pages maps a URL to its HTML body; unknown URLs answer 404.
// Set FailURLs[url] = true to force a transport error for a specific URL.
type DummyWebClient struct {
	Pages         map[string]string
	FailURLs      map[string]bool
	ResponseDelay time.Duration

	mu       sync.Mutex
	Requests []*webclient.Request
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.FailURLs != nil && d.FailURLs[req.URL] {
		return nil, &errString{"dummy fetch fail for " + req.URL}
	}

	body, ok := d.Pages[req.URL]
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
		body = "not found"
	}
	return &webclient.Response{
		Request:    req,
		Body:       []byte(body),
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Get(ctx context.Context, url string) (*webclient.Response, error) {
	return d.Do(ctx, &webclient.Request{Method: http.MethodGet, URL: url})
}

func (d *DummyWebClient) Close() error { return nil }

// RequestCount returns how many requests were served.
func (d *DummyWebClient) RequestCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Requests)
}

// ─── Assessor ──────────────────────────────────────────────────────────

// DummyAssessor implements assessor.Assessor with a preconfigured result.
type DummyAssessor struct {
	Report *model.Report
	Err    error
}

func (d *DummyAssessor) Classify(_ context.Context, snap *model.PageSnapshot) (*model.Report, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	if d.Report != nil {
		cp := *d.Report
		return &cp, nil
	}
	return &model.Report{ID: "dummy", Score: 50, URL: snap.URL, Issues: []model.Issue{}}, nil
}

func (d *DummyAssessor) Close() error { return nil }

// ─── Analyzer ──────────────────────────────────────────────────────────

// DummyAnalyzer implements analyzer.Analyzer. Result is returned as a copy
// unless Err is set. Inputs are recorded.
type DummyAnalyzer struct {
	Result *model.AnalysisResult
	Err    error
	Delay  time.Duration

	mu     sync.Mutex
	Inputs []analyzer.Input
}

func (d *DummyAnalyzer) Analyze(ctx context.Context, in analyzer.Input) (*model.AnalysisResult, error) {
	d.mu.Lock()
	d.Inputs = append(d.Inputs, in)
	d.mu.Unlock()
	if d.Delay > 0 {
		select {
		case <-time.After(d.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if d.Err != nil {
		return nil, d.Err
	}
	if d.Result == nil {
		return &model.AnalysisResult{}, nil
	}
	cp := *d.Result
	return &cp, nil
}

func (d *DummyAnalyzer) Close() error { return nil }

// CallCount returns how many analyses were requested.
func (d *DummyAnalyzer) CallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Inputs)
}

// ─── Page ──────────────────────────────────────────────────────────────

// DummyPage serves a fixed snapshot and highlight answer.
type DummyPage struct {
	Snapshot     *model.PageSnapshot
	DataErr      error
	Highlighted  model.HighlightResponse
	HighlightErr error

	mu       sync.Mutex
	Requests []model.HighlightRequest
}

func (d *DummyPage) PageData(context.Context) (*model.PageSnapshot, error) {
	if d.DataErr != nil {
		return nil, d.DataErr
	}
	cp := *d.Snapshot
	return &cp, nil
}

func (d *DummyPage) Highlight(_ context.Context, req model.HighlightRequest) (model.HighlightResponse, error) {
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()
	return d.Highlighted, d.HighlightErr
}

// HighlightRequests returns a copy of the recorded requests.
func (d *DummyPage) HighlightRequests() []model.HighlightRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.HighlightRequest(nil), d.Requests...)
}

// ─── helpers ───────────────────────────────────────────────────────────

type errString struct{ s string }

func (e *errString) Error() string { return e.s }
