package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/karandeol-26/VeriCura/internal/assessor"
	"github.com/karandeol-26/VeriCura/internal/bridge"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

type SessionEventType string

const (
	EventOpened    SessionEventType = "opened"
	EventScan      SessionEventType = "scan"
	EventAnalysis  SessionEventType = "analysis"
	EventHighlight SessionEventType = "highlight"
	EventClosed    SessionEventType = "closed"
)

type SessionEvent struct {
	SessionID string           `json:"session_id"`
	Type      SessionEventType `json:"type"`

	Kind  OutcomeKind `json:"kind,omitempty"`
	Score int         `json:"score,omitempty"`
	Error string      `json:"error,omitempty"`

	// For highlights
	Via model.HighlightVia `json:"via,omitempty"`
	OK  bool               `json:"ok,omitempty"`
}

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("app: session not found")

type sessionEntry struct {
	session *Session
	subs    map[chan SessionEvent]struct{}
}

// Orchestrator owns the open sessions and fans their events out to
// subscribers.
type Orchestrator struct {
	cfg    *Config
	comps  *Components
	logger logging.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry

	stop      chan struct{}
	closeOnce sync.Once
}

// NewOrchestrator ties together config, shared components and logger.
func NewOrchestrator(cfg *Config, comps *Components, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	o := &Orchestrator{
		cfg:      cfg,
		comps:    comps,
		logger:   logger.With(logging.Field{Key: "component", Value: "orchestrator"}),
		sessions: make(map[string]*sessionEntry),
		stop:     make(chan struct{}),
	}
	if cfg.SessionRetention > 0 {
		go o.expireLoop(cfg.SessionRetention)
	}
	return o
}

func (o *Orchestrator) Components() *Components { return o.comps }

// CreateSession opens a session over page, which may be nil until a URL or
// agent is attached.
func (o *Orchestrator) CreateSession(page PageConn) (*Session, error) {
	if o.comps == nil {
		return nil, errors.New("app: orchestrator has no components")
	}
	id := uuid.New().String()
	s, err := NewSession(id, page, o.comps.Assessor, o.comps.Analyzer, o.logger, o.emit)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.sessions[id] = &sessionEntry{session: s, subs: make(map[chan SessionEvent]struct{})}
	o.mu.Unlock()

	o.logger.Info("session opened", logging.Field{Key: "session", Value: id})
	o.emit(SessionEvent{SessionID: id, Type: EventOpened})
	return s, nil
}

// GetSession returns the session with id, or nil.
func (o *Orchestrator) GetSession(id string) *Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	if e, ok := o.sessions[id]; ok {
		return e.session
	}
	return nil
}

// OpenURL attaches a server-side fetched page to the session.
func (o *Orchestrator) OpenURL(id, pageURL string) (*Session, error) {
	s := o.GetSession(id)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	s.SetPage(o.comps.PageForURL(pageURL))
	return s, nil
}

// AttachAgent attaches a live page served by a bridge agent at wsURL.
func (o *Orchestrator) AttachAgent(id, wsURL string) (*Session, error) {
	s := o.GetSession(id)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	c, err := bridge.NewClient(wsURL, o.cfg.Bridge, o.logger)
	if err != nil {
		return nil, err
	}
	s.SetPage(c)
	return s, nil
}

// CloseSession drops the session and closes its subscriber channels.
func (o *Orchestrator) CloseSession(id string) error {
	o.mu.Lock()
	e, ok := o.sessions[id]
	if ok {
		delete(o.sessions, id)
	}
	o.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	ev := SessionEvent{SessionID: id, Type: EventClosed}
	for ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
		close(ch)
	}
	o.logger.Info("session closed", logging.Field{Key: "session", Value: id})
	return nil
}

// Subscribe returns a channel of the session's events and a function that
// ends the subscription. The channel is closed when the session closes.
func (o *Orchestrator) Subscribe(id string) (<-chan SessionEvent, func(), error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.sessions[id]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	ch := make(chan SessionEvent, 16)
	e.subs[ch] = struct{}{}

	cancel := func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if cur, ok := o.sessions[id]; ok {
			if _, sub := cur.subs[ch]; sub {
				delete(cur.subs, ch)
				close(ch)
			}
		}
	}
	return ch, cancel, nil
}

func (o *Orchestrator) emit(ev SessionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.sessions[ev.SessionID]
	if !ok {
		return
	}
	// Non-blocking send; drop if a subscriber is slow.
	for ch := range e.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (o *Orchestrator) expireLoop(retention time.Duration) {
	tick := retention / 4
	if tick < time.Second {
		tick = time.Second
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-o.stop:
			return
		case now := <-t.C:
			o.expire(now.Add(-retention))
		}
	}
}

func (o *Orchestrator) expire(before time.Time) {
	o.mu.Lock()
	var stale []string
	for id, e := range o.sessions {
		if e.session.idleSince().Before(before) {
			stale = append(stale, id)
		}
	}
	o.mu.Unlock()
	for _, id := range stale {
		_ = o.CloseSession(id)
	}
}

// BatchResult is the scan outcome of one URL in ScanURLs.
type BatchResult struct {
	URL     string      `json:"url"`
	Outcome ScanOutcome `json:"outcome"`
}

// ScanURLs fetches and classifies pages without opening sessions.
func (o *Orchestrator) ScanURLs(ctx context.Context, urls []string) ([]BatchResult, error) {
	results, err := o.comps.Fetcher.SnapshotAll(ctx, urls)
	if err != nil {
		return nil, err
	}
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{URL: r.URL, Outcome: o.classify(ctx, r.Snapshot, r.Err)}
		out[i].Outcome.URL = r.URL
	}
	return out, nil
}

// Discover expands each start URL into itself and the same-site pages it
// links to, keeping the first occurrence of every URL. A start URL that
// cannot be crawled still yields itself.
func (o *Orchestrator) Discover(ctx context.Context, starts []string) ([]string, error) {
	if o.comps.Spider == nil {
		return nil, errors.New("app: no spider configured")
	}
	seen := make(map[string]struct{})
	var urls []string
	for _, start := range starts {
		found, err := o.comps.Spider.Enumerate(ctx, start)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			o.logger.Warn("crawl failed", logging.Field{Key: "url", Value: start}, logging.Field{Key: "error", Value: err.Error()})
			found = []string{start}
		}
		for _, u := range found {
			if _, dup := seen[u]; !dup {
				seen[u] = struct{}{}
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}

// CrawlScan scans every page Discover finds from starts.
func (o *Orchestrator) CrawlScan(ctx context.Context, starts []string) ([]BatchResult, error) {
	urls, err := o.Discover(ctx, starts)
	if err != nil {
		return nil, err
	}
	return o.ScanURLs(ctx, urls)
}

func (o *Orchestrator) classify(ctx context.Context, snap *model.PageSnapshot, fetchErr error) ScanOutcome {
	if fetchErr != nil {
		return ScanOutcome{Kind: OutcomeScanFailed, Message: MsgScanFailed, Error: fetchErr.Error()}
	}
	report, err := o.comps.Assessor.Classify(ctx, snap)
	if errors.Is(err, assessor.ErrNotHealthContent) {
		return ScanOutcome{Kind: OutcomeNotHealth, Message: MsgNotHealth}
	}
	if err != nil {
		return ScanOutcome{Kind: OutcomeScanFailed, Message: MsgScanFailed, Error: err.Error()}
	}
	return ScanOutcome{
		Kind:    OutcomeReport,
		Report:  report,
		Label:   report.Label(),
		Factors: assessor.ExplainFactors(report),
	}
}

// Close stops expiry and closes every session. It does not close the
// shared components.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		close(o.stop)
		o.mu.Lock()
		ids := make([]string, 0, len(o.sessions))
		for id := range o.sessions {
			ids = append(ids, id)
		}
		o.mu.Unlock()
		for _, id := range ids {
			_ = o.CloseSession(id)
		}
	})
}
