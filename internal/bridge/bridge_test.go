package bridge_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/karandeol-26/VeriCura/internal/bridge"
	"github.com/karandeol-26/VeriCura/internal/htmldoc"
	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

const page = `<html><head><meta name="author" content="Kim Park"></head><body>
<article><h1>Flu basics</h1><p>Rest and fluids help most adults recover.</p></article>
</body></html>`

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

func startAgent(t *testing.T, h bridge.PageHandler) string {
	t.Helper()
	agent, err := bridge.NewAgent(h, logging.NopLogger{})
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	ts := httptest.NewServer(agent)
	t.Cleanup(ts.Close)
	return wsURL(ts.URL)
}

func newClient(t *testing.T, url string, timeout time.Duration) *bridge.Client {
	t.Helper()
	c, err := bridge.NewClient(url, bridge.Config{Timeout: timeout}, logging.NopLogger{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func staticPage(t *testing.T) bridge.PageHandler {
	t.Helper()
	doc, err := htmldoc.Parse([]byte(page), htmldoc.WithURL("https://health.example.com/flu"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := locator.DefaultConfig()
	cfg.PulseDuration = time.Hour
	loc, err := locator.New(doc, cfg, logging.NopLogger{})
	if err != nil {
		t.Fatalf("locator.New: %v", err)
	}
	p, err := bridge.NewPage(doc, loc)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p
}

func TestClient_PageData(t *testing.T) {
	t.Parallel()
	c := newClient(t, startAgent(t, staticPage(t)), 5*time.Second)

	snap, err := c.PageData(context.Background())
	if err != nil {
		t.Fatalf("PageData: %v", err)
	}
	if snap.URL != "https://health.example.com/flu" || snap.Meta.Author != "Kim Park" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.Text != "Flu basics\nRest and fluids help most adults recover." {
		t.Errorf("Text = %q", snap.Text)
	}
}

func TestClient_Highlight(t *testing.T) {
	t.Parallel()
	c := newClient(t, startAgent(t, staticPage(t)), 5*time.Second)

	resp, err := c.Highlight(context.Background(), model.HighlightRequest{IssueID: string(model.IssueNoAuthor)})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !resp.OK || resp.Via != model.ViaIssueID {
		t.Errorf("resp = %+v, want ok via issueId", resp)
	}

	resp, err = c.Highlight(context.Background(), model.HighlightRequest{TextTitle: "nothing here matches"})
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !resp.OK || resp.Via != model.ViaFallback {
		t.Errorf("resp = %+v, want fallback heading", resp)
	}
}

func TestClient_NoListener(t *testing.T) {
	t.Parallel()
	c := newClient(t, "ws://127.0.0.1:1/", time.Second)
	if _, err := c.PageData(context.Background()); !errors.Is(err, bridge.ErrNoListener) {
		t.Fatalf("expected ErrNoListener, got %v", err)
	}
}

type slowPage struct{ delay time.Duration }

func (s slowPage) PageData(ctx context.Context) (*model.PageSnapshot, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
	return &model.PageSnapshot{}, nil
}

func (s slowPage) Highlight(context.Context, model.HighlightRequest) (model.HighlightResponse, error) {
	return model.HighlightResponse{}, errors.New("element detached")
}

func TestClient_TimeoutIsNoListener(t *testing.T) {
	t.Parallel()
	c := newClient(t, startAgent(t, slowPage{delay: 2 * time.Second}), 100*time.Millisecond)

	if _, err := c.PageData(context.Background()); !errors.Is(err, bridge.ErrNoListener) {
		t.Fatalf("expected ErrNoListener after timeout, got %v", err)
	}
}

func TestClient_RemoteError(t *testing.T) {
	t.Parallel()
	c := newClient(t, startAgent(t, slowPage{}), 5*time.Second)

	_, err := c.Highlight(context.Background(), model.HighlightRequest{IssueID: "no-author"})
	var re *bridge.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RemoteError, got %v", err)
	}
	if re.Type != bridge.TypeHighlightIssue || re.Message != "element detached" {
		t.Errorf("unexpected remote error: %+v", re)
	}
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()
	if _, err := bridge.NewClient("", bridge.DefaultConfig(), logging.NopLogger{}); err == nil {
		t.Error("expected error for empty url")
	}
	if _, err := bridge.NewAgent(nil, logging.NopLogger{}); err == nil {
		t.Error("expected error for nil handler")
	}
}
