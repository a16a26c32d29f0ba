package browser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/karandeol-26/VeriCura/internal/browser"
	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/webclient"
)

const page = `<html><head><meta name="author" content="Kim Park"></head><body>
<article>
<h1>Flu basics</h1>
<p>Rest and fluids help most healthy adults recover from the flu.</p>
<a href="https://www.cdc.gov/flu">CDC</a>
</article>
<script>document.body.insertAdjacentHTML("beforeend", "<p>Added by script</p>");</script>
</body></html>`

func openPage(t *testing.T) *browser.Page {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	t.Cleanup(ts.Close)

	cfg := webclient.DefaultConfig()
	cfg.Client = webclient.ClientChromedp
	chrome, err := webclient.NewChromedpClient(cfg, logging.NopLogger{})
	if err != nil {
		t.Skipf("Skipping browser test (environment does not support chromedp): %v", err)
	}
	t.Cleanup(func() { _ = chrome.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	p, err := browser.Open(ctx, chrome, ts.URL, logging.NopLogger{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPage_Snapshot(t *testing.T) {
	p := openPage(t)

	snap, err := p.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Meta.Author != "Kim Park" {
		t.Errorf("Meta.Author = %q", snap.Meta.Author)
	}
	if len(snap.Links) != 1 || snap.Links[0] != "https://www.cdc.gov/flu" {
		t.Errorf("Links = %v", snap.Links)
	}
	if snap.Text == "" {
		t.Error("expected visible text")
	}
}

func TestPage_LocateByTitle(t *testing.T) {
	p := openPage(t)
	cfg := locator.DefaultConfig()
	cfg.PulseDuration = time.Hour
	l, err := locator.New(p, cfg, logging.NopLogger{})
	if err != nil {
		t.Fatalf("locator.New: %v", err)
	}
	defer l.Pulser().Flush(context.Background())

	resp, err := l.Locate(context.Background(), model.HighlightRequest{TextTitle: "fluids help healthy adults recover"})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if !resp.OK || resp.Via != model.ViaTitle {
		t.Fatalf("resp = %+v", resp)
	}

	els, err := p.QueryAll(context.Background(), "p")
	if err != nil || len(els) != 2 {
		t.Fatalf("QueryAll(p) = %d elements, %v", len(els), err)
	}
	if got, _ := els[0].(*browser.Element).SetStyle(context.Background(), "box-shadow", ""); got != locator.PulseShadow {
		t.Errorf("box-shadow before restore = %q, want pulse", got)
	}

	none, err := p.QueryAll(context.Background(), "table")
	if err != nil || len(none) != 0 {
		t.Errorf("expected no tables, got %d, %v", len(none), err)
	}
}
