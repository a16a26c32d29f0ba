// Package browser drives a live page in Chrome over the DevTools protocol.
// A Page is both the page-data source and a locator.Document.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// TabOpener opens browser tabs; *webclient.ChromedpClient implements it.
type TabOpener interface {
	NewTab() (context.Context, context.CancelFunc)
}

// ErrClosed is returned by a Page used after Close.
var ErrClosed = errors.New("browser: page closed")

// Page is one open tab.
type Page struct {
	tab    context.Context
	cancel context.CancelFunc
	logger logging.Logger
}

// Open opens a tab and navigates it to url.
func Open(ctx context.Context, opener TabOpener, url string, logger logging.Logger) (*Page, error) {
	if opener == nil {
		return nil, errors.New("browser: nil tab opener")
	}
	if logger == nil {
		return nil, errors.New("browser: nil logger")
	}
	tab, cancel := opener.NewTab()
	p := &Page{
		tab:    tab,
		cancel: cancel,
		logger: logger.With(logging.Field{Key: "component", Value: "browser"}),
	}
	if err := p.run(ctx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		cancel()
		return nil, fmt.Errorf("browser: open %s: %w", url, err)
	}
	p.logger.Debug("page opened", logging.Field{Key: "url", Value: url})
	return p, nil
}

// Close closes the tab.
func (p *Page) Close() error {
	p.cancel()
	return nil
}

// run executes actions on the tab, bounded by ctx as well as the tab.
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	if p.tab.Err() != nil {
		return ErrClosed
	}
	runCtx, cancel := context.WithCancel(p.tab)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

const snapshotJS = `(() => {
  const pick = (sel) => {
    const el = document.querySelector(sel);
    return el ? (el.getAttribute("content") || "") : "";
  };
  const author =
    document.querySelector("meta[name='author']") ||
    document.querySelector("meta[property='article:author']") ||
    document.querySelector("meta[name='byl']") ||
    document.querySelector("meta[name='dc.creator']");
  return {
    text: document.body ? (document.body.innerText || "") : "",
    links: Array.from(document.querySelectorAll("a[href]"))
      .map((a) => a.href)
      .filter((h) => h.startsWith("http://") || h.startsWith("https://")),
    meta: {
      author: author ? (author.getAttribute("content") || "") : "",
      ogTitle: pick("meta[property='og:title']"),
      ogDescription: pick("meta[property='og:description']"),
      description: pick("meta[name='description']"),
    },
    url: location.href,
  };
})()`

// Snapshot reads the page data from the live DOM.
func (p *Page) Snapshot(ctx context.Context) (*model.PageSnapshot, error) {
	var snap model.PageSnapshot
	if err := p.run(ctx, chromedp.Evaluate(snapshotJS, &snap)); err != nil {
		return nil, fmt.Errorf("browser: snapshot: %w", err)
	}
	if snap.Links == nil {
		snap.Links = []string{}
	}
	return &snap, nil
}

func (p *Page) QueryAll(ctx context.Context, selector string) ([]locator.Element, error) {
	var nodes []*cdp.Node
	if err := p.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("browser: query %q: %w", selector, err)
	}
	return p.wrap(nodes), nil
}

func (p *Page) ViewportWidth(ctx context.Context) (float64, error) {
	var w float64
	if err := p.run(ctx, chromedp.Evaluate(`window.innerWidth`, &w)); err != nil {
		return 0, fmt.Errorf("browser: viewport width: %w", err)
	}
	return w, nil
}

func (p *Page) wrap(nodes []*cdp.Node) []locator.Element {
	out := make([]locator.Element, len(nodes))
	for i, n := range nodes {
		out[i] = &Element{page: p, node: n}
	}
	return out
}

// Element is a DOM node in a live page.
type Element struct {
	page *Page
	node *cdp.Node
}

func (e *Element) ID() string {
	return strconv.FormatInt(int64(e.node.BackendNodeID), 10)
}

// call runs a function with the element bound to this.
func (e *Element) call(ctx context.Context, fn string, res any, args ...any) error {
	return e.page.run(ctx, chromedp.ActionFunc(func(c context.Context) error {
		return chromedp.CallFunctionOnNode(c, e.node, fn, res, args...)
	}))
}

func (e *Element) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.call(ctx, `function() { return this.innerText || ""; }`, &text); err != nil {
		return "", fmt.Errorf("browser: inner text: %w", err)
	}
	return text, nil
}

func (e *Element) Rect(ctx context.Context) (locator.Rect, error) {
	var r locator.Rect
	err := e.call(ctx, `function() {
  const r = this.getBoundingClientRect();
  return { x: r.x, y: r.y, width: r.width, height: r.height };
}`, &r)
	if err != nil {
		return locator.Rect{}, fmt.Errorf("browser: bounding rect: %w", err)
	}
	return r, nil
}

func (e *Element) QueryAll(ctx context.Context, selector string) ([]locator.Element, error) {
	var nodes []*cdp.Node
	err := e.page.run(ctx, chromedp.Nodes(selector, &nodes,
		chromedp.ByQueryAll, chromedp.FromNode(e.node), chromedp.AtLeast(0)))
	if err != nil {
		return nil, fmt.Errorf("browser: query %q: %w", selector, err)
	}
	return e.page.wrap(nodes), nil
}

func (e *Element) ScrollIntoView(ctx context.Context) error {
	var ok bool
	err := e.call(ctx, `function() { this.scrollIntoView({ behavior: "smooth", block: "center" }); return true; }`, &ok)
	if err != nil {
		return fmt.Errorf("browser: scroll: %w", err)
	}
	return nil
}

func (e *Element) SetStyle(ctx context.Context, prop, value string) (string, error) {
	var prev string
	err := e.call(ctx, `function(prop, value) {
  const prev = this.style.getPropertyValue(prop);
  if (value) { this.style.setProperty(prop, value); } else { this.style.removeProperty(prop); }
  return prev;
}`, &prev, prop, value)
	if err != nil {
		return "", fmt.Errorf("browser: set style %s: %w", prop, err)
	}
	return prev, nil
}
