package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/karandeol-26/VeriCura/internal/analyzer"
	"github.com/karandeol-26/VeriCura/internal/assessor"
	"github.com/karandeol-26/VeriCura/internal/bridge"
	"github.com/karandeol-26/VeriCura/internal/enumerator"
	"github.com/karandeol-26/VeriCura/internal/fetcher"
	"github.com/karandeol-26/VeriCura/internal/htmldoc"
	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/webclient"
)

// Components are the long-lived services shared by all sessions.
type Components struct {
	WebClient webclient.WebClient
	Fetcher   *fetcher.Fetcher
	Assessor  assessor.Assessor
	Analyzer  analyzer.Analyzer
	Spider    *enumerator.Spider

	locatorCfg locator.Config
	logger     logging.Logger
}

// NewComponents builds the services described by cfg.
func NewComponents(cfg *Config, logger logging.Logger) (*Components, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		return nil, errors.New("app: nil logger")
	}

	a, err := assessor.NewHeuristicsAssessor(&cfg.Assessor, logger)
	if err != nil {
		return nil, fmt.Errorf("new assessor: %w", err)
	}

	an, err := analyzer.NewXAIAnalyzer(cfg.Analyzer, logger, nil)
	if err != nil {
		return nil, fmt.Errorf("new analyzer: %w", err)
	}

	wc, err := webclient.NewWebClient(cfg.WebClient, logger)
	if err != nil {
		return nil, fmt.Errorf("new webclient: %w", err)
	}

	c, err := AssembleComponents(cfg, wc, a, an, logger)
	if err != nil {
		_ = wc.Close()
		return nil, err
	}
	return c, nil
}

// AssembleComponents wires already built services. The fetcher and the
// spider are built here from cfg and wc.
func AssembleComponents(cfg *Config, wc webclient.WebClient, a assessor.Assessor, an analyzer.Analyzer, logger logging.Logger) (*Components, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if wc == nil || a == nil || an == nil {
		return nil, errors.New("app: components need a web client, an assessor and an analyzer")
	}
	f, err := fetcher.New(cfg.Fetcher, wc, logger)
	if err != nil {
		return nil, fmt.Errorf("new fetcher: %w", err)
	}
	sp, err := enumerator.NewSpider(cfg.Crawl, wc, logger)
	if err != nil {
		return nil, fmt.Errorf("new spider: %w", err)
	}
	return &Components{
		WebClient:  wc,
		Fetcher:    f,
		Assessor:   a,
		Analyzer:   an,
		Spider:     sp,
		locatorCfg: cfg.Locator,
		logger:     logger,
	}, nil
}

// Close releases the web client, assessor and analyzer.
func (c *Components) Close() error {
	var firstErr error
	if c.WebClient != nil {
		if err := c.WebClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close webclient: %w", err)
		}
	}
	if c.Assessor != nil {
		if err := c.Assessor.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close assessor: %w", err)
		}
	}
	if c.Analyzer != nil {
		if err := c.Analyzer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close analyzer: %w", err)
		}
	}
	return firstErr
}

// PageForURL returns a page that is fetched on every PageData call and
// highlighted on the parsed copy of its last fetch.
func (c *Components) PageForURL(pageURL string) *URLPage {
	return &URLPage{
		url:        pageURL,
		wc:         c.WebClient,
		locatorCfg: c.locatorCfg,
		logger:     c.logger,
	}
}

// ErrPageNotLoaded is returned by URLPage.Highlight before the first
// successful PageData call.
var ErrPageNotLoaded = errors.New("app: page not loaded")

// URLPage serves page data for a URL from a server-side fetch. Highlights
// run against the parsed document with an estimated layout.
type URLPage struct {
	url        string
	wc         webclient.WebClient
	locatorCfg locator.Config
	logger     logging.Logger

	mu   sync.Mutex
	doc  *htmldoc.Document
	page *bridge.Page
}

// URL returns the page address.
func (p *URLPage) URL() string { return p.url }

func (p *URLPage) PageData(ctx context.Context) (*model.PageSnapshot, error) {
	resp, err := p.wc.Get(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.url, err)
	}
	if !resp.OK() {
		return nil, &fetcher.StatusError{URL: p.url, StatusCode: resp.StatusCode}
	}

	doc, err := htmldoc.Parse(resp.Body,
		htmldoc.WithURL(p.url),
		htmldoc.WithLayout(htmldoc.EstimateLayout(htmldoc.DefaultViewport)))
	if err != nil {
		return nil, err
	}
	loc, err := locator.New(doc, p.locatorCfg, p.logger)
	if err != nil {
		return nil, err
	}
	page, err := bridge.NewPage(doc, loc)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.doc, p.page = doc, page
	p.mu.Unlock()
	return page.PageData(ctx)
}

func (p *URLPage) Highlight(ctx context.Context, req model.HighlightRequest) (model.HighlightResponse, error) {
	p.mu.Lock()
	page := p.page
	p.mu.Unlock()
	if page == nil {
		return model.HighlightResponse{}, ErrPageNotLoaded
	}
	return page.Highlight(ctx, req)
}

// Document returns the last fetched document, or nil.
func (p *URLPage) Document() *htmldoc.Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc
}
