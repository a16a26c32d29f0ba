package enumerator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/karandeol-26/VeriCura/internal/extractor"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/utils"
	"github.com/karandeol-26/VeriCura/internal/webclient"
)

// canonOpts makes links that differ only by tracking params, fragments or a
// trailing slash count as one page.
var canonOpts = utils.CanonicalizeOptions{
	DropTrackingParams: true,
	StripTrailingSlash: true,
	DefaultScheme:      "https",
}

// Spider walks same-host links breadth first.
type Spider struct {
	cfg    Config
	wc     webclient.WebClient
	logger logging.Logger
}

type spiderHelper struct {
	spider   *Spider
	rootHost string
	depth    map[string]int
	results  []string
}

func NewSpider(cfg Config, wc webclient.WebClient, logger logging.Logger) (*Spider, error) {
	if wc == nil {
		return nil, errors.New("enumerator: nil web client")
	}
	if logger == nil {
		return nil, errors.New("enumerator: nil logger")
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultConfig().MaxPages
	}
	cfg.MaxDepth = max(cfg.MaxDepth, 0)
	return &Spider{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "spider"}),
	}, nil
}

// Enumerate returns the canonical start URL followed by the same-host pages
// found within MaxDepth hops, in discovery order. Pages that fail to load
// are kept in the result but not followed.
func (s *Spider) Enumerate(ctx context.Context, target string) ([]string, error) {
	root, err := utils.Canonicalize(target, canonOpts)
	if err != nil {
		return nil, fmt.Errorf("enumerator: %w", err)
	}
	h := &spiderHelper{
		spider:   s,
		rootHost: utils.Hostname(root),
		depth:    map[string]int{root: 0},
		results:  []string{root},
	}
	err = h.run(ctx)
	return h.results, err
}

func (sh *spiderHelper) run(ctx context.Context) error {
	for i := 0; i < len(sh.results); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := sh.results[i]
		d := sh.depth[page]
		// Breadth first, so every later page is at least this deep.
		if d >= sh.spider.cfg.MaxDepth {
			break
		}
		links, err := sh.crawlPage(ctx, page)
		if err != nil {
			sh.spider.logger.Warn("error while crawling page",
				logging.Field{Key: "url", Value: page},
				logging.Field{Key: "error", Value: err.Error()})
			continue
		}
		if !sh.appendPages(links, d) {
			break
		}
	}
	sh.spider.logger.Debug("crawl finished",
		logging.Field{Key: "root_host", Value: sh.rootHost},
		logging.Field{Key: "pages", Value: len(sh.results)})
	return nil
}

func (sh *spiderHelper) crawlPage(ctx context.Context, target string) ([]string, error) {
	resp, err := sh.spider.wc.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("error making http request: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("received %d from target", resp.StatusCode)
	}
	if ct := resp.Headers.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "text/html") {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", target, err)
	}
	return extractor.Links(doc, target), nil
}

// appendPages records unseen same-host pages one hop below lastDepth. It
// reports false once MaxPages is reached.
func (sh *spiderHelper) appendPages(pages []string, lastDepth int) bool {
	for _, page := range pages {
		if len(sh.results) >= sh.spider.cfg.MaxPages {
			return false
		}
		canon, err := utils.Canonicalize(page, canonOpts)
		if err != nil {
			continue
		}
		if utils.Hostname(canon) != sh.rootHost {
			continue
		}
		if _, exists := sh.depth[canon]; !exists {
			sh.depth[canon] = lastDepth + 1
			sh.results = append(sh.results, canon)
		}
	}
	return len(sh.results) < sh.spider.cfg.MaxPages
}
