package fetcher

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/karandeol-26/VeriCura/internal/extractor"
	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/webclient"
)

// StatusError is returned when a page answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Module: fetcher
// Fetches pages and turns them into snapshots.
type Fetcher struct {
	cfg    Config
	wc     webclient.WebClient
	logger logging.Logger
}

// Result is one entry of SnapshotAll, in input order.
type Result struct {
	URL      string
	Snapshot *model.PageSnapshot
	Err      error
}

// New creates a new Fetcher with the given webclient and logger.
func New(cfg Config, wc webclient.WebClient, logger logging.Logger) (*Fetcher, error) {
	if wc == nil {
		return nil, errors.New("fetcher: webclient is nil")
	}
	if logger == nil {
		return nil, errors.New("fetcher: logger is nil")
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = DefaultConfig().MaxConcurrency
	}
	return &Fetcher{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "fetcher"}),
	}, nil
}

// Snapshot GETs pageURL and extracts its snapshot.
func (f *Fetcher) Snapshot(ctx context.Context, pageURL string) (*model.PageSnapshot, error) {
	resp, err := f.wc.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("error GETting %s: %w", pageURL, err)
	}
	if !resp.OK() {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	snap, err := extractor.Extract(resp.Body, pageURL)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("snapshot taken",
		logging.Field{Key: "url", Value: pageURL},
		logging.Field{Key: "links", Value: len(snap.Links)},
		logging.Field{Key: "text_len", Value: len(snap.Text)})
	return snap, nil
}

// SnapshotAll fetches every URL with bounded concurrency. A failing URL does
// not stop the others; its error is kept in its Result. The returned error is
// only the context's.
func (f *Fetcher) SnapshotAll(ctx context.Context, pageURLs []string) ([]Result, error) {
	results := make([]Result, len(pageURLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.MaxConcurrency)

	for i, u := range pageURLs {
		results[i].URL = u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			snap, err := f.Snapshot(gctx, u)
			if err != nil {
				f.logger.Warn("error while fetching page",
					logging.Field{Key: "url", Value: u},
					logging.Field{Key: "error", Value: err})
			}
			results[i].Snapshot, results[i].Err = snap, err
			return nil
		})
	}

	_ = g.Wait()
	return results, ctx.Err()
}
