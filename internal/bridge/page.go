package bridge

import (
	"context"
	"errors"

	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// SnapshotSource produces the page data of one page.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*model.PageSnapshot, error)
}

// Page is a PageHandler over a snapshot source and a locator for the same page.
type Page struct {
	source  SnapshotSource
	locator *locator.Locator
}

func NewPage(source SnapshotSource, loc *locator.Locator) (*Page, error) {
	if source == nil || loc == nil {
		return nil, errors.New("bridge: page needs a snapshot source and a locator")
	}
	return &Page{source: source, locator: loc}, nil
}

func (p *Page) PageData(ctx context.Context) (*model.PageSnapshot, error) {
	return p.source.Snapshot(ctx)
}

func (p *Page) Highlight(ctx context.Context, req model.HighlightRequest) (model.HighlightResponse, error) {
	return p.locator.Locate(ctx, req)
}
