package locator_test

import (
	"context"
	"sync"

	"github.com/karandeol-26/VeriCura/internal/locator"
)

// fakeDoc answers queries from a fixed selector table.
type fakeDoc struct {
	bySel    map[string][]locator.Element
	viewport float64
	queryErr error
}

func (d *fakeDoc) QueryAll(_ context.Context, sel string) ([]locator.Element, error) {
	if d.queryErr != nil {
		return nil, d.queryErr
	}
	return d.bySel[sel], nil
}

func (d *fakeDoc) ViewportWidth(context.Context) (float64, error) { return d.viewport, nil }

type fakeEl struct {
	id    string
	text  string
	rect  locator.Rect
	bySel map[string][]locator.Element

	mu       sync.Mutex
	styles   map[string]string
	scrolled int
}

func newEl(id, text string) *fakeEl {
	return &fakeEl{id: id, text: text, styles: map[string]string{}}
}

func (e *fakeEl) ID() string                                 { return e.id }
func (e *fakeEl) Text(context.Context) (string, error)       { return e.text, nil }
func (e *fakeEl) Rect(context.Context) (locator.Rect, error) { return e.rect, nil }

func (e *fakeEl) QueryAll(_ context.Context, sel string) ([]locator.Element, error) {
	return e.bySel[sel], nil
}

func (e *fakeEl) ScrollIntoView(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scrolled++
	return nil
}

func (e *fakeEl) SetStyle(_ context.Context, prop, value string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.styles[prop]
	if value == "" {
		delete(e.styles, prop)
	} else {
		e.styles[prop] = value
	}
	return prev, nil
}

func (e *fakeEl) style(prop string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.styles[prop]
}

func (e *fakeEl) scrolls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrolled
}

func els(in ...*fakeEl) []locator.Element {
	out := make([]locator.Element, len(in))
	for i, e := range in {
		out[i] = e
	}
	return out
}
