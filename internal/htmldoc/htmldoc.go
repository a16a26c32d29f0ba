// Package htmldoc is a locator.Document over parsed HTML. Queries run
// against the goquery tree, styles are written to the style attribute and
// geometry comes from an optional layout function.
package htmldoc

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/karandeol-26/VeriCura/internal/extractor"
	"github.com/karandeol-26/VeriCura/internal/locator"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// LayoutFunc returns the rendered box of an element.
type LayoutFunc func(el *Element) locator.Rect

// DefaultViewport is the viewport width used when none is given.
const DefaultViewport = 1280

type Option func(*Document)

// WithLayout sets the layout function. Without one every box is empty.
func WithLayout(f LayoutFunc) Option {
	return func(d *Document) { d.layout = f }
}

// WithURL sets the page URL reported by Snapshot and used to resolve links.
func WithURL(u string) Option {
	return func(d *Document) { d.url = u }
}

// WithViewport sets the viewport width in CSS pixels.
func WithViewport(w float64) Option {
	return func(d *Document) { d.viewport = w }
}

// Document wraps a goquery document. It is safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	doc      *goquery.Document
	layout   LayoutFunc
	viewport float64
	url      string

	ids      map[*html.Node]string
	scrolled *Element
}

// Parse parses body into a Document.
func Parse(body []byte, opts ...Option) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	return New(doc, opts...), nil
}

// New wraps an already parsed document.
func New(doc *goquery.Document, opts ...Option) *Document {
	d := &Document{
		doc:      doc,
		viewport: DefaultViewport,
		ids:      make(map[*html.Node]string),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Document) QueryAll(ctx context.Context, selector string) ([]locator.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	sel := d.doc.Find(selector)
	d.mu.RUnlock()
	return d.wrap(sel), nil
}

func (d *Document) ViewportWidth(context.Context) (float64, error) {
	return d.viewport, nil
}

// Snapshot extracts the page data of the current tree.
func (d *Document) Snapshot(ctx context.Context) (*model.PageSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return extractor.FromDocument(d.doc, d.url), nil
}

// Scrolled returns the element last scrolled into view, or nil.
func (d *Document) Scrolled() *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scrolled
}

// HTML renders the whole document, including any styles set so far.
func (d *Document) HTML() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc.Html()
}

func (d *Document) wrap(sel *goquery.Selection) []locator.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]locator.Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		id, ok := d.ids[n]
		if !ok {
			id = fmt.Sprintf("n%d", len(d.ids)+1)
			d.ids[n] = id
		}
		out = append(out, &Element{doc: d, node: n, id: id})
	}
	return out
}

// Element is one node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
	id   string
}

func (e *Element) ID() string { return e.id }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.node.Data }

func (e *Element) selection() *goquery.Selection {
	return e.doc.doc.FindNodes(e.node)
}

func (e *Element) Text(context.Context) (string, error) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return extractor.VisibleText(e.selection()), nil
}

func (e *Element) Rect(context.Context) (locator.Rect, error) {
	if e.doc.layout == nil {
		return locator.Rect{}, nil
	}
	return e.doc.layout(e), nil
}

func (e *Element) QueryAll(ctx context.Context, selector string) ([]locator.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.doc.mu.RLock()
	sel := e.selection().Find(selector)
	e.doc.mu.RUnlock()
	return e.doc.wrap(sel), nil
}

func (e *Element) ScrollIntoView(context.Context) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.scrolled = e
	return nil
}

func (e *Element) SetStyle(_ context.Context, prop, value string) (string, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	s := e.selection()
	decls := parseStyle(s.AttrOr("style", ""))
	prev := decls.get(prop)
	decls = decls.set(prop, value)
	if len(decls) == 0 {
		s.RemoveAttr("style")
	} else {
		s.SetAttr("style", decls.String())
	}
	return prev, nil
}

// Style returns the inline value of prop.
func (e *Element) Style(prop string) string {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return parseStyle(e.selection().AttrOr("style", "")).get(prop)
}

// OuterHTML renders the element.
func (e *Element) OuterHTML() (string, error) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return goquery.OuterHtml(e.selection())
}

type declaration struct{ prop, value string }

type declarations []declaration

func parseStyle(attr string) declarations {
	var out declarations
	for _, part := range strings.Split(attr, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return out
}

func (ds declarations) get(prop string) string {
	for _, d := range ds {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

func (ds declarations) set(prop, value string) declarations {
	for i, d := range ds {
		if d.prop != prop {
			continue
		}
		if value == "" {
			return append(ds[:i:i], ds[i+1:]...)
		}
		ds[i].value = value
		return ds
	}
	if value == "" {
		return ds
	}
	return append(ds, declaration{prop: prop, value: value})
}

func (ds declarations) String() string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ")
}
