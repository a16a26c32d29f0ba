package locator

import "context"

// Rect is an element's rendered box in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document is a view of one page: selector queries plus viewport size.
// QueryAll returns matches in document order and an empty slice when
// nothing matches.
type Document interface {
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	ViewportWidth(ctx context.Context) (float64, error)
}

// Element is one node of a Document.
type Element interface {
	// ID is stable for the lifetime of the node within its document.
	ID() string
	// Text is the element's visible text.
	Text(ctx context.Context) (string, error)
	Rect(ctx context.Context) (Rect, error)
	// QueryAll searches the element's descendants.
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	ScrollIntoView(ctx context.Context) error
	// SetStyle sets an inline style property and returns its previous
	// value. An empty value removes the property.
	SetStyle(ctx context.Context, prop, value string) (string, error)
}
