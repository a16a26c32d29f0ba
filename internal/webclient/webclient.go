package webclient

import "context"

// WebClient fetches a page. Backends decide whether the body is the raw
// response or a rendered DOM.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)
	Get(ctx context.Context, url string) (*Response, error)
	Close() error
}
