// Package enumerator discovers the same-site pages linked from a start page
// so a batch scan can cover a section of a site.
package enumerator

import "context"

type Enumerator interface {
	Enumerate(ctx context.Context, target string) ([]string, error)
}

// Config bounds a crawl.
type Config struct {
	// MaxDepth is the number of link hops followed from the start page.
	// Zero returns only the start page.
	MaxDepth int `yaml:"max_depth"`

	// MaxPages caps the number of URLs returned, start page included.
	MaxPages int `yaml:"max_pages"`
}

func DefaultConfig() Config {
	return Config{MaxDepth: 1, MaxPages: 25}
}
