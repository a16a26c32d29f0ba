package model

// Meta holds the handful of page metadata fields the classifier and the
// author extractor read.
type Meta struct {
	Author        string `json:"author,omitempty"`
	OGTitle       string `json:"ogTitle,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
	Description   string `json:"description,omitempty"`
}

// PageSnapshot is the page data returned by one scan request. It is produced
// once per scan and never mutated afterwards.
type PageSnapshot struct {
	// Text is the visible text of the page body.
	Text string `json:"text"`

	// Links are the absolute outbound link URLs in document order.
	Links []string `json:"links"`

	Meta Meta   `json:"meta"`
	URL  string `json:"url"`
}
