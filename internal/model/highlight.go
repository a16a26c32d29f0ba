package model

// HighlightVia names the resolution stage that produced a highlight.
type HighlightVia string

const (
	ViaIssueID  HighlightVia = "issueId"
	ViaTitle    HighlightVia = "title"
	ViaFull     HighlightVia = "full"
	ViaFallback HighlightVia = "fallback"
)

// HighlightRequest asks the page to scroll to and pulse the element that
// best matches an issue or a piece of text. All fields are optional.
type HighlightRequest struct {
	IssueID   string `json:"issueId,omitempty"`
	TextTitle string `json:"textTitle,omitempty"`
	TextFull  string `json:"textFull,omitempty"`
}

// HighlightResponse reports whether an element was found and how.
type HighlightResponse struct {
	OK  bool         `json:"ok"`
	Via HighlightVia `json:"via,omitempty"`
}

// HighlightRequestFor builds the request sent when a factor row is clicked:
// the factor id, its title, and the title and description together.
func HighlightRequestFor(f Factor) HighlightRequest {
	full := f.Title
	if f.Description != "" {
		full += "\n" + f.Description
	}
	return HighlightRequest{
		IssueID:   f.ID,
		TextTitle: f.Title,
		TextFull:  full,
	}
}
