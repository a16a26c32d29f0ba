// Package extractor turns a page's HTML into the PageSnapshot the
// classifier reads: visible text, outbound links and a few meta fields.
package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/karandeol-26/VeriCura/internal/model"
	"github.com/karandeol-26/VeriCura/internal/utils"
)

// authorSelectors are tried in order; the first present element wins.
var authorSelectors = []string{
	"meta[name='author']",
	"meta[property='article:author']",
	"meta[name='byl']",
	"meta[name='dc.creator']",
}

// Extract parses body and builds the snapshot for pageURL.
func Extract(body []byte, pageURL string) (*model.PageSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extractor: parse html: %w", err)
	}
	return FromDocument(doc, pageURL), nil
}

// FromDocument builds a snapshot from an already parsed document.
func FromDocument(doc *goquery.Document, pageURL string) *model.PageSnapshot {
	return &model.PageSnapshot{
		Text:  VisibleText(doc.Find("body")),
		Links: Links(doc, pageURL),
		Meta:  Meta(doc),
		URL:   pageURL,
	}
}

// Links returns every a[href] resolved against pageURL, in document order.
// Non-http(s) links are dropped.
func Links(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if abs, ok := utils.ResolveReference(base, href); ok {
			links = append(links, abs)
		}
	})
	return links
}

// Meta reads the author, Open Graph and description meta fields.
func Meta(doc *goquery.Document) model.Meta {
	var m model.Meta
	for _, sel := range authorSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			m.Author = strings.TrimSpace(s.AttrOr("content", ""))
			break
		}
	}
	m.OGTitle = metaContent(doc, "meta[property='og:title']")
	m.OGDescription = metaContent(doc, "meta[property='og:description']")
	m.Description = metaContent(doc, "meta[name='description']")
	return m
}

func metaContent(doc *goquery.Document, sel string) string {
	return strings.TrimSpace(doc.Find(sel).First().AttrOr("content", ""))
}

// hidden elements never contribute visible text.
var hidden = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
	"svg":      true,
	"iframe":   true,
}

// block elements start a new line in the visible text.
var block = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hr": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// VisibleText approximates innerText: text of the selection without script
// or style content, with block elements on their own lines and runs of
// whitespace collapsed.
func VisibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return collapse(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if hidden[n.Data] || hasHiddenAttr(n) {
			return
		}
	}
	isBlock := n.Type == html.ElementNode && block[n.Data]
	if isBlock {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if isBlock {
		b.WriteByte('\n')
	}
}

func hasHiddenAttr(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "aria-hidden":
			if a.Val == "true" {
				return true
			}
		case "style":
			s := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(s, "display:none") || strings.Contains(s, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

// collapse squeezes horizontal whitespace to single spaces and keeps one
// newline between non-empty lines.
func collapse(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if f := strings.Fields(l); len(f) > 0 {
			out = append(out, strings.Join(f, " "))
		}
	}
	return strings.Join(out, "\n")
}
