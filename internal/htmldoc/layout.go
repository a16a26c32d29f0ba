package htmldoc

import (
	"context"
	"math"

	"github.com/karandeol-26/VeriCura/internal/locator"
)

const (
	charWidth  = 8
	lineHeight = 24
)

var fullWidth = map[string]bool{
	"body": true, "main": true, "article": true, "section": true, "div": true,
}

// EstimateLayout approximates geometry for a static page: container tags
// span the viewport, other elements take 60% of it, and height grows with
// the amount of text at a fixed glyph size.
func EstimateLayout(viewport float64) LayoutFunc {
	return func(el *Element) locator.Rect {
		w := viewport * 0.6
		if fullWidth[el.Tag()] {
			w = viewport
		}
		text, _ := el.Text(context.Background())
		lines := math.Ceil(float64(len([]rune(text))) * charWidth / w)
		if lines < 1 {
			lines = 1
		}
		return locator.Rect{Width: w, Height: lines * lineHeight}
	}
}
