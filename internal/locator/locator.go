// Package locator finds the element on a page that best matches an issue or
// a piece of text, scrolls it into view and pulses it.
package locator

import (
	"context"
	"errors"
	"fmt"

	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// Locator resolves highlight requests against one document. It is safe for
// concurrent use; overlapping requests each run to completion.
type Locator struct {
	doc    Document
	cfg    Config
	pulser *Pulser
	logger logging.Logger
}

// New returns a Locator over doc.
func New(doc Document, cfg Config, logger logging.Logger) (*Locator, error) {
	if doc == nil {
		return nil, errors.New("locator: nil document")
	}
	if logger == nil {
		return nil, errors.New("locator: nil logger")
	}
	def := DefaultConfig()
	if cfg.HugeHeight <= 0 {
		cfg.HugeHeight = def.HugeHeight
	}
	if cfg.HugeWidthRatio <= 0 {
		cfg.HugeWidthRatio = def.HugeWidthRatio
	}
	l := logger.With(logging.Field{Key: "component", Value: "locator"})
	return &Locator{
		doc:    doc,
		cfg:    cfg,
		pulser: NewPulser(cfg.PulseDuration, l),
		logger: l,
	}, nil
}

// Pulser exposes the locator's pulser so callers can flush pending glows.
func (l *Locator) Pulser() *Pulser { return l.pulser }

// Locate tries, in order, the issue's targeting selectors, the best text
// match for the title, then for the full text, then the first heading. The
// first stage that yields an element wins; it is scrolled to and pulsed.
// A request nothing matches returns OK=false and no error.
func (l *Locator) Locate(ctx context.Context, req model.HighlightRequest) (model.HighlightResponse, error) {
	el, via, err := l.resolve(ctx, req)
	if err != nil {
		return model.HighlightResponse{}, err
	}
	if el == nil {
		l.logger.Debug("no element matched", logging.Field{Key: "issue", Value: req.IssueID})
		return model.HighlightResponse{OK: false}, nil
	}
	if err := l.scrollAndPulse(ctx, el); err != nil {
		return model.HighlightResponse{}, err
	}
	l.logger.Debug("highlighted element",
		logging.Field{Key: "issue", Value: req.IssueID},
		logging.Field{Key: "via", Value: string(via)},
		logging.Field{Key: "element", Value: el.ID()})
	return model.HighlightResponse{OK: true, Via: via}, nil
}

// Resolve runs the resolution stages without touching the page.
func (l *Locator) Resolve(ctx context.Context, req model.HighlightRequest) (Element, model.HighlightVia, error) {
	return l.resolve(ctx, req)
}

func (l *Locator) resolve(ctx context.Context, req model.HighlightRequest) (Element, model.HighlightVia, error) {
	if id, ok := model.ParseIssueID(req.IssueID); ok {
		el, err := l.firstOf(ctx, targets[id])
		if err != nil || el != nil {
			return el, model.ViaIssueID, err
		}
	}

	if req.TextTitle != "" {
		el, err := l.BestMatch(ctx, req.TextTitle)
		if err != nil || el != nil {
			return el, model.ViaTitle, err
		}
	}
	if req.TextFull != "" {
		el, err := l.BestMatch(ctx, req.TextFull)
		if err != nil || el != nil {
			return el, model.ViaFull, err
		}
	}

	el, err := l.firstOf(ctx, fallbackHeadings)
	if err != nil || el != nil {
		return el, model.ViaFallback, err
	}
	return nil, "", nil
}

// firstOf returns the first element of the first selector with a match.
func (l *Locator) firstOf(ctx context.Context, selectors []string) (Element, error) {
	for _, sel := range selectors {
		els, err := l.doc.QueryAll(ctx, sel)
		if err != nil {
			return nil, fmt.Errorf("locator: query %q: %w", sel, err)
		}
		if len(els) > 0 {
			return els[0], nil
		}
	}
	return nil, nil
}

// BestMatch returns the candidate whose text shares the most words with
// text, or nil when no candidate reaches MinMatchScore. A winner that is
// huge on screen is swapped for its best qualifying descendant.
func (l *Locator) BestMatch(ctx context.Context, text string) (Element, error) {
	words := Normalize(text)
	if len(words) == 0 {
		return nil, nil
	}

	cands, err := l.candidates(ctx)
	if err != nil {
		return nil, err
	}
	best, score, err := bestOf(ctx, cands, words)
	if err != nil {
		return nil, err
	}
	if best == nil || score < MinMatchScore {
		return nil, nil
	}

	huge, err := l.isHuge(ctx, best)
	if err != nil {
		return nil, err
	}
	if !huge {
		return best, nil
	}

	inner, err := best.QueryAll(ctx, descendants)
	if err != nil {
		return nil, fmt.Errorf("locator: query descendants: %w", err)
	}
	child, childScore, err := bestOf(ctx, inner, words)
	if err != nil {
		return nil, err
	}
	if child != nil && childScore >= MinMatchScore {
		return child, nil
	}
	return best, nil
}

// candidates lists article-scoped elements first, then the rest of the
// document, each element once.
func (l *Locator) candidates(ctx context.Context) ([]Element, error) {
	var out []Element
	seen := make(map[string]struct{})
	for _, sel := range []string{articleCandidates, candidates} {
		els, err := l.doc.QueryAll(ctx, sel)
		if err != nil {
			return nil, fmt.Errorf("locator: query %q: %w", sel, err)
		}
		for _, el := range els {
			if _, ok := seen[el.ID()]; ok {
				continue
			}
			seen[el.ID()] = struct{}{}
			out = append(out, el)
		}
	}
	return out, nil
}

// bestOf keeps the first element with the strictly highest positive score.
func bestOf(ctx context.Context, els []Element, words []string) (Element, int, error) {
	var best Element
	bestScore := 0
	for _, el := range els {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("locator: read text of %s: %w", el.ID(), err)
		}
		if s := MatchScore(text, words); s > bestScore {
			best, bestScore = el, s
		}
	}
	return best, bestScore, nil
}

func (l *Locator) isHuge(ctx context.Context, el Element) (bool, error) {
	r, err := el.Rect(ctx)
	if err != nil {
		return false, fmt.Errorf("locator: measure %s: %w", el.ID(), err)
	}
	if r.Height > l.cfg.HugeHeight {
		return true, nil
	}
	vw, err := l.doc.ViewportWidth(ctx)
	if err != nil {
		return false, fmt.Errorf("locator: viewport width: %w", err)
	}
	return r.Width > vw*l.cfg.HugeWidthRatio, nil
}

func (l *Locator) scrollAndPulse(ctx context.Context, el Element) error {
	if err := el.ScrollIntoView(ctx); err != nil {
		return fmt.Errorf("locator: scroll to %s: %w", el.ID(), err)
	}
	if err := l.pulser.Pulse(ctx, el); err != nil {
		return fmt.Errorf("locator: pulse %s: %w", el.ID(), err)
	}
	return nil
}
