package locator

import (
	"context"
	"sync"
	"time"

	"github.com/karandeol-26/VeriCura/internal/logging"
)

const (
	PulseShadow     = "0 0 0 3px rgba(255, 99, 71, 0.6)"
	PulseTransition = "box-shadow 0.3s ease-out"
	DefaultPulse    = 1200 * time.Millisecond

	restoreTimeout = 5 * time.Second
)

// Pulser applies a transient glow to elements. Pulsing an element that is
// still glowing restarts its timer and keeps the styles it had before the
// first pulse, so the final restore always returns the original look.
type Pulser struct {
	duration time.Duration
	logger   logging.Logger

	mu      sync.Mutex
	pending map[string]*pulse
}

type pulse struct {
	el             Element
	timer          *time.Timer
	prevShadow     string
	prevTransition string
}

// NewPulser returns a Pulser that restores styles after d.
func NewPulser(d time.Duration, logger logging.Logger) *Pulser {
	if d <= 0 {
		d = DefaultPulse
	}
	return &Pulser{
		duration: d,
		logger:   logger,
		pending:  make(map[string]*pulse),
	}
}

// Pulse sets the glow on el and schedules its removal.
func (p *Pulser) Pulse(ctx context.Context, el Element) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := el.ID()
	next := &pulse{el: el}
	if prev, ok := p.pending[id]; ok {
		prev.timer.Stop()
		next.prevShadow, next.prevTransition = prev.prevShadow, prev.prevTransition
		if _, err := el.SetStyle(ctx, "box-shadow", PulseShadow); err != nil {
			return err
		}
	} else {
		var err error
		if next.prevTransition, err = el.SetStyle(ctx, "transition", PulseTransition); err != nil {
			return err
		}
		if next.prevShadow, err = el.SetStyle(ctx, "box-shadow", PulseShadow); err != nil {
			_, _ = el.SetStyle(ctx, "transition", next.prevTransition)
			return err
		}
	}

	restoreCtx := context.WithoutCancel(ctx)
	next.timer = time.AfterFunc(p.duration, func() { p.restore(restoreCtx, id, next) })
	p.pending[id] = next
	return nil
}

func (p *Pulser) restore(ctx context.Context, id string, want *pulse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending[id] != want {
		return
	}
	delete(p.pending, id)
	p.unpulse(ctx, want)
}

// unpulse must be called with p.mu held.
func (p *Pulser) unpulse(ctx context.Context, pl *pulse) {
	ctx, cancel := context.WithTimeout(ctx, restoreTimeout)
	defer cancel()
	if _, err := pl.el.SetStyle(ctx, "box-shadow", pl.prevShadow); err != nil {
		p.logger.Warn("failed to restore element style",
			logging.Field{Key: "element", Value: pl.el.ID()},
			logging.Field{Key: "error", Value: err})
	}
	_, _ = pl.el.SetStyle(ctx, "transition", pl.prevTransition)
}

// Pending returns how many elements are currently glowing.
func (p *Pulser) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Flush restores every glowing element now.
func (p *Pulser) Flush(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, pl := range p.pending {
		pl.timer.Stop()
		delete(p.pending, id)
		p.unpulse(ctx, pl)
	}
}
