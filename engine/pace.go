package engine

import (
	"context"
	"math/rand/v2"
	"time"
)

// Pacer pauses for a random duration in [Min, Max]. The zero Pacer does
// not pause.
type Pacer struct {
	Min time.Duration
	Max time.Duration
}

// Default pauses.
var (
	SearchPace = Pacer{Min: 1000 * time.Millisecond, Max: 1800 * time.Millisecond}
	ScrapePace = Pacer{Min: 1200 * time.Millisecond, Max: 2500 * time.Millisecond}
	ThinkPace  = Pacer{Min: 500 * time.Millisecond, Max: 1000 * time.Millisecond}
)

// Duration returns a random pause length.
func (p Pacer) Duration() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + rand.N(p.Max-p.Min+1)
}

// Pause sleeps for Duration or until ctx is done.
func (p Pacer) Pause(ctx context.Context) error {
	d := p.Duration()
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
