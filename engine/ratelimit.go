package engine

import (
	"context"
	"sync"

	"github.com/fwojciec/serprace"
	"golang.org/x/time/rate"
)

var _ serprace.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces navigations to the same provider host. Hosts are
// throttled independently with a burst of one.
type HostLimiter struct {
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
	limit rate.Limit
}

// NewHostLimiter returns a limiter allowing rps navigations per second to
// each host. A non-positive rps never waits.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HostLimiter{hosts: make(map[string]*rate.Limiter), limit: limit}
}

// Wait blocks until a navigation to host may proceed or ctx ends.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.bucket(host).Wait(ctx)
}

func (l *HostLimiter) bucket(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.hosts[host]
	if !ok {
		b = rate.NewLimiter(l.limit, 1)
		l.hosts[host] = b
	}
	return b
}
