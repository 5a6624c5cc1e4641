// Package engine drives browser sessions through each provider's ordered
// fallback strategies and classifies how a run ended.
package engine

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/serprace"
)

// Wait bounds used by the built-in strategies.
const (
	ConsentTimeout    = 4 * time.Second
	BingResultsWait   = 8 * time.Second
	DuckDuckGoJSWait  = 10 * time.Second
	SearchResultsWait = 10 * time.Second
)

// config holds settings shared by pipelines and the scraper.
type config struct {
	limiter    serprace.HostLimiter
	searchPace Pacer
	scrapePace Pacer
	thinkPace  Pacer
}

func newConfig(opts []Option) config {
	cfg := config{
		searchPace: SearchPace,
		scrapePace: ScrapePace,
		thinkPace:  ThinkPace,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures pipelines and scrapers.
type Option func(*config)

// WithLimiter sets a per-host limiter awaited before every navigation.
func WithLimiter(l serprace.HostLimiter) Option {
	return func(c *config) {
		c.limiter = l
	}
}

// WithPacer sets the pause that follows each search page load.
func WithPacer(p Pacer) Option {
	return func(c *config) {
		c.searchPace = p
	}
}

// WithScrapePacer sets the pauses around scrape navigation.
func WithScrapePacer(p Pacer) Option {
	return func(c *config) {
		c.scrapePace = p
	}
}

// WithThinkPacer sets the pause before submitting a typed query.
func WithThinkPacer(p Pacer) Option {
	return func(c *config) {
		c.thinkPace = p
	}
}

// WithoutPacing disables every pause. Tests use it.
func WithoutPacing() Option {
	return func(c *config) {
		c.searchPace = Pacer{}
		c.scrapePace = Pacer{}
		c.thinkPace = Pacer{}
	}
}

// visit awaits the host limiter, navigates and pauses.
func (c config) visit(ctx context.Context, sess serprace.Session, rawURL string, pace Pacer) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, host(rawURL)); err != nil {
			return err
		}
	}
	if err := sess.Navigate(ctx, rawURL); err != nil {
		return err
	}
	return pace.Pause(ctx)
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Hostname()
}
