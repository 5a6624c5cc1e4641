package race

import (
	"context"
	"time"

	"github.com/fwojciec/serprace"
)

// Ensure Shared implements serprace.Searcher at compile time.
var _ serprace.Searcher = (*Shared)(nil)

// Shared implements serprace.Searcher on one long-lived session. Each
// operation holds the session exclusively from its first strategy to its
// last, and a session found dead is replaced before the next use.
// Racing degrades to trying providers one after another.
type Shared struct {
	launcher  serprace.Launcher
	pipelines map[serprace.Provider]serprace.Pipeline
	scraper   serprace.Scraper

	lock chan struct{}
	sess serprace.Session
}

// NewShared returns a Shared searcher. The session is launched on first
// use.
func NewShared(launcher serprace.Launcher, pipelines map[serprace.Provider]serprace.Pipeline, scraper serprace.Scraper) *Shared {
	return &Shared{
		launcher:  launcher,
		pipelines: pipelines,
		scraper:   scraper,
		lock:      make(chan struct{}, 1),
	}
}

// SearchOne runs one provider's chain on the shared session.
func (s *Shared) SearchOne(ctx context.Context, q serprace.Query, provider serprace.Provider) (*serprace.SearchResult, error) {
	pl, err := lookup(s.pipelines, q, provider)
	if err != nil {
		return nil, err
	}
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	o := pl.Run(ctx, sess, q)
	if o.Kind == serprace.OutcomeSessionDied {
		_ = s.discard()
	}
	return result(o)
}

// SearchRacing tries providers in order on the shared session and returns
// the first non-empty result.
func (s *Shared) SearchRacing(ctx context.Context, q serprace.Query, providers []serprace.Provider) (*serprace.RaceResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, serprace.Errorf(serprace.EINVALID, "at least one provider required")
	}
	for _, p := range providers {
		if _, ok := s.pipelines[p]; !ok {
			return nil, serprace.Errorf(serprace.EUNSUPPORTED, "unsupported provider: %q", p)
		}
	}
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	var all []*serprace.Outcome
	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o := s.runLocked(ctx, p, q)
		all = append(all, o)
		if o.Won() {
			return &serprace.RaceResult{Provider: p, Result: o.Result, Outcomes: all}, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &serprace.RaceError{Outcomes: all}
}

// runLocked runs one provider, relaunching the session if needed. The
// caller holds the lock.
func (s *Shared) runLocked(ctx context.Context, p serprace.Provider, q serprace.Query) *serprace.Outcome {
	start := time.Now()
	sess, err := s.session(ctx)
	if err != nil {
		kind := serprace.OutcomeLaunchFailed
		if ctx.Err() != nil {
			kind = serprace.OutcomeCanceled
		}
		return &serprace.Outcome{Provider: p, Kind: kind, Err: err, Duration: time.Since(start)}
	}
	o := s.pipelines[p].Run(ctx, sess, q)
	if o.Kind == serprace.OutcomeSessionDied {
		_ = s.discard()
	}
	return o
}

// ScrapeURL extracts content from url on the shared session.
func (s *Shared) ScrapeURL(ctx context.Context, url string) (*serprace.ScrapedContent, error) {
	if serprace.IsSocialMedia(url) {
		return nil, nil
	}
	if err := serprace.ValidatePageURL(url); err != nil {
		return nil, err
	}
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.scraper.Scrape(ctx, sess, url)
	if serprace.ErrorCode(err) == serprace.ESESSIONDIED {
		_ = s.discard()
	}
	return scraped(content, err)
}

// Close waits for the running operation and closes the session.
func (s *Shared) Close() error {
	s.lock <- struct{}{}
	defer s.release()
	return s.discard()
}

func (s *Shared) acquire(ctx context.Context) error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Shared) release() {
	<-s.lock
}

// session returns a live session, launching one if needed. The caller
// holds the lock.
func (s *Shared) session(ctx context.Context) (serprace.Session, error) {
	if s.sess != nil && s.sess.IsAlive() {
		return s.sess, nil
	}
	_ = s.discard()
	sess, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, err
	}
	s.sess = sess
	return sess, nil
}

func (s *Shared) discard() error {
	if s.sess == nil {
		return nil
	}
	err := s.sess.Close()
	s.sess = nil
	return err
}
