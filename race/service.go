package race

import (
	"context"

	"github.com/fwojciec/serprace"
)

// Ensure Service implements serprace.Searcher at compile time.
var _ serprace.Searcher = (*Service)(nil)

// Service implements serprace.Searcher with a fresh session per operation.
type Service struct {
	launcher    serprace.Launcher
	pipelines   map[serprace.Provider]serprace.Pipeline
	scraper     serprace.Scraper
	coordinator *Coordinator
}

// NewService returns a Service.
func NewService(launcher serprace.Launcher, pipelines map[serprace.Provider]serprace.Pipeline, scraper serprace.Scraper) *Service {
	return &Service{
		launcher:  launcher,
		pipelines: pipelines,
		scraper:   scraper,
		coordinator: &Coordinator{
			Launcher:  launcher,
			Pipelines: pipelines,
		},
	}
}

// SearchOne runs one provider's chain in its own session.
func (s *Service) SearchOne(ctx context.Context, q serprace.Query, provider serprace.Provider) (*serprace.SearchResult, error) {
	pl, err := lookup(s.pipelines, q, provider)
	if err != nil {
		return nil, err
	}

	sess, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = sess.Close() }()

	return result(pl.Run(ctx, sess, q))
}

// SearchRacing races providers, each in its own session.
func (s *Service) SearchRacing(ctx context.Context, q serprace.Query, providers []serprace.Provider) (*serprace.RaceResult, error) {
	return s.coordinator.Race(ctx, q, providers, Options{})
}

// ScrapeURL extracts content from url in its own session. Social media
// URLs return nil without launching a browser.
func (s *Service) ScrapeURL(ctx context.Context, url string) (*serprace.ScrapedContent, error) {
	if serprace.IsSocialMedia(url) {
		return nil, nil
	}
	if err := serprace.ValidatePageURL(url); err != nil {
		return nil, err
	}

	sess, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = sess.Close() }()

	return scraped(s.scraper.Scrape(ctx, sess, url))
}

// lookup validates a single-provider request and returns its pipeline.
func lookup(pipelines map[serprace.Provider]serprace.Pipeline, q serprace.Query, provider serprace.Provider) (serprace.Pipeline, error) {
	if err := provider.Validate(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	pl, ok := pipelines[provider]
	if !ok {
		return nil, serprace.Errorf(serprace.EUNSUPPORTED, "unsupported provider: %q", provider)
	}
	return pl, nil
}

// result maps a single-provider outcome to the Searcher contract.
func result(o *serprace.Outcome) (*serprace.SearchResult, error) {
	switch o.Kind {
	case serprace.OutcomeSuccess:
		return o.Result, nil
	case serprace.OutcomeEmpty:
		return o.Result, serprace.Errorf(serprace.EEXHAUSTED, "%s: no results (%s)", o.Provider, o.Reason())
	default:
		return nil, o.Err
	}
}

// scraped treats a page without content as absent.
func scraped(content *serprace.ScrapedContent, err error) (*serprace.ScrapedContent, error) {
	if serprace.ErrorCode(err) == serprace.ENOTFOUND {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}
