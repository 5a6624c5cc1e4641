package mock

import (
	"context"

	"github.com/fwojciec/serprace"
)

var _ serprace.Pipeline = (*Pipeline)(nil)

// Pipeline is a mock implementation of serprace.Pipeline.
type Pipeline struct {
	ProviderFn func() serprace.Provider
	RunFn      func(ctx context.Context, sess serprace.Session, q serprace.Query) *serprace.Outcome
}

func (p *Pipeline) Provider() serprace.Provider {
	return p.ProviderFn()
}

func (p *Pipeline) Run(ctx context.Context, sess serprace.Session, q serprace.Query) *serprace.Outcome {
	return p.RunFn(ctx, sess, q)
}

var _ serprace.SERPParser = (*SERPParser)(nil)

// SERPParser is a mock implementation of serprace.SERPParser.
type SERPParser struct {
	ParseFn func(html string, limit int) (*serprace.SearchResult, error)
}

func (p *SERPParser) Parse(html string, limit int) (*serprace.SearchResult, error) {
	return p.ParseFn(html, limit)
}

var _ serprace.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of serprace.Searcher.
type Searcher struct {
	SearchOneFn    func(ctx context.Context, q serprace.Query, provider serprace.Provider) (*serprace.SearchResult, error)
	SearchRacingFn func(ctx context.Context, q serprace.Query, providers []serprace.Provider) (*serprace.RaceResult, error)
	ScrapeURLFn    func(ctx context.Context, url string) (*serprace.ScrapedContent, error)
}

func (s *Searcher) SearchOne(ctx context.Context, q serprace.Query, provider serprace.Provider) (*serprace.SearchResult, error) {
	return s.SearchOneFn(ctx, q, provider)
}

func (s *Searcher) SearchRacing(ctx context.Context, q serprace.Query, providers []serprace.Provider) (*serprace.RaceResult, error) {
	return s.SearchRacingFn(ctx, q, providers)
}

func (s *Searcher) ScrapeURL(ctx context.Context, url string) (*serprace.ScrapedContent, error) {
	return s.ScrapeURLFn(ctx, url)
}
