package mock

import (
	"context"

	"github.com/fwojciec/serprace"
)

var _ serprace.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of serprace.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*serprace.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*serprace.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ serprace.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of serprace.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(pageURL, html string) (*serprace.ScrapedContent, error)
}

func (e *ArticleExtractor) ExtractArticle(pageURL, html string) (*serprace.ScrapedContent, error) {
	return e.ExtractArticleFn(pageURL, html)
}

var _ serprace.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of serprace.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, sess serprace.Session, url string) (*serprace.ScrapedContent, error)
}

func (s *Scraper) Scrape(ctx context.Context, sess serprace.Session, url string) (*serprace.ScrapedContent, error) {
	return s.ScrapeFn(ctx, sess, url)
}
