package engine

import (
	"context"

	"github.com/fwojciec/serprace"
)

// Ensure Scraper implements serprace.Scraper at compile time.
var _ serprace.Scraper = (*Scraper)(nil)

// Scraper loads one page in a session and extracts its article content.
type Scraper struct {
	config
	extractor serprace.ArticleExtractor
}

// NewScraper returns a Scraper that extracts with x.
func NewScraper(x serprace.ArticleExtractor, opts ...Option) *Scraper {
	return &Scraper{config: newConfig(opts), extractor: x}
}

// Scrape navigates sess to rawURL and extracts its content.
// Returns EINVALID for a non-http URL, ESESSIONDIED if the browser was lost
// and ENOTFOUND if the page holds no readable content.
func (s *Scraper) Scrape(ctx context.Context, sess serprace.Session, rawURL string) (*serprace.ScrapedContent, error) {
	if err := serprace.ValidatePageURL(rawURL); err != nil {
		return nil, err
	}

	html, err := s.load(ctx, sess, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if serprace.ErrorCode(err) == serprace.ESESSIONDIED || !sess.IsAlive() {
			return nil, serprace.Errorf(serprace.ESESSIONDIED, "session lost while scraping %s: %s", rawURL, describe(err))
		}
		return nil, err
	}
	return s.extractor.ExtractArticle(rawURL, html)
}

func (s *Scraper) load(ctx context.Context, sess serprace.Session, rawURL string) (string, error) {
	if err := s.scrapePace.Pause(ctx); err != nil {
		return "", err
	}
	if err := s.visit(ctx, sess, rawURL, s.scrapePace); err != nil {
		return "", err
	}
	return sess.HTML(ctx)
}
