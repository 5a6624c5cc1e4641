package engine

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/serprace"
)

const bingHome = "https://www.bing.com"

// BingSearchURL returns the direct results URL for q.
func BingSearchURL(q serprace.Query) string {
	return fmt.Sprintf("https://www.bing.com/search?q=%s&count=%d&mkt=en-US&setlang=en-US&cc=US&first=1", url.QueryEscape(q.Text), q.PageSize())
}

type bing struct {
	config
	parser serprace.SERPParser
}

// NewBingPipeline returns the Bing chain: direct, then homepage.
func NewBingPipeline(parser serprace.SERPParser, opts ...Option) *Pipeline {
	b := &bing{config: newConfig(opts), parser: parser}
	return NewPipeline(serprace.ProviderBing,
		Strategy{Name: "direct", Run: b.direct},
		Strategy{Name: "homepage", Run: b.homepage},
	)
}

func (b *bing) direct(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	return b.search(ctx, sess, q)
}

// homepage collects cookies from the landing page before retrying.
func (b *bing) homepage(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	if err := b.visit(ctx, sess, bingHome, b.searchPace); err != nil {
		return nil, err
	}
	return b.search(ctx, sess, q)
}

func (b *bing) search(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	if err := b.visit(ctx, sess, BingSearchURL(q), b.searchPace); err != nil {
		return nil, err
	}
	if err := wait(ctx, sess, ".b_algo", BingResultsWait); err != nil {
		return nil, err
	}
	return results(ctx, sess, b.parser, BingBlocked, q)
}
