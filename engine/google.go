package engine

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/serprace"
)

const (
	googleHome = "https://www.google.com"

	// googleSearchBox matches the query field of both homepage variants.
	googleSearchBox = "textarea[name='q'], input[name='q']"

	// googleConsent matches the consent dialog's accept button labels.
	googleConsent = "Accept all|I agree|Accept|Agree"
)

// GoogleSearchURL returns the direct results URL for q.
func GoogleSearchURL(q serprace.Query) string {
	return fmt.Sprintf("https://www.google.com/search?q=%s&num=%d&hl=en&gl=us", url.QueryEscape(q.Text), q.PageSize())
}

type google struct {
	config
	parser serprace.SERPParser
}

// NewGooglePipeline returns the Google chain: direct, homepage, searchbox,
// then fallback, which is normally the DuckDuckGo pipeline run on the same
// session. A nil fallback leaves the chain at three strategies.
func NewGooglePipeline(parser serprace.SERPParser, fallback serprace.Pipeline, opts ...Option) *Pipeline {
	g := &google{config: newConfig(opts), parser: parser}
	strategies := []Strategy{
		{Name: "direct", Run: g.direct},
		{Name: "homepage", Run: g.homepage},
		{Name: "searchbox", Run: g.searchbox},
	}
	if fallback != nil {
		strategies = append(strategies, Delegate(string(fallback.Provider()), fallback))
	}
	return NewPipeline(serprace.ProviderGoogle, strategies...)
}

func (g *google) direct(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	if err := g.visit(ctx, sess, GoogleSearchURL(q), g.searchPace); err != nil {
		return nil, err
	}
	return results(ctx, sess, g.parser, GoogleBlocked, q)
}

func (g *google) homepage(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	if err := g.openHome(ctx, sess); err != nil {
		return nil, err
	}
	if err := g.visit(ctx, sess, GoogleSearchURL(q), g.searchPace); err != nil {
		return nil, err
	}
	return results(ctx, sess, g.parser, GoogleBlocked, q)
}

func (g *google) searchbox(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	if err := g.openHome(ctx, sess); err != nil {
		return nil, err
	}
	if err := sess.Type(ctx, googleSearchBox, q.Text); err != nil {
		return nil, err
	}
	if err := g.thinkPace.Pause(ctx); err != nil {
		return nil, err
	}
	if err := sess.Submit(ctx, googleSearchBox); err != nil {
		return nil, err
	}
	if err := wait(ctx, sess, "#search, #rso", SearchResultsWait); err != nil {
		return nil, err
	}
	if err := g.searchPace.Pause(ctx); err != nil {
		return nil, err
	}
	return results(ctx, sess, g.parser, GoogleBlocked, q)
}

// openHome loads the homepage and dismisses the consent dialog if one is
// shown. A missing dialog is not an error.
func (g *google) openHome(ctx context.Context, sess serprace.Session) error {
	if err := g.visit(ctx, sess, googleHome, g.searchPace); err != nil {
		return err
	}
	if err := sess.ClickText(ctx, "button", googleConsent, ConsentTimeout); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}
