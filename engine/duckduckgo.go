package engine

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/serprace"
)

// duckDuckGoResults matches a rendered result on the script endpoint.
const duckDuckGoResults = "[data-testid='result'], article[data-nrn='result'], .nrn-react-div"

// DuckDuckGoSearchURL returns the script-rendered results URL for q.
func DuckDuckGoSearchURL(q serprace.Query) string {
	return fmt.Sprintf("https://duckduckgo.com/?q=%s&kl=us-en&ia=web", url.QueryEscape(q.Text))
}

// DuckDuckGoHTMLURL returns the static results URL for q.
func DuckDuckGoHTMLURL(q serprace.Query) string {
	return fmt.Sprintf("https://html.duckduckgo.com/html/?q=%s&kl=us-en", url.QueryEscape(q.Text))
}

type duckDuckGo struct {
	config
	js   serprace.SERPParser
	html serprace.SERPParser
}

// NewDuckDuckGoPipeline returns the DuckDuckGo chain: the script endpoint,
// then the static endpoint.
func NewDuckDuckGoPipeline(js, html serprace.SERPParser, opts ...Option) *Pipeline {
	d := &duckDuckGo{config: newConfig(opts), js: js, html: html}
	return NewPipeline(serprace.ProviderDuckDuckGo,
		Strategy{Name: "js", Run: d.script},
		Strategy{Name: "html", Run: d.static},
	)
}

func (d *duckDuckGo) script(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	if err := d.visit(ctx, sess, DuckDuckGoSearchURL(q), d.searchPace); err != nil {
		return nil, err
	}
	if err := wait(ctx, sess, duckDuckGoResults, DuckDuckGoJSWait); err != nil {
		return nil, err
	}
	return results(ctx, sess, d.js, DuckDuckGoBlocked, q)
}

func (d *duckDuckGo) static(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
	if err := d.visit(ctx, sess, DuckDuckGoHTMLURL(q), d.searchPace); err != nil {
		return nil, err
	}
	return results(ctx, sess, d.html, DuckDuckGoBlocked, q)
}
