package engine

import (
	"context"
	"time"

	"github.com/fwojciec/serprace"
)

// results reads the current page, rejects challenge pages and parses what
// remains.
func results(ctx context.Context, sess serprace.Session, parser serprace.SERPParser, blocked BlockList, q serprace.Query) (*serprace.SearchResult, error) {
	html, err := sess.HTML(ctx)
	if err != nil {
		return nil, err
	}
	if err := blocked.Check(html); err != nil {
		return nil, err
	}
	return parser.Parse(html, q.ResultLimit())
}

// wait waits for selector and ignores a timeout. Only cancellation of ctx
// is reported.
func wait(ctx context.Context, sess serprace.Session, selector string, timeout time.Duration) error {
	if err := sess.WaitElement(ctx, selector, timeout); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}
