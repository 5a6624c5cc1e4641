package engine_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/engine"
	"github.com/fwojciec/serprace/mock"
)

// page maps a URL prefix to the markup served for it.
type page struct {
	prefix string
	html   string
}

// browser is a scripted stand-in for a browser session.
type browser struct {
	mu      sync.Mutex
	pages   []page
	current string
	visited []string
	typed   []string
	alive   bool
	navErr  func(n int, url string) error
}

func newBrowser(pages ...page) *browser {
	return &browser{pages: pages, alive: true}
}

func (b *browser) visitedURLs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.visited...)
}

func (b *browser) session() *mock.Session {
	return &mock.Session{
		IDFn:    func() string { return "test" },
		StateFn: func() serprace.SessionState { return serprace.SessionReady },
		NavigateFn: func(ctx context.Context, url string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			b.visited = append(b.visited, url)
			if b.navErr != nil {
				if err := b.navErr(len(b.visited), url); err != nil {
					return err
				}
			}
			b.current = ""
			for _, p := range b.pages {
				if strings.HasPrefix(url, p.prefix) {
					b.current = p.html
					break
				}
			}
			return nil
		},
		HTMLFn: func(ctx context.Context) (string, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.current, ctx.Err()
		},
		WaitElementFn: func(ctx context.Context, _ string, _ time.Duration) error {
			return ctx.Err()
		},
		ClickTextFn: func(context.Context, string, string, time.Duration) error {
			return errors.New("no consent dialog")
		},
		TypeFn: func(_ context.Context, _ string, text string) error {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.typed = append(b.typed, text)
			return nil
		},
		SubmitFn: func(context.Context, string) error { return nil },
		IsAliveFn: func() bool {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.alive
		},
		CloseFn: func() error { return nil },
	}
}

// countParser parses markup of the form "results:N".
func countParser() *mock.SERPParser {
	return &mock.SERPParser{
		ParseFn: func(html string, limit int) (*serprace.SearchResult, error) {
			set := serprace.NewResultSet(limit)
			var n int
			if i := strings.Index(html, "results:"); i >= 0 {
				_, _ = fmt.Sscanf(html[i:], "results:%d", &n)
			}
			for i := range n {
				set.Add(serprace.OrganicResult{
					Title: fmt.Sprintf("Result %d", i),
					Link:  fmt.Sprintf("https://example.com/%d", i),
				})
			}
			return &serprace.SearchResult{Results: set.Results(), Questions: []serprace.RelatedQuestion{}}, nil
		},
	}
}

func testParsers() engine.Parsers {
	return engine.Parsers{
		Google:         countParser(),
		Bing:           countParser(),
		DuckDuckGo:     countParser(),
		DuckDuckGoHTML: countParser(),
	}
}

func strategyNames(o *serprace.Outcome) []string {
	names := make([]string, len(o.Attempts))
	for i, a := range o.Attempts {
		names[i] = a.Strategy
	}
	return names
}
