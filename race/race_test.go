package race_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/mock"
)

// fleet launches mock sessions and counts how often each is closed.
type fleet struct {
	mu       sync.Mutex
	launched int
	closed   map[string]int
	dead     map[string]bool
	pages    []page
	stalled  []string
	err      error
}

type page struct {
	prefix string
	html   string
}

func newFleet(pages ...page) *fleet {
	return &fleet{closed: make(map[string]int), dead: make(map[string]bool), pages: pages}
}

// stalling makes navigation to any url starting with one of prefixes hang
// until the caller's context ends.
func (f *fleet) stalling(prefixes ...string) *fleet {
	f.stalled = append(f.stalled, prefixes...)
	return f
}

func (f *fleet) stalls(url string) bool {
	for _, p := range f.stalled {
		if strings.HasPrefix(url, p) {
			return true
		}
	}
	return false
}

func (f *fleet) launcher() *mock.Launcher {
	return &mock.Launcher{
		LaunchFn: func(ctx context.Context) (serprace.Session, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.err != nil {
				return nil, f.err
			}
			f.launched++
			return f.session(fmt.Sprintf("s%d", f.launched)), nil
		},
	}
}

func (f *fleet) session(id string) *mock.Session {
	var mu sync.Mutex
	var current string
	return &mock.Session{
		IDFn:    func() string { return id },
		StateFn: func() serprace.SessionState { return serprace.SessionReady },
		NavigateFn: func(ctx context.Context, url string) error {
			if f.stalls(url) {
				<-ctx.Done()
				return ctx.Err()
			}
			mu.Lock()
			defer mu.Unlock()
			current = ""
			for _, p := range f.pages {
				if strings.HasPrefix(url, p.prefix) {
					current = p.html
					break
				}
			}
			return ctx.Err()
		},
		HTMLFn: func(ctx context.Context) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return current, ctx.Err()
		},
		WaitElementFn: func(ctx context.Context, _ string, _ time.Duration) error { return ctx.Err() },
		ClickTextFn: func(context.Context, string, string, time.Duration) error {
			return serprace.Errorf(serprace.ENOTFOUND, "no element")
		},
		TypeFn:   func(ctx context.Context, _, _ string) error { return ctx.Err() },
		SubmitFn: func(ctx context.Context, _ string) error { return ctx.Err() },
		IsAliveFn: func() bool {
			f.mu.Lock()
			defer f.mu.Unlock()
			return !f.dead[id] && f.closed[id] == 0
		},
		CloseFn: func() error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.closed[id]++
			return nil
		},
	}
}

func (f *fleet) kill(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dead[id] = true
}

func (f *fleet) launchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.launched
}

func (f *fleet) closeCounts() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := make(map[string]int, len(f.closed))
	for k, v := range f.closed {
		m[k] = v
	}
	return m
}

func results(n int) *serprace.SearchResult {
	set := serprace.NewResultSet(n)
	for i := range n {
		set.Add(serprace.OrganicResult{Title: fmt.Sprintf("Result %d", i), Link: fmt.Sprintf("https://example.com/%d", i)})
	}
	return &serprace.SearchResult{Results: set.Results(), Questions: []serprace.RelatedQuestion{}}
}

// pipeline returns a mock pipeline for provider backed by run.
func pipeline(provider serprace.Provider, run func(ctx context.Context, sess serprace.Session) *serprace.Outcome) *mock.Pipeline {
	return &mock.Pipeline{
		ProviderFn: func() serprace.Provider { return provider },
		RunFn: func(ctx context.Context, sess serprace.Session, _ serprace.Query) *serprace.Outcome {
			o := run(ctx, sess)
			o.Provider = provider
			return o
		},
	}
}

func succeed(n int) func(context.Context, serprace.Session) *serprace.Outcome {
	return func(context.Context, serprace.Session) *serprace.Outcome {
		return &serprace.Outcome{Kind: serprace.OutcomeSuccess, Result: results(n), Strategy: "direct"}
	}
}

func empty() func(context.Context, serprace.Session) *serprace.Outcome {
	return func(context.Context, serprace.Session) *serprace.Outcome {
		return &serprace.Outcome{
			Kind:     serprace.OutcomeEmpty,
			Result:   results(0),
			Attempts: []serprace.Attempt{{Strategy: "direct"}},
		}
	}
}

func died() func(context.Context, serprace.Session) *serprace.Outcome {
	return func(context.Context, serprace.Session) *serprace.Outcome {
		return &serprace.Outcome{
			Kind: serprace.OutcomeSessionDied,
			Err:  serprace.Errorf(serprace.ESESSIONDIED, "browser crashed"),
		}
	}
}

// blockUntilCanceled waits for the race to be cancelled.
func blockUntilCanceled(ctx context.Context, _ serprace.Session) *serprace.Outcome {
	<-ctx.Done()
	return &serprace.Outcome{Kind: serprace.OutcomeCanceled, Err: ctx.Err()}
}
