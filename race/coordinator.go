// Package race runs provider pipelines against browser sessions, either
// concurrently with the first non-empty result winning or one at a time on
// a shared session.
package race

import (
	"context"
	"time"

	"github.com/fwojciec/serprace"
	"golang.org/x/sync/errgroup"
)

// Coordinator races provider pipelines.
type Coordinator struct {
	// Launcher starts a session for each racer that was not given one.
	Launcher serprace.Launcher

	// Pipelines maps each provider to its chain.
	Pipelines map[serprace.Provider]serprace.Pipeline
}

// Options tunes a single race.
type Options struct {
	// Sessions supplies sessions per provider. The coordinator never
	// closes a supplied session.
	Sessions map[serprace.Provider]serprace.Session
}

// Race runs one racer per provider. The first outcome with organic
// results wins and cancels the rest; Race returns only after every racer
// has exited and released its session. If no provider wins, the error is
// a *serprace.RaceError carrying every outcome.
func (c *Coordinator) Race(ctx context.Context, q serprace.Query, providers []serprace.Provider, opts Options) (*serprace.RaceResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, serprace.Errorf(serprace.EINVALID, "at least one provider required")
	}
	pipelines := make([]serprace.Pipeline, len(providers))
	for i, p := range providers {
		pl, ok := c.Pipelines[p]
		if !ok {
			return nil, serprace.Errorf(serprace.EUNSUPPORTED, "unsupported provider: %q", p)
		}
		pipelines[i] = pl
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make(chan *serprace.Outcome, len(providers))
	var g errgroup.Group
	for i, p := range providers {
		pl := pipelines[i]
		sess := opts.Sessions[p]
		g.Go(func() error {
			outcomes <- c.run(raceCtx, p, pl, sess, q)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(outcomes)
	}()

	var winner *serprace.Outcome
	var all []*serprace.Outcome
	for o := range outcomes {
		all = append(all, o)
		if winner == nil && o.Won() {
			winner = o
			cancel()
		}
	}

	if winner != nil {
		return &serprace.RaceResult{
			Provider: winner.Provider,
			Result:   winner.Result,
			Outcomes: all,
		}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &serprace.RaceError{Outcomes: all}
}

// run executes one racer. A session launched here is closed before run
// returns.
func (c *Coordinator) run(ctx context.Context, provider serprace.Provider, pl serprace.Pipeline, sess serprace.Session, q serprace.Query) *serprace.Outcome {
	if sess == nil {
		start := time.Now()
		launched, err := c.Launcher.Launch(ctx)
		if err != nil {
			kind := serprace.OutcomeLaunchFailed
			if ctx.Err() != nil {
				kind = serprace.OutcomeCanceled
			}
			return &serprace.Outcome{
				Provider: provider,
				Kind:     kind,
				Err:      err,
				Duration: time.Since(start),
			}
		}
		defer func() { _ = launched.Close() }()
		sess = launched
	}
	return pl.Run(ctx, sess, q)
}
