package engine

import (
	"context"
	"time"

	"github.com/fwojciec/serprace"
)

// Ensure Pipeline implements serprace.Pipeline at compile time.
var _ serprace.Pipeline = (*Pipeline)(nil)

// StrategyFunc runs one retrieval strategy. It returns EBLOCKED when the
// provider served a challenge page; a nil or empty result moves the chain on.
type StrategyFunc func(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error)

// Strategy is one named step in a provider's fallback chain.
type Strategy struct {
	Name string
	Run  StrategyFunc
}

// Pipeline runs a provider's strategies in order on one session.
type Pipeline struct {
	provider   serprace.Provider
	strategies []Strategy
}

// NewPipeline returns a pipeline that tries strategies in order.
func NewPipeline(provider serprace.Provider, strategies ...Strategy) *Pipeline {
	return &Pipeline{provider: provider, strategies: strategies}
}

// Provider returns the provider this pipeline targets.
func (p *Pipeline) Provider() serprace.Provider {
	return p.provider
}

// Strategies returns the strategy names in run order.
func (p *Pipeline) Strategies() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.Name
	}
	return names
}

// Run executes the chain. The first strategy with organic results wins.
// Blocked pages and empty pages advance the chain. Any other failure is
// followed by one liveness probe, and a dead session ends the run.
func (p *Pipeline) Run(ctx context.Context, sess serprace.Session, q serprace.Query) *serprace.Outcome {
	start := time.Now()
	out := &serprace.Outcome{Provider: p.provider}
	defer func() { out.Duration = time.Since(start) }()

	for _, st := range p.strategies {
		if err := ctx.Err(); err != nil {
			out.Kind = serprace.OutcomeCanceled
			out.Err = err
			return out
		}

		res, err := st.Run(ctx, sess, q)
		attempt := serprace.Attempt{Strategy: st.Name, Err: err}
		if res != nil {
			attempt.Found = len(res.Results)
		}
		out.Attempts = append(out.Attempts, attempt)

		switch {
		case err == nil && !res.Empty():
			out.Kind = serprace.OutcomeSuccess
			out.Result = res
			out.Strategy = st.Name
			return out
		case err == nil:
			continue
		case ctx.Err() != nil:
			out.Kind = serprace.OutcomeCanceled
			out.Err = err
			return out
		case serprace.ErrorCode(err) == serprace.EBLOCKED:
			continue
		case serprace.ErrorCode(err) == serprace.ESESSIONDIED || !sess.IsAlive():
			out.Kind = serprace.OutcomeSessionDied
			out.Err = serprace.Errorf(serprace.ESESSIONDIED, "session lost during %s/%s: %s", p.provider, st.Name, describe(err))
			return out
		}
	}

	out.Kind = serprace.OutcomeEmpty
	out.Result = &serprace.SearchResult{
		Results:   []serprace.OrganicResult{},
		Questions: []serprace.RelatedQuestion{},
	}
	return out
}

// Delegate returns a strategy that runs another provider's whole pipeline
// on the same session.
func Delegate(name string, pipeline serprace.Pipeline) Strategy {
	return Strategy{
		Name: name,
		Run: func(ctx context.Context, sess serprace.Session, q serprace.Query) (*serprace.SearchResult, error) {
			o := pipeline.Run(ctx, sess, q)
			switch o.Kind {
			case serprace.OutcomeSuccess:
				return o.Result, nil
			case serprace.OutcomeEmpty:
				return nil, nil
			default:
				return nil, o.Err
			}
		},
	}
}

// describe returns err's message, keeping the text of errors that carry
// no application code.
func describe(err error) string {
	if serprace.ErrorCode(err) == serprace.EINTERNAL {
		return err.Error()
	}
	return serprace.ErrorMessage(err)
}
