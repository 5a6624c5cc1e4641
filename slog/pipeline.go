package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/serprace"
)

// Ensure LoggingPipeline implements serprace.Pipeline.
var _ serprace.Pipeline = (*LoggingPipeline)(nil)

// LoggingPipeline wraps a Pipeline and logs each run's outcome. Individual
// strategy attempts are logged at debug level.
type LoggingPipeline struct {
	next   serprace.Pipeline
	logger *slog.Logger
}

// NewLoggingPipeline creates a new LoggingPipeline.
func NewLoggingPipeline(next serprace.Pipeline, logger *slog.Logger) *LoggingPipeline {
	return &LoggingPipeline{next: next, logger: logger}
}

// Provider delegates to the wrapped pipeline.
func (p *LoggingPipeline) Provider() serprace.Provider {
	return p.next.Provider()
}

// Run delegates to the wrapped pipeline and logs the outcome.
func (p *LoggingPipeline) Run(ctx context.Context, sess serprace.Session, q serprace.Query) *serprace.Outcome {
	o := p.next.Run(ctx, sess, q)

	for _, a := range o.Attempts {
		p.logger.Debug("strategy attempt",
			"provider", o.Provider,
			"strategy", a.Strategy,
			"found", a.Found,
			"err", a.Err,
		)
	}

	level := slog.LevelInfo
	if o.Kind == serprace.OutcomeSessionDied {
		level = slog.LevelWarn
	}
	attrs := []any{
		"provider", o.Provider,
		"session", sess.ID(),
		"outcome", o.Kind.String(),
		"duration", o.Duration,
	}
	if o.Strategy != "" {
		attrs = append(attrs, "strategy", o.Strategy)
	}
	if o.Result != nil {
		attrs = append(attrs, "results", len(o.Result.Results))
	}
	if o.Err != nil {
		attrs = append(attrs, "err", o.Err)
	}
	p.logger.Log(ctx, level, "pipeline run", attrs...)
	return o
}

// WrapPipelines wraps every pipeline in pipelines with logging.
func WrapPipelines(pipelines map[serprace.Provider]serprace.Pipeline, logger *slog.Logger) map[serprace.Provider]serprace.Pipeline {
	out := make(map[serprace.Provider]serprace.Pipeline, len(pipelines))
	for p, pl := range pipelines {
		out[p] = NewLoggingPipeline(pl, logger)
	}
	return out
}
