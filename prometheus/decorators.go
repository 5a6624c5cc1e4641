package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/serprace"
)

var (
	_ serprace.Launcher = (*Launcher)(nil)
	_ serprace.Pipeline = (*Pipeline)(nil)
	_ serprace.Searcher = (*Searcher)(nil)
)

// Launcher counts launches and tracks running sessions.
type Launcher struct {
	next    serprace.Launcher
	metrics *Metrics
}

// NewLauncher wraps next.
func NewLauncher(next serprace.Launcher, m *Metrics) *Launcher {
	return &Launcher{next: next, metrics: m}
}

// Launch delegates to the wrapped launcher.
func (l *Launcher) Launch(ctx context.Context) (serprace.Session, error) {
	sess, err := l.next.Launch(ctx)
	if err != nil {
		l.metrics.Launches.WithLabelValues("error").Inc()
		return nil, err
	}
	l.metrics.Launches.WithLabelValues("ok").Inc()
	l.metrics.BrowsersActive.Inc()
	return &session{Session: sess, active: l.metrics.BrowsersActive}, nil
}

type session struct {
	serprace.Session
	active interface{ Dec() }
	once   sync.Once
}

func (s *session) Close() error {
	s.once.Do(s.active.Dec)
	return s.Session.Close()
}

// Pipeline records run outcomes, durations and strategy attempts.
type Pipeline struct {
	next    serprace.Pipeline
	metrics *Metrics
}

// NewPipeline wraps next.
func NewPipeline(next serprace.Pipeline, m *Metrics) *Pipeline {
	return &Pipeline{next: next, metrics: m}
}

// Provider delegates to the wrapped pipeline.
func (p *Pipeline) Provider() serprace.Provider {
	return p.next.Provider()
}

// Run delegates to the wrapped pipeline.
func (p *Pipeline) Run(ctx context.Context, sess serprace.Session, q serprace.Query) *serprace.Outcome {
	o := p.next.Run(ctx, sess, q)
	provider := string(o.Provider)
	p.metrics.PipelineRuns.WithLabelValues(provider, o.Kind.String()).Inc()
	p.metrics.PipelineDuration.WithLabelValues(provider).Observe(o.Duration.Seconds())
	for _, a := range o.Attempts {
		p.metrics.StrategyAttempts.WithLabelValues(provider, a.Strategy, attemptResult(a)).Inc()
	}
	return o
}

// WrapPipelines wraps every pipeline in pipelines.
func WrapPipelines(pipelines map[serprace.Provider]serprace.Pipeline, m *Metrics) map[serprace.Provider]serprace.Pipeline {
	out := make(map[serprace.Provider]serprace.Pipeline, len(pipelines))
	for p, pl := range pipelines {
		out[p] = NewPipeline(pl, m)
	}
	return out
}

func attemptResult(a serprace.Attempt) string {
	switch {
	case a.Err != nil:
		return serprace.ErrorCode(a.Err)
	case a.Found > 0:
		return "found"
	default:
		return "empty"
	}
}

// Searcher records operation counts, durations and race winners.
type Searcher struct {
	next    serprace.Searcher
	metrics *Metrics
}

// NewSearcher wraps next.
func NewSearcher(next serprace.Searcher, m *Metrics) *Searcher {
	return &Searcher{next: next, metrics: m}
}

// SearchOne delegates to the wrapped searcher.
func (s *Searcher) SearchOne(ctx context.Context, q serprace.Query, provider serprace.Provider) (*serprace.SearchResult, error) {
	defer s.observe("search", time.Now())
	res, err := s.next.SearchOne(ctx, q, provider)
	s.count("search", err)
	return res, err
}

// SearchRacing delegates to the wrapped searcher.
func (s *Searcher) SearchRacing(ctx context.Context, q serprace.Query, providers []serprace.Provider) (*serprace.RaceResult, error) {
	defer s.observe("race", time.Now())
	res, err := s.next.SearchRacing(ctx, q, providers)
	s.count("race", err)
	if res != nil {
		s.metrics.RaceWins.WithLabelValues(string(res.Provider)).Inc()
	}
	return res, err
}

// ScrapeURL delegates to the wrapped searcher.
func (s *Searcher) ScrapeURL(ctx context.Context, url string) (*serprace.ScrapedContent, error) {
	defer s.observe("scrape", time.Now())
	content, err := s.next.ScrapeURL(ctx, url)
	s.count("scrape", err)
	return content, err
}

func (s *Searcher) observe(op string, begin time.Time) {
	s.metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
}

func (s *Searcher) count(op string, err error) {
	code := "ok"
	if err != nil {
		code = serprace.ErrorCode(err)
	}
	s.metrics.Requests.WithLabelValues(op, code).Inc()
}
