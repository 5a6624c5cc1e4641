package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/serprace"
)

// Ensure LoggingSearcher implements serprace.Searcher.
var _ serprace.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher and logs every operation.
type LoggingSearcher struct {
	next   serprace.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next serprace.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// SearchOne delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) SearchOne(ctx context.Context, q serprace.Query, provider serprace.Provider) (res *serprace.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"provider", provider,
			"query", q.Text,
			"limit", q.ResultLimit(),
			"results", count(res),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchOne(ctx, q, provider)
}

// SearchRacing delegates to the wrapped searcher and logs the winner, or
// every provider's reason when the race failed.
func (s *LoggingSearcher) SearchRacing(ctx context.Context, q serprace.Query, providers []serprace.Provider) (res *serprace.RaceResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"providers", providers,
			"query", q.Text,
			"limit", q.ResultLimit(),
			"duration", time.Since(begin),
		}
		if res != nil {
			attrs = append(attrs, "winner", res.Provider, "results", count(res.Result))
		}
		var raceErr *serprace.RaceError
		if errors.As(err, &raceErr) {
			for p, reason := range raceErr.Reasons() {
				attrs = append(attrs, slog.String(string(p), reason))
			}
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Info("race", attrs...)
	}(time.Now())
	return s.next.SearchRacing(ctx, q, providers)
}

// ScrapeURL delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) ScrapeURL(ctx context.Context, url string) (content *serprace.ScrapedContent, err error) {
	defer func(begin time.Time) {
		blocks, words := 0, 0
		if content != nil {
			blocks, words = len(content.Content), content.WordCount
		}
		s.logger.Info("scrape",
			"url", url,
			"blocks", blocks,
			"words", words,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ScrapeURL(ctx, url)
}

func count(r *serprace.SearchResult) int {
	if r == nil {
		return 0
	}
	return len(r.Results)
}
