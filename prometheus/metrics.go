// Package prometheus exports serprace activity as Prometheus metrics by
// decorating launchers, pipelines and searchers.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// durationBuckets covers a pipeline run from a fast direct hit to a full
// chain with pacing.
var durationBuckets = []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120}

// Metrics holds all collectors.
type Metrics struct {
	// Browser metrics
	Launches       *prometheus.CounterVec
	BrowsersActive prometheus.Gauge

	// Pipeline metrics
	PipelineRuns     *prometheus.CounterVec
	PipelineDuration *prometheus.HistogramVec
	StrategyAttempts *prometheus.CounterVec

	// Operation metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RaceWins        *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Launches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serprace_browser_launches_total",
				Help: "Total number of browser launches",
			},
			[]string{"status"},
		),
		BrowsersActive: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "serprace_browsers_active",
				Help: "Number of running browser sessions",
			},
		),
		PipelineRuns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serprace_pipeline_runs_total",
				Help: "Total number of provider pipeline runs by outcome",
			},
			[]string{"provider", "outcome"},
		),
		PipelineDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "serprace_pipeline_duration_seconds",
				Help:    "Provider pipeline run duration in seconds",
				Buckets: durationBuckets,
			},
			[]string{"provider"},
		),
		StrategyAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serprace_strategy_attempts_total",
				Help: "Total number of strategy attempts by result",
			},
			[]string{"provider", "strategy", "result"},
		),
		Requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serprace_requests_total",
				Help: "Total number of search and scrape operations",
			},
			[]string{"operation", "code"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "serprace_request_duration_seconds",
				Help:    "Search and scrape operation duration in seconds",
				Buckets: durationBuckets,
			},
			[]string{"operation"},
		),
		RaceWins: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serprace_race_wins_total",
				Help: "Total number of races won per provider",
			},
			[]string{"provider"},
		),
		gatherer: reg,
	}
}

// Handler serves the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
