package serprace

import (
	"fmt"
	"strings"
	"time"
)

// OutcomeKind classifies how a provider pipeline run ended.
type OutcomeKind int

const (
	// OutcomeSuccess means a strategy produced organic results.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeEmpty means every strategy ran without results.
	OutcomeEmpty
	// OutcomeSessionDied means the session was lost mid-chain.
	OutcomeSessionDied
	// OutcomeLaunchFailed means no session could be started.
	OutcomeLaunchFailed
	// OutcomeCanceled means the run was cancelled before finishing.
	OutcomeCanceled
)

// String returns a short label for the kind, used in logs and metrics.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	case OutcomeSessionDied:
		return "session_died"
	case OutcomeLaunchFailed:
		return "launch_failed"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Attempt records one strategy run within a pipeline.
type Attempt struct {
	Strategy string
	Found    int
	Err      error
}

// Outcome is the classified result of one provider pipeline run.
type Outcome struct {
	Provider Provider
	Kind     OutcomeKind

	// Result is set for OutcomeSuccess and OutcomeEmpty.
	Result *SearchResult

	// Strategy names the strategy that produced Result on success.
	Strategy string

	// Attempts lists every strategy that ran, in order.
	Attempts []Attempt

	// Err describes the failure for fatal kinds.
	Err error

	Duration time.Duration
}

// Won reports whether the outcome carries a non-empty organic result set.
func (o *Outcome) Won() bool {
	return o != nil && o.Kind == OutcomeSuccess && !o.Result.Empty()
}

// Reason returns a one-line diagnostic for a non-winning outcome.
func (o *Outcome) Reason() string {
	switch {
	case o == nil:
		return "no outcome"
	case o.Err != nil:
		return fmt.Sprintf("%s: %s", o.Kind, ErrorMessage(o.Err))
	case len(o.Attempts) > 0:
		var parts []string
		for _, a := range o.Attempts {
			if a.Err != nil {
				parts = append(parts, fmt.Sprintf("%s=%s", a.Strategy, ErrorCode(a.Err)))
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%d", a.Strategy, a.Found))
		}
		return fmt.Sprintf("%s (%s)", o.Kind, strings.Join(parts, ", "))
	default:
		return o.Kind.String()
	}
}

// RaceResult is the winning outcome of a provider race.
type RaceResult struct {
	Provider Provider
	Result   *SearchResult

	// Outcomes holds every racer's outcome in arrival order.
	Outcomes []*Outcome
}

// RaceError is returned when no provider in a race produced results.
type RaceError struct {
	Outcomes []*Outcome
}

// Error implements the error interface.
func (e *RaceError) Error() string {
	if len(e.Outcomes) == 0 {
		return "all providers failed"
	}
	parts := make([]string, 0, len(e.Outcomes))
	for _, o := range e.Outcomes {
		parts = append(parts, fmt.Sprintf("%s: %s", o.Provider, o.Reason()))
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

// Reasons maps each provider to its failure diagnostic.
func (e *RaceError) Reasons() map[Provider]string {
	m := make(map[Provider]string, len(e.Outcomes))
	for _, o := range e.Outcomes {
		m[o.Provider] = o.Reason()
	}
	return m
}
