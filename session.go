package serprace

import (
	"context"
	"time"
)

// SessionState is the liveness state of a Session.
type SessionState int

const (
	SessionLaunching SessionState = iota
	SessionReady
	// SessionDegraded means the last operation failed but the browser
	// still answered the liveness probe.
	SessionDegraded
	SessionDead
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case SessionLaunching:
		return "launching"
	case SessionReady:
		return "ready"
	case SessionDegraded:
		return "degraded"
	case SessionDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Session is one exclusive handle to a running automated browser.
// Blocking operations are serialized in submission order. A Session must
// not be driven by two logical operations at once; callers that share one
// across requests must hold an external lock for the whole operation.
type Session interface {
	// ID returns an opaque identifier for logs.
	ID() string

	// State returns the current liveness state.
	State() SessionState

	// Navigate loads url and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error

	// HTML returns the current page markup.
	HTML(ctx context.Context) (string, error)

	// WaitElement waits up to timeout for selector to match an element.
	WaitElement(ctx context.Context, selector string, timeout time.Duration) error

	// ClickText clicks the first element matching selector whose text
	// matches the regular expression pattern.
	ClickText(ctx context.Context, selector, pattern string, timeout time.Duration) error

	// Type focuses the element matching selector, clears it and types
	// text one key at a time.
	Type(ctx context.Context, selector, text string) error

	// Submit presses Enter in the element matching selector.
	Submit(ctx context.Context, selector string) error

	// IsAlive probes the browser. It returns false once the process has
	// crashed, the control channel is gone or Close was called.
	IsAlive() bool

	// Close terminates the browser and removes its workspace.
	// Close is safe to call multiple times.
	Close() error
}

// Launcher starts new Sessions.
type Launcher interface {
	// Launch starts a browser and returns a Ready session.
	// Returns ELAUNCH if the browser cannot be started.
	Launch(ctx context.Context) (Session, error)
}

// HostLimiter throttles navigations per host.
type HostLimiter interface {
	// Wait blocks until a navigation to host may proceed.
	// Returns an error if ctx is cancelled first.
	Wait(ctx context.Context, host string) error
}
