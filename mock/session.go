package mock

import (
	"context"
	"time"

	"github.com/fwojciec/serprace"
)

var _ serprace.Session = (*Session)(nil)

// Session is a mock implementation of serprace.Session.
type Session struct {
	IDFn          func() string
	StateFn       func() serprace.SessionState
	NavigateFn    func(ctx context.Context, url string) error
	HTMLFn        func(ctx context.Context) (string, error)
	WaitElementFn func(ctx context.Context, selector string, timeout time.Duration) error
	ClickTextFn   func(ctx context.Context, selector, pattern string, timeout time.Duration) error
	TypeFn        func(ctx context.Context, selector, text string) error
	SubmitFn      func(ctx context.Context, selector string) error
	IsAliveFn     func() bool
	CloseFn       func() error
}

func (s *Session) ID() string {
	return s.IDFn()
}

func (s *Session) State() serprace.SessionState {
	return s.StateFn()
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) WaitElement(ctx context.Context, selector string, timeout time.Duration) error {
	return s.WaitElementFn(ctx, selector, timeout)
}

func (s *Session) ClickText(ctx context.Context, selector, pattern string, timeout time.Duration) error {
	return s.ClickTextFn(ctx, selector, pattern, timeout)
}

func (s *Session) Type(ctx context.Context, selector, text string) error {
	return s.TypeFn(ctx, selector, text)
}

func (s *Session) Submit(ctx context.Context, selector string) error {
	return s.SubmitFn(ctx, selector)
}

func (s *Session) IsAlive() bool {
	return s.IsAliveFn()
}

func (s *Session) Close() error {
	return s.CloseFn()
}

var _ serprace.Launcher = (*Launcher)(nil)

// Launcher is a mock implementation of serprace.Launcher.
type Launcher struct {
	LaunchFn func(ctx context.Context) (serprace.Session, error)
}

func (l *Launcher) Launch(ctx context.Context) (serprace.Session, error) {
	return l.LaunchFn(ctx)
}

var _ serprace.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of serprace.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
