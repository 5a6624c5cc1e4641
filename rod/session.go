package rod

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/fs"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Session implements serprace.Session at compile time.
var _ serprace.Session = (*Session)(nil)

// Session is one Chrome process with a single tab.
//
// All page operations run on a dedicated worker goroutine. Callers queue
// behind a one-slot guard, so operations execute one at a time in
// submission order. Every operation is bound to its caller's context, and
// cancelling it aborts the in-flight browser call.
type Session struct {
	id        string
	browser   *rod.Browser
	page      *rod.Page
	launcher  *launcher.Launcher
	workspace *fs.Workspace

	loadTimeout  time.Duration
	probeTimeout time.Duration
	typingMin    time.Duration
	typingMax    time.Duration

	guard chan struct{}
	jobs  chan func()
	quit  chan struct{}
	done  chan struct{}

	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

type sessionConfig struct {
	id           string
	browser      *rod.Browser
	page         *rod.Page
	launcher     *launcher.Launcher
	workspace    *fs.Workspace
	loadTimeout  time.Duration
	probeTimeout time.Duration
	typingMin    time.Duration
	typingMax    time.Duration
}

func newSession(cfg sessionConfig) *Session {
	s := &Session{
		id:           cfg.id,
		browser:      cfg.browser,
		page:         cfg.page,
		launcher:     cfg.launcher,
		workspace:    cfg.workspace,
		loadTimeout:  cfg.loadTimeout,
		probeTimeout: cfg.probeTimeout,
		typingMin:    cfg.typingMin,
		typingMax:    cfg.typingMax,
		guard:        make(chan struct{}, 1),
		jobs:         make(chan func()),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	s.state.Store(int32(serprace.SessionReady))
	go s.work()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the current liveness state.
func (s *Session) State() serprace.SessionState {
	return serprace.SessionState(s.state.Load())
}

// Navigate loads url and waits for DOMContentLoaded.
func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.execute(ctx, s.loadTimeout, func(p *rod.Page) error {
		wait := p.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
		if err := p.Navigate(url); err != nil {
			return err
		}
		wait()
		return p.GetContext().Err()
	})
}

// HTML returns the current document markup.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	err := s.execute(ctx, s.loadTimeout, func(p *rod.Page) error {
		var err error
		html, err = p.HTML()
		return err
	})
	return html, err
}

// WaitElement waits for selector to match.
func (s *Session) WaitElement(ctx context.Context, selector string, timeout time.Duration) error {
	return s.execute(ctx, timeout, func(p *rod.Page) error {
		_, err := p.Element(selector)
		return err
	})
}

// ClickText clicks the first selector match whose text matches pattern.
func (s *Session) ClickText(ctx context.Context, selector, pattern string, timeout time.Duration) error {
	return s.execute(ctx, timeout, func(p *rod.Page) error {
		el, err := p.ElementR(selector, pattern)
		if err != nil {
			return err
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

// Type clears the matched field and types text one key at a time with a
// randomized pause between keys.
func (s *Session) Type(ctx context.Context, selector, text string) error {
	return s.execute(ctx, s.loadTimeout, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return err
		}
		if err := el.SelectAllText(); err != nil {
			return err
		}
		for _, r := range text {
			if err := el.Input(string(r)); err != nil {
				return err
			}
			if err := sleep(p.GetContext(), s.typingDelay()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Submit focuses the matched element and presses Enter.
func (s *Session) Submit(ctx context.Context, selector string) error {
	return s.execute(ctx, s.loadTimeout, func(p *rod.Page) error {
		el, err := p.Element(selector)
		if err != nil {
			return err
		}
		if err := el.Focus(); err != nil {
			return err
		}
		return p.Keyboard.Type(input.Enter)
	})
}

// IsAlive evaluates a trivial expression in the page. A failed probe marks
// the session Dead.
func (s *Session) IsAlive() bool {
	if s.State() == serprace.SessionDead {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.probeTimeout)
	defer cancel()
	if _, err := s.page.Context(ctx).Eval(`() => 1`); err != nil {
		s.state.Store(int32(serprace.SessionDead))
		return false
	}
	return true
}

// Close shuts the browser down, kills the process and removes the
// workspace. Close is safe to call multiple times.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.state.Store(int32(serprace.SessionDead))
		close(s.quit)

		var errs []error
		if err := s.browser.Close(); err != nil {
			errs = append(errs, err)
		}
		s.launcher.Kill()
		<-s.done
		s.launcher.Cleanup()
		if err := s.workspace.Remove(); err != nil {
			errs = append(errs, err)
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// execute runs op on the worker goroutine with the page bound to ctx.
// A positive timeout further bounds the operation.
func (s *Session) execute(ctx context.Context, timeout time.Duration, op func(p *rod.Page) error) error {
	if s.State() == serprace.SessionDead {
		return serprace.Errorf(serprace.ESESSIONDIED, "session %s is closed", s.id)
	}

	select {
	case s.guard <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return serprace.Errorf(serprace.ESESSIONDIED, "session %s is closed", s.id)
	}
	defer func() { <-s.guard }()

	opCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	errc := make(chan error, 1)
	job := func() { errc <- op(s.page.Context(opCtx)) }

	select {
	case s.jobs <- job:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return serprace.Errorf(serprace.ESESSIONDIED, "session %s is closed", s.id)
	}

	err := <-errc
	switch {
	case err == nil:
		s.state.CompareAndSwap(int32(serprace.SessionDegraded), int32(serprace.SessionReady))
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		s.state.CompareAndSwap(int32(serprace.SessionReady), int32(serprace.SessionDegraded))
	}
	return err
}

// work is the session's single worker loop.
func (s *Session) work() {
	defer close(s.done)
	for {
		select {
		case job := <-s.jobs:
			job()
		case <-s.quit:
			return
		}
	}
}

func (s *Session) typingDelay() time.Duration {
	if s.typingMax <= s.typingMin {
		return s.typingMin
	}
	return s.typingMin + rand.N(s.typingMax-s.typingMin)
}

// LauncherPID returns the browser process ID.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	return s.launcher.PID()
}

// WorkspacePath returns the session's workspace directory.
func (s *Session) WorkspacePath() string {
	return s.workspace.Path()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
