package rod

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/fs"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

// Ensure Launcher implements serprace.Launcher at compile time.
var _ serprace.Launcher = (*Launcher)(nil)

// Default timeouts and typing cadence.
const (
	DefaultLoadTimeout  = 30 * time.Second
	DefaultProbeTimeout = 2 * time.Second
	DefaultTypingMin    = 50 * time.Millisecond
	DefaultTypingMax    = 150 * time.Millisecond
)

// hideWebdriver runs before any page script.
const hideWebdriver = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// Launcher starts Chrome sessions. Launcher is safe for concurrent use; the
// spawn step is serialized through its SpawnGate.
type Launcher struct {
	gate         *SpawnGate
	headless     bool
	bin          string
	proxies      []string
	userAgents   []string
	workDir      string
	loadTimeout  time.Duration
	probeTimeout time.Duration
	typingMin    time.Duration
	typingMax    time.Duration
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithHeadless sets whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) LauncherOption {
	return func(l *Launcher) {
		l.headless = headless
	}
}

// WithBrowserBin sets the Chrome binary. When empty, rod finds or
// downloads one.
func WithBrowserBin(path string) LauncherOption {
	return func(l *Launcher) {
		l.bin = path
	}
}

// WithProxies sets the proxy pool. Each session picks one at random.
func WithProxies(proxies []string) LauncherOption {
	return func(l *Launcher) {
		l.proxies = proxies
	}
}

// WithUserAgents replaces the user agent pool.
func WithUserAgents(agents []string) LauncherOption {
	return func(l *Launcher) {
		if len(agents) > 0 {
			l.userAgents = agents
		}
	}
}

// WithWorkDir sets the parent directory for session workspaces.
func WithWorkDir(dir string) LauncherOption {
	return func(l *Launcher) {
		l.workDir = dir
	}
}

// WithLoadTimeout bounds each navigation. Defaults to 30s.
func WithLoadTimeout(d time.Duration) LauncherOption {
	return func(l *Launcher) {
		l.loadTimeout = d
	}
}

// WithTypingDelay sets the per-key pause range used by Session.Type.
func WithTypingDelay(lo, hi time.Duration) LauncherOption {
	return func(l *Launcher) {
		l.typingMin = lo
		l.typingMax = hi
	}
}

// NewLauncher returns a Launcher that spawns browsers through gate.
func NewLauncher(gate *SpawnGate, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		gate:         gate,
		headless:     true,
		userAgents:   DefaultUserAgents,
		loadTimeout:  DefaultLoadTimeout,
		probeTimeout: DefaultProbeTimeout,
		typingMin:    DefaultTypingMin,
		typingMax:    DefaultTypingMax,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts a browser in a fresh workspace and returns a Ready session.
// Every resource acquired before a failure is released before returning.
func (l *Launcher) Launch(ctx context.Context) (serprace.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ws, err := fs.NewWorkspace(l.workDir, "serprace-")
	if err != nil {
		return nil, serprace.Errorf(serprace.ELAUNCH, "creating workspace: %v", err)
	}

	ua := l.userAgents[rand.IntN(len(l.userAgents))]
	lnchr := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-extensions").
		Set("no-first-run").
		Set("window-size", "1920,1080").
		Set("user-agent", ua).
		UserDataDir(ws.ProfileDir()).
		NoSandbox(true).
		Leakless(true).
		Headless(l.headless)
	if l.bin != "" {
		lnchr = lnchr.Bin(l.bin)
	}
	if len(l.proxies) > 0 {
		if p := ProxyServer(l.proxies[rand.IntN(len(l.proxies))]); p != "" {
			lnchr = lnchr.Proxy(p)
		}
	}

	var controlURL string
	err = l.gate.Do(ctx, func() error {
		var err error
		controlURL, err = lnchr.Launch()
		return err
	})
	if err != nil {
		lnchr.Kill()
		_ = ws.Remove()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, serprace.Errorf(serprace.ELAUNCH, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		_ = ws.Remove()
		return nil, serprace.Errorf(serprace.ELAUNCH, "connecting to browser: %v", err)
	}

	page, err := l.preparePage(browser, ua)
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		_ = ws.Remove()
		return nil, serprace.Errorf(serprace.ELAUNCH, "opening tab: %v", err)
	}

	s := newSession(sessionConfig{
		id:           uuid.New().String(),
		browser:      browser,
		page:         page,
		launcher:     lnchr,
		workspace:    ws,
		loadTimeout:  l.loadTimeout,
		probeTimeout: l.probeTimeout,
		typingMin:    l.typingMin,
		typingMax:    l.typingMax,
	})
	return s, nil
}

// preparePage opens the session's single tab with its user agent and
// init script installed.
func (l *Launcher) preparePage(browser *rod.Browser, ua string) (*rod.Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      ua,
		AcceptLanguage: "en-US,en;q=0.9",
	}); err != nil {
		return nil, fmt.Errorf("setting user agent: %w", err)
	}
	if _, err := page.EvalOnNewDocument(hideWebdriver); err != nil {
		return nil, fmt.Errorf("installing init script: %w", err)
	}
	return page, nil
}
