package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/serprace"
	"github.com/fwojciec/serprace/engine"
	"github.com/fwojciec/serprace/goquery"
	"github.com/fwojciec/serprace/htmlquery"
	"github.com/fwojciec/serprace/htmltomarkdown"
	serprom "github.com/fwojciec/serprace/prometheus"
	"github.com/fwojciec/serprace/race"
	"github.com/fwojciec/serprace/readability"
	"github.com/fwojciec/serprace/rod"
	serslog "github.com/fwojciec/serprace/slog"
	"github.com/fwojciec/serprace/trafilatura"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config supplies flag defaults. Loaded from the environment when nil.
	Config *Config

	// Searcher replaces the browser-backed searcher. Used in tests.
	Searcher serprace.Searcher

	closers []func() error
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources acquired during Run.
func (m *Main) Close() error {
	var err error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if e := m.closers[i](); e != nil && err == nil {
			err = e
		}
	}
	m.closers = nil
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := m.Config
	if cfg == nil {
		var err error
		if cfg, err = LoadConfig(); err != nil {
			return err
		}
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("serprace"),
		kong.Description("Race browser sessions against web search providers."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		cfg.Vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'serprace --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}
	metrics := serprom.NewMetrics(prometheus.NewRegistry())
	deps.Logger = logger
	deps.Metrics = metrics.Handler()

	searcher := m.Searcher
	if searcher == nil {
		shared := strings.HasPrefix(kongCtx.Command(), "serve") && cli.Serve.Shared
		if searcher, err = m.wire(cli, shared, deps, metrics); err != nil {
			return err
		}
		defer m.Close()
	}
	deps.Searcher = serslog.NewLoggingSearcher(serprom.NewSearcher(searcher, metrics), logger)

	return kongCtx.Run(deps)
}

// wire builds the browser-backed searcher from the parsed flags.
func (m *Main) wire(cli *CLI, shared bool, deps *Dependencies, metrics *serprom.Metrics) (serprace.Searcher, error) {
	strategies := &goquery.StrategyFile{}
	if cli.Selectors != "" {
		f, err := os.Open(cli.Selectors)
		if err != nil {
			return nil, fmt.Errorf("failed to open selectors file: %w", err)
		}
		strategies, err = goquery.LoadStrategies(f)
		_ = f.Close()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", serprace.ErrorMessage(err))
			return nil, err
		}
	}

	anchors := htmlquery.NewAnchorExtractor()
	parsers := engine.Parsers{
		Google:         goquery.NewGoogleParser(goquery.WithStrategies(strategies.Google), goquery.WithFallback(anchors)),
		Bing:           goquery.NewBingParser(goquery.WithStrategies(strategies.Bing), goquery.WithFallback(anchors)),
		DuckDuckGo:     goquery.NewDuckDuckGoParser(goquery.WithStrategies(strategies.DuckDuckGo), goquery.WithFallback(anchors)),
		DuckDuckGoHTML: goquery.NewDuckDuckGoHTMLParser(goquery.WithStrategies(strategies.DuckDuckGoHTML), goquery.WithFallback(anchors)),
	}

	opts := []engine.Option{engine.WithLimiter(engine.NewHostLimiter(cli.Rate))}
	pipelines := engine.NewPipelines(parsers, opts...)
	pipelines = serprom.WrapPipelines(serslog.WrapPipelines(pipelines, deps.Logger), metrics)

	browsers := rod.NewLauncher(rod.NewSpawnGate(),
		rod.WithHeadless(cli.Headless),
		rod.WithBrowserBin(cli.ChromeBin),
		rod.WithProxies(rod.ParseProxyList(cli.Proxies)),
	)
	launcher := serprom.NewLauncher(serslog.NewLoggingLauncher(browsers, deps.Logger), metrics)

	articles := goquery.NewArticleExtractor(
		goquery.WithExtractorFallback(newFallbackExtractor(cli.Fallback)),
		goquery.WithConverter(htmltomarkdown.NewConverter()),
	)
	scraper := engine.NewScraper(articles, opts...)

	if shared {
		s := race.NewShared(launcher, pipelines, scraper)
		m.closers = append(m.closers, s.Close)
		return s, nil
	}
	return race.NewService(launcher, pipelines, scraper), nil
}

func newFallbackExtractor(name string) serprace.Extractor {
	if name == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor(trafilatura.WithFallback(readability.NewExtractor()))
}
