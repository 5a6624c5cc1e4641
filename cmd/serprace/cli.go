package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/serprace"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Searcher serprace.Searcher
	Metrics  http.Handler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Headless  bool    `default:"${headless}" negatable:"" help:"Run the browser without a window"`
	Proxies   string  `name:"proxies" default:"${proxies}" help:"Comma-separated proxy list"`
	ChromeBin string  `name:"chrome-bin" default:"${chrome_bin}" help:"Browser binary path"`
	Rate      float64 `default:"${rate}" help:"Navigations per second per host (0 disables)"`
	LogLevel  string  `name:"log-level" default:"${log_level}" enum:"debug,info,warn,error" help:"Log verbosity"`
	Selectors string  `type:"existingfile" help:"YAML file with extra result layouts"`
	Fallback  string  `default:"trafilatura" enum:"trafilatura,readability" help:"Article extractor used when no content container matches"`

	Search SearchCmd `cmd:"" help:"Search one provider or race all of them"`
	Scrape ScrapeCmd `cmd:"" help:"Extract readable content from a URL"`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Engine string `short:"e" default:"all" enum:"all,google,bing,duckduckgo,ddg" help:"Provider to query, or all to race every provider"`
	Num    int    `short:"n" default:"10" help:"Maximum number of results"`
	JSON   bool   `name:"json" help:"Print JSON"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string `arg:"" help:"Page URL"`
	JSON     bool   `name:"json" help:"Print JSON"`
	Markdown bool   `short:"m" help:"Print the Markdown rendering"`
	Out      string `short:"o" type:"path" help:"Write the output to a file instead of stdout"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr   string `default:"${addr}" help:"Listen address"`
	Shared bool   `help:"Serve every request from one reusable browser session"`
}
