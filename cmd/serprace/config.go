package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment defaults for command-line flags.
type Config struct {
	Headless  bool    `envconfig:"HEADLESS" default:"true"`
	ProxyList string  `envconfig:"PROXY_LIST"`
	LogLevel  string  `envconfig:"LOG_LEVEL" default:"info"`
	ChromeBin string  `envconfig:"GOOGLE_CHROME_BIN"`
	Addr      string  `envconfig:"SERPRACE_ADDR" default:":8000"`
	Rate      float64 `envconfig:"SERPRACE_RATE" default:"1"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Vars exposes the config as kong interpolation variables so that flags
// default to the environment and override it when given.
func (c *Config) Vars() kong.Vars {
	return kong.Vars{
		"headless":   strconv.FormatBool(c.Headless),
		"proxies":    c.ProxyList,
		"log_level":  strings.ToLower(c.LogLevel),
		"chrome_bin": c.ChromeBin,
		"addr":       c.Addr,
		"rate":       strconv.FormatFloat(c.Rate, 'f', -1, 64),
	}
}

// newLogger returns a text logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}
