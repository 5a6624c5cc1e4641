package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/serprace"
	main "github.com/fwojciec/serprace/cmd/serprace"
	"github.com/fwojciec/serprace/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Search(t *testing.T) {
	t.Parallel()

	// Given a searcher that wins the race on duckduckgo
	var gotProviders []serprace.Provider
	m := main.NewMain()
	m.Config = defaultConfig()
	m.Searcher = &mock.Searcher{
		SearchRacingFn: func(_ context.Context, _ serprace.Query, ps []serprace.Provider) (*serprace.RaceResult, error) {
			gotProviders = ps
			return &serprace.RaceResult{Provider: serprace.ProviderDuckDuckGo, Result: openaiResult()}, nil
		},
	}
	stdout := &bytes.Buffer{}

	// When
	err := m.Run(context.Background(), []string{"search", "openai", "--num", "5"}, stdout, &bytes.Buffer{})

	// Then
	require.NoError(t, err)
	assert.Equal(t, serprace.Providers(), gotProviders)
	assert.Contains(t, stdout.String(), "Results from duckduckgo (2)")
}

func TestMain_Run_LogsOperations(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Config = defaultConfig()
	m.Searcher = &mock.Searcher{
		ScrapeURLFn: func(_ context.Context, url string) (*serprace.ScrapedContent, error) {
			return article(url), nil
		},
	}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--log-level", "debug", "scrape", "https://go.dev/blog"}, &bytes.Buffer{}, stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "msg=scrape")
}

func TestMain_Run_RejectsUnknownEngine(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Config = defaultConfig()
	m.Searcher = &mock.Searcher{}

	err := m.Run(context.Background(), []string{"search", "openai", "--engine", "yahoo"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
}
