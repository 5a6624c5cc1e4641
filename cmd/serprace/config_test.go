package main_test

import (
	"os"
	"testing"

	main "github.com/fwojciec/serprace/cmd/serprace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file modify the environment and cannot run in parallel.

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"HEADLESS", "PROXY_LIST", "LOG_LEVEL", "GOOGLE_CHROME_BIN", "SERPRACE_ADDR", "SERPRACE_RATE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := main.LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.InDelta(t, 1, cfg.Rate, 0)
	assert.Empty(t, cfg.ProxyList)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("HEADLESS", "false")
	t.Setenv("PROXY_LIST", "a:1,b:2")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GOOGLE_CHROME_BIN", "/usr/bin/chromium")
	t.Setenv("SERPRACE_ADDR", ":9999")
	t.Setenv("SERPRACE_RATE", "0.25")

	cfg, err := main.LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Headless)
	assert.Equal(t, "a:1,b:2", cfg.ProxyList)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromeBin)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.InDelta(t, 0.25, cfg.Rate, 0)

	vars := cfg.Vars()
	assert.Equal(t, "debug", vars["log_level"])
	assert.Equal(t, "false", vars["headless"])
	assert.Equal(t, "0.25", vars["rate"])
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("SERPRACE_RATE", "fast")

	_, err := main.LoadConfig()

	require.Error(t, err)
}
