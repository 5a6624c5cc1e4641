package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/serprace/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first navigation to a host does not wait", func(t *testing.T) {
		t.Parallel()

		limiter := engine.NewHostLimiter(10)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "www.bing.com"))

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("second navigation to the same host is spaced", func(t *testing.T) {
		t.Parallel()

		// Given: 10/s means roughly 100ms between navigations
		limiter := engine.NewHostLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.bing.com"))

		// When
		start := time.Now()
		err := limiter.Wait(context.Background(), "www.bing.com")

		// Then
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("racers on different providers do not wait on each other", func(t *testing.T) {
		t.Parallel()

		limiter := engine.NewHostLimiter(10)
		require.NoError(t, limiter.Wait(context.Background(), "www.bing.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "duckduckgo.com"))

		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("canceled racer stops waiting", func(t *testing.T) {
		t.Parallel()

		limiter := engine.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "www.google.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "www.google.com"))
	})

	t.Run("concurrent racers on one host all proceed", func(t *testing.T) {
		t.Parallel()

		limiter := engine.NewHostLimiter(100)

		var wg sync.WaitGroup
		errs := make(chan error, 5)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- limiter.Wait(context.Background(), "www.bing.com")
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
	})

	t.Run("non-positive rate never waits", func(t *testing.T) {
		t.Parallel()

		limiter := engine.NewHostLimiter(0)

		start := time.Now()
		for range 10 {
			require.NoError(t, limiter.Wait(context.Background(), "www.google.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})
}
