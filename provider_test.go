package serprace_test

import (
	"testing"

	"github.com/fwojciec/serprace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	t.Parallel()

	t.Run("accepts known names case-insensitively", func(t *testing.T) {
		t.Parallel()

		p, err := serprace.ParseProvider(" Bing ")

		require.NoError(t, err)
		assert.Equal(t, serprace.ProviderBing, p)
	})

	t.Run("accepts ddg alias", func(t *testing.T) {
		t.Parallel()

		p, err := serprace.ParseProvider("ddg")

		require.NoError(t, err)
		assert.Equal(t, serprace.ProviderDuckDuckGo, p)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		t.Parallel()

		_, err := serprace.ParseProvider("yahoo")

		assert.Equal(t, serprace.EUNSUPPORTED, serprace.ErrorCode(err))
	})
}

func TestParseProviders(t *testing.T) {
	t.Parallel()

	t.Run("expands all in racing order", func(t *testing.T) {
		t.Parallel()

		ps, err := serprace.ParseProviders([]string{"all"})

		require.NoError(t, err)
		assert.Equal(t, serprace.Providers(), ps)
	})

	t.Run("drops duplicates preserving order", func(t *testing.T) {
		t.Parallel()

		ps, err := serprace.ParseProviders([]string{"bing", "google", "bing"})

		require.NoError(t, err)
		assert.Equal(t, []serprace.Provider{serprace.ProviderBing, serprace.ProviderGoogle}, ps)
	})

	t.Run("requires at least one provider", func(t *testing.T) {
		t.Parallel()

		_, err := serprace.ParseProviders(nil)

		assert.Equal(t, serprace.EINVALID, serprace.ErrorCode(err))
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("blank text is invalid", func(t *testing.T) {
		t.Parallel()

		err := serprace.Query{Text: "   "}.Validate()

		assert.Equal(t, serprace.EINVALID, serprace.ErrorCode(err))
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		t.Parallel()

		q := serprace.Query{Text: "golang"}

		assert.Equal(t, serprace.DefaultLimit, q.ResultLimit())
	})

	t.Run("page size is capped", func(t *testing.T) {
		t.Parallel()

		q := serprace.Query{Text: "golang", Limit: 50}

		assert.Equal(t, 50, q.ResultLimit())
		assert.Equal(t, serprace.MaxPageResults, q.PageSize())
	})
}
