package serprace_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/serprace"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := serprace.Errorf(serprace.EUNSUPPORTED, "unsupported provider %q", "yahoo")

	assert.Equal(t, serprace.EUNSUPPORTED, serprace.ErrorCode(err))
	assert.Equal(t, "unsupported provider \"yahoo\"", serprace.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, serprace.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, serprace.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("running pipeline: %w", serprace.Errorf(serprace.ESESSIONDIED, "browser gone"))

	assert.Equal(t, serprace.ESESSIONDIED, serprace.ErrorCode(err))
	assert.Equal(t, "browser gone", serprace.ErrorMessage(err))
}

func TestErrorCode_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, serprace.EINTERNAL, serprace.ErrorCode(err))
	assert.Equal(t, "Internal error", serprace.ErrorMessage(err))
}

func TestErrorCode_RaceError(t *testing.T) {
	t.Parallel()

	err := &serprace.RaceError{Outcomes: []*serprace.Outcome{
		{Provider: serprace.ProviderGoogle, Kind: serprace.OutcomeSessionDied, Err: serprace.Errorf(serprace.ESESSIONDIED, "crashed")},
		{Provider: serprace.ProviderBing, Kind: serprace.OutcomeEmpty, Attempts: []serprace.Attempt{{Strategy: "direct"}, {Strategy: "homepage"}}},
	}}

	assert.Equal(t, serprace.EALLFAILED, serprace.ErrorCode(err))
	assert.Contains(t, serprace.ErrorMessage(err), "google: session_died: crashed")
	assert.Contains(t, serprace.ErrorMessage(err), "bing: empty (direct=0, homepage=0)")
}
