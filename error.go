package serprace

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNSUPPORTED = "unsupported"

	// ELAUNCH is returned when a browser session fails to start.
	ELAUNCH = "launch"

	// ESESSIONDIED is returned when the browser process or its control
	// channel is lost mid-operation. It is fatal for the current pipeline.
	ESESSIONDIED = "session_died"

	// EBLOCKED marks markup recognized as an anti-automation interstitial.
	// It is local to one strategy and never surfaces past a pipeline.
	EBLOCKED = "blocked"

	// EEXHAUSTED is returned when every strategy ran cleanly but none
	// produced organic results.
	EEXHAUSTED = "exhausted"

	// EALLFAILED is returned when no racer produced a winning outcome.
	EALLFAILED = "all_failed"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("serprace error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var raceErr *RaceError
	if errors.As(err, &raceErr) {
		return EALLFAILED
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var raceErr *RaceError
	if errors.As(err, &raceErr) {
		return raceErr.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}
