// Package slog decorates serprace services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/serprace"
)

// Ensure LoggingLauncher implements serprace.Launcher.
var _ serprace.Launcher = (*LoggingLauncher)(nil)

// LoggingLauncher wraps a Launcher and logs every launch and close.
type LoggingLauncher struct {
	next   serprace.Launcher
	logger *slog.Logger
}

// NewLoggingLauncher creates a new LoggingLauncher.
func NewLoggingLauncher(next serprace.Launcher, logger *slog.Logger) *LoggingLauncher {
	return &LoggingLauncher{next: next, logger: logger}
}

// Launch delegates to the wrapped launcher. The returned session logs its
// own Close.
func (l *LoggingLauncher) Launch(ctx context.Context) (sess serprace.Session, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin)}
		if sess != nil {
			attrs = append(attrs, "session", sess.ID())
		}
		if err != nil {
			l.logger.Warn("browser launch", append(attrs, "err", err)...)
			return
		}
		l.logger.Info("browser launch", attrs...)
	}(time.Now())

	sess, err = l.next.Launch(ctx)
	if err != nil {
		return nil, err
	}
	return &loggingSession{Session: sess, logger: l.logger}, nil
}

// loggingSession logs when its browser is closed.
type loggingSession struct {
	serprace.Session
	logger *slog.Logger
}

func (s *loggingSession) Close() error {
	err := s.Session.Close()
	if err != nil {
		s.logger.Warn("browser close", "session", s.ID(), "err", err)
		return err
	}
	s.logger.Debug("browser close", "session", s.ID())
	return nil
}
