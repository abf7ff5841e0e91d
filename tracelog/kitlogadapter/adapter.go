// Package kitlogadapter adapts a github.com/go-kit/log.Logger to the
// tracelog.Logger interface the engine consumes.
package kitlogadapter

import (
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/jec/moses-pg/tracelog"
)

type Logger struct {
	logger kitlog.Logger
}

func NewLogger(logger kitlog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Log(ctx context.Context, lvl tracelog.LogLevel, msg string, data map[string]any) {
	logger := kitlog.With(l.logger, "message", msg)
	for k, v := range data {
		logger = kitlog.With(logger, k, v)
	}

	switch lvl {
	case tracelog.LogLevelTrace:
		logger = level.Debug(logger)
	case tracelog.LogLevelDebug:
		logger = level.Debug(logger)
	case tracelog.LogLevelInfo:
		logger = level.Info(logger)
	case tracelog.LogLevelWarn:
		logger = level.Warn(logger)
	case tracelog.LogLevelError:
		logger = level.Error(logger)
	default:
		logger = level.Error(logger)
	}

	logger.Log()
}
