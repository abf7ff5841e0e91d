// Package log15adapter adapts a gopkg.in/inconshreveable/log15.v2 logger to
// the tracelog.Logger interface the engine consumes.
package log15adapter

import (
	"context"

	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/jec/moses-pg/tracelog"
)

type Logger struct {
	logger log15.Logger
}

func NewLogger(logger log15.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	logArgs := make([]any, 0, len(data)*2)
	for k, v := range data {
		logArgs = append(logArgs, k, v)
	}

	switch level {
	case tracelog.LogLevelTrace:
		logArgs = append(logArgs, "PGX_LOG_LEVEL", level)
		l.logger.Debug(msg, logArgs...)
	case tracelog.LogLevelDebug:
		l.logger.Debug(msg, logArgs...)
	case tracelog.LogLevelInfo:
		l.logger.Info(msg, logArgs...)
	case tracelog.LogLevelWarn:
		l.logger.Warn(msg, logArgs...)
	case tracelog.LogLevelError:
		l.logger.Error(msg, logArgs...)
	default:
		logArgs = append(logArgs, "INVALID_PGX_LOG_LEVEL", level)
		l.logger.Error(msg, logArgs...)
	}
}
