// Package logrusadapter adapts a github.com/sirupsen/logrus logger to the
// tracelog.Logger interface the engine consumes.
package logrusadapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jec/moses-pg/tracelog"
)

type Logger struct {
	logger logrus.FieldLogger
}

func NewLogger(logger logrus.FieldLogger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var logger logrus.FieldLogger
	if data != nil {
		fields := make(logrus.Fields, len(data))
		for k, v := range data {
			fields[k] = v
		}
		logger = l.logger.WithFields(fields)
	} else {
		logger = l.logger
	}

	switch level {
	case tracelog.LogLevelTrace:
		logger.WithField("PGX_LOG_LEVEL", level).Debug(msg)
	case tracelog.LogLevelDebug:
		logger.Debug(msg)
	case tracelog.LogLevelInfo:
		logger.Info(msg)
	case tracelog.LogLevelWarn:
		logger.Warn(msg)
	case tracelog.LogLevelError:
		logger.Error(msg)
	default:
		logger.WithField("INVALID_PGX_LOG_LEVEL", level).Error(msg)
	}
}
