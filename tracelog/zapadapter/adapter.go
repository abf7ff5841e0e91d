// Package zapadapter adapts a go.uber.org/zap.Logger to the tracelog.Logger
// interface the engine consumes.
package zapadapter

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jec/moses-pg/tracelog"
)

type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger}
}

func (pl *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var zlevel zapcore.Level
	switch level {
	case tracelog.LogLevelTrace:
		zlevel = zapcore.DebugLevel - 1
	case tracelog.LogLevelDebug:
		zlevel = zapcore.DebugLevel
	case tracelog.LogLevelInfo:
		zlevel = zapcore.InfoLevel
	case tracelog.LogLevelWarn:
		zlevel = zapcore.WarnLevel
	case tracelog.LogLevelError:
		zlevel = zapcore.ErrorLevel
	default:
		zlevel = zapcore.DebugLevel
	}

	if ce := pl.logger.Check(zlevel, msg); ce != nil {
		fields := make([]zap.Field, 0, len(data))
		for k, v := range data {
			fields = append(fields, zap.Any(k, v))
		}
		ce.Write(fields...)
	}
}
