// Package zerologadapter adapts a github.com/rs/zerolog.Logger to the
// tracelog.Logger interface the engine consumes.
package zerologadapter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jec/moses-pg/tracelog"
)

type Logger struct {
	logger zerolog.Logger
}

// NewLogger wraps logger, tagging every line with module=moses-pg.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{logger: logger.With().Str("module", "moses-pg").Logger()}
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var zlevel zerolog.Level
	switch level {
	case tracelog.LogLevelNone:
		zlevel = zerolog.NoLevel
	case tracelog.LogLevelError:
		zlevel = zerolog.ErrorLevel
	case tracelog.LogLevelWarn:
		zlevel = zerolog.WarnLevel
	case tracelog.LogLevelInfo:
		zlevel = zerolog.InfoLevel
	case tracelog.LogLevelDebug:
		zlevel = zerolog.DebugLevel
	default:
		zlevel = zerolog.DebugLevel
	}

	evt := l.logger.WithLevel(zlevel)
	for k, v := range data {
		evt = evt.Interface(k, v)
	}
	evt.Msg(msg)
}
