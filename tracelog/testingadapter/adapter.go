// Package testingadapter adapts a testing.TB to the tracelog.Logger
// interface, so engine diagnostics land in `go test -v` output attributed
// to the test that triggered them.
package testingadapter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jec/moses-pg/tracelog"
)

type TB interface {
	Log(args ...any)
}

type Logger struct {
	tb TB
}

func NewLogger(tb TB) *Logger {
	return &Logger{tb: tb}
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+2)
	parts = append(parts, level.String(), msg)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}

	l.tb.Log(strings.Join(parts, " "))
}
