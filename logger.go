package rs

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so callers never
// format the arguments.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var (
	silent  = slog.New(discard{})
	current atomic.Pointer[slog.Logger]
)

func init() { current.Store(silent) }

// SetLogger sets the logger used by rs and by runtimes created after the
// call. Nil restores the default, which logs nothing. Safe for concurrent
// use.
//
// Levels:
//   - [slog.LevelDebug]: object created, named, destroyed
//   - [slog.LevelInfo]: context created and destroyed, accelerator chosen
//   - [slog.LevelWarn]: leaks caught by the safety net, GPU fallback
//
// To see object lifecycles on stderr:
//
//	rs.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger. Backends read it so they log
// through the same handler without importing a logging package of their own.
func Logger() *slog.Logger { return current.Load() }

// A runtime that logs implements loggerSetter; NewContext hands it the
// current package logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

func propagateLogger(rt Runtime, l *slog.Logger) {
	if ls, ok := rt.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
