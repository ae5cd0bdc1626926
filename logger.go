package ggui

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/value"
)

// nopHandler is a slog.Handler that discards all records. Enabled returns
// false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for ggui and all its sub-packages.
// By default, ggui produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore silence.
//
// Log levels used by ggui:
//   - [slog.LevelDebug]: batch flushes, failed widget pushes and pulls
//   - [slog.LevelInfo]: backend selection and device creation
//   - [slog.LevelWarn]: dropped draws, GPU errors in ggdebug builds
//
// Example:
//
//	ggui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	render.SetLogger(l)
	value.SetLogger(l)
}

// Logger returns the current logger used by ggui.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
