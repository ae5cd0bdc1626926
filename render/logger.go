// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by render and the backends.
// Pass nil to restore the default silent logger.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame statistics, bitmap validations
//   - [slog.LevelInfo]: backend selection, adapter info
//   - [slog.LevelWarn]: GPU call errors (with the ggdebug build tag), dropped draws
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Backend packages log through it so that
// a single SetLogger call configures the whole rendering stack.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
