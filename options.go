package ggui

import (
	"image"
	"log/slog"

	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/value"
)

// Option configures a Core during creation. Options override Config values.
//
// Example:
//
//	core, err := ggui.New(cfg,
//	    ggui.WithBackendName("software"),
//	    ggui.WithTarget(img))
type Option func(*options)

type options struct {
	backend     render.Backend
	backendName string
	device      render.DeviceHandle
	target      *image.RGBA
	logger      *slog.Logger
	values      *value.Group
}

// WithBackend uses an already created backend instead of opening one from the
// registry. The Core takes ownership and closes it.
func WithBackend(b render.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithBackendName opens the named registered backend, overriding
// Config.Backend.
func WithBackendName(name string) Option {
	return func(o *options) {
		o.backendName = name
	}
}

// WithDevice hands a host GPU device to the wgpu backend.
//
// Example:
//
//	provider := app.GPUContextProvider()
//	core, err := ggui.New(cfg, ggui.WithDevice(provider))
func WithDevice(d render.DeviceHandle) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithTarget sets the destination image of the software backend.
func WithTarget(img *image.RGBA) Option {
	return func(o *options) {
		o.target = img
	}
}

// WithLogger installs l with SetLogger before the backend is opened,
// overriding Config.LogLevel.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithValues shares an existing value group instead of creating a new one.
func WithValues(g *value.Group) Option {
	return func(o *options) {
		o.values = g
	}
}
