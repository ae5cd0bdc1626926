package ggui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/value"
)

var (
	// ErrClosed is returned by Core methods after Close.
	ErrClosed = errors.New("ggui: closed")

	// ErrSyncFailed is returned by Bind when the widget rejects the value.
	// The connection stays bound.
	ErrSyncFailed = errors.New("ggui: sync to widget failed")
)

// Core owns a renderer and the value group its widgets bind to. It has an
// explicit lifetime: create it with New, release it with Close.
//
// Core is not safe for concurrent use; drive it from the UI thread.
type Core struct {
	cfg      Config
	renderer *render.Renderer
	values   *value.Group
	closed   bool
}

// New opens a backend and creates the renderer.
//
// The backend is chosen in this order: WithBackend, WithBackendName,
// Config.Backend. "auto" or an empty name picks the best registered backend.
func New(cfg Config, opts ...Option) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case o.logger != nil:
		SetLogger(o.logger)
	case cfg.LogLevel != "":
		level, _ := cfg.Level()
		SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	b := o.backend
	if b == nil {
		var err error
		b, err = openBackend(cfg, &o)
		if err != nil {
			return nil, err
		}
	}

	r, err := render.NewRenderer(b)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("ggui: %w", err)
	}

	values := o.values
	if values == nil {
		values = value.NewGroup()
	}
	Logger().Info("ggui: core ready", "backend", b.Name())
	return &Core{cfg: cfg, renderer: r, values: values}, nil
}

func openBackend(cfg Config, o *options) (render.Backend, error) {
	name := cfg.Backend
	if o.backendName != "" {
		name = o.backendName
	}
	bo := cfg.backendOptions()
	bo.Device = o.device
	bo.Target = o.target

	if name == "" || name == BackendAuto {
		return render.Default(bo)
	}
	return render.Open(name, bo)
}

// Config returns the configuration the core was created with.
func (c *Core) Config() Config { return c.cfg }

// Renderer returns the renderer, nil after Close.
func (c *Core) Renderer() *render.Renderer { return c.renderer }

// Values returns the value group.
func (c *Core) Values() *value.Group { return c.values }

// Backend returns the name of the backend in use.
func (c *Core) Backend() string {
	if c.closed {
		return ""
	}
	return c.renderer.Backend().Name()
}

// Paint draws one frame of the given size: it calls fn between BeginPaint
// and EndPaint.
func (c *Core) Paint(width, height int, fn func(r *render.Renderer)) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.renderer.BeginPaint(width, height); err != nil {
		return err
	}
	fn(c.renderer)
	return c.renderer.EndPaint()
}

// Bind connects w to the named value, creating the value with type t when
// it does not exist yet. The value is pushed into the widget; if the widget
// rejects it, Bind returns the value with an error wrapping ErrSyncFailed.
func (c *Core) Bind(conn *value.Connection, name string, t value.Type, w value.Widget) (*value.Value, error) {
	if c.closed {
		return nil, ErrClosed
	}
	v := c.values.CreateValueIfNeeded(value.NewID(name), t)
	if !conn.Connect(v, w) {
		return v, fmt.Errorf("%w: %s", ErrSyncFailed, name)
	}
	return v, nil
}

// Close releases the renderer and its backend. Values are left intact so
// they can outlive the renderer. Close is idempotent.
func (c *Core) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.renderer.Close()
	c.renderer = nil
	return err
}
