// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"image"

	"github.com/gogpu/ggui/render"
	"golang.org/x/image/math/f32"
)

func init() {
	render.Register(render.BackendSoftware, func(opts render.BackendOptions) (render.Backend, error) {
		return New(opts), nil
	})
}

// ErrTextureDestroyed is returned when uploading to a destroyed texture.
var ErrTextureDestroyed = errors.New("software: texture destroyed")

// Backend is a CPU implementation of render.Backend.
type Backend struct {
	caps   render.Caps
	target *image.RGBA
	owned  bool

	bound      *Texture
	scissor    image.Rectangle
	projection f32.Mat4
	width      int
	height     int
	inFrame    bool
	blend      bool
}

// New creates a software backend. When opts.Target is nil the backend
// allocates a target sized to each frame.
func New(opts render.BackendOptions) *Backend {
	opts = opts.Normalize()
	return &Backend{
		caps: render.Caps{
			ScissorOrigin: render.TopLeft,
			RingSize:      opts.RingSize,
			BatchVertices: opts.BatchVertices,
		},
		target: opts.Target,
		owned:  opts.Target == nil,
	}
}

// Name implements render.Backend.
func (b *Backend) Name() string { return render.BackendSoftware }

// Caps implements render.Backend.
func (b *Backend) Caps() render.Caps { return b.caps }

// Image returns the render target. It is nil before the first frame when the
// backend allocates its own target.
func (b *Backend) Image() *image.RGBA { return b.target }

// SetTarget replaces the render target. nil makes the backend allocate its
// own target again.
func (b *Backend) SetTarget(img *image.RGBA) {
	b.target = img
	b.owned = img == nil
}

// BeginFrame implements render.Backend.
func (b *Backend) BeginFrame(width, height int, projection f32.Mat4) error {
	if b.owned && (b.target == nil || b.target.Rect.Dx() != width || b.target.Rect.Dy() != height) {
		b.target = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	b.width, b.height = width, height
	b.projection = projection
	b.scissor = image.Rect(0, 0, width, height)
	b.blend = true
	b.inFrame = true
	return nil
}

// EndFrame implements render.Backend.
func (b *Backend) EndFrame() error {
	b.blend = false
	b.inFrame = false
	return nil
}

// NewTexture implements render.Backend.
func (b *Backend) NewTexture(width, height int) (render.Texture, error) {
	return &Texture{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// BindTexture implements render.Backend.
func (b *Backend) BindTexture(t render.Texture) {
	tex, _ := t.(*Texture)
	b.bound = tex
}

// SetScissor implements render.Backend.
func (b *Backend) SetScissor(r render.Rect) {
	b.scissor = image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Draw implements render.Backend.
func (b *Backend) Draw(slot int, vertices []render.Vertex) {
	if !b.inFrame || b.target == nil {
		render.Logger().Warn("software: draw outside of a frame", "slot", slot)
		return
	}
	clip := b.scissor.Intersect(image.Rect(0, 0, b.width, b.height)).Intersect(b.target.Rect)
	if clip.Empty() {
		return
	}
	for i := 0; i+2 < len(vertices); i += 3 {
		b.triangle(clip, vertices[i], vertices[i+1], vertices[i+2])
	}
}

// Close implements render.Backend.
func (b *Backend) Close() error {
	b.bound = nil
	if b.owned {
		b.target = nil
	}
	return nil
}

// Texture is a CPU texture.
type Texture struct {
	img *image.RGBA
}

// Upload implements render.Texture.
func (t *Texture) Upload(pixels []byte) error {
	if t.img == nil {
		return ErrTextureDestroyed
	}
	copy(t.img.Pix, pixels)
	return nil
}

// Destroy implements render.Texture.
func (t *Texture) Destroy() {
	t.img = nil
}

// Image returns the texture pixels, or nil after Destroy.
func (t *Texture) Image() *image.RGBA { return t.img }
