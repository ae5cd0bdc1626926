// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/f32"
)

// Renderer batches widget drawing and drives a Backend.
//
// All drawing happens between BeginPaint and EndPaint. Pending triangles are
// submitted when the bitmap changes, the batch is full, the clip rect changes
// or the frame ends.
type Renderer struct {
	backend Backend
	caps    Caps

	batch Batch
	ring  Ring
	white *Bitmap

	// Bind cache. boundValid is false until the first bind of a frame.
	bound      *Bitmap
	boundValid bool

	painting   bool
	closed     bool
	frames     uint64
	width      int
	height     int
	clip       Rect
	tx, ty     int
	opacity    float32
	projection f32.Mat4
	stats      Stats
}

// NewRenderer creates a renderer on top of b. The renderer takes ownership of
// the backend and closes it in Close.
func NewRenderer(b Backend) (*Renderer, error) {
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	caps := b.Caps()
	if caps.RingSize <= 0 {
		caps.RingSize = DefaultRingSize
	}
	if caps.BatchVertices < 6 {
		caps.BatchVertices = DefaultBatchVertices
	}
	caps.BatchVertices -= caps.BatchVertices % 3

	r := &Renderer{
		backend: b,
		caps:    caps,
		batch:   newBatch(caps.BatchVertices),
		ring:    NewRing(caps.RingSize),
		opacity: 1,
	}

	white, err := r.CreateBitmap(1, 1, []byte{255, 255, 255, 255})
	if err != nil {
		return nil, fmt.Errorf("render: create default bitmap: %w", err)
	}
	r.white = white
	Logger().Debug("render: renderer created",
		"backend", b.Name(),
		"ring", caps.RingSize,
		"batch", caps.BatchVertices)
	return r, nil
}

// Close releases the default bitmap and the backend. Bitmaps created by the
// caller must be closed first.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	if r.painting {
		r.batch.reset()
		r.painting = false
	}
	r.white.Close()
	r.closed = true
	return r.backend.Close()
}

// Backend returns the backend the renderer draws with.
func (r *Renderer) Backend() Backend { return r.backend }

// Caps returns the effective backend capabilities.
func (r *Renderer) Caps() Caps { return r.caps }

// Painting reports whether a frame is in progress.
func (r *Renderer) Painting() bool { return r.painting }

// Stats returns the counters of the current (or last) frame.
func (r *Renderer) Stats() Stats { return r.stats }

// RingIndex returns the vertex buffer slot used by the last batch.
func (r *Renderer) RingIndex() int { return r.ring.Index() }

// Batch returns the batch being accumulated.
func (r *Renderer) Batch() *Batch { return &r.batch }

// Projection returns the projection of the current frame.
func (r *Renderer) Projection() f32.Mat4 { return r.projection }

// White returns the 1x1 opaque white bitmap used for untextured triangles.
func (r *Renderer) White() *Bitmap { return r.white }

// BeginPaint starts a frame on a width x height target.
//
// The bind cache is invalidated, the clip rect covers the whole target, and
// the translation and opacity are reset.
func (r *Renderer) BeginPaint(width, height int) error {
	if r.closed {
		return ErrClosed
	}
	if r.painting {
		return ErrFrameInProgress
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: invalid target size %dx%d", width, height)
	}

	r.batch.reset()
	r.bound, r.boundValid = nil, false
	r.stats = Stats{Frame: r.frames}
	r.frames++
	r.width, r.height = width, height
	r.clip = Rect{W: width, H: height}
	r.tx, r.ty = 0, 0
	r.opacity = 1
	r.projection = Ortho(width, height)

	if err := r.backend.BeginFrame(width, height, r.projection); err != nil {
		return fmt.Errorf("render: begin frame: %w", err)
	}
	r.painting = true
	return nil
}

// EndPaint submits the pending batch and ends the frame.
func (r *Renderer) EndPaint() error {
	if !r.painting {
		return ErrNoFrame
	}
	r.Flush()
	r.painting = false
	err := r.backend.EndFrame()

	s := r.stats
	if s.Validations > 0 {
		Logger().Debug("render: frame caused bitmap validations", "count", s.Validations)
	}
	Logger().Debug("render: frame",
		"frame", s.Frame,
		"batches", s.Batches,
		"vertices", s.Vertices,
		"binds", s.Binds)
	if err != nil {
		return fmt.Errorf("render: end frame: %w", err)
	}
	return nil
}

// CreateBitmap creates a bitmap from row-major RGBA8 pixels. A nil pixel slice
// creates a transparent bitmap. On failure no GPU memory is left allocated.
func (r *Renderer) CreateBitmap(width, height int, pixels []byte) (*Bitmap, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBitmapSize, width, height)
	}
	if m := r.caps.MaxTextureSize; m > 0 && (width > m || height > m) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidBitmapSize, width, height, m)
	}
	if r.caps.PowerOfTwo && (!IsPowerOfTwo(width) || !IsPowerOfTwo(height)) {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotPowerOfTwo, width, height)
	}
	if pixels != nil && len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrPixelDataSize, len(pixels), width*height*4, width, height)
	}

	tex, err := r.backend.NewTexture(width, height)
	if err != nil {
		return nil, fmt.Errorf("render: create texture: %w", err)
	}
	b := &Bitmap{r: r, tex: tex, width: width, height: height}
	if err := b.SetData(pixels); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// BindBitmap makes b the bitmap sampled by the next draw. nil unbinds.
// The backend is only called when b differs from the bound bitmap.
func (r *Renderer) BindBitmap(b *Bitmap) {
	if r.boundValid && r.bound == b {
		return
	}
	r.bound, r.boundValid = b, true
	var tex Texture
	if b != nil {
		tex = b.tex
	}
	r.backend.BindTexture(tex)
	r.stats.Binds++
}

// Flush submits the pending batch. It is a no-op for an empty batch and
// while a flush is already running.
func (r *Renderer) Flush() {
	b := &r.batch
	if len(b.Vertices) == 0 || b.flushing {
		return
	}
	if !r.painting {
		Logger().Warn("render: dropping batch outside of a frame", "vertices", len(b.Vertices))
		b.reset()
		return
	}
	b.flushing = true
	r.renderBatch(b)
	b.Vertices = b.Vertices[:0]
	b.ID++
	b.flushing = false
}

// FlushBitmap submits the pending batch if it samples b.
func (r *Renderer) FlushBitmap(b *Bitmap) {
	if b == nil {
		b = r.white
	}
	if r.batch.Bitmap == b && len(r.batch.Vertices) > 0 {
		r.Flush()
	}
}

// renderBatch binds the batch bitmap, advances the ring and issues one draw.
func (r *Renderer) renderBatch(b *Batch) {
	bm := b.Bitmap
	if bm == nil {
		bm = r.white
	}
	r.BindBitmap(bm)
	slot := r.ring.Next()
	r.backend.Draw(slot, b.Vertices)
	r.stats.Batches++
	r.stats.Vertices += len(b.Vertices)
}

// SetClipRect restricts drawing to rect (in translated coordinates) and
// returns the previous clip rect in the same coordinates. With addToCurrent
// the new clip is intersected with the current one. The result is always
// clipped to the target.
func (r *Renderer) SetClipRect(rect Rect, addToCurrent bool) Rect {
	old := r.clip
	clip := rect.Offset(r.tx, r.ty)
	if addToCurrent {
		clip = clip.Intersect(old)
	}
	clip = clip.Intersect(Rect{W: r.width, H: r.height})

	if r.painting {
		r.Flush()
		r.backend.SetScissor(ScissorRect(clip, r.height, r.caps.ScissorOrigin))
		r.stats.ClipChanges++
	}
	r.clip = clip
	return old.Offset(-r.tx, -r.ty)
}

// ClipRect returns the current clip rect in translated coordinates.
func (r *Renderer) ClipRect() Rect {
	return r.clip.Offset(-r.tx, -r.ty)
}

// Translate moves the origin of subsequent drawing by dx, dy.
func (r *Renderer) Translate(dx, dy int) {
	r.tx += dx
	r.ty += dy
}

// Translation returns the accumulated translation.
func (r *Renderer) Translation() (int, int) { return r.tx, r.ty }

// SetOpacity sets the alpha multiplier for subsequent drawing, in [0, 1].
func (r *Renderer) SetOpacity(o float32) {
	r.opacity = min(max(o, 0), 1)
}

// Opacity returns the alpha multiplier.
func (r *Renderer) Opacity() float32 { return r.opacity }

// reserve returns room for n vertices sampling b, flushing first when the
// bitmap changes or the batch is full. A nil b is the white bitmap.
func (r *Renderer) reserve(b *Bitmap, n int) []Vertex {
	if n > r.batch.Cap() {
		panic(errors.New("render: primitive larger than batch capacity"))
	}
	if b == nil {
		b = r.white
	}
	if r.batch.Bitmap != b || len(r.batch.Vertices)+n > r.batch.Cap() {
		r.Flush()
		r.batch.Bitmap = b
	}
	start := len(r.batch.Vertices)
	r.batch.Vertices = r.batch.Vertices[:start+n]
	return r.batch.Vertices[start:]
}

// AddTriangle appends one triangle sampling b (nil for plain color). The
// translation and opacity are applied to the vertices.
func (r *Renderer) AddTriangle(b *Bitmap, v0, v1, v2 Vertex) {
	dst := r.reserve(b, 3)
	dst[0], dst[1], dst[2] = r.transform(v0), r.transform(v1), r.transform(v2)
}

// AddQuad appends the quad q (corners in drawing order) as two triangles
// (q0, q1, q2) and (q0, q2, q3).
func (r *Renderer) AddQuad(b *Bitmap, q [4]Vertex) {
	dst := r.reserve(b, 6)
	v0, v1, v2, v3 := r.transform(q[0]), r.transform(q[1]), r.transform(q[2]), r.transform(q[3])
	dst[0], dst[1], dst[2] = v0, v1, v2
	dst[3], dst[4], dst[5] = v0, v2, v3
}

func (r *Renderer) transform(v Vertex) Vertex {
	v.X += float32(r.tx)
	v.Y += float32(r.ty)
	v.Col = v.Col.MulAlpha(r.opacity)
	return v
}
