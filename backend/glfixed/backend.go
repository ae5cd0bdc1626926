// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfixed

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/gogpu/ggui/render"
	"golang.org/x/image/math/f32"
)

func init() {
	render.Register(render.BackendGLFixed, func(opts render.BackendOptions) (render.Backend, error) {
		return New(opts)
	})
}

var (
	// ErrInit is returned when the GL function pointers cannot be loaded.
	ErrInit = errors.New("glfixed: init failed")

	// ErrTextureDestroyed is returned when uploading to a destroyed texture.
	ErrTextureDestroyed = errors.New("glfixed: texture destroyed")
)

// clientArray describes one client-side vertex array inside render.Vertex.
type clientArray struct {
	size   int32
	xtype  uint32
	offset uintptr
	set    func(size int32, xtype uint32, stride int32, pointer unsafe.Pointer)
}

var clientArrays = []clientArray{
	{size: 2, xtype: gl.FLOAT, offset: unsafe.Offsetof(render.Vertex{}.X), set: gl.VertexPointer},
	{size: 2, xtype: gl.FLOAT, offset: unsafe.Offsetof(render.Vertex{}.U), set: gl.TexCoordPointer},
	{size: 4, xtype: gl.UNSIGNED_BYTE, offset: unsafe.Offsetof(render.Vertex{}.Col), set: gl.ColorPointer},
}

// Backend implements render.Backend on OpenGL 2.1.
type Backend struct {
	caps render.Caps

	// ring holds the client arrays. GL reads them during glDrawArrays, so
	// they stay pinned for the backend's lifetime.
	ring   [][]render.Vertex
	pinner runtime.Pinner

	bound   *Texture
	inFrame bool
	closed  bool
}

// New creates the backend on the current GL context.
func New(opts render.BackendOptions) (*Backend, error) {
	opts = opts.Normalize()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)

	b := &Backend{
		caps: render.Caps{
			PowerOfTwo:     true,
			ScissorOrigin:  render.BottomLeft,
			MaxTextureSize: int(maxTex),
			RingSize:       opts.RingSize,
			BatchVertices:  opts.BatchVertices,
		},
	}
	b.ring = make([][]render.Vertex, opts.RingSize)
	for i := range b.ring {
		b.ring[i] = make([]render.Vertex, opts.BatchVertices)
		b.pinner.Pin(&b.ring[i][0])
	}
	check("init")
	render.Logger().Info("glfixed: backend ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return b, nil
}

// Name implements render.Backend.
func (b *Backend) Name() string { return render.BackendGLFixed }

// Caps implements render.Backend.
func (b *Backend) Caps() render.Caps { return b.caps }

// BeginFrame implements render.Backend.
func (b *Backend) BeginFrame(width, height int, projection f32.Mat4) error {
	if b.closed {
		return render.ErrClosed
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.MatrixMode(gl.PROJECTION)
	cols := render.ColumnMajor(projection)
	gl.LoadMatrixf(&cols[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.LIGHTING)
	gl.Enable(gl.TEXTURE_2D)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(0, 0, int32(width), int32(height))

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.EnableClientState(gl.COLOR_ARRAY)
	b.applyBound()
	check("BeginFrame")

	b.inFrame = true
	return nil
}

// frameCaps are the capabilities BeginFrame enables and EndFrame disables.
var frameCaps = []uint32{gl.TEXTURE_2D, gl.BLEND, gl.SCISSOR_TEST}

// releaseFrame turns the frame capabilities off and flushes the queued
// commands to the driver.
func releaseFrame(disable func(uint32), flush func()) {
	for _, c := range frameCaps {
		disable(c)
	}
	flush()
}

// EndFrame implements render.Backend.
func (b *Backend) EndFrame() error {
	b.inFrame = false
	gl.DisableClientState(gl.COLOR_ARRAY)
	gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.DisableClientState(gl.VERTEX_ARRAY)
	releaseFrame(gl.Disable, gl.Flush)
	check("EndFrame")
	return nil
}

// NewTexture implements render.Backend.
func (b *Backend) NewTexture(width, height int) (render.Texture, error) {
	if !render.IsPowerOfTwo(width) || !render.IsPowerOfTwo(height) {
		return nil, fmt.Errorf("%w: %dx%d", render.ErrNotPowerOfTwo, width, height)
	}
	t := &Texture{b: b, width: width, height: height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	b.applyBound()
	check("NewTexture")
	return t, nil
}

// BindTexture implements render.Backend.
func (b *Backend) BindTexture(t render.Texture) {
	tex, _ := t.(*Texture)
	b.bound = tex
	b.applyBound()
	check("BindTexture")
}

func (b *Backend) applyBound() {
	var id uint32
	if b.bound != nil {
		id = b.bound.id
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// SetScissor implements render.Backend. r has a bottom-left origin.
func (b *Backend) SetScissor(r render.Rect) {
	gl.Scissor(int32(r.X), int32(r.Y), int32(max(r.W, 0)), int32(max(r.H, 0)))
	check("SetScissor")
}

// Draw implements render.Backend.
func (b *Backend) Draw(slot int, vertices []render.Vertex) {
	if !b.inFrame {
		render.Logger().Warn("glfixed: draw outside of a frame", "slot", slot)
		return
	}
	if len(vertices) == 0 || slot < 0 || slot >= len(b.ring) {
		return
	}
	n := copy(b.ring[slot], vertices)
	base := unsafe.Pointer(&b.ring[slot][0])
	for _, a := range clientArrays {
		a.set(a.size, a.xtype, int32(render.VertexSize), unsafe.Add(base, a.offset))
	}
	gl.DrawArrays(gl.TRIANGLES, 0, int32(n))
	check("Draw")
}

// Close implements render.Backend.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.bound = nil
	b.pinner.Unpin()
	b.ring = nil
	return nil
}

// Texture is a GL texture name.
type Texture struct {
	b      *Backend
	id     uint32
	width  int
	height int
}

// ID returns the GL texture name, 0 after Destroy.
func (t *Texture) ID() uint32 { return t.id }

// Upload implements render.Texture.
func (t *Texture) Upload(pixels []byte) error {
	if t.id == 0 {
		return ErrTextureDestroyed
	}
	if len(pixels) < t.width*t.height*4 {
		return fmt.Errorf("glfixed: upload of %d bytes to %dx%d texture", len(pixels), t.width, t.height)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	t.b.applyBound()
	check("Upload")
	return nil
}

// Destroy implements render.Texture.
func (t *Texture) Destroy() {
	if t.id == 0 {
		return
	}
	if t.b.bound == t {
		t.b.bound = nil
	}
	if !t.b.closed {
		gl.DeleteTextures(1, &t.id)
		check("Destroy")
	}
	t.id = 0
}
