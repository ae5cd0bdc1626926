// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/ggui/render"
	"golang.org/x/image/math/f32"
)

func init() {
	render.Register(render.BackendGL, func(opts render.BackendOptions) (render.Backend, error) {
		return New(opts)
	})
}

var (
	// ErrInit is returned when the GL function pointers cannot be loaded,
	// usually because no context is current.
	ErrInit = errors.New("gl: init failed")

	// ErrShader is returned when the batch program fails to compile or link.
	ErrShader = errors.New("gl: shader program")

	// ErrTextureDestroyed is returned when uploading to a destroyed texture.
	ErrTextureDestroyed = errors.New("gl: texture destroyed")
)

var vertexAttributes = []attribute{
	{location: 0, size: 2, xtype: gl.FLOAT, offset: unsafe.Offsetof(render.Vertex{}.X)},
	{location: 1, size: 2, xtype: gl.FLOAT, offset: unsafe.Offsetof(render.Vertex{}.U)},
	{location: 2, size: 4, xtype: gl.UNSIGNED_BYTE, normalized: true, offset: unsafe.Offsetof(render.Vertex{}.Col)},
}

// Backend implements render.Backend on OpenGL 3.3 core.
type Backend struct {
	caps render.Caps

	program uint32
	projLoc int32
	texLoc  int32

	vaos []uint32
	vbos []uint32

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
			ScissorOrigin:  render.BottomLeft,
			MaxTextureSize: int(maxTex),
			RingSize:       opts.RingSize,
			BatchVertices:  opts.BatchVertices,
		},
	}
	if err := b.initProgram(); err != nil {
		return nil, err
	}
	b.initRing()
	check("init")

	render.Logger().Info("gl: backend ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"ring", b.caps.RingSize)
	return b, nil
}

func compileShader(src string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(msg))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: compile: %s", ErrShader, strings.TrimRight(msg, "\x00"))
	}
	return shader, nil
}

func (b *Backend) initProgram() error {
	vs, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(program)
		return fmt.Errorf("%w: link: %s", ErrShader, strings.TrimRight(msg, "\x00"))
	}

	b.program = program
	b.projLoc = gl.GetUniformLocation(program, gl.Str("u_projection\x00"))
	b.texLoc = gl.GetUniformLocation(program, gl.Str("u_bitmap\x00"))
	return nil
}

// initRing creates one VAO/VBO pair per ring slot so attribute state never
// has to be re-specified when switching slots.
func (b *Backend) initRing() {
	n := int32(b.caps.RingSize)
	b.vaos = make([]uint32, n)
	b.vbos = make([]uint32, n)
	gl.GenVertexArrays(n, &b.vaos[0])
	gl.GenBuffers(n, &b.vbos[0])

	size := b.caps.BatchVertices * render.VertexSize
	for i := range b.vaos {
		gl.BindVertexArray(b.vaos[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
		for _, a := range vertexAttributes {
			gl.EnableVertexAttribArray(a.location)
			gl.VertexAttribPointerWithOffset(a.location, a.size, a.xtype, a.normalized, int32(render.VertexSize), a.offset)
		}
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Name implements render.Backend.
func (b *Backend) Name() string { return render.BackendGL }

// Caps implements render.Backend.
func (b *Backend) Caps() render.Caps { return b.caps }

// BeginFrame implements render.Backend.
func (b *Backend) BeginFrame(width, height int, projection f32.Mat4) error {
	if b.closed {
		return render.ErrClosed
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(0, 0, int32(width), int32(height))

	gl.UseProgram(b.program)
	cols := render.ColumnMajor(projection)
	gl.UniformMatrix4fv(b.projLoc, 1, false, &cols[0])
	gl.Uniform1i(b.texLoc, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	b.applyBound()
	check("BeginFrame")

	b.inFrame = true
	return nil
}

// frameCaps are the capabilities BeginFrame enables and EndFrame disables.
var frameCaps = []uint32{gl.BLEND, gl.SCISSOR_TEST}

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
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)
	releaseFrame(gl.Disable, gl.Flush)
	check("EndFrame")
	return nil
}

// NewTexture implements render.Backend.
func (b *Backend) NewTexture(width, height int) (render.Texture, error) {
	t := &Texture{b: b, width: width, height: height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	b.applyBound()
	check("NewTexture")
	if t.id == 0 {
		return nil, fmt.Errorf("gl: glGenTextures returned no name for %dx%d", width, height)
	}
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
		render.Logger().Warn("gl: draw outside of a frame", "slot", slot)
		return
	}
	if len(vertices) == 0 || slot < 0 || slot >= len(b.vbos) {
		return
	}
	if len(vertices) > b.caps.BatchVertices {
		vertices = vertices[:b.caps.BatchVertices]
	}
	size := b.caps.BatchVertices * render.VertexSize
	gl.BindVertexArray(b.vaos[slot])
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbos[slot])
	// orphan the previous storage so the driver never stalls on it
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*render.VertexSize, unsafe.Pointer(&vertices[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)))
	check("Draw")
}

// Close implements render.Backend.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if len(b.vbos) > 0 {
		gl.DeleteBuffers(int32(len(b.vbos)), &b.vbos[0])
		gl.DeleteVertexArrays(int32(len(b.vaos)), &b.vaos[0])
	}
	b.vbos, b.vaos = nil, nil
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
	b.bound = nil
	check("Close")
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
		return fmt.Errorf("gl: upload of %d bytes to %dx%d texture", len(pixels), t.width, t.height)
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
