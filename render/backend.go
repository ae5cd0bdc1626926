// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/math/f32"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (for example a gogpu.App) owns the device and hands it to the wgpu
// backend; ggui does not create a device of its own when one is provided.
type DeviceHandle = gpucontext.DeviceProvider

// Texture is a backend texture holding the pixels of one Bitmap.
type Texture interface {
	// Upload replaces the whole texture with row-major RGBA8 pixels.
	// The Renderer binds the texture before calling Upload.
	Upload(pixels []byte) error

	// Destroy releases the GPU memory. The texture is unbound at this point.
	Destroy()
}

// Caps describes what a backend needs from the Renderer.
type Caps struct {
	// PowerOfTwo requires bitmap dimensions to be powers of two.
	PowerOfTwo bool
	// MaxTextureSize limits bitmap dimensions. Zero means unlimited.
	MaxTextureSize int
	// ScissorOrigin is the convention SetScissor rectangles use.
	ScissorOrigin Origin
	// RingSize is the number of vertex buffers allocated for Draw slots.
	RingSize int
	// BatchVertices is the capacity of each vertex buffer.
	BatchVertices int
}

// Backend is the GPU strategy behind a Renderer.
//
// The Renderer guarantees the call order: BeginFrame, then any number of
// BindTexture, SetScissor and Draw calls, then EndFrame. BindTexture is only
// called when the texture actually changes. Draw receives slots in ring order
// and at most BatchVertices vertices.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// Caps returns the backend capabilities. It does not change after
	// construction.
	Caps() Caps

	// BeginFrame prepares a frame covering a width x height target: viewport
	// and scissor set to the full target, source-over alpha blending on,
	// depth testing off, scissor test on, projection uploaded.
	BeginFrame(width, height int, projection f32.Mat4) error

	// EndFrame turns blending and scissor off and hands the recorded work to
	// the driver without waiting for it.
	EndFrame() error

	// NewTexture creates an RGBA8 texture with nearest filtering and repeat
	// wrapping.
	NewTexture(width, height int) (Texture, error)

	// BindTexture makes t the texture sampled by subsequent draws.
	// nil unbinds.
	BindTexture(t Texture)

	// SetScissor restricts drawing to r, given in the backend's ScissorOrigin.
	SetScissor(r Rect)

	// Draw uploads vertices into ring slot and draws them as a triangle list
	// with a single draw call.
	Draw(slot int, vertices []Vertex)

	// Close releases all backend resources.
	Close() error
}

// BackendOptions configures a backend at construction.
type BackendOptions struct {
	// RingSize is the number of vertex buffers. Default: DefaultRingSize.
	RingSize int

	// BatchVertices is the vertex capacity of one batch and of each vertex
	// buffer. Default: DefaultBatchVertices.
	BatchVertices int

	// Device is the host GPU device for the wgpu backend. When nil the
	// backend opens its own device.
	Device DeviceHandle

	// Target is the destination image for the software backend. When nil
	// the backend allocates one sized to each frame.
	Target *image.RGBA
}

// DefaultBackendOptions returns the default backend options.
func DefaultBackendOptions() BackendOptions {
	return BackendOptions{
		RingSize:      DefaultRingSize,
		BatchVertices: DefaultBatchVertices,
	}
}

// Normalize fills zero fields with defaults and clamps BatchVertices to a
// whole number of triangles (at least one quad).
func (o BackendOptions) Normalize() BackendOptions {
	if o.RingSize <= 0 {
		o.RingSize = DefaultRingSize
	}
	if o.BatchVertices <= 0 {
		o.BatchVertices = DefaultBatchVertices
	}
	o.BatchVertices -= o.BatchVertices % 3
	if o.BatchVertices < 6 {
		o.BatchVertices = 6
	}
	return o
}
