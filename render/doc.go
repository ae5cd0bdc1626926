// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render batches 2D widget drawing into as few GPU draw calls as
// possible.
//
// A [Renderer] accumulates textured triangles into a [Batch]. The batch is
// submitted when the bitmap changes, when it is full, when the clip rect
// changes, or when the frame ends. Every submission binds the batch bitmap
// (only if it differs from the bound one), writes the vertices into the next
// buffer of a small ring and issues exactly one draw call.
//
// # Backends
//
// The GPU specific part lives behind the [Backend] interface. Implementations
// register themselves from init() and are selected by name:
//
//	import _ "github.com/gogpu/ggui/backend/software"
//
//	b, err := render.Open(render.BackendSoftware, render.DefaultBackendOptions())
//	r, err := render.NewRenderer(b)
//
// Available backends:
//
//   - backend/wgpu: WebGPU through gogpu/wgpu HAL (Vulkan, Metal, DX12, GLES)
//   - backend/gl: OpenGL 3.3 core profile
//   - backend/glfixed: OpenGL 2.1 fixed-function pipeline
//   - backend/software: CPU rasteriser into an *image.RGBA
//   - recording: command log, used for diagnostics and tests
//
// # Frame
//
//	if err := r.BeginPaint(w, h); err != nil {
//	    return err
//	}
//	r.DrawBitmap(dst, src, skin)
//	r.DrawRectFill(bar, render.RGBA(40, 120, 220, 255))
//	old := r.SetClipRect(content, true)
//	...
//	r.SetClipRect(old, false)
//	return r.EndPaint()
//
// Coordinates are pixels with the origin at the top-left of the target and Y
// growing down. Backends whose scissor origin is bottom-left get converted
// rectangles (see [ScissorRect]).
//
// A Renderer is not safe for concurrent use. It belongs to the UI thread.
package render
