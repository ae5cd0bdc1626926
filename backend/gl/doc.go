// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl implements render.Backend on OpenGL 3.3 core.
//
// The caller owns the GL context: it must be current on the calling thread
// when New is called and for every later call into the backend. Vertices
// go through a ring of vertex buffer objects, each with its own vertex array
// object, orphaned with glBufferData before every upload.
//
// GL scissor rectangles have a bottom-left origin; the backend advertises
// render.BottomLeft and the renderer converts clip rectangles accordingly.
//
// Building with -tags ggdebug checks glGetError after every GL call group
// and logs failures through render.Logger.
package gl
