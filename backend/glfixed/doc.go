// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glfixed implements render.Backend on the OpenGL 2.1 fixed-function
// pipeline, for drivers without shader support worth using.
//
// Projection is loaded into the GL projection matrix, vertices are drawn from
// client-side arrays and textures are modulated by the vertex color with
// GL_MODULATE. Texture sizes must be powers of two. As with package gl, the
// GL context must be current on the calling thread and scissor rectangles
// use a bottom-left origin.
package glfixed
