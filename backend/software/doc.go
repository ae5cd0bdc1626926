// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements render.Backend on the CPU.
//
// Triangles are rasterized into an *image.RGBA with a top-left fill rule, so
// the two triangles of a quad never cover a pixel twice. Textures are sampled
// with nearest filtering and a repeating address mode, and blended with
// straight source-over alpha (the equivalent of glBlendFunc(GL_SRC_ALPHA,
// GL_ONE_MINUS_SRC_ALPHA) for color). Pixels in the target are straight, not
// premultiplied, RGBA.
//
// The backend needs no GPU and is used for headless rendering, screenshots
// and pixel tests:
//
//	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
//	b := software.New(render.BackendOptions{Target: img})
//	r, _ := render.NewRenderer(b)
//
// Importing the package registers it as render.BackendSoftware.
package software
