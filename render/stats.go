// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Stats counts the work submitted during one frame. BeginPaint resets it.
type Stats struct {
	// Frame is the number of frames begun before this one.
	Frame uint64
	// Batches is the number of draw calls issued.
	Batches int
	// Vertices is the total number of vertices drawn.
	Vertices int
	// Binds is the number of texture binds that reached the backend.
	Binds int
	// Validations is the number of bitmap pixel uploads.
	Validations int
	// ClipChanges is the number of scissor updates.
	ClipChanges int
}
