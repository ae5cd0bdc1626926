// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// DefaultBatchVertices is the default batch capacity: 2048 quads of two
// triangles each.
const DefaultBatchVertices = 6 * 2048

// Batch is the run of triangles accumulated since the last flush. All of them
// sample the same bitmap.
type Batch struct {
	// Vertices holds the accumulated vertices. Its capacity is fixed.
	Vertices []Vertex
	// Bitmap is the bitmap every vertex samples. Plain color uses the
	// renderer's 1x1 white bitmap.
	Bitmap *Bitmap
	// ID increments every time the batch is submitted.
	ID uint32

	flushing bool
}

func newBatch(capacity int) Batch {
	return Batch{Vertices: make([]Vertex, 0, capacity)}
}

// Len returns the number of accumulated vertices.
func (b *Batch) Len() int { return len(b.Vertices) }

// Cap returns the vertex capacity.
func (b *Batch) Cap() int { return cap(b.Vertices) }

// reset drops the accumulated vertices without submitting them.
func (b *Batch) reset() {
	b.Vertices = b.Vertices[:0]
	b.Bitmap = nil
}
