// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// DefaultRingSize is the number of vertex buffers a backend cycles through.
// Writing batch k into buffer k mod N lets the driver keep reading earlier
// buffers while new vertices are uploaded.
const DefaultRingSize = 5

// Ring is a cyclic index over N vertex buffer slots.
// Next advances before returning, so after k calls Index is k mod N.
type Ring struct {
	size  int
	index int
}

// NewRing returns a ring with n slots. n < 1 is treated as 1.
func NewRing(n int) Ring {
	if n < 1 {
		n = 1
	}
	return Ring{size: n}
}

// Next advances the ring and returns the slot to write.
func (r *Ring) Next() int {
	r.index = (r.index + 1) % r.size
	return r.index
}

// Index returns the most recently returned slot (0 before the first Next).
func (r *Ring) Index() int { return r.index }

// Size returns the number of slots.
func (r *Ring) Size() int { return r.size }
