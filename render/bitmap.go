// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Bitmap is a GPU texture created by a Renderer.
//
// The creator owns it and must Close it before closing the Renderer. Closing
// flushes any pending batch that samples the bitmap and unbinds it if bound,
// so a bitmap can be released in the middle of a frame.
type Bitmap struct {
	r      *Renderer
	tex    Texture
	width  int
	height int
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Bounds returns the rectangle (0, 0, Width, Height).
func (b *Bitmap) Bounds() Rect { return Rect{W: b.width, H: b.height} }

// Texture returns the backend texture, or nil after Close.
func (b *Bitmap) Texture() Texture { return b.tex }

// SetData replaces the pixels with row-major RGBA8 data of exactly
// Width*Height*4 bytes. A nil slice uploads transparent black.
//
// Pending triangles sampling the old pixels are drawn first.
func (b *Bitmap) SetData(pixels []byte) error {
	if b.tex == nil {
		return ErrClosed
	}
	want := b.width * b.height * 4
	if pixels == nil {
		pixels = make([]byte, want)
	}
	if len(pixels) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrPixelDataSize, len(pixels), want, b.width, b.height)
	}
	b.r.FlushBitmap(b)
	b.r.BindBitmap(b)
	if err := b.tex.Upload(pixels); err != nil {
		return fmt.Errorf("render: upload bitmap: %w", err)
	}
	b.r.stats.Validations++
	return nil
}

// Close releases the texture. It is safe to call more than once.
func (b *Bitmap) Close() {
	if b.tex == nil {
		return
	}
	b.r.FlushBitmap(b)
	if b.r.boundValid && b.r.bound == b {
		b.r.BindBitmap(nil)
	}
	b.tex.Destroy()
	b.tex = nil
}
