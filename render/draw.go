// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// DrawBitmap draws the src part of b stretched over dst.
func (r *Renderer) DrawBitmap(dst, src Rect, b *Bitmap) {
	if b == nil {
		return
	}
	r.addRect(dst, src, White, b)
}

// DrawBitmapColored draws the src part of b over dst, multiplied by c.
func (r *Renderer) DrawBitmapColored(dst, src Rect, c Color, b *Bitmap) {
	if b == nil {
		return
	}
	r.addRect(dst, src, c, b)
}

// DrawBitmapTile fills dst by repeating b from its top-left corner.
// Backends sample with a repeating address mode.
func (r *Renderer) DrawBitmapTile(dst Rect, b *Bitmap) {
	if b == nil {
		return
	}
	r.addRect(dst, Rect{W: dst.W, H: dst.H}, White, b)
}

// DrawRectFill fills dst with c.
func (r *Renderer) DrawRectFill(dst Rect, c Color) {
	if dst.Empty() {
		return
	}
	r.addRect(dst, Rect{}, c, nil)
}

// DrawRect draws the 1 pixel outline of dst with c.
func (r *Renderer) DrawRect(dst Rect, c Color) {
	if dst.Empty() {
		return
	}
	r.DrawRectFill(Rect{X: dst.X, Y: dst.Y, W: dst.W, H: 1}, c)
	r.DrawRectFill(Rect{X: dst.X, Y: dst.Y + dst.H - 1, W: dst.W, H: 1}, c)
	r.DrawRectFill(Rect{X: dst.X, Y: dst.Y + 1, W: 1, H: dst.H - 2}, c)
	r.DrawRectFill(Rect{X: dst.X + dst.W - 1, Y: dst.Y + 1, W: 1, H: dst.H - 2}, c)
}

// addRect appends dst as a quad. Quads entirely outside the clip rect are
// dropped on the CPU.
func (r *Renderer) addRect(dst, src Rect, c Color, b *Bitmap) {
	if !dst.Offset(r.tx, r.ty).Intersects(r.clip) {
		return
	}
	var u0, v0, u1, v1 float32
	if b != nil {
		bw, bh := float32(b.width), float32(b.height)
		u0, v0 = float32(src.X)/bw, float32(src.Y)/bh
		u1, v1 = float32(src.X+src.W)/bw, float32(src.Y+src.H)/bh
	}
	x0, y0 := float32(dst.X), float32(dst.Y)
	x1, y1 := float32(dst.X+dst.W), float32(dst.Y+dst.H)
	r.AddQuad(b, [4]Vertex{
		{X: x0, Y: y0, U: u0, V: v0, Col: c},
		{X: x1, Y: y0, U: u1, V: v0, Col: c},
		{X: x1, Y: y1, U: u1, V: v1, Col: c},
		{X: x0, Y: y1, U: u0, V: v1, Col: c},
	})
}
