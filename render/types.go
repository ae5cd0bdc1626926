// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "unsafe"

// Color is a straight (non-premultiplied) RGBA8 color. Its memory layout is
// the byte order the vertex shaders read: R, G, B, A.
type Color struct {
	R, G, B, A uint8
}

// White is the neutral vertex color: textures are drawn unmodified.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// RGBA returns a Color from its components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// MulAlpha scales the alpha channel by o, clamped to [0, 1].
func (c Color) MulAlpha(o float32) Color {
	switch {
	case o >= 1:
		return c
	case o <= 0:
		c.A = 0
		return c
	}
	c.A = uint8(float32(c.A)*o + 0.5)
	return c
}

// Vertex is one corner of a batched triangle: position in target pixels,
// texture coordinates normalized to the bitmap and a per-vertex color.
type Vertex struct {
	X, Y float32
	U, V float32
	Col  Color
}

// VertexSize is the size in bytes of a Vertex as uploaded to the GPU.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Rect is an integer rectangle in pixels. X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// NewRect returns a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns the rectangle moved by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersects reports whether both rectangles share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Intersect returns the largest rectangle contained in both r and o.
// The result is the zero Rect if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Origin is the corner a backend measures scissor rectangles from.
type Origin uint8

const (
	// TopLeft scissor rectangles use the same convention as Rect.
	TopLeft Origin = iota
	// BottomLeft scissor rectangles have Y measured up from the bottom edge
	// of the target (OpenGL).
	BottomLeft
)

// String returns the origin name.
func (o Origin) String() string {
	if o == BottomLeft {
		return "BottomLeft"
	}
	return "TopLeft"
}
