// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "golang.org/x/image/math/f32"

// Ortho returns the row-major orthographic projection mapping target pixels
// (origin top-left, Y down) to clip space. It is the matrix glOrtho(0, w, h,
// 0, -1, 1) would build.
func Ortho(width, height int) f32.Mat4 {
	return OrthoBounds(0, float32(width), float32(height), 0, -1, 1)
}

// OrthoBounds returns a row-major orthographic projection for the given
// clipping planes.
func OrthoBounds(left, right, bottom, top, near, far float32) f32.Mat4 {
	return f32.Mat4{
		2 / (right - left), 0, 0, -(right + left) / (right - left),
		0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom),
		0, 0, -2 / (far - near), -(far + near) / (far - near),
		0, 0, 0, 1,
	}
}

// Project applies m to the point (x, y, 0, 1) and returns clip space x, y.
func Project(m f32.Mat4, x, y float32) (float32, float32) {
	cx := m[0]*x + m[1]*y + m[3]
	cy := m[4]*x + m[5]*y + m[7]
	w := m[12]*x + m[13]*y + m[15]
	if w != 0 && w != 1 {
		cx /= w
		cy /= w
	}
	return cx, cy
}

// ColumnMajor returns m transposed, the layout GLSL and WGSL expect for
// uniform matrices.
func ColumnMajor(m f32.Mat4) [16]float32 {
	var out [16]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[col*4+row] = m[row*4+col]
		}
	}
	return out
}

// ScissorRect converts a top-left clip rectangle to the scissor convention of
// a backend. For BottomLeft the Y coordinate becomes targetHeight - (Y + H).
func ScissorRect(clip Rect, targetHeight int, origin Origin) Rect {
	if origin == BottomLeft {
		clip.Y = targetHeight - (clip.Y + clip.H)
	}
	return clip
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
