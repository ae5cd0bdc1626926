// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"math"

	"github.com/chewxy/math32"
	"github.com/gogpu/ggui/render"
)

// subpixel is the snapping precision of vertex positions (8 bits, like most
// GPUs). Snapped coordinates keep the edge functions exact in float64, so a
// pixel center on an edge shared by two triangles is owned by exactly one.
const subpixel = 256

// point is a vertex in target pixel space.
type point struct {
	x, y       float64
	u, v       float32
	r, g, b, a float32
}

// toPixels runs the vertex through the frame projection and the viewport
// transform.
func (b *Backend) toPixels(v render.Vertex) point {
	cx, cy := render.Project(b.projection, v.X, v.Y)
	return point{
		x: snap(float64(cx+1) / 2 * float64(b.width)),
		y: snap(float64(1-cy) / 2 * float64(b.height)),
		u: v.U, v: v.V,
		r: float32(v.Col.R), g: float32(v.Col.G), b: float32(v.Col.B), a: float32(v.Col.A),
	}
}

func snap(c float64) float64 {
	return math.Round(c*subpixel) / subpixel
}

func edge(a, b point, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// owns reports whether pixel centers exactly on the edge a->b belong to the
// triangle. Exactly one of the two directions of a shared edge is accepted.
func owns(a, b point) bool {
	dy := b.y - a.y
	return dy < 0 || (dy == 0 && b.x > a.x)
}

func (b *Backend) triangle(clip image.Rectangle, v0, v1, v2 render.Vertex) {
	p0, p1, p2 := b.toPixels(v0), b.toPixels(v1), b.toPixels(v2)
	area := edge(p0, p1, p2.x, p2.y)
	if area == 0 {
		return
	}
	if area < 0 {
		p1, p2 = p2, p1
		area = -area
	}

	minX := max(int(math.Floor(min(p0.x, p1.x, p2.x))), clip.Min.X)
	minY := max(int(math.Floor(min(p0.y, p1.y, p2.y))), clip.Min.Y)
	maxX := min(int(math.Ceil(max(p0.x, p1.x, p2.x))), clip.Max.X)
	maxY := min(int(math.Ceil(max(p0.y, p1.y, p2.y))), clip.Max.Y)

	own0, own1, own2 := owns(p1, p2), owns(p2, p0), owns(p0, p1)
	inv := 1 / area

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(p1, p2, px, py)
			w1 := edge(p2, p0, px, py)
			w2 := edge(p0, p1, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			if (w0 == 0 && !own0) || (w1 == 0 && !own1) || (w2 == 0 && !own2) {
				continue
			}
			l0, l1, l2 := float32(w0*inv), float32(w1*inv), float32(w2*inv)
			b.shade(x, y, point{
				u: l0*p0.u + l1*p1.u + l2*p2.u,
				v: l0*p0.v + l1*p1.v + l2*p2.v,
				r: l0*p0.r + l1*p1.r + l2*p2.r,
				g: l0*p0.g + l1*p1.g + l2*p2.g,
				b: l0*p0.b + l1*p1.b + l2*p2.b,
				a: l0*p0.a + l1*p1.a + l2*p2.a,
			})
		}
	}
}

// shade samples the bound texture, modulates it with the interpolated color
// and blends the result into the target.
func (b *Backend) shade(x, y int, f point) {
	sr, sg, sb, sa := f.r/255, f.g/255, f.b/255, f.a/255
	if t := b.bound; t != nil && t.img != nil {
		tr, tg, tb, ta := sample(t.img, f.u, f.v)
		sr, sg, sb, sa = sr*tr, sg*tg, sb*tb, sa*ta
	}

	i := b.target.PixOffset(x, y)
	d := b.target.Pix[i : i+4 : i+4]
	if !b.blend {
		d[0], d[1], d[2], d[3] = to8(sr), to8(sg), to8(sb), to8(sa)
		return
	}
	dr, dg, db, da := float32(d[0])/255, float32(d[1])/255, float32(d[2])/255, float32(d[3])/255
	k := 1 - sa
	d[0] = to8(sr*sa + dr*k)
	d[1] = to8(sg*sa + dg*k)
	d[2] = to8(sb*sa + db*k)
	d[3] = to8(sa + da*k)
}

// sample returns the nearest texel at u, v with repeat wrapping.
func sample(img *image.RGBA, u, v float32) (r, g, b, a float32) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	tx := wrap(int(math32.Floor(u*float32(w))), w)
	ty := wrap(int(math32.Floor(v*float32(h))), h)
	i := img.PixOffset(img.Rect.Min.X+tx, img.Rect.Min.Y+ty)
	p := img.Pix[i : i+4 : i+4]
	return float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func to8(c float32) uint8 {
	return uint8(math32.Round(min(max(c, 0), 1) * 255))
}
