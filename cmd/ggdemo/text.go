package main

import (
	"image"
	"image/draw"

	"github.com/gogpu/ggui/internal/cache"
	"github.com/gogpu/ggui/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// label is a string rasterised into a bitmap. The bitmap may be larger than
// the text when the backend needs power-of-two sizes.
type label struct {
	bitmap *render.Bitmap
	w, h   int
}

// labelCacheSize bounds the number of label bitmaps kept alive.
const labelCacheSize = 64

// labels caches one bitmap per string. Glyphs are white so DrawBitmapColored
// can tint them.
type labels struct {
	r     *render.Renderer
	face  font.Face
	cache *cache.LRU[string, label]
}

func newLabels(r *render.Renderer) *labels {
	return &labels{
		r:    r,
		face: basicfont.Face7x13,
		cache: cache.NewLRU(labelCacheSize, func(_ string, lb label) {
			lb.bitmap.Close()
		}),
	}
}

func (l *labels) get(s string) (label, error) {
	if lb, ok := l.cache.Get(s); ok {
		return lb, nil
	}
	m := l.face.Metrics()
	w := font.MeasureString(l.face, s).Ceil()
	h := m.Height.Ceil()
	if w == 0 {
		w = 1
	}

	bw, bh := w, h
	if l.r.Caps().PowerOfTwo {
		bw, bh = nextPowerOfTwo(w), nextPowerOfTwo(h)
	}
	img := image.NewRGBA(image.Rect(0, 0, bw, bh))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: l.face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(s)

	b, err := l.r.CreateBitmap(bw, bh, img.Pix)
	if err != nil {
		return label{}, err
	}
	lb := label{bitmap: b, w: w, h: h}
	l.cache.Put(s, lb)
	return lb, nil
}

// draw draws s with its top-left corner at x, y.
func (l *labels) draw(s string, x, y int, c render.Color) {
	lb, err := l.get(s)
	if err != nil {
		logger().Warn("ggdemo: label", "text", s, "err", err)
		return
	}
	l.r.DrawBitmapColored(render.NewRect(x, y, lb.w, lb.h), render.NewRect(0, 0, lb.w, lb.h), c, lb.bitmap)
}

func (l *labels) close() { l.cache.Purge() }

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// checker returns size x size RGBA pixels of a two color checkerboard with
// cell x cell squares.
func checker(size, cell int, a, b render.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	ca := image.NewUniform(toNRGBA(a))
	cb := image.NewUniform(toNRGBA(b))
	for y := 0; y < size; y += cell {
		for x := 0; x < size; x += cell {
			src := ca
			if (x/cell+y/cell)%2 == 1 {
				src = cb
			}
			draw.Draw(img, image.Rect(x, y, x+cell, y+cell), src, image.Point{}, draw.Src)
		}
	}
	return img.Pix
}
