// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/ggui/recording"
	"github.com/gogpu/ggui/render"
)

func newRenderer(t *testing.T, w, h int) (*render.Renderer, *image.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	opts := render.DefaultBackendOptions()
	opts.Target = img
	r, err := render.NewRenderer(New(opts))
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r, img
}

func paint(t *testing.T, r *render.Renderer, w, h int, draw func()) {
	t.Helper()
	if err := r.BeginPaint(w, h); err != nil {
		t.Fatalf("BeginPaint failed: %v", err)
	}
	draw()
	if err := r.EndPaint(); err != nil {
		t.Fatalf("EndPaint failed: %v", err)
	}
}

func at(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

var (
	black = render.RGBA(0, 0, 0, 255)
	red   = render.RGBA(255, 0, 0, 255)
	green = render.RGBA(0, 255, 0, 255)
	blue  = render.RGBA(0, 0, 255, 255)
)

func TestFillRectCoversExactPixels(t *testing.T) {
	r, img := newRenderer(t, 8, 8)
	paint(t, r, 8, 8, func() {
		r.DrawRectFill(render.NewRect(0, 0, 8, 8), black)
		r.DrawRectFill(render.NewRect(2, 3, 3, 2), red)
	})

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 2 && x < 5 && y >= 3 && y < 5
			got := at(img, x, y)
			want := color.RGBA{A: 255}
			if inside {
				want = color.RGBA{R: 255, A: 255}
			}
			if got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestQuadDiagonalNotBlendedTwice(t *testing.T) {
	r, img := newRenderer(t, 10, 10)
	paint(t, r, 10, 10, func() {
		r.DrawRectFill(render.NewRect(0, 0, 10, 10), black)
		r.DrawRectFill(render.NewRect(0, 0, 10, 10), render.RGBA(255, 255, 255, 128))
	})

	want := at(img, 0, 9)
	for i := 0; i < 10; i++ {
		if got := at(img, i, i); got != want {
			t.Errorf("diagonal pixel %d = %v, want %v", i, got, want)
		}
	}
	if want.R < 126 || want.R > 130 {
		t.Errorf("half white over black = %v, want about 128", want)
	}
}

func TestScissorClipsDrawing(t *testing.T) {
	r, img := newRenderer(t, 8, 8)
	paint(t, r, 8, 8, func() {
		r.DrawRectFill(render.NewRect(0, 0, 8, 8), black)
		r.SetClipRect(render.NewRect(2, 2, 2, 2), false)
		r.DrawRectFill(render.NewRect(0, 0, 8, 8), green)
	})

	if got := at(img, 2, 2); got.G != 255 {
		t.Errorf("inside clip = %v, want green", got)
	}
	if got := at(img, 4, 4); got.G != 0 {
		t.Errorf("outside clip = %v, want black", got)
	}
	if got := at(img, 1, 2); got.G != 0 {
		t.Errorf("left of clip = %v, want black", got)
	}
}

func TestBitmapSampling(t *testing.T) {
	r, img := newRenderer(t, 4, 4)
	pix := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	b, err := r.CreateBitmap(2, 2, pix)
	if err != nil {
		t.Fatalf("CreateBitmap failed: %v", err)
	}
	defer b.Close()

	paint(t, r, 4, 4, func() {
		r.DrawBitmap(render.NewRect(0, 0, 4, 4), b.Bounds(), b)
	})

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{R: 255, A: 255}},
		{3, 0, color.RGBA{G: 255, A: 255}},
		{0, 3, color.RGBA{B: 255, A: 255}},
		{3, 3, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := at(img, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBitmapColoredModulates(t *testing.T) {
	r, img := newRenderer(t, 2, 2)
	paint(t, r, 2, 2, func() {
		r.DrawBitmapColored(render.NewRect(0, 0, 2, 2), render.NewRect(0, 0, 1, 1), blue, r.White())
	})
	if got := at(img, 1, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel = %v, want blue", got)
	}
}

func TestBitmapTileRepeats(t *testing.T) {
	r, img := newRenderer(t, 4, 1)
	b, err := r.CreateBitmap(2, 1, []byte{255, 0, 0, 255, 0, 0, 255, 255})
	if err != nil {
		t.Fatalf("CreateBitmap failed: %v", err)
	}
	defer b.Close()

	paint(t, r, 4, 1, func() {
		r.DrawBitmapTile(render.NewRect(0, 0, 4, 1), b)
	})
	for x, want := range []uint8{255, 0, 255, 0} {
		if got := at(img, x, 0).R; got != want {
			t.Errorf("pixel %d red = %d, want %d", x, got, want)
		}
	}
}

func TestTranslatedDrawing(t *testing.T) {
	r, img := newRenderer(t, 6, 6)
	paint(t, r, 6, 6, func() {
		r.Translate(3, 3)
		r.DrawRectFill(render.NewRect(0, 0, 1, 1), red)
	})
	if got := at(img, 3, 3); got.R != 255 {
		t.Errorf("translated pixel = %v, want red", got)
	}
	if got := at(img, 0, 0); got.R != 0 {
		t.Errorf("origin pixel = %v, want untouched", got)
	}
}

func TestOwnTargetFollowsFrameSize(t *testing.T) {
	b := New(render.DefaultBackendOptions())
	r, err := render.NewRenderer(b)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Close()

	paint(t, r, 5, 7, func() { r.DrawRectFill(render.NewRect(0, 0, 5, 7), red) })
	if got := b.Image().Bounds(); got != image.Rect(0, 0, 5, 7) {
		t.Errorf("target bounds = %v, want 5x7", got)
	}
	paint(t, r, 3, 3, func() {})
	if got := b.Image().Bounds(); got != image.Rect(0, 0, 3, 3) {
		t.Errorf("target bounds = %v, want 3x3", got)
	}
}

func TestPlaybackMatchesDirect(t *testing.T) {
	draw := func(r *render.Renderer) {
		r.DrawRectFill(render.NewRect(0, 0, 16, 16), black)
		r.SetClipRect(render.NewRect(4, 4, 8, 8), false)
		r.DrawRectFill(render.NewRect(0, 0, 16, 16), render.RGBA(10, 200, 30, 200))
	}

	direct, want := newRenderer(t, 16, 16)
	paint(t, direct, 16, 16, func() { draw(direct) })

	rec := recording.New(render.DefaultBackendOptions())
	rr, err := render.NewRenderer(rec)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer rr.Close()
	paint(t, rr, 16, 16, func() { draw(rr) })

	got := image.NewRGBA(image.Rect(0, 0, 16, 16))
	dst := New(render.BackendOptions{Target: got})
	if err := rec.Playback(dst); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("replayed pixels differ at byte %d: got %d, want %d", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestDrawOutsideFrameIgnored(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	b := New(render.BackendOptions{Target: img})
	b.Draw(0, []render.Vertex{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}})
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("draw outside a frame modified the target")
		}
	}
}

func TestTextureLifecycle(t *testing.T) {
	b := New(render.DefaultBackendOptions())
	tex, err := b.NewTexture(1, 1)
	if err != nil {
		t.Fatalf("NewTexture failed: %v", err)
	}
	if err := tex.Upload([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if got := tex.(*Texture).Image().Pix[2]; got != 3 {
		t.Errorf("uploaded byte = %d, want 3", got)
	}
	tex.Destroy()
	if err := tex.Upload([]byte{1, 2, 3, 4}); err != ErrTextureDestroyed {
		t.Errorf("Upload after Destroy: err = %v", err)
	}
}
