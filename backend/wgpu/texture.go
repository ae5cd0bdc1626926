// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrTextureDestroyed is returned when uploading to a destroyed texture.
var ErrTextureDestroyed = errors.New("wgpu: texture destroyed")

// Texture is an RGBA8 texture with its bind group.
type Texture struct {
	b      *Backend
	tex    hal.Texture
	view   hal.TextureView
	group  hal.BindGroup
	width  int
	height int

	// submit is the last submission that sampled the texture.
	submit     uint64
	usedInPass bool
	destroyed  bool
}

func newTexture(b *Backend, width, height int) (*Texture, error) {
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "bitmap",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %dx%d: %w", width, height, err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "bitmap_view"})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}
	group, err := b.pipe.bitmapGroup(view)
	if err != nil {
		b.device.DestroyTextureView(view)
		b.device.DestroyTexture(tex)
		return nil, err
	}
	return &Texture{b: b, tex: tex, view: view, group: group, width: width, height: height}, nil
}

// Upload implements render.Texture. A texture already sampled by the pass
// being encoded forces a submit first so earlier draws see the old pixels.
func (t *Texture) Upload(pixels []byte) error {
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if t.usedInPass && t.b.inFrame {
		t.b.split()
	}
	t.b.waitFor(t.submit)
	return t.b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{},
			Aspect:   gputypes.TextureAspectAll,
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.width * 4),
			RowsPerImage: uint32(t.height),
		},
		&hal.Extent3D{Width: uint32(t.width), Height: uint32(t.height), DepthOrArrayLayers: 1},
	)
}

// Destroy implements render.Texture. Device objects are released once no
// pending submission samples them.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.b.device == nil {
		// backend already closed; the device took the objects with it
		t.group, t.view, t.tex = nil, nil, nil
		return
	}
	if t.b.bound == t {
		t.b.bound = nil
	}
	if t.usedInPass || (t.submit > 0 && t.b.queue.PollCompleted() < t.submit) {
		t.b.graveyard = append(t.b.graveyard, t)
		return
	}
	t.release()
}

func (t *Texture) release() {
	d := t.b.device
	if t.group != nil {
		d.DestroyBindGroup(t.group)
		t.group = nil
	}
	if t.view != nil {
		d.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		d.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// Size returns the texture dimensions.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// Released reports whether the device objects have been freed.
func (t *Texture) Released() bool { return t.tex == nil }
