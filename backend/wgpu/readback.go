// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitch is the row alignment required for texture to buffer copies.
const copyPitch = 256

// ReadPixels copies the offscreen target of the last frame into an image.
// It waits for the GPU to finish.
func (b *Backend) ReadPixels() (*image.RGBA, error) {
	if b.inFrame {
		return nil, ErrInFrame
	}
	if b.external != nil || b.target == nil {
		return nil, ErrNoTarget
	}
	w, h := b.targetW, b.targetH
	stride := (w*4 + copyPitch - 1) / copyPitch * copyPitch
	size := uint64(stride * h)

	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "batch_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create readback buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "batch_readback"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("batch_readback"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	encoder.CopyTextureToBuffer(b.target, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: uint32(stride), RowsPerImage: uint32(h)},
		TextureBase:  hal.ImageCopyTexture{Texture: b.target, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	}})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	idx, err := b.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return nil, fmt.Errorf("wgpu: submit readback: %w", err)
	}
	b.submits++
	b.lastSent = idx
	b.waitFor(idx)

	m, err := b.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map readback buffer: %w", err)
	}
	src := unsafe.Slice((*byte)(m.Ptr), size)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], src[y*stride:])
	}
	if b.cfg.format == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i+3 < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	if err := b.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("wgpu: unmap readback buffer: %w", err)
	}
	return img, nil
}
