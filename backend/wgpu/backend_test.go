// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/ggui/render"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// passLog collects what the backend encodes.
type passLog struct {
	loads    []gputypes.LoadOp
	draws    []uint32
	scissors [][4]uint32
}

// spyQueue counts submissions. With lag set, submissions only complete on
// WaitIdle.
type spyQueue struct {
	hal.Queue
	lag     bool
	sent    uint64
	done    uint64
	submits int
	writes  int
	uploads int
}

func (q *spyQueue) Submit(cbs []hal.CommandBuffer) (uint64, error) {
	idx, err := q.Queue.Submit(cbs)
	q.submits++
	q.sent = idx
	if !q.lag {
		q.done = idx
	}
	return idx, err
}

func (q *spyQueue) PollCompleted() uint64 { return q.done }

func (q *spyQueue) WriteBuffer(buf hal.Buffer, off uint64, data []byte) error {
	q.writes++
	return q.Queue.WriteBuffer(buf, off, data)
}

func (q *spyQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.uploads++
	return q.Queue.WriteTexture(dst, data, layout, size)
}

type spyDevice struct {
	hal.Device
	q     *spyQueue
	log   *passLog
	waits int
}

func (d *spyDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	e, err := d.Device.CreateCommandEncoder(desc)
	return &spyEncoder{CommandEncoder: e, log: d.log}, err
}

func (d *spyDevice) WaitIdle() error {
	d.waits++
	d.q.done = d.q.sent
	return nil
}

type spyEncoder struct {
	hal.CommandEncoder
	log *passLog
}

func (e *spyEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	e.log.loads = append(e.log.loads, desc.ColorAttachments[0].LoadOp)
	return &spyPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), log: e.log}
}

type spyPass struct {
	hal.RenderPassEncoder
	log *passLog
}

func (p *spyPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.log.draws = append(p.log.draws, vertexCount)
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *spyPass) SetScissorRect(x, y, w, h uint32) {
	p.log.scissors = append(p.log.scissors, [4]uint32{x, y, w, h})
	p.RenderPassEncoder.SetScissorRect(x, y, w, h)
}

type harness struct {
	backend *Backend
	r       *render.Renderer
	dev     *spyDevice
	queue   *spyQueue
	log     *passLog
}

func newHarness(t *testing.T, opts render.BackendOptions) *harness {
	t.Helper()
	device, queue := createNoopDevice(t)
	q := &spyQueue{Queue: queue}
	log := &passLog{}
	dev := &spyDevice{Device: device, q: q, log: log}
	b, err := New(opts, WithDevice(dev, q))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r, err := render.NewRenderer(b)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return &harness{backend: b, r: r, dev: dev, queue: q, log: log}
}

func (h *harness) frame(t *testing.T, w, ht int, draw func()) {
	t.Helper()
	if err := h.r.BeginPaint(w, ht); err != nil {
		t.Fatalf("BeginPaint failed: %v", err)
	}
	draw()
	if err := h.r.EndPaint(); err != nil {
		t.Fatalf("EndPaint failed: %v", err)
	}
}

func TestCompileShader(t *testing.T) {
	code, err := compileSPIRV(batchShaderSource)
	if err != nil {
		t.Fatalf("compileSPIRV failed: %v", err)
	}
	if len(code) == 0 {
		t.Fatal("expected SPIR-V words")
	}
	if code[0] != 0x07230203 {
		t.Errorf("magic = %#x, want 0x07230203", code[0])
	}
}

func TestVertexLayoutMatchesVertex(t *testing.T) {
	l := vertexLayout()[0]
	if l.ArrayStride != uint64(render.VertexSize) {
		t.Errorf("stride = %d, want %d", l.ArrayStride, render.VertexSize)
	}
	if got := l.Attributes[2].Offset; got != 16 {
		t.Errorf("color offset = %d, want 16", got)
	}
}

func TestFrameSubmitsOnce(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	h.frame(t, 64, 64, func() {
		for i := range 3 {
			h.r.DrawRectFill(render.NewRect(i*10, 0, 8, 8), render.White)
		}
	})

	if h.queue.submits != 1 {
		t.Errorf("submits = %d, want 1", h.queue.submits)
	}
	if len(h.log.draws) != 1 || h.log.draws[0] != 18 {
		t.Errorf("draws = %v, want [18]", h.log.draws)
	}
	if len(h.log.loads) != 1 || h.log.loads[0] != gputypes.LoadOpClear {
		t.Errorf("passes = %v, want one clearing pass", h.log.loads)
	}
}

func TestRingWrapSplitsPass(t *testing.T) {
	opts := render.DefaultBackendOptions()
	opts.RingSize = 2
	opts.BatchVertices = 6
	h := newHarness(t, opts)

	h.frame(t, 32, 32, func() {
		for i := range 3 {
			h.r.DrawRectFill(render.NewRect(i, i, 4, 4), render.White)
		}
	})

	if len(h.log.draws) != 3 {
		t.Fatalf("draws = %v, want 3", h.log.draws)
	}
	if h.queue.submits != 2 {
		t.Errorf("submits = %d, want 2 (split on slot reuse + end of frame)", h.queue.submits)
	}
	want := []gputypes.LoadOp{gputypes.LoadOpClear, gputypes.LoadOpLoad}
	if len(h.log.loads) != 2 || h.log.loads[0] != want[0] || h.log.loads[1] != want[1] {
		t.Errorf("passes = %v, want %v", h.log.loads, want)
	}
}

func TestUploadAfterDrawSplitsPass(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	bm, err := h.r.CreateBitmap(2, 2, nil)
	if err != nil {
		t.Fatalf("CreateBitmap failed: %v", err)
	}
	defer bm.Close()

	h.frame(t, 16, 16, func() {
		h.r.DrawBitmap(render.NewRect(0, 0, 2, 2), bm.Bounds(), bm)
		if err := bm.SetData(make([]byte, 16)); err != nil {
			t.Errorf("SetData failed: %v", err)
		}
		h.r.DrawBitmap(render.NewRect(4, 0, 2, 2), bm.Bounds(), bm)
	})

	if h.queue.submits != 2 {
		t.Errorf("submits = %d, want 2", h.queue.submits)
	}
	if len(h.log.draws) != 2 {
		t.Errorf("draws = %v, want 2", h.log.draws)
	}
}

func TestDestroyWaitsForGPU(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	h.queue.lag = true

	bm, err := h.r.CreateBitmap(1, 1, nil)
	if err != nil {
		t.Fatalf("CreateBitmap failed: %v", err)
	}
	tex := bm.Texture().(*Texture)
	h.frame(t, 8, 8, func() {
		h.r.DrawBitmap(render.NewRect(0, 0, 1, 1), bm.Bounds(), bm)
	})
	bm.Close()

	if tex.Released() {
		t.Fatal("texture released while its submission is pending")
	}
	h.frame(t, 8, 8, func() {})
	if !tex.Released() {
		t.Error("texture not released after the next frame waited")
	}
	if h.dev.waits == 0 {
		t.Error("expected a WaitIdle")
	}
}

func TestSlotReuseWaitsForSplitSubmission(t *testing.T) {
	opts := render.DefaultBackendOptions()
	opts.RingSize = 1
	opts.BatchVertices = 6
	h := newHarness(t, opts)
	h.queue.lag = true

	if err := h.r.BeginPaint(8, 8); err != nil {
		t.Fatalf("BeginPaint failed: %v", err)
	}
	waits := h.dev.waits
	h.r.DrawRectFill(render.NewRect(0, 0, 2, 2), render.White)
	h.r.DrawRectFill(render.NewRect(2, 2, 2, 2), render.White)
	if err := h.r.EndPaint(); err != nil {
		t.Fatalf("EndPaint failed: %v", err)
	}

	if h.dev.waits <= waits {
		t.Error("rewriting the slot of a pending submission did not wait")
	}
	if h.queue.submits != 2 {
		t.Errorf("submits = %d, want 2", h.queue.submits)
	}
}

func TestScissorFollowsClip(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	h.frame(t, 100, 100, func() {
		h.r.SetClipRect(render.NewRect(10, 20, 30, 40), false)
		h.r.DrawRectFill(render.NewRect(0, 0, 100, 100), render.White)
	})

	if len(h.log.scissors) < 2 {
		t.Fatalf("scissors = %v, want initial and clip", h.log.scissors)
	}
	if got := h.log.scissors[0]; got != [4]uint32{0, 0, 100, 100} {
		t.Errorf("initial scissor = %v", got)
	}
	if got := h.log.scissors[len(h.log.scissors)-1]; got != [4]uint32{10, 20, 30, 40} {
		t.Errorf("clip scissor = %v, want top-left {10 20 30 40}", got)
	}
}

func TestDrawOutsideFrameIgnored(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	h.backend.Draw(0, make([]render.Vertex, 3))
	if len(h.log.draws) != 0 {
		t.Errorf("draws = %v, want none", h.log.draws)
	}
}

func TestReadPixels(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	h.frame(t, 5, 3, func() { h.r.DrawRectFill(render.NewRect(0, 0, 5, 3), render.White) })

	img, err := h.backend.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels failed: %v", err)
	}
	if img.Rect.Dx() != 5 || img.Rect.Dy() != 3 {
		t.Errorf("image size = %v, want 5x3", img.Rect)
	}

	if err := h.backend.SetTargetView(&noop.Resource{}); err != nil {
		t.Fatalf("SetTargetView failed: %v", err)
	}
	if _, err := h.backend.ReadPixels(); !errors.Is(err, ErrNoTarget) {
		t.Errorf("ReadPixels with external view: err = %v, want ErrNoTarget", err)
	}
}

func TestInFrameErrors(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	if err := h.r.BeginPaint(4, 4); err != nil {
		t.Fatalf("BeginPaint failed: %v", err)
	}
	if _, err := h.backend.ReadPixels(); !errors.Is(err, ErrInFrame) {
		t.Errorf("ReadPixels in frame: err = %v", err)
	}
	if err := h.backend.SetTargetView(nil); !errors.Is(err, ErrInFrame) {
		t.Errorf("SetTargetView in frame: err = %v", err)
	}
	if err := h.r.EndPaint(); err != nil {
		t.Fatalf("EndPaint failed: %v", err)
	}
}

func TestUploadAfterDestroy(t *testing.T) {
	h := newHarness(t, render.DefaultBackendOptions())
	tex, err := h.backend.NewTexture(2, 2)
	if err != nil {
		t.Fatalf("NewTexture failed: %v", err)
	}
	tex.Destroy()
	if err := tex.Upload(make([]byte, 16)); !errors.Is(err, ErrTextureDestroyed) {
		t.Errorf("Upload after Destroy: err = %v", err)
	}
}

type provider struct {
	device gpucontext.Device
	queue  gpucontext.Queue
}

func (p provider) Device() gpucontext.Device             { return p.device }
func (p provider) Queue() gpucontext.Queue               { return p.queue }
func (p provider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (p provider) Adapter() gpucontext.Adapter           { return nil }
func (p provider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func TestDeviceFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)
	opts := render.DefaultBackendOptions()
	opts.Device = provider{device: device, queue: queue}

	b, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer b.Close()
	if b.Device() != device {
		t.Error("backend does not use the provider's device")
	}

	opts.Device = provider{device: "not a device", queue: queue}
	if _, err := New(opts); !errors.Is(err, ErrUnsupportedDevice) {
		t.Errorf("New with foreign device: err = %v, want ErrUnsupportedDevice", err)
	}
}

func TestOwnedDevice(t *testing.T) {
	b, err := New(render.DefaultBackendOptions(), WithVariant(gputypes.BackendEmpty))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.owned == nil {
		t.Fatal("expected the backend to own its device")
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if b.Device() != nil {
		t.Error("device kept after Close")
	}
}

func TestRegistered(t *testing.T) {
	if !render.IsRegistered(render.BackendWGPU) {
		t.Error("wgpu backend not registered")
	}
}
