// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggui/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/math/f32"
	"honnef.co/go/safeish"
)

func init() {
	render.Register(render.BackendWGPU, func(opts render.BackendOptions) (render.Backend, error) {
		return New(opts)
	})
}

var (
	// ErrInFrame is returned by operations that are not allowed while a
	// frame is being encoded.
	ErrInFrame = errors.New("wgpu: frame in progress")

	// ErrNoTarget is returned by ReadPixels when rendering goes to a
	// caller-owned view.
	ErrNoTarget = errors.New("wgpu: no offscreen target")
)

// Option configures a Backend.
type Option func(*config)

type config struct {
	device  hal.Device
	queue   hal.Queue
	variant gputypes.Backend
	format  gputypes.TextureFormat
	clear   gputypes.Color
}

// WithDevice renders on an existing hal device. The backend never destroys it.
func WithDevice(device hal.Device, queue hal.Queue) Option {
	return func(c *config) {
		c.device = device
		c.queue = queue
	}
}

// WithVariant selects the hal backend used when the backend opens its own
// device. The default is Vulkan.
func WithVariant(v gputypes.Backend) Option {
	return func(c *config) { c.variant = v }
}

// WithFormat sets the color format of the render target.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(c *config) { c.format = f }
}

// WithClearColor sets the color the target is cleared to when a frame begins.
func WithClearColor(col gputypes.Color) Option {
	return func(c *config) { c.clear = col }
}

// Backend implements render.Backend on a hal device.
type Backend struct {
	caps   render.Caps
	cfg    config
	device hal.Device
	queue  hal.Queue
	owned  *ownedDevice
	pipe   *pipeline

	// ring[i] backs ring slot i; slotSubmit[i] is the submission that last
	// read it.
	ring       []hal.Buffer
	slotSubmit []uint64
	slotUsed   []bool

	target     hal.Texture
	targetView hal.TextureView
	external   hal.TextureView
	targetW    int
	targetH    int

	encoder  hal.CommandEncoder
	pass     hal.RenderPassEncoder
	inFrame  bool
	width    int
	height   int
	scissor  render.Rect
	bound    *Texture
	used     []*Texture
	submits  int
	lastSent uint64

	// Released once the GPU has finished with them.
	pending   []pendingWork
	graveyard []*Texture
}

type pendingWork struct {
	submit  uint64
	encoder hal.CommandEncoder
	cmdBuf  hal.CommandBuffer
}

// New creates a backend. The device comes from WithDevice, then
// opts.Device, and otherwise is opened on the WithVariant hal backend.
func New(opts render.BackendOptions, options ...Option) (*Backend, error) {
	opts = opts.Normalize()
	cfg := config{
		variant: gputypes.BackendVulkan,
		format:  gputypes.TextureFormatRGBA8Unorm,
	}
	for _, o := range options {
		o(&cfg)
	}

	b := &Backend{
		cfg: cfg,
		caps: render.Caps{
			ScissorOrigin:  render.TopLeft,
			MaxTextureSize: int(gputypes.DefaultLimits().MaxTextureDimension2D),
			RingSize:       opts.RingSize,
			BatchVertices:  opts.BatchVertices,
		},
	}

	switch {
	case cfg.device != nil:
		b.device, b.queue = cfg.device, cfg.queue
	case opts.Device != nil:
		d, q, err := fromProvider(opts.Device)
		if err != nil {
			return nil, err
		}
		b.device, b.queue = d, q
	default:
		owned, err := openDevice(cfg.variant)
		if err != nil {
			return nil, err
		}
		b.owned = owned
		b.device, b.queue = owned.device, owned.queue
		render.Logger().Info("wgpu: opened device", "adapter", owned.name, "variant", cfg.variant.String())
	}

	if err := b.init(); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

func (b *Backend) init() error {
	pipe, err := newPipeline(b.device, b.cfg.format)
	if err != nil {
		return err
	}
	b.pipe = pipe

	size := uint64(b.caps.BatchVertices * render.VertexSize)
	b.ring = make([]hal.Buffer, b.caps.RingSize)
	b.slotSubmit = make([]uint64, b.caps.RingSize)
	b.slotUsed = make([]bool, b.caps.RingSize)
	for i := range b.ring {
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("batch_vertices_%d", i),
			Size:  size,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("wgpu: create vertex buffer %d: %w", i, err)
		}
		b.ring[i] = buf
	}
	return nil
}

// Name implements render.Backend.
func (b *Backend) Name() string { return render.BackendWGPU }

// Caps implements render.Backend.
func (b *Backend) Caps() render.Caps { return b.caps }

// Device returns the hal device the backend renders on.
func (b *Backend) Device() hal.Device { return b.device }

// Submissions returns the number of queue submissions made so far.
func (b *Backend) Submissions() int { return b.submits }

// SetTargetView renders subsequent frames into view instead of the
// offscreen target. nil restores the offscreen target.
func (b *Backend) SetTargetView(view hal.TextureView) error {
	if b.inFrame {
		return ErrInFrame
	}
	b.external = view
	return nil
}

// BeginFrame implements render.Backend.
func (b *Backend) BeginFrame(width, height int, projection f32.Mat4) error {
	if b.inFrame {
		return ErrInFrame
	}
	b.reclaim(true)

	if b.external == nil {
		if err := b.ensureTarget(width, height); err != nil {
			return err
		}
	}
	cols := render.ColumnMajor(projection)
	if err := b.queue.WriteBuffer(b.pipe.uniformBuf, 0, safeish.SliceCast[[]byte](cols[:])); err != nil {
		return fmt.Errorf("wgpu: write projection: %w", err)
	}

	b.width, b.height = width, height
	b.scissor = render.NewRect(0, 0, width, height)
	if err := b.beginPass(gputypes.LoadOpClear); err != nil {
		return err
	}
	b.inFrame = true
	return nil
}

// EndFrame implements render.Backend.
func (b *Backend) EndFrame() error {
	if !b.inFrame {
		return nil
	}
	b.inFrame = false
	return b.submit()
}

// beginPass starts a command encoder and render pass and applies the
// pipeline state the renderer expects to persist.
func (b *Backend) beginPass(load gputypes.LoadOp) error {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "batch_encoder"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("batch_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	view := b.external
	if view == nil {
		view = b.targetView
	}
	b.encoder = encoder
	b.pass = encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "batch_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: b.cfg.clear,
		}},
	})
	b.pass.SetPipeline(b.pipe.pipeline)
	b.pass.SetBindGroup(0, b.pipe.uniformGroup, nil)
	b.pass.SetViewport(0, 0, float32(b.width), float32(b.height), 0, 1)
	b.applyScissor()
	if b.bound != nil {
		b.pass.SetBindGroup(1, b.bound.group, nil)
	}
	return nil
}

// submit ends the current pass and queues its commands.
func (b *Backend) submit() error {
	if b.encoder == nil {
		return nil
	}
	b.pass.End()
	b.pass = nil
	encoder := b.encoder
	b.encoder = nil

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	idx, err := b.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		b.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	b.submits++
	b.lastSent = idx
	b.pending = append(b.pending, pendingWork{submit: idx, encoder: encoder, cmdBuf: cmdBuf})

	for i, used := range b.slotUsed {
		if used {
			b.slotSubmit[i] = idx
			b.slotUsed[i] = false
		}
	}
	for _, t := range b.used {
		t.submit = idx
		t.usedInPass = false
	}
	b.used = b.used[:0]
	return nil
}

// split submits the work encoded so far and resumes in a pass that keeps
// the target contents.
func (b *Backend) split() {
	if err := b.submit(); err != nil {
		render.Logger().Warn("wgpu: submit", "err", err)
	}
	if err := b.beginPass(gputypes.LoadOpLoad); err != nil {
		render.Logger().Warn("wgpu: resume pass", "err", err)
	}
}

// waitFor blocks until the given submission has completed.
func (b *Backend) waitFor(submit uint64) {
	if submit == 0 || b.queue.PollCompleted() >= submit {
		return
	}
	if err := b.device.WaitIdle(); err != nil {
		render.Logger().Warn("wgpu: wait idle", "err", err)
	}
}

// reclaim frees command buffers and destroyed textures the GPU no longer
// uses. With wait it first blocks until all submitted work is done.
func (b *Backend) reclaim(wait bool) {
	if wait {
		b.waitFor(b.lastSent)
	}
	done := b.queue.PollCompleted()
	keep := b.pending[:0]
	for _, p := range b.pending {
		if p.submit > done {
			keep = append(keep, p)
			continue
		}
		b.device.FreeCommandBuffer(p.cmdBuf)
		p.encoder.Destroy()
	}
	b.pending = keep

	alive := b.graveyard[:0]
	for _, t := range b.graveyard {
		if t.submit > done {
			alive = append(alive, t)
			continue
		}
		t.release()
	}
	b.graveyard = alive
}

func (b *Backend) ensureTarget(width, height int) error {
	if b.target != nil && b.targetW == width && b.targetH == height {
		return nil
	}
	b.destroyTarget()
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "batch_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        b.cfg.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create target: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "batch_target_view"})
	if err != nil {
		b.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create target view: %w", err)
	}
	b.target, b.targetView = tex, view
	b.targetW, b.targetH = width, height
	return nil
}

func (b *Backend) destroyTarget() {
	if b.targetView != nil {
		b.device.DestroyTextureView(b.targetView)
		b.targetView = nil
	}
	if b.target != nil {
		b.device.DestroyTexture(b.target)
		b.target = nil
	}
	b.targetW, b.targetH = 0, 0
}

// NewTexture implements render.Backend.
func (b *Backend) NewTexture(width, height int) (render.Texture, error) {
	return newTexture(b, width, height)
}

// BindTexture implements render.Backend.
func (b *Backend) BindTexture(t render.Texture) {
	tex, _ := t.(*Texture)
	b.bound = tex
	if tex != nil && b.pass != nil {
		b.pass.SetBindGroup(1, tex.group, nil)
	}
}

// SetScissor implements render.Backend.
func (b *Backend) SetScissor(r render.Rect) {
	b.scissor = r
	if b.pass != nil {
		b.applyScissor()
	}
}

// applyScissor clamps the scissor to the frame, which hal requires.
func (b *Backend) applyScissor() {
	r := b.scissor.Intersect(render.NewRect(0, 0, b.width, b.height))
	b.pass.SetScissorRect(uint32(r.X), uint32(r.Y), uint32(r.W), uint32(r.H))
}

// Draw implements render.Backend.
func (b *Backend) Draw(slot int, vertices []render.Vertex) {
	if !b.inFrame {
		render.Logger().Warn("wgpu: draw outside of a frame", "slot", slot)
		return
	}
	if len(vertices) == 0 {
		return
	}
	if b.bound == nil || b.bound.group == nil {
		render.Logger().Warn("wgpu: draw without a bound texture", "slot", slot)
		return
	}
	if slot < 0 || slot >= len(b.ring) {
		render.Logger().Warn("wgpu: ring slot out of range", "slot", slot, "ring", len(b.ring))
		return
	}
	if len(vertices) > b.caps.BatchVertices {
		render.Logger().Warn("wgpu: batch exceeds vertex buffer", "vertices", len(vertices), "max", b.caps.BatchVertices)
		vertices = vertices[:b.caps.BatchVertices]
	}

	if b.slotUsed[slot] {
		b.split()
	}
	b.waitFor(b.slotSubmit[slot])

	buf := b.ring[slot]
	if err := b.queue.WriteBuffer(buf, 0, safeish.SliceCast[[]byte](vertices)); err != nil {
		render.Logger().Warn("wgpu: write vertices", "slot", slot, "err", err)
		return
	}
	b.slotUsed[slot] = true
	if !b.bound.usedInPass {
		b.bound.usedInPass = true
		b.used = append(b.used, b.bound)
	}

	b.pass.SetVertexBuffer(0, buf, 0)
	b.pass.Draw(uint32(len(vertices)), 1, 0, 0)
}

// Close implements render.Backend. Pending work is waited for and all
// device objects are released.
func (b *Backend) Close() error {
	var err error
	if b.inFrame {
		b.inFrame = false
		err = b.submit()
	}
	if b.device != nil {
		b.reclaim(true)
		for _, t := range b.graveyard {
			t.release()
		}
		b.graveyard = nil
		for i, buf := range b.ring {
			if buf != nil {
				b.device.DestroyBuffer(buf)
				b.ring[i] = nil
			}
		}
		b.destroyTarget()
		if b.pipe != nil {
			b.pipe.destroy()
			b.pipe = nil
		}
	}
	b.bound = nil
	if b.owned != nil {
		b.owned.destroy()
		b.owned = nil
	}
	b.device, b.queue = nil, nil
	return err
}
