// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements render.Backend on the gogpu/wgpu hardware
// abstraction layer.
//
// The backend draws every batch with a single WGSL pipeline compiled to
// SPIR-V with naga. Vertices are uploaded into a ring of vertex buffers,
// one per ring slot, and each bitmap owns a bind group holding its texture
// view and a repeating nearest sampler.
//
// # Device
//
// The device comes from one of three places, in order:
//
//   - WithDevice: an explicit hal.Device and hal.Queue
//   - render.BackendOptions.Device: a gpucontext.DeviceProvider whose
//     Device() is a *wgpu.Device (or already a hal.Device)
//   - a device opened by the backend itself on the hal backend selected with
//     WithVariant (Vulkan by default)
//
// Only a device opened by the backend is destroyed by Close.
//
// # Ring slots
//
// A ring slot is never rewritten while a draw that reads it is still pending.
// When the renderer wraps the ring within one frame, the backend ends the
// render pass, submits what it has encoded and resumes in a new pass that
// loads the previous contents. The same happens when a bitmap that was
// already drawn in the current pass is re-uploaded.
//
// # Target
//
// By default the backend renders into an offscreen RGBA8 texture sized to
// each frame; ReadPixels copies it back to an *image.RGBA. SetTargetView
// redirects rendering to a caller-owned view such as a surface texture.
package wgpu
