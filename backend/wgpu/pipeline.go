// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/ggui/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/batch.wgsl
var batchShaderSource string

// uniformSize is one column-major mat4x4<f32>.
const uniformSize = 16 * 4

// compileSPIRV compiles WGSL to SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// vertexLayout matches render.Vertex: position, uv and an RGBA8 color.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uint64(render.VertexSize),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
			},
		},
	}
}

// pipeline holds the device objects shared by every frame.
type pipeline struct {
	device hal.Device

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	bitmapLayout  hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	sampler       hal.Sampler
	pipeline      hal.RenderPipeline

	uniformBuf   hal.Buffer
	uniformGroup hal.BindGroup
}

func newPipeline(device hal.Device, format gputypes.TextureFormat) (*pipeline, error) {
	p := &pipeline{device: device}
	if err := p.create(format); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *pipeline) create(format gputypes.TextureFormat) error {
	code, err := compileSPIRV(batchShaderSource)
	if err != nil {
		return err
	}
	p.shader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "batch_shader",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}

	p.uniformLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "batch_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform layout: %w", err)
	}

	p.bitmapLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "batch_bitmap_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bitmap layout: %w", err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "batch_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout, p.bitmapLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}

	// Tiled bitmaps rely on repeat addressing; nearest keeps pixel art exact.
	p.sampler, err = p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "batch_sampler",
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}

	blend := gputypes.BlendStateAlpha()
	p.pipeline, err = p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "batch_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render pipeline: %w", err)
	}

	p.uniformBuf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "batch_uniform",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform buffer: %w", err)
	}

	p.uniformGroup, err = p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "batch_uniform_bind",
		Layout: p.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform bind group: %w", err)
	}
	return nil
}

// bitmapGroup creates the bind group of one texture view.
func (p *pipeline) bitmapGroup(view hal.TextureView) (hal.BindGroup, error) {
	group, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "batch_bitmap_bind",
		Layout: p.bitmapLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create bitmap bind group: %w", err)
	}
	return group, nil
}

// destroy releases everything in reverse creation order. Safe on a
// partially created pipeline.
func (p *pipeline) destroy() {
	if p.uniformGroup != nil {
		p.device.DestroyBindGroup(p.uniformGroup)
		p.uniformGroup = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bitmapLayout != nil {
		p.device.DestroyBindGroupLayout(p.bitmapLayout)
		p.bitmapLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
