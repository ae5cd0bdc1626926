// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Registers the Vulkan hal backend used for standalone devices.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

var (
	// ErrNoAdapter is returned when the selected hal backend exposes no adapter.
	ErrNoAdapter = errors.New("wgpu: no adapter available")

	// ErrUnsupportedDevice is returned when a DeviceProvider does not expose
	// a hal device and queue.
	ErrUnsupportedDevice = errors.New("wgpu: device provider does not expose a hal device")
)

// halSource is satisfied by *wgpu.Device.
type halSource interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

// fromProvider extracts the hal device and queue shared by a host.
func fromProvider(p gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	dev := p.Device()
	if src, ok := dev.(halSource); ok {
		if d, q := src.HalDevice(), src.HalQueue(); d != nil && q != nil {
			return d, q, nil
		}
	}
	d, ok := dev.(hal.Device)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T", ErrUnsupportedDevice, dev)
	}
	q, ok := p.Queue().(hal.Queue)
	if !ok {
		return nil, nil, fmt.Errorf("%w: queue %T", ErrUnsupportedDevice, p.Queue())
	}
	return d, q, nil
}

// ownedDevice is a device the backend opened and must destroy.
type ownedDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	name     string
}

// openDevice opens the first adapter of the given hal backend.
func openDevice(variant gputypes.Backend) (*ownedDevice, error) {
	api, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("wgpu: hal backend %s: %w", variant, hal.ErrBackendNotFound)
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{
		Backends: gputypes.BackendsAll,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}
	return &ownedDevice{
		instance: instance,
		device:   open.Device,
		queue:    open.Queue,
		name:     adapters[0].Info.Name,
	}, nil
}

func (o *ownedDevice) destroy() {
	o.device.Destroy()
	o.instance.Destroy()
}
