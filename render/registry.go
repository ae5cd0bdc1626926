// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Backend names.
const (
	BackendWGPU      = "wgpu"
	BackendGL        = "gl"
	BackendGLFixed   = "glfixed"
	BackendSoftware  = "software"
	BackendRecording = "recording"
)

// BackendFactory creates a backend instance.
type BackendFactory func(opts BackendOptions) (Backend, error)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for Default (first that opens wins).
	backendPriority = []string{BackendWGPU, BackendGL, BackendGLFixed, BackendSoftware}
)

// Register registers a backend factory with the given name.
// Backend packages call it from init(). A later registration with the same
// name replaces the earlier one.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted names of all registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Open creates the named backend.
func Open(name string, opts BackendOptions) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	b, err := factory(opts.Normalize())
	if err != nil {
		return nil, fmt.Errorf("render: open %s backend: %w", name, err)
	}
	return b, nil
}

// Default opens the best available backend.
// Priority order: wgpu > gl > glfixed > software. A backend whose factory
// fails is skipped. Backends outside the priority list are tried last, in
// name order.
func Default(opts BackendOptions) (Backend, error) {
	registryMu.RLock()
	names := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	registryMu.RUnlock()
	slices.Sort(rest)
	names = append(names, rest...)

	var errs []error
	for _, name := range names {
		b, err := Open(name, opts)
		if err == nil {
			Logger().Info("render: backend selected", "backend", name)
			return b, nil
		}
		Logger().Debug("render: backend unavailable", "backend", name, "err", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

// MustDefault returns the default backend or panics.
func MustDefault(opts BackendOptions) Backend {
	b, err := Default(opts)
	if err != nil {
		panic(err)
	}
	return b
}
