// Package ggui is a batched bitmap renderer for widget toolkits, paired with
// a value graph that keeps widgets bound to the same named value in sync.
//
// # Overview
//
// Widgets draw through a [render.Renderer], which collects textured quads
// into a batch and hands it to a GPU backend in one draw call whenever the
// bitmap, clip rectangle or batch capacity changes. Backends live in
// sub-packages and register themselves by name:
//
//   - backend/wgpu: WebGPU through gogpu/wgpu, on a host or private device
//   - backend/gl: OpenGL 3.3 core
//   - backend/glfixed: OpenGL 2.1 fixed function
//   - backend/software: CPU rasteriser into an *image.RGBA
//   - recording: records backend commands for inspection and replay
//
// Widget state lives in a [value.Group]. Connecting a widget to a value
// pushes the value into the widget; a widget change pulls the new value and
// pushes it to every other connected widget.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/ggui"
//		_ "github.com/gogpu/ggui/backend/software"
//	)
//
//	core, err := ggui.New(ggui.DefaultConfig(), ggui.WithBackendName("software"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer core.Close()
//
//	err = core.Paint(320, 240, func(r *render.Renderer) {
//		r.DrawRectFill(render.NewRect(10, 10, 100, 20), render.RGBA(40, 90, 200, 255))
//	})
//
// # Configuration
//
// [Config] holds the backend name, ring size, batch capacity and log level.
// It can be loaded from TOML with [LoadConfig] and overridden with options.
//
// # Logging
//
// ggui logs nothing by default. [SetLogger] enables logging for the root
// package and every sub-package.
//
// # Tests
//
// The rendering packages (render, recording, backend/... and internal/...)
// test with the standard testing package. The binding layers (this package,
// value and cmd/ggdemo) test with testify's assert and require.
package ggui
