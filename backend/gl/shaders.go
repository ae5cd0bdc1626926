// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 a_position;
layout (location = 1) in vec2 a_uv;
layout (location = 2) in vec4 a_color;

uniform mat4 u_projection;

out vec2 v_uv;
out vec4 v_color;

void main() {
    gl_Position = u_projection * vec4(a_position, 0.0, 1.0);
    v_uv = a_uv;
    v_color = a_color;
}
` + "\x00"

const fragmentShaderSource = `
#version 330 core
in vec2 v_uv;
in vec4 v_color;

uniform sampler2D u_bitmap;

out vec4 frag_color;

void main() {
    frag_color = texture(u_bitmap, v_uv) * v_color;
}
` + "\x00"

// attribute describes one vertex attribute inside render.Vertex.
type attribute struct {
	location   uint32
	size       int32
	xtype      uint32
	normalized bool
	offset     uintptr
}
