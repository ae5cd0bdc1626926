// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfixed

import (
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/gogpu/ggui/internal/glerr"
)

// check logs pending GL errors against op when built with -tags ggdebug.
func check(op string) { glerr.Drain("glfixed", op, gl.GetError) }
