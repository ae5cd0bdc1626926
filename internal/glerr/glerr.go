// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glerr names and drains OpenGL error codes for the GL backends.
package glerr

import (
	"fmt"

	"github.com/gogpu/ggui/render"
)

// Error codes shared by every GL profile.
const (
	NoError                     = 0
	InvalidEnum                 = 0x0500
	InvalidValue                = 0x0501
	InvalidOperation            = 0x0502
	StackOverflow               = 0x0503
	StackUnderflow              = 0x0504
	OutOfMemory                 = 0x0505
	InvalidFramebufferOperation = 0x0506
)

// maxDrain bounds Drain on drivers that keep reporting the same error.
const maxDrain = 16

// Name returns the GL enum name of an error code.
func Name(code uint32) string {
	switch code {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("GL_ERROR(0x%04x)", code)
	}
}

// Drain pops errors from getError until it reports GL_NO_ERROR and logs each
// one against op. It returns the number of errors seen. It does nothing
// unless built with -tags ggdebug.
func Drain(backend, op string, getError func() uint32) int {
	if !render.DebugChecks {
		return 0
	}
	n := 0
	for range maxDrain {
		code := getError()
		if code == NoError {
			break
		}
		n++
		render.Logger().Warn(backend+": error", "op", op, "code", Name(code))
	}
	return n
}
