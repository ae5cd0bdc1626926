// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glerr

import (
	"testing"

	"github.com/gogpu/ggui/render"
)

func TestName(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{NoError, "GL_NO_ERROR"},
		{InvalidEnum, "GL_INVALID_ENUM"},
		{InvalidValue, "GL_INVALID_VALUE"},
		{InvalidOperation, "GL_INVALID_OPERATION"},
		{StackOverflow, "GL_STACK_OVERFLOW"},
		{StackUnderflow, "GL_STACK_UNDERFLOW"},
		{OutOfMemory, "GL_OUT_OF_MEMORY"},
		{InvalidFramebufferOperation, "GL_INVALID_FRAMEBUFFER_OPERATION"},
		{0x1234, "GL_ERROR(0x1234)"},
	}
	for _, tt := range tests {
		if got := Name(tt.code); got != tt.want {
			t.Errorf("Name(%#x) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDrain(t *testing.T) {
	queue := []uint32{InvalidEnum, OutOfMemory}
	calls := 0
	getError := func() uint32 {
		calls++
		if len(queue) == 0 {
			return NoError
		}
		code := queue[0]
		queue = queue[1:]
		return code
	}

	n := Drain("gl", "test", getError)
	if !render.DebugChecks {
		if n != 0 || calls != 0 {
			t.Errorf("Drain without ggdebug: n=%d calls=%d, want 0 0", n, calls)
		}
		return
	}
	if n != 2 {
		t.Errorf("Drain = %d, want 2", n)
	}
	if calls != 3 {
		t.Errorf("getError called %d times, want 3", calls)
	}
}

func TestDrainStopsOnStuckError(t *testing.T) {
	if !render.DebugChecks {
		t.Skip("needs -tags ggdebug")
	}
	n := Drain("gl", "stuck", func() uint32 { return InvalidOperation })
	if n != maxDrain {
		t.Errorf("Drain = %d, want %d", n, maxDrain)
	}
}
