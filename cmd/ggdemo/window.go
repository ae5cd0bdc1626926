//go:build cgo

package main

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/ggui"
	_ "github.com/gogpu/ggui/backend/gl"
	_ "github.com/gogpu/ggui/backend/glfixed"
	"github.com/gogpu/ggui/render"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func runWindow(cfg ggui.Config, width, height int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("ggdemo: glfw: %w", err)
	}
	defer glfw.Terminate()

	switch cfg.Backend {
	case render.BackendGL:
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	case render.BackendGLFixed:
		glfw.WindowHint(glfw.ContextVersionMajor, 2)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
	default:
		return fmt.Errorf("ggdemo: -window needs the gl or glfixed backend, not %q", cfg.Backend)
	}

	win, err := glfw.CreateWindow(width, height, "ggui demo", nil, nil)
	if err != nil {
		return fmt.Errorf("ggdemo: create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	core, err := ggui.New(cfg)
	if err != nil {
		return err
	}
	defer core.Close()
	d, err := newDemo(core)
	if err != nil {
		return err
	}
	defer d.close()

	// cursor returns the cursor in framebuffer pixels.
	cursor := func() (int, int) {
		x, y := win.GetCursorPos()
		ww, _ := win.GetSize()
		fw, _ := win.GetFramebufferSize()
		k := 1.0
		if ww > 0 {
			k = float64(fw) / float64(ww)
		}
		return int(x * k), int(y * k)
	}
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, a glfw.Action, _ glfw.ModifierKey) {
		if b == glfw.MouseButtonLeft && a == glfw.Press {
			d.click(cursor())
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		x, y := cursor()
		d.scroll(x, y, int(dy))
	})

	for !win.ShouldClose() {
		fw, fh := win.GetFramebufferSize()
		if err := d.frame(fw, fh); err != nil {
			return err
		}
		win.SwapBuffers()
		glfw.WaitEvents()
	}
	return nil
}
