package viewer

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func initWindow(w WindowOptions) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)
	if w.Samples > 0 {
		glfw.WindowHint(glfw.Samples, w.Samples)
	}

	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// resizeObserver keeps the camera aspect and the framebuffer size in step
// with the window.
type resizeObserver struct {
	window *glfw.Window
	fbW    int
	fbH    int
	onSize func(w, h int)
}

func observeResize(window *glfw.Window, onSize func(w, h int)) *resizeObserver {
	ro := &resizeObserver{window: window, onSize: onSize}
	ro.fbW, ro.fbH = window.GetFramebufferSize()
	onSize(ro.fbW, ro.fbH)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		ro.fbW, ro.fbH = w, h
		ro.onSize(w, h)
	})
	return ro
}

func (ro *resizeObserver) Size() (int, int) { return ro.fbW, ro.fbH }

// Disconnect removes the callback. Safe to call more than once.
func (ro *resizeObserver) Disconnect() {
	if ro.window == nil {
		return
	}
	ro.window.SetFramebufferSizeCallback(nil)
	ro.window = nil
}
