// Package viewer runs the interactive desktop window: glfw events, the
// frame loop, the orbit camera and the scene stage.
package viewer

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"pagoda/internal/audio"
	"pagoda/internal/diorama"
	"pagoda/internal/render"
	"pagoda/internal/stage"
)

type WindowOptions struct {
	Width   int
	Height  int
	Title   string
	Samples int
}

type Options struct {
	Window WindowOptions
	Scene  diorama.SceneConfig

	Audio  bool
	Volume float64

	Log *slog.Logger
}

// loader adapts the GL renderer to the stage.
type loader struct{ r *render.Renderer }

func (l loader) Open(sc *diorama.Scene) (stage.Session, error) {
	s, err := l.r.Open(sc)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Run opens the window and blocks until it is closed. Window, context and
// shader failures are returned; audio failures are logged and ignored.
func Run(opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	window, err := initWindow(opts.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("gl context", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	render.InitGL()

	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	loop := stage.NewFrameLoop()
	st := stage.New(loader{rend}, loop, log)
	defer func() {
		st.Close()
		sessions, objects := rend.Live()
		log.Debug("teardown", "sessions", sessions, "gl_objects", objects)
	}()

	cfg := opts.Scene
	if err := st.Apply(cfg); err != nil {
		return err
	}

	cam := diorama.NewCamera(st.Scene().Env.Camera)
	ro := observeResize(window, cam.SetViewport)
	defer ro.Disconnect()

	in := newInput(window)
	defer in.Release(window)

	var amb *audio.Ambience
	if opts.Audio {
		amb, err = audio.Open(opts.Volume, cfg.Theme)
		if err != nil {
			log.Warn("audio init failed (continuing without sound)", "err", err)
		} else {
			defer amb.Close()
			amb.Play()
		}
	}

	base := opts.Window.Title
	window.SetTitle(statusTitle(base, cfg))

	var clock diorama.FrameClock
	for !window.ShouldClose() {
		dt := clock.Tick(glfw.GetTime())

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		next := cfg
		for _, act := range in.Actions(window) {
			next = apply(next, act, st.Scene().Seed)
		}
		if next != cfg {
			if err := st.Apply(next); err != nil {
				return fmt.Errorf("rebuild: %w", err)
			}
			if amb != nil && next.Theme != cfg.Theme {
				amb.SetTheme(next.Theme)
			}
			cfg = next
			window.SetTitle(statusTitle(base, cfg))
		}

		in.Orbit(window, cam, dt)
		cam.Update()
		loop.Run(dt)

		fbW, fbH := ro.Size()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		st.Draw(cam, fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}
