package viewer

import (
	"fmt"
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"pagoda/internal/diorama"
)

// BlossomStep is the density change per Up/Down press.
const BlossomStep = 10

// Wheel dolly factor per scroll notch.
const zoomPerNotch = 0.95

type action int

const (
	actNone action = iota
	actDay
	actNight
	actToggle
	actMore
	actFewer
	actReseed
)

var keyActions = []struct {
	key glfw.Key
	act action
}{
	{glfw.KeyD, actDay},
	{glfw.KeyN, actNight},
	{glfw.KeyT, actToggle},
	{glfw.KeyUp, actMore},
	{glfw.KeyDown, actFewer},
	{glfw.KeyR, actReseed},
}

// apply returns the scene request after one control action. seed is the
// effective seed of the live scene; reseeding derives a fresh one from it.
func apply(cfg diorama.SceneConfig, act action, seed uint64) diorama.SceneConfig {
	switch act {
	case actDay:
		cfg.Theme = diorama.Day
	case actNight:
		cfg.Theme = diorama.Night
	case actToggle:
		cfg.Theme = cfg.Theme.Toggle()
	case actMore:
		cfg.BlossomDensity = diorama.ClampUIDensity(cfg.BlossomDensity + BlossomStep)
	case actFewer:
		cfg.BlossomDensity = diorama.ClampUIDensity(cfg.BlossomDensity - BlossomStep)
	case actReseed:
		next := seed*6364136223846793005 + 1442695040888963407
		if next == 0 || next == cfg.Seed {
			next++
		}
		cfg.Seed = next
	}
	return cfg
}

// statusTitle renders the control panel state into the window title.
func statusTitle(base string, cfg diorama.SceneConfig) string {
	theme := "Day"
	if cfg.Theme == diorama.Night {
		theme = "Night"
	}
	status := fmt.Sprintf("%s · Blossoms %d", theme, cfg.BlossomDensity)
	if base == "" {
		return status
	}
	return base + " | " + status
}

type input struct {
	prevKeys map[glfw.Key]bool

	dragging     bool
	lastX, lastY float64
	scroll       float64
}

// newInput hooks the scroll callback; call Release before the window goes.
func newInput(window *glfw.Window) *input {
	in := &input{prevKeys: make(map[glfw.Key]bool)}
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.scroll += yoff
	})
	return in
}

func (in *input) Release(window *glfw.Window) {
	window.SetScrollCallback(nil)
}

func (in *input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Actions returns the control actions pressed this frame, in key order.
func (in *input) Actions(window *glfw.Window) []action {
	var out []action
	for _, ka := range keyActions {
		if in.JustPressed(window, ka.key) {
			out = append(out, ka.act)
		}
	}
	return out
}

// Orbit feeds mouse drag, scroll and arrow keys into the camera.
// A full window-height drag turns the camera once around.
func (in *input) Orbit(window *glfw.Window, cam *diorama.Camera, dt float64) {
	cx, cy := window.GetCursorPos()
	if window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		if in.dragging {
			_, winH := window.GetSize()
			if winH > 0 {
				k := 2 * math.Pi / float64(winH)
				cam.Rotate(float32(-(cx-in.lastX)*k), float32(-(cy-in.lastY)*k))
			}
		}
		in.dragging = true
	} else {
		in.dragging = false
	}
	in.lastX, in.lastY = cx, cy

	if in.scroll != 0 {
		cam.Zoom(float32(math.Pow(zoomPerNotch, in.scroll)))
		in.scroll = 0
	}

	step := float32(diorama.OrbitKeyRate * dt)
	if window.GetKey(glfw.KeyLeft) == glfw.Press {
		cam.Rotate(step, 0)
	}
	if window.GetKey(glfw.KeyRight) == glfw.Press {
		cam.Rotate(-step, 0)
	}
	if window.GetKey(glfw.KeyPageUp) == glfw.Press {
		cam.Rotate(0, -step)
	}
	if window.GetKey(glfw.KeyPageDown) == glfw.Press {
		cam.Rotate(0, step)
	}
}
