package diorama

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Orbit camera limits.
const (
	OrbitDamping     = 0.05
	OrbitMinDistance = 8.0
	OrbitMaxDistance = 140.0
	OrbitMinPolar    = 0.05
	OrbitMaxPolar    = math32.Pi/2 - 0.02
	OrbitKeyRate     = 1.2 // radians per second
)

// Camera orbits a target on a sphere, with damped input.
type Camera struct {
	Target mgl32.Vec3
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Aspect float32

	theta, phi, radius float32 // azimuth, polar, distance

	dTheta, dPhi float32 // pending rotation
	zoom         float32 // pending distance scale, 1 = none
}

// NewCamera places a camera at the pose's position, looking at its target.
func NewCamera(pose CameraPose) *Camera {
	c := &Camera{
		Target: pose.Target,
		FOV:    pose.FOV,
		Near:   pose.Near,
		Far:    pose.Far,
		Aspect: 1,
		zoom:   1,
	}
	off := pose.Pos.Sub(pose.Target)
	c.radius = off.Len()
	if c.radius <= 0 {
		c.radius = OrbitMinDistance
		off = mgl32.Vec3{0, 0, c.radius}
	}
	c.theta = math32.Atan2(off.X(), off.Z())
	c.phi = math32.Acos(clampF32(off.Y()/c.radius, -1, 1))
	return c
}

// SetViewport updates the aspect ratio; zero sizes are ignored.
func (c *Camera) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float32(w) / float32(h)
}

// Rotate queues an orbit by the given azimuth and polar deltas (radians).
func (c *Camera) Rotate(dTheta, dPhi float32) {
	c.dTheta += dTheta
	c.dPhi += dPhi
}

// Zoom queues a dolly; factors above 1 move away from the target.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.zoom *= factor
}

// Update applies a damped share of the queued input.
func (c *Camera) Update() {
	c.theta += c.dTheta * OrbitDamping
	c.phi = clampF32(c.phi+c.dPhi*OrbitDamping, OrbitMinPolar, OrbitMaxPolar)
	c.dTheta *= 1 - OrbitDamping
	c.dPhi *= 1 - OrbitDamping

	step := math32.Pow(c.zoom, OrbitDamping)
	c.radius = clampF32(c.radius*step, OrbitMinDistance, OrbitMaxDistance)
	c.zoom /= step
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 {
	sp := math32.Sin(c.phi)
	return c.Target.Add(mgl32.Vec3{
		c.radius * sp * math32.Sin(c.theta),
		c.radius * math32.Cos(c.phi),
		c.radius * sp * math32.Cos(c.theta),
	})
}

func (c *Camera) Distance() float32 { return c.radius }

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FrameClock yields capped frame deltas.
type FrameClock struct {
	last    float64
	started bool
}

// Tick returns the seconds since the previous tick, capped at MaxFrameDelta.
// The first tick returns 0.
func (fc *FrameClock) Tick(now float64) float64 {
	if !fc.started {
		fc.started = true
		fc.last = now
		return 0
	}
	dt := now - fc.last
	fc.last = now
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	return dt
}
