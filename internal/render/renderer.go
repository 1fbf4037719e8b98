// Package render draws diorama scenes with instanced OpenGL 4.1 batches.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"pagoda/internal/diorama"
)

// Sphere tessellation for glow markers.
const (
	sphereSlices = 16
	sphereStacks = 10
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer owns the shader program and the shared meshes. Scene-specific
// buffers live in a Session.
type Renderer struct {
	prog uint32

	uView       int32
	uProj       int32
	uColor      int32
	uOpacity    int32
	uEmissive   int32
	uRoughness  int32
	uMetalness  int32
	uUnlit      int32
	uHemiSky    int32
	uHemiGround int32
	uSunDir     int32
	uSunColor   int32
	uEye        int32
	uFogColor   int32
	uFogNear    int32
	uFogFar     int32

	cube   *mesh
	quad   *mesh
	sphere *mesh

	// GL objects currently held by open sessions.
	liveSessions int
	liveObjects  int
}

// InitGL sets global state once per context.
func InitGL() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(voxelVertSrc, voxelFragSrc)
	if err != nil {
		return nil, fmt.Errorf("voxel program: %w", err)
	}

	r := &Renderer{prog: prog}
	uniform := func(name string) int32 {
		return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	}
	r.uView = uniform("uView")
	r.uProj = uniform("uProj")
	r.uColor = uniform("uColor")
	r.uOpacity = uniform("uOpacity")
	r.uEmissive = uniform("uEmissive")
	r.uRoughness = uniform("uRoughness")
	r.uMetalness = uniform("uMetalness")
	r.uUnlit = uniform("uUnlit")
	r.uHemiSky = uniform("uHemiSky")
	r.uHemiGround = uniform("uHemiGround")
	r.uSunDir = uniform("uSunDir")
	r.uSunColor = uniform("uSunColor")
	r.uEye = uniform("uEye")
	r.uFogColor = uniform("uFogColor")
	r.uFogNear = uniform("uFogNear")
	r.uFogFar = uniform("uFogFar")

	r.cube = newMesh(cubeVertices())
	r.quad = newMesh(quadVertices(diorama.PetalSize))
	r.sphere = newMesh(sphereVertices(sphereSlices, sphereStacks))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return r, nil
}

func (r *Renderer) meshFor(s diorama.Shape) *mesh {
	if s == diorama.ShapeSphere {
		return r.sphere
	}
	return r.cube
}

// Destroy releases the program and shared meshes. Sessions must be closed
// first. Calling it twice is harmless.
func (r *Renderer) Destroy() {
	if r == nil {
		return
	}
	r.cube.destroy()
	r.quad.destroy()
	r.sphere.destroy()
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
		r.prog = 0
	}
}

// Live reports open sessions and the GL objects they hold.
func (r *Renderer) Live() (sessions, objects int) {
	return r.liveSessions, r.liveObjects
}

// BeginFrame sets the viewport and clears to the scene background.
func (r *Renderer) BeginFrame(bg diorama.RGB, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	c := bg.Linear()
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) setEnvironment(env diorama.Environment, cam *diorama.Camera) {
	view := cam.View()
	proj := cam.Projection()
	eye := cam.Eye()
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.Uniform3f(r.uEye, eye.X(), eye.Y(), eye.Z())

	sky := scaled(env.Hemi.Sky.Linear(), env.Hemi.Intensity)
	ground := scaled(env.Hemi.Ground.Linear(), env.Hemi.Intensity)
	gl.Uniform3f(r.uHemiSky, sky[0], sky[1], sky[2])
	gl.Uniform3f(r.uHemiGround, ground[0], ground[1], ground[2])

	dir := env.Sun.Pos.Normalize()
	sun := scaled(env.Sun.Color.Linear(), env.Sun.Intensity)
	gl.Uniform3f(r.uSunDir, dir.X(), dir.Y(), dir.Z())
	gl.Uniform3f(r.uSunColor, sun[0], sun[1], sun[2])

	fog := env.Fog.Color.Linear()
	gl.Uniform3f(r.uFogColor, fog[0], fog[1], fog[2])
	gl.Uniform1f(r.uFogNear, env.Fog.Near)
	gl.Uniform1f(r.uFogFar, env.Fog.Far)
}

func (r *Renderer) setMaterial(m diorama.Material) {
	c := m.Color.Linear()
	e := scaled(m.Emissive.Linear(), m.EmissiveIntensity)
	gl.Uniform3f(r.uColor, c[0], c[1], c[2])
	gl.Uniform3f(r.uEmissive, e[0], e[1], e[2])
	gl.Uniform1f(r.uOpacity, m.Opacity)
	gl.Uniform1f(r.uRoughness, m.Roughness)
	gl.Uniform1f(r.uMetalness, m.Metalness)
	unlit := int32(0)
	if m.Unlit {
		unlit = 1
	}
	gl.Uniform1i(r.uUnlit, unlit)
}

func scaled(c [3]float32, k float32) [3]float32 {
	return [3]float32{c[0] * k, c[1] * k, c[2] * k}
}
