package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"pagoda/internal/diorama"
)

// Static voxel instances are [ox, oy, oz, sx, sy, sz, rx, ry, rz].
const voxelInstanceStride = 9

// Petal instances are [ox, oy, oz, rx, ry, rz]; scale stays 1.
const petalInstanceStride = 6

type batch struct {
	vao   uint32
	vbo   uint32
	count int32
	mat   diorama.MaterialID
	mesh  *mesh
}

// Session holds the GPU buffers for one scene.
type Session struct {
	r      *Renderer
	env    diorama.Environment
	mats   [diorama.MaterialCount]diorama.Material
	opaque []batch

	petalVAO   uint32
	petalVBO   uint32
	petalCount int32
	petalBuf   []float32

	objects int
	closed  bool
}

// Open uploads sc. The returned session must be closed before the
// renderer is destroyed.
func (r *Renderer) Open(sc *diorama.Scene) (*Session, error) {
	s := &Session{r: r, env: sc.Env, mats: sc.Materials}

	keys, groups := sc.Batches()
	for _, k := range keys {
		s.opaque = append(s.opaque, s.uploadBatch(k, groups[k]))
	}
	s.uploadPetals(sc.Petals)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.liveSessions++
	r.liveObjects += s.objects
	return s, nil
}

func (s *Session) uploadBatch(k diorama.BatchKey, voxels []diorama.Voxel) batch {
	data := make([]float32, 0, len(voxels)*voxelInstanceStride)
	for _, v := range voxels {
		data = append(data,
			v.Pos[0], v.Pos[1], v.Pos[2],
			v.Scale[0], v.Scale[1], v.Scale[2],
			0, 0, 0,
		)
	}

	b := batch{count: int32(len(voxels)), mat: k.Mat, mesh: s.r.meshFor(k.Shape)}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	b.mesh.bind()

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	stride := int32(voxelInstanceStride * 4)
	instanceAttrib(2, stride, 0)
	instanceAttrib(3, stride, 3*4)
	instanceAttrib(4, stride, 6*4)

	s.objects += 2
	return b
}

func (s *Session) uploadPetals(pf *diorama.PetalField) {
	s.petalCount = int32(pf.Len())
	s.petalBuf = pf.InstanceData(make([]float32, 0, pf.Len()*petalInstanceStride))

	gl.GenVertexArrays(1, &s.petalVAO)
	gl.BindVertexArray(s.petalVAO)
	s.r.quad.bind()

	gl.GenBuffers(1, &s.petalVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.petalVBO)
	size := len(s.petalBuf) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	if size > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(s.petalBuf))
	}
	stride := int32(petalInstanceStride * 4)
	instanceAttrib(2, stride, 0)
	instanceAttrib(4, stride, 3*4)
	gl.DisableVertexAttribArray(3)

	s.objects += 2
}

func instanceAttrib(index uint32, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointer(index, 3, gl.FLOAT, false, stride, glOffset(offset))
	gl.VertexAttribDivisor(index, 1)
}

// SyncPetals re-uploads petal transforms. The field length must match the
// one the session was opened with.
func (s *Session) SyncPetals(pf *diorama.PetalField) {
	if s.closed || s.petalCount == 0 {
		return
	}
	s.petalBuf = pf.InstanceData(s.petalBuf)
	size := len(s.petalBuf) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, s.petalVBO)
	// Orphan, then refill.
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(s.petalBuf))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw clears the framebuffer and renders the scene from cam.
func (s *Session) Draw(cam *diorama.Camera, fbW, fbH int) {
	if s.closed || cam == nil {
		return
	}
	r := s.r
	r.BeginFrame(s.env.Background, fbW, fbH)

	gl.UseProgram(r.prog)
	r.setEnvironment(s.env, cam)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for i := range s.opaque {
		b := &s.opaque[i]
		r.setMaterial(s.mats[b.mat])
		gl.BindVertexArray(b.vao)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, b.mesh.count, b.count)
	}

	if s.petalCount > 0 {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		r.setMaterial(s.mats[diorama.MatPetal])
		gl.BindVertexArray(s.petalVAO)
		gl.VertexAttrib3f(3, 1, 1, 1)
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, r.quad.count, s.petalCount)
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Close frees every buffer and vertex array the session created.
func (s *Session) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	for i := range s.opaque {
		b := &s.opaque[i]
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteVertexArrays(1, &b.vao)
	}
	s.opaque = nil
	if s.petalVBO != 0 {
		gl.DeleteBuffers(1, &s.petalVBO)
		s.petalVBO = 0
	}
	if s.petalVAO != 0 {
		gl.DeleteVertexArrays(1, &s.petalVAO)
		s.petalVAO = 0
	}
	s.petalBuf = nil

	s.r.liveSessions--
	s.r.liveObjects -= s.objects
	s.objects = 0
}
