package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Mesh vertices are interleaved [px, py, pz, nx, ny, nz].
const meshStride = 6

// mesh is a static, non-indexed triangle list shared by every session.
type mesh struct {
	vbo   uint32
	count int32
}

// cubeVertices returns a unit cube centred on the origin.
func cubeVertices() []float32 {
	faces := [6]struct {
		n    [3]float32
		u, v [3]float32
	}{
		{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
		{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
		{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
		{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
		{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
		{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}

	out := make([]float32, 0, 36*meshStride)
	for _, f := range faces {
		for _, c := range corners {
			for i := 0; i < 3; i++ {
				out = append(out, 0.5*(f.n[i]+c[0]*f.u[i]+c[1]*f.v[i]))
			}
			out = append(out, f.n[0], f.n[1], f.n[2])
		}
	}
	return out
}

// quadVertices returns a size x size plane in XY facing +Z.
func quadVertices(size float32) []float32 {
	h := size / 2
	return []float32{
		-h, -h, 0, 0, 0, 1,
		h, -h, 0, 0, 0, 1,
		h, h, 0, 0, 0, 1,
		-h, -h, 0, 0, 0, 1,
		h, h, 0, 0, 0, 1,
		-h, h, 0, 0, 0, 1,
	}
}

// sphereVertices returns a unit UV sphere.
func sphereVertices(slices, stacks int) []float32 {
	point := func(i, j int) [3]float32 {
		theta := float32(j) / float32(stacks) * math32.Pi
		phi := float32(i) / float32(slices) * 2 * math32.Pi
		st := math32.Sin(theta)
		return [3]float32{st * math32.Cos(phi), math32.Cos(theta), st * math32.Sin(phi)}
	}
	out := make([]float32, 0, slices*stacks*6*meshStride)
	emit := func(p [3]float32) {
		// On a unit sphere the normal equals the position.
		out = append(out, p[0], p[1], p[2], p[0], p[1], p[2])
	}
	for j := 0; j < stacks; j++ {
		for i := 0; i < slices; i++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			emit(a)
			emit(b)
			emit(c)
			emit(a)
			emit(c)
			emit(d)
		}
	}
	return out
}

func newMesh(verts []float32) *mesh {
	m := &mesh{count: int32(len(verts) / meshStride)}
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	return m
}

// bind points attributes 0 (position) and 1 (normal) at the mesh buffer.
// The target VAO must be bound.
func (m *mesh) bind() {
	stride := int32(meshStride * 4)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
}

func (m *mesh) destroy() {
	if m == nil || m.vbo == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.vbo)
	m.vbo = 0
}
