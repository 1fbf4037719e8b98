package render

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeVertices(t *testing.T) {
	v := cubeVertices()
	require.Len(t, v, 36*meshStride)
	for i := 0; i < len(v); i += meshStride {
		for k := 0; k < 3; k++ {
			assert.LessOrEqual(t, math32.Abs(v[i+k]), float32(0.5))
		}
		// Each face vertex lies on the plane its normal points at.
		n := [3]float32{v[i+3], v[i+4], v[i+5]}
		d := v[i]*n[0] + v[i+1]*n[1] + v[i+2]*n[2]
		assert.InDelta(t, 0.5, d, 1e-6)
	}
}

func TestCubeWindingMatchesNormals(t *testing.T) {
	v := cubeVertices()
	for tri := 0; tri < 12; tri++ {
		o := tri * 3 * meshStride
		a := [3]float32{v[o], v[o+1], v[o+2]}
		b := [3]float32{v[o+meshStride], v[o+meshStride+1], v[o+meshStride+2]}
		c := [3]float32{v[o+2*meshStride], v[o+2*meshStride+1], v[o+2*meshStride+2]}
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		dot := cross[0]*v[o+3] + cross[1]*v[o+4] + cross[2]*v[o+5]
		assert.Greater(t, dot, float32(0), "triangle %d", tri)
	}
}

func TestQuadVertices(t *testing.T) {
	v := quadVertices(0.6)
	require.Len(t, v, 6*meshStride)
	for i := 0; i < len(v); i += meshStride {
		assert.InDelta(t, 0.3, math32.Abs(v[i]), 1e-6)
		assert.InDelta(t, 0.3, math32.Abs(v[i+1]), 1e-6)
		assert.Equal(t, float32(0), v[i+2])
		assert.Equal(t, float32(1), v[i+5])
	}
}

func TestSphereVerticesOnUnitSphere(t *testing.T) {
	v := sphereVertices(sphereSlices, sphereStacks)
	require.Len(t, v, sphereSlices*sphereStacks*6*meshStride)
	for i := 0; i < len(v); i += meshStride {
		r := math32.Sqrt(v[i]*v[i] + v[i+1]*v[i+1] + v[i+2]*v[i+2])
		assert.InDelta(t, 1, r, 1e-5)
	}
}
