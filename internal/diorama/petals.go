package diorama

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Per-axis multipliers applied to a petal's spin each tick.
var spinAxes = mgl64.Vec3{1.0, 1.2, 0.8}

// Petal is a flat drifting quad.
// Vel and Spin are fixed at creation and survive respawns.
type Petal struct {
	Pos  mgl64.Vec3
	Rot  mgl64.Vec3 // Euler XYZ, radians
	Vel  mgl64.Vec3 // units per tick
	Spin float64    // radians per tick
}

// PetalField is a fixed-size petal pool.
type PetalField struct {
	P   []Petal
	rng *Rand
}

func NewPetalField(count int, seed uint64) *PetalField {
	count = PetalCount(count)
	pf := &PetalField{
		P:   make([]Petal, count),
		rng: NewRand(seed),
	}
	r := pf.rng
	for i := range pf.P {
		pf.P[i] = Petal{
			Pos: mgl64.Vec3{
				r.Uniform(-PetalSpawnSpread, PetalSpawnSpread),
				6 + r.Uniform(0, 20),
				r.Uniform(-PetalSpawnSpread, PetalSpawnSpread),
			},
			Rot: mgl64.Vec3{
				r.Uniform(0, math.Pi),
				r.Uniform(0, math.Pi),
				r.Uniform(0, math.Pi),
			},
			Vel: mgl64.Vec3{
				r.Uniform(-0.01, 0.01),
				-0.01 - r.Uniform(0, 0.02),
				r.Uniform(-0.01, 0.01),
			},
			Spin: r.Uniform(-0.005, 0.005),
		}
	}
	return pf
}

func (pf *PetalField) Len() int {
	if pf == nil {
		return 0
	}
	return len(pf.P)
}

// Step advances every petal by one tick. Motion does not scale with frame
// time, so perceived speed follows the frame rate.
func (pf *PetalField) Step() {
	if pf == nil {
		return
	}
	for i := range pf.P {
		p := &pf.P[i]
		p.Rot = p.Rot.Add(spinAxes.Mul(p.Spin))
		p.Pos = p.Pos.Add(p.Vel)
		if p.Pos[1] < PetalRespawnY {
			pf.respawn(p)
		}
	}
}

// respawn re-seeds position only; prior x/z are discarded.
func (pf *PetalField) respawn(p *Petal) {
	p.Pos[1] = pf.rng.Uniform(PetalRespawnMinY, PetalRespawnMaxY)
	p.Pos[0] = pf.rng.Uniform(-PetalSpawnSpread, PetalSpawnSpread)
	p.Pos[2] = pf.rng.Uniform(-PetalSpawnSpread, PetalSpawnSpread)
}

// InstanceData packs petals as [x, y, z, rx, ry, rz] * N for upload.
func (pf *PetalField) InstanceData(buf []float32) []float32 {
	buf = buf[:0]
	if pf == nil {
		return buf
	}
	for _, p := range pf.P {
		buf = append(buf,
			float32(p.Pos[0]), float32(p.Pos[1]), float32(p.Pos[2]),
			float32(p.Rot[0]), float32(p.Rot[1]), float32(p.Rot[2]),
		)
	}
	return buf
}
