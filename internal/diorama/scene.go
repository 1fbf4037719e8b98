package diorama

import "github.com/go-gl/mathgl/mgl32"

// Shape selects the primitive a voxel is drawn with.
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapeSphere
)

// Part tags which sub-generator placed a voxel.
type Part uint8

const (
	PartGround Part = iota
	PartPagoda
	PartTree
	PartLamp
	PartGlow
	PartCount
)

var partNames = [PartCount]string{"ground", "pagoda", "tree", "lamp", "glow"}

func (p Part) String() string {
	if p < PartCount {
		return partNames[p]
	}
	return "part(?)"
}

// Voxel is a placed primitive. Cubes have unit size before Scale;
// spheres have unit radius before Scale.
type Voxel struct {
	Pos   mgl32.Vec3
	Scale mgl32.Vec3
	Mat   MaterialID
	Shape Shape
	Part  Part
}

// Scene is the complete output of one Build call.
type Scene struct {
	Config    SceneConfig
	Seed      uint64 // effective seed, never 0
	Voxels    []Voxel
	Petals    *PetalField
	Materials [MaterialCount]Material
	Env       Environment
}

// Count returns how many voxels a part placed.
func (s *Scene) Count(p Part) int {
	n := 0
	for i := range s.Voxels {
		if s.Voxels[i].Part == p {
			n++
		}
	}
	return n
}

// Deterministic returns the voxels that do not depend on randomness.
func (s *Scene) Deterministic() []Voxel {
	out := make([]Voxel, 0, len(s.Voxels))
	for _, v := range s.Voxels {
		if v.Part == PartTree || v.Part == PartGlow {
			continue
		}
		out = append(out, v)
	}
	return out
}

// BatchKey groups voxels that can be drawn in one instanced call.
type BatchKey struct {
	Shape Shape
	Mat   MaterialID
}

// Batches groups voxels by shape and material, preserving placement order.
func (s *Scene) Batches() (keys []BatchKey, groups map[BatchKey][]Voxel) {
	groups = make(map[BatchKey][]Voxel)
	for _, v := range s.Voxels {
		k := BatchKey{Shape: v.Shape, Mat: v.Mat}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], v)
	}
	return keys, groups
}
