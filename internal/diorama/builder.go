package diorama

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var unitScale = mgl32.Vec3{1, 1, 1}

type builder struct {
	voxels []Voxel
	rng    *Rand
}

func (b *builder) cube(x, y, z float32, mat MaterialID, part Part) {
	b.voxels = append(b.voxels, Voxel{Pos: mgl32.Vec3{x, y, z}, Scale: unitScale, Mat: mat, Part: part})
}

func (b *builder) scaled(pos, scale mgl32.Vec3, mat MaterialID, part Part) {
	b.voxels = append(b.voxels, Voxel{Pos: pos, Scale: scale, Mat: mat, Part: part})
}

// Build generates the full scene for cfg. Density is clamped, never rejected.
func Build(cfg SceneConfig) *Scene {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) | 1
	}
	b := &builder{
		voxels: make([]Voxel, 0, 4096),
		rng:    NewRand(seed),
	}

	b.ground()
	b.path()
	b.base()
	b.stairs()
	b.tiers()
	b.finial()
	b.trees()
	petals := NewPetalField(PetalCount(cfg.BlossomDensity), seed^0xBEAD)
	b.lamps()
	b.glow()

	return &Scene{
		Config:    cfg,
		Seed:      seed,
		Voxels:    b.voxels,
		Petals:    petals,
		Materials: Materials(cfg.Theme),
		Env:       NewEnvironment(cfg.Theme),
	}
}

// IsGroundTile reports whether the checkerboard places a tile at (x, z).
func IsGroundTile(x, z int) bool {
	return (x+z)%2 == 0
}

// GroundMaterial picks the checkerboard colour for a tile.
func GroundMaterial(x, z int) MaterialID {
	if (x+z)%4 == 0 {
		return MatGrassA
	}
	return MatGrassB
}

func (b *builder) ground() {
	for x := -GroundSize / 2; x < GroundSize/2; x++ {
		for z := -GroundSize / 2; z < GroundSize/2; z++ {
			if !IsGroundTile(x, z) {
				continue
			}
			b.cube(float32(x), 0, float32(z), GroundMaterial(x, z), PartGround)
		}
	}
}

// PathZ is the winding stone path's z offset at x.
func PathZ(x int) float32 {
	return float32(math.Sin(float64(x)*PathWave) * PathAmp)
}

func (b *builder) path() {
	flat := mgl32.Vec3{1, 0.3, 1}
	for i := -PathRange; i <= PathRange; i++ {
		b.scaled(mgl32.Vec3{float32(i), 0.2, PathZ(i)}, flat, MatPathStone, PartGround)
	}
}

func (b *builder) base() {
	for x := -BaseWidth / 2; x < BaseWidth/2; x++ {
		for z := -BaseDepth / 2; z < BaseDepth/2; z++ {
			for y := 0; y < BaseHeight; y++ {
				b.cube(float32(x), float32(y)+0.5, float32(z), MatBaseStone, PartPagoda)
			}
		}
	}
}

// stairs climb away from the base on the front (-z) and back (+z) sides,
// one unit out and one unit up per step.
func (b *builder) stairs() {
	for s := 0; s < StairSteps; s++ {
		y := float32(s) + 0.5
		for x := -StairHalf; x <= StairHalf; x++ {
			b.cube(float32(x), y, float32(-BaseDepth/2-1-s), MatStair, PartPagoda)
			b.cube(float32(x), y, float32(BaseDepth/2+1+s), MatStair, PartPagoda)
		}
	}
}

// FloorBase is the deck height of floor f.
func FloorBase(f int) int {
	return BaseHeight + f*FloorStride
}

// RoofSize is the Chebyshev half-size of floor f's roof ring.
func RoofSize(f int) int {
	return FloorHalf - f + 1
}

// EaveCurve lifts roof edge cubes near the corners to flare the eaves.
func EaveCurve(x, z, size int) int {
	return max(0, 2-abs(abs(x)-size)-abs(abs(z)-size))
}

// RoofOffset returns the height above yBase+4 of the roof cube at (x, z)
// for a ring of the given size, and whether (x, z) is on the roof at all.
func RoofOffset(x, z, size int) (int, bool) {
	switch max(abs(x), abs(z)) {
	case size:
		return EaveCurve(x, z, size), true
	case size - 1:
		return 1, true
	}
	return 0, false
}

func (b *builder) tiers() {
	for f := 0; f < Floors; f++ {
		yBase := FloorBase(f)
		lo, hi := -FloorHalf+f, FloorHalf-f

		for x := lo; x <= hi; x++ {
			for z := lo; z <= hi; z++ {
				b.cube(float32(x), float32(yBase), float32(z), MatWood, PartPagoda)
			}
		}

		corners := [4][2]int{{lo, lo}, {hi, lo}, {lo, hi}, {hi, hi}}
		for _, c := range corners {
			for h := 1; h <= PillarHeight; h++ {
				b.cube(float32(c[0]), float32(yBase+h), float32(c[1]), MatPillar, PartPagoda)
			}
		}

		roof := MatRoofRed
		if f%2 != 0 {
			roof = MatRoofTrim
		}
		size := RoofSize(f)
		roofY := yBase + 4
		for x := -size; x <= size; x++ {
			for z := -size; z <= size; z++ {
				dy, ok := RoofOffset(x, z, size)
				if !ok {
					continue
				}
				b.cube(float32(x), float32(roofY+dy), float32(z), roof, PartPagoda)
			}
		}

		for x := -size; x <= size; x++ {
			b.cube(float32(x), float32(yBase+6), 0, MatRidgeGold, PartPagoda)
		}
	}
}

func (b *builder) finial() {
	top := FloorBase(Floors)
	for i := 0; i < FinialHeight; i++ {
		b.cube(0, float32(top+i), 0, MatFinial, PartPagoda)
	}
}

func (b *builder) trees() {
	for i := 0; i < TreeCount; i++ {
		ang := float64(i) / TreeCount * math.Pi * 2
		r := TreeRing + b.rng.Uniform(-TreeJitter, TreeJitter)
		x := roundHalfUp(math.Cos(ang) * r)
		z := roundHalfUp(math.Sin(ang) * r)
		b.tree(x, z, i%BlossomEvery == 0)
	}
}

func (b *builder) tree(x, z int, blossom bool) {
	height := TrunkMin + b.rng.Intn(TrunkSpread)
	for y := 1; y <= height; y++ {
		b.cube(float32(x), float32(y), float32(z), MatTrunk, PartTree)
	}

	radius, threshold, leaf := 3, 5, MatLeaf
	if blossom {
		radius, threshold, leaf = 4, 6, MatBlossom
	}
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				if abs(dx)+abs(dy)+abs(dz) > threshold {
					continue
				}
				// Draw for every candidate so the stream stays aligned.
				if !b.rng.Chance(LeafKeepChance) {
					continue
				}
				b.cube(float32(x+dx), float32(height+dy), float32(z+dz), leaf, PartTree)
			}
		}
	}
}

func (b *builder) lamps() {
	post := mgl32.Vec3{1, 4, 1}
	for x := LampMin; x <= LampMax; x += LampStep {
		b.scaled(mgl32.Vec3{float32(x), 3.5, LampRow}, post, MatLampPost, PartLamp)
		b.cube(float32(x), 6, LampRow, MatLantern, PartLamp)
	}
}

func (b *builder) glow() {
	s := mgl32.Vec3{GlowRadius, GlowRadius, GlowRadius}
	for i := 0; i < GlowCount; i++ {
		pos := mgl32.Vec3{
			float32(b.rng.Uniform(-4, 4)),
			float32(20 + b.rng.Uniform(0, 6)),
			float32(b.rng.Uniform(-4, 4)),
		}
		b.voxels = append(b.voxels, Voxel{Pos: pos, Scale: s, Mat: MatGlow, Shape: ShapeSphere, Part: PartGlow})
	}
}
