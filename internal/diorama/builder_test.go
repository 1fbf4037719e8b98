package diorama

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetalCountClamp(t *testing.T) {
	tests := []struct {
		density int
		want    int
	}{
		{-50, 0},
		{0, 0},
		{1, 1},
		{120, 120},
		{200, 200},
		{399, 399},
		{400, 400},
		{1000, 400},
	}
	for _, tt := range tests {
		sc := Build(SceneConfig{BlossomDensity: tt.density, Seed: 7})
		assert.Equal(t, tt.want, sc.Petals.Len(), "density %d", tt.density)
		assert.Equal(t, tt.want, PetalCount(tt.density))
	}
	for d := 0; d <= MaxUIBlossoms; d++ {
		assert.Equal(t, min(MaxPetals, max(0, d)), PetalCount(d))
	}
}

func TestClampUIDensity(t *testing.T) {
	assert.Equal(t, 0, ClampUIDensity(-1))
	assert.Equal(t, 150, ClampUIDensity(150))
	assert.Equal(t, MaxUIBlossoms, ClampUIDensity(250))
}

func TestGroundParity(t *testing.T) {
	sc := Build(SceneConfig{Seed: 1})
	tiles := map[[2]int]MaterialID{}
	for _, v := range sc.Voxels {
		if v.Part != PartGround || v.Mat == MatPathStone {
			continue
		}
		assert.Equal(t, float32(0), v.Pos.Y())
		tiles[[2]int{int(v.Pos.X()), int(v.Pos.Z())}] = v.Mat
	}

	for x := -GroundSize / 2; x < GroundSize/2; x++ {
		for z := -GroundSize / 2; z < GroundSize/2; z++ {
			mat, ok := tiles[[2]int{x, z}]
			assert.Equal(t, (x+z)%2 == 0, ok, "tile at %d,%d", x, z)
			if !ok {
				continue
			}
			if (x+z)%4 == 0 {
				assert.Equal(t, MatGrassA, mat, "tile at %d,%d", x, z)
			} else {
				assert.Equal(t, MatGrassB, mat, "tile at %d,%d", x, z)
			}
		}
	}
	assert.Len(t, tiles, GroundSize*GroundSize/2)
}

func TestGroundParityNegative(t *testing.T) {
	assert.False(t, IsGroundTile(-1, 0))
	assert.True(t, IsGroundTile(-1, -1))
	assert.Equal(t, MatGrassA, GroundMaterial(-2, -2))
	assert.Equal(t, MatGrassB, GroundMaterial(-3, 1))
}

func TestPathStones(t *testing.T) {
	sc := Build(SceneConfig{Seed: 1})
	n := 0
	for _, v := range sc.Voxels {
		if v.Mat != MatPathStone {
			continue
		}
		n++
		assert.Equal(t, mgl32.Vec3{1, 0.3, 1}, v.Scale)
		assert.InDelta(t, 0.2, v.Pos.Y(), 1e-6)
		assert.InDelta(t, PathZ(int(v.Pos.X())), v.Pos.Z(), 1e-6)
	}
	assert.Equal(t, 2*PathRange+1, n)
}

func TestRoofRingMembership(t *testing.T) {
	for f := 0; f < Floors; f++ {
		size := RoofSize(f)
		require.Equal(t, FloorHalf-f+1, size)
		for x := -size - 2; x <= size+2; x++ {
			for z := -size - 2; z <= size+2; z++ {
				d := max(abs(x), abs(z))
				_, ok := RoofOffset(x, z, size)
				assert.Equal(t, d == size || d == size-1, ok, "floor %d at %d,%d", f, x, z)
			}
		}
	}
}

func TestRoofCubesInScene(t *testing.T) {
	sc := Build(SceneConfig{Seed: 3})
	for f := 0; f < Floors; f++ {
		mat := MatRoofRed
		if f%2 == 1 {
			mat = MatRoofTrim
		}
		size := RoofSize(f)
		outer := 8 * size
		inner := 8 * (size - 1)
		got := 0
		roofY := float32(FloorBase(f) + 4)
		for _, v := range sc.Voxels {
			if v.Mat != mat || v.Pos.Y() < roofY || v.Pos.Y() > roofY+2 {
				continue
			}
			if max(abs(int(v.Pos.X())), abs(int(v.Pos.Z()))) == size || max(abs(int(v.Pos.X())), abs(int(v.Pos.Z()))) == size-1 {
				got++
			}
		}
		assert.Equal(t, outer+inner, got, "floor %d", f)
	}
}

func TestEaveCurve(t *testing.T) {
	tests := []struct {
		name       string
		x, z, size int
		want       int
	}{
		{"corner", 8, 8, 8, 2},
		{"corner negative", -8, -8, 8, 2},
		{"next to corner", 7, 8, 8, 1},
		{"two from corner", 6, -8, 8, 0},
		{"mid edge", 0, 8, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EaveCurve(tt.x, tt.z, tt.size))
		})
	}
	dy, ok := RoofOffset(3, 7, 8)
	assert.True(t, ok)
	assert.Equal(t, 1, dy)
}

func TestPagodaCounts(t *testing.T) {
	sc := Build(SceneConfig{Seed: 9})
	byMat := map[MaterialID]int{}
	for _, v := range sc.Voxels {
		byMat[v.Mat]++
	}
	assert.Equal(t, BaseWidth*BaseDepth*BaseHeight, byMat[MatBaseStone])
	assert.Equal(t, 2*StairSteps*(2*StairHalf+1), byMat[MatStair])
	assert.Equal(t, Floors*4*PillarHeight, byMat[MatPillar])
	assert.Equal(t, FinialHeight, byMat[MatFinial])

	deck, ridge := 0, 0
	for f := 0; f < Floors; f++ {
		side := 2*(FloorHalf-f) + 1
		deck += side * side
		ridge += 2*RoofSize(f) + 1
	}
	assert.Equal(t, deck, byMat[MatWood])
	assert.Equal(t, ridge, byMat[MatRidgeGold])
}

func TestFinialAboveTopTier(t *testing.T) {
	sc := Build(SceneConfig{Seed: 9})
	var ys []float32
	for _, v := range sc.Voxels {
		if v.Mat == MatFinial {
			assert.Equal(t, float32(0), v.Pos.X())
			assert.Equal(t, float32(0), v.Pos.Z())
			ys = append(ys, v.Pos.Y())
		}
	}
	require.Len(t, ys, FinialHeight)
	assert.Equal(t, float32(BaseHeight+Floors*FloorStride), ys[0])
}

func TestLamps(t *testing.T) {
	sc := Build(SceneConfig{Seed: 2})
	var posts, lanterns int
	for _, v := range sc.Voxels {
		switch v.Mat {
		case MatLampPost:
			posts++
			assert.Equal(t, mgl32.Vec3{1, 4, 1}, v.Scale)
			assert.Equal(t, float32(3.5), v.Pos.Y())
			assert.Equal(t, float32(LampRow), v.Pos.Z())
		case MatLantern:
			lanterns++
			assert.Equal(t, float32(6), v.Pos.Y())
		}
	}
	assert.Equal(t, 5, posts)
	assert.Equal(t, 5, lanterns)
	assert.Equal(t, 10, sc.Count(PartLamp))
}

func TestTreesAndGlow(t *testing.T) {
	sc := Build(SceneConfig{Seed: 11})
	assert.Equal(t, GlowCount, sc.Count(PartGlow))

	trunks := map[[2]int]int{}
	for _, v := range sc.Voxels {
		switch v.Part {
		case PartGlow:
			assert.Equal(t, ShapeSphere, v.Shape)
			assert.Equal(t, MatGlow, v.Mat)
			assert.GreaterOrEqual(t, v.Pos.Y(), float32(20))
			assert.Less(t, v.Pos.Y(), float32(26))
			assert.GreaterOrEqual(t, v.Pos.X(), float32(-4))
			assert.Less(t, v.Pos.X(), float32(4))
		case PartTree:
			if v.Mat == MatTrunk {
				trunks[[2]int{int(v.Pos.X()), int(v.Pos.Z())}]++
			}
		}
	}
	assert.Len(t, trunks, TreeCount)
	for pos, h := range trunks {
		assert.GreaterOrEqual(t, h, TrunkMin, "trunk at %v", pos)
		assert.Less(t, h, TrunkMin+TrunkSpread, "trunk at %v", pos)
		d := float32(pos[0]*pos[0] + pos[1]*pos[1])
		assert.LessOrEqual(t, d, float32((TreeRing+TreeJitter+1)*(TreeRing+TreeJitter+1)))
		assert.GreaterOrEqual(t, d, float32((TreeRing-TreeJitter-1)*(TreeRing-TreeJitter-1)))
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	cfg := SceneConfig{Theme: Day, BlossomDensity: 80}
	a := Build(cfg)
	b := Build(cfg)
	assert.Equal(t, a.Deterministic(), b.Deterministic())

	cfg.Seed = 42
	assert.Equal(t, Build(cfg).Voxels, Build(cfg).Voxels)
	assert.Equal(t, Build(cfg).Petals.P, Build(cfg).Petals.P)
}

func TestThemeDoesNotMoveVoxels(t *testing.T) {
	day := Build(SceneConfig{Theme: Day, BlossomDensity: 60, Seed: 5})
	night := Build(SceneConfig{Theme: Night, BlossomDensity: 60, Seed: 5})

	assert.Equal(t, day.Voxels, night.Voxels)
	assert.Equal(t, day.Petals.P, night.Petals.P)
	for p := Part(0); p < PartCount; p++ {
		assert.Equal(t, day.Count(p), night.Count(p), p.String())
	}

	assert.NotEqual(t, day.Env.Background, night.Env.Background)
	assert.NotEqual(t, day.Env.Sun.Intensity, night.Env.Sun.Intensity)
	assert.NotEqual(t, day.Materials[MatLantern], night.Materials[MatLantern])
	for m := MaterialID(0); m < MaterialCount; m++ {
		if m == MatLantern || m == MatGlow {
			continue
		}
		assert.Equal(t, day.Materials[m], night.Materials[m], m.String())
	}
}

func TestUnseededBuildPicksSeed(t *testing.T) {
	sc := Build(SceneConfig{})
	assert.NotZero(t, sc.Seed)
}

func TestBatches(t *testing.T) {
	sc := Build(SceneConfig{Seed: 4})
	keys, groups := sc.Batches()
	total := 0
	for _, k := range keys {
		total += len(groups[k])
	}
	assert.Equal(t, len(sc.Voxels), total)
	assert.Equal(t, BatchKey{Shape: ShapeCube, Mat: MatGrassA}, keys[0])
	assert.Contains(t, groups, BatchKey{Shape: ShapeSphere, Mat: MatGlow})
}
