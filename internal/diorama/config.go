package diorama

import "fmt"

// Ground and path extents (in voxel units).
const (
	GroundSize = 60
	PathRange  = 20
	PathWave   = 0.3
	PathAmp    = 4.0
)

// Pagoda layout.
const (
	BaseWidth    = 16
	BaseDepth    = 16
	BaseHeight   = 2
	StairSteps   = 6
	StairHalf    = 3
	Floors       = 4
	FloorHalf    = 7
	FloorStride  = 4
	PillarHeight = 3
	FinialHeight = 6
)

// Garden layout.
const (
	TreeCount      = 14
	TreeRing       = 22.0
	TreeJitter     = 3.0
	BlossomEvery   = 3
	TrunkMin       = 5
	TrunkSpread    = 4 // trunk height = TrunkMin + [0, TrunkSpread)
	LeafKeepChance = 0.8
	LampRow        = -14
	LampMin        = -6
	LampMax        = 6
	LampStep       = 3
	GlowCount      = 50
	GlowRadius     = 0.1
)

// Petals.
const (
	MaxUIBlossoms    = 200
	MaxPetals        = 400
	DefaultBlossoms  = 120
	PetalSize        = 0.6
	PetalRespawnY    = 0.6
	PetalSpawnSpread = 20.0
	PetalRespawnMinY = 12.0
	PetalRespawnMaxY = 24.0
)

// MaxFrameDelta caps the per-frame delta (~30 fps floor).
const MaxFrameDelta = 0.033

// Theme selects the lighting mood of the scene.
type Theme uint8

const (
	Day Theme = iota
	Night
)

func (t Theme) String() string {
	switch t {
	case Day:
		return "day"
	case Night:
		return "night"
	}
	return fmt.Sprintf("theme(%d)", uint8(t))
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Night {
		return Day
	}
	return Night
}

// ParseTheme maps "day" / "night" to a Theme.
func ParseTheme(s string) (Theme, bool) {
	switch s {
	case "day", "Day", "DAY":
		return Day, true
	case "night", "Night", "NIGHT":
		return Night, true
	}
	return Day, false
}

// SceneConfig drives a full scene rebuild.
// Seed 0 means "unseeded": the builder picks a seed from the clock, so
// trees and glow markers differ between regenerations.
type SceneConfig struct {
	Theme          Theme
	BlossomDensity int
	Seed           uint64
}

// DefaultSceneConfig matches the initial state of the control panel.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{Theme: Day, BlossomDensity: DefaultBlossoms}
}

// PetalCount returns the petal pool size for a requested density.
func PetalCount(density int) int {
	return clamp(density, 0, MaxPetals)
}

// ClampUIDensity bounds density to the range exposed by the controls.
func ClampUIDensity(density int) int {
	return clamp(density, 0, MaxUIBlossoms)
}
