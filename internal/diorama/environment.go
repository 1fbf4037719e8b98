package diorama

import "github.com/go-gl/mathgl/mgl32"

// HemiLight is a sky/ground gradient light.
type HemiLight struct {
	Sky       RGB
	Ground    RGB
	Intensity float32
}

// DirLight projects light toward the origin from Pos, like the sun.
type DirLight struct {
	Color     RGB
	Pos       mgl32.Vec3
	Intensity float32
}

// Fog is linear distance fog between Near and Far.
type Fog struct {
	Color     RGB
	Near, Far float32
}

// CameraPose is the initial perspective camera.
type CameraPose struct {
	FOV       float32 // vertical, degrees
	Near, Far float32
	Pos       mgl32.Vec3
	Target    mgl32.Vec3
}

// Environment is everything the renderer needs besides geometry.
type Environment struct {
	Background RGB
	Fog        Fog
	Hemi       HemiLight
	Sun        DirLight
	Camera     CameraPose
}

// NewEnvironment returns lighting, fog and camera for a theme.
func NewEnvironment(theme Theme) Environment {
	bg := Hex(0xdfefff)
	sun := float32(1.0)
	if theme == Night {
		bg = Hex(0x0f1020)
		sun = 0.45
	}
	return Environment{
		Background: bg,
		Fog:        Fog{Color: bg, Near: 60, Far: 160},
		Hemi:       HemiLight{Sky: Hex(0xffffff), Ground: Hex(0x223344), Intensity: 0.6},
		Sun:        DirLight{Color: Hex(0xffffff), Pos: mgl32.Vec3{20, 30, 10}, Intensity: sun},
		Camera: CameraPose{
			FOV:    55,
			Near:   0.1,
			Far:    1000,
			Pos:    mgl32.Vec3{28, 24, 34},
			Target: mgl32.Vec3{0, 6, 0},
		},
	}
}
