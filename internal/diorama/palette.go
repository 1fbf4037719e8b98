package diorama

import colorful "github.com/lucasb-eyer/go-colorful"

// RGB is an 8-bit per channel sRGB colour.
type RGB struct {
	R, G, B uint8
}

// Hex builds a colour from a 0xRRGGBB literal.
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// HSL builds a colour from hue, saturation and lightness, all in [0, 1].
func HSL(h, s, l float64) RGB {
	r, g, b := colorful.Hsl(h*360, s, l).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Linear returns the colour in linear RGB, ready for an sRGB framebuffer.
func (c RGB) Linear() [3]float32 {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := cf.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}

func (c RGB) IsBlack() bool { return c.R == 0 && c.G == 0 && c.B == 0 }

// MaterialID indexes a scene's material table.
type MaterialID uint8

const (
	MatGrassA MaterialID = iota
	MatGrassB
	MatPathStone
	MatBaseStone
	MatStair
	MatWood
	MatPillar
	MatRoofRed
	MatRoofTrim
	MatRidgeGold
	MatFinial
	MatTrunk
	MatLeaf
	MatBlossom
	MatLampPost
	MatLantern
	MatGlow
	MatPetal
	MaterialCount
)

var materialNames = [MaterialCount]string{
	"grass-a", "grass-b", "path-stone", "base-stone", "stair", "wood", "pillar",
	"roof-red", "roof-trim", "ridge-gold", "finial", "trunk", "leaf", "blossom",
	"lamp-post", "lantern", "glow", "petal",
}

func (m MaterialID) String() string {
	if m < MaterialCount {
		return materialNames[m]
	}
	return "material(?)"
}

// Material mirrors a standard PBR-ish surface description.
// Unlit materials ignore scene lights and fog shading (basic materials).
type Material struct {
	Color             RGB
	Emissive          RGB
	EmissiveIntensity float32
	Roughness         float32
	Metalness         float32
	Opacity           float32
	Unlit             bool
	DoubleSided       bool
}

func standard(col RGB) Material {
	return Material{Color: col, Roughness: 1, Opacity: 1}
}

// Palette holds the fixed garden colours.
var Palette = struct {
	Wood      RGB
	Pillar    RGB
	RoofRed   RGB
	RoofGold  RGB
	Trim      RGB
	Stone     RGB
	PathStone RGB
	Trunk     RGB
	Leaf      RGB
	Blossom   RGB
	LampPost  RGB
	Petal     RGB
}{
	Wood:      Hex(0x8e5a33),
	Pillar:    Hex(0x7a3e2b),
	RoofRed:   Hex(0xc0392b),
	RoofGold:  Hex(0xf1c40f),
	Trim:      Hex(0xd35400),
	Stone:     Hex(0xbfc9ca),
	PathStone: Hex(0x9ea7b3),
	Trunk:     Hex(0x5b3a1a),
	Leaf:      Hex(0x3ba357),
	Blossom:   Hex(0xffc0e1),
	LampPost:  Hex(0x5c4b51),
	Petal:     Hex(0xffa6d1),
}

// Materials returns the material table for a theme. Only the lantern and
// glow entries depend on the theme.
func Materials(theme Theme) [MaterialCount]Material {
	var m [MaterialCount]Material
	m[MatGrassA] = standard(HSL(0.33, 0.45, 0.45))
	m[MatGrassB] = standard(HSL(0.33, 0.55, 0.35))
	m[MatPathStone] = standard(Palette.PathStone)
	m[MatBaseStone] = standard(Palette.Stone)
	m[MatBaseStone].Roughness = 0.9
	m[MatStair] = standard(Palette.Stone)
	m[MatWood] = standard(Palette.Wood)
	m[MatPillar] = standard(Palette.Pillar)
	m[MatRoofRed] = standard(Palette.RoofRed)
	m[MatRoofTrim] = standard(Palette.Trim)
	m[MatRidgeGold] = Material{Color: Palette.RoofGold, Roughness: 0.4, Metalness: 0.3, Opacity: 1}
	m[MatFinial] = Material{Color: Palette.RoofGold, Roughness: 0.3, Metalness: 0.5, Opacity: 1}
	m[MatTrunk] = standard(Palette.Trunk)
	m[MatLeaf] = standard(Palette.Leaf)
	m[MatBlossom] = standard(Palette.Blossom)
	m[MatLampPost] = standard(Palette.LampPost)
	m[MatPetal] = Material{Color: Palette.Petal, Opacity: 0.9, Unlit: true, DoubleSided: true}

	if theme == Night {
		m[MatLantern] = Material{Color: Hex(0xffe29a), Emissive: Hex(0xffc46b), EmissiveIntensity: 0.5, Roughness: 1, Opacity: 1}
		m[MatGlow] = Material{Color: Hex(0xffe38d), Opacity: 1, Unlit: true}
	} else {
		m[MatLantern] = standard(Hex(0xfff1c1))
		m[MatGlow] = Material{Color: Hex(0xfff2b1), Opacity: 1, Unlit: true}
	}
	return m
}
