package diorama

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex(t *testing.T) {
	assert.Equal(t, RGB{R: 0x8e, G: 0x5a, B: 0x33}, Hex(0x8e5a33))
	assert.True(t, Hex(0).IsBlack())
}

func TestHSLGreens(t *testing.T) {
	a := HSL(0.33, 0.45, 0.45)
	b := HSL(0.33, 0.55, 0.35)
	assert.Greater(t, a.G, a.R)
	assert.Greater(t, a.G, a.B)
	assert.Greater(t, a.G, b.G, "grass A is the lighter tile")
}

func TestLinear(t *testing.T) {
	white := Hex(0xffffff).Linear()
	assert.InDelta(t, 1, white[0], 1e-6)
	mid := Hex(0x808080).Linear()
	assert.Less(t, mid[1], float32(0.5), "sRGB mid grey is darker in linear space")
}

func TestThemeParsing(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
		ok   bool
	}{
		{"day", Day, true},
		{"Night", Night, true},
		{"dusk", Day, false},
		{"", Day, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTheme(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, Night, Day.Toggle())
	assert.Equal(t, Day, Night.Toggle())
	assert.Equal(t, "night", Night.String())
}

func TestNightLanternGlows(t *testing.T) {
	day := Materials(Day)[MatLantern]
	night := Materials(Night)[MatLantern]
	assert.True(t, day.Emissive.IsBlack())
	assert.Zero(t, day.EmissiveIntensity)
	assert.Equal(t, Hex(0xffc46b), night.Emissive)
	assert.Equal(t, float32(0.5), night.EmissiveIntensity)
}

func TestEnvironmentByTheme(t *testing.T) {
	day := NewEnvironment(Day)
	night := NewEnvironment(Night)
	assert.Equal(t, float32(1.0), day.Sun.Intensity)
	assert.Equal(t, float32(0.45), night.Sun.Intensity)
	assert.Equal(t, Hex(0xdfefff), day.Background)
	assert.Equal(t, Hex(0x0f1020), night.Background)
	assert.Equal(t, day.Background, day.Fog.Color)
	assert.Equal(t, day.Hemi, night.Hemi)
	assert.Equal(t, day.Camera, night.Camera)
}
