package audio

import (
	"math"
	"sync/atomic"

	"pagoda/internal/diorama"
)

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// unit returns a uniform sample in [0,1).
func unit(seed *uint64) float64 { return (lcg(seed) + 1) * 0.5 }

// fmPad returns a soft pad sample from a chord, detuned per note.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	detunes := [3]float64{-0.003, 0.0, 0.004}
	for _, freq := range chord {
		for _, d := range detunes {
			f := freq * (1 + d)
			vib := 1 + 0.002*math.Sin(2*math.Pi*(0.19+f*0.0005)*t)
			s += fm(t, f*vib, 1.0, 0.35*env) * 0.035
		}
	}
	return softSat(s)
}

// Per-theme voicing.
type mood struct {
	chords     [][]float64
	chordLen   float64 // seconds per chord
	padGain    float64
	windGain   float64
	chimeGain  float64
	chimeMin   float64 // seconds between chimes
	chimeSpan  float64
	chimeScale []float64
}

var moods = [2]mood{
	diorama.Day: {
		chords: [][]float64{
			{261.6, 329.6, 392.0, 587.3}, // Cadd9
			{220.0, 261.6, 329.6, 493.9}, // Am(add9)
			{174.6, 220.0, 261.6, 392.0}, // Fadd9
			{196.0, 246.9, 293.7, 440.0}, // G6
		},
		chordLen:   8,
		padGain:    0.55,
		windGain:   0.10,
		chimeGain:  0.22,
		chimeMin:   1.2,
		chimeSpan:  2.8,
		chimeScale: []float64{1046.5, 1174.7, 1318.5, 1568.0, 1760.0, 2093.0},
	},
	diorama.Night: {
		chords: [][]float64{
			{110.0, 164.8, 220.0, 261.6}, // Am
			{87.3, 130.8, 174.6, 220.0},  // F
			{98.0, 146.8, 196.0, 246.9},  // G
			{82.4, 123.5, 164.8, 196.0},  // Em
		},
		chordLen:   12,
		padGain:    0.42,
		windGain:   0.07,
		chimeGain:  0.14,
		chimeMin:   4.0,
		chimeSpan:  6.0,
		chimeScale: []float64{440.0, 523.3, 587.3, 659.3, 784.0},
	},
}

const maxChimes = 6

type chime struct {
	start float64
	freq  float64
	pan   float64 // -1 left, 1 right
}

// gardenReader is an endless stereo float32 stream: filtered wind, a slow
// pad and scattered wind chimes. The theme may change while it plays.
type gardenReader struct {
	theme *atomic.Uint32

	t         float64
	seed      uint64
	lp, lp2   float64 // wind lowpass state
	nextChime float64
	chimes    []chime
}

func newGardenReader(theme *atomic.Uint32, seed uint64) *gardenReader {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	return &gardenReader{theme: theme, seed: seed, nextChime: 0.8}
}

func (g *gardenReader) mood() *mood {
	if diorama.Theme(g.theme.Load()) == diorama.Night {
		return &moods[diorama.Night]
	}
	return &moods[diorama.Day]
}

func (g *gardenReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	m := g.mood()
	for i := 0; i < samples; i++ {
		g.t += 1.0 / SampleRate
		l, r := g.sample(m)
		putStereoF32LR(p, i, softSat(l), softSat(r))
	}
	return samples * 8, nil
}

func (g *gardenReader) sample(m *mood) (float64, float64) {
	t := g.t

	// Wind: two-pole lowpassed noise with slow gusts.
	n := lcg(&g.seed)
	gust := 0.55 + 0.45*math.Sin(2*math.Pi*0.07*t)*math.Sin(2*math.Pi*0.031*t+1.3)
	cut := 0.015 + 0.02*gust
	g.lp += (n - g.lp) * cut
	g.lp2 += (g.lp - g.lp2) * cut
	wind := g.lp2 * gust * m.windGain * 6

	// Pad: crossfade into each chord.
	idx := int(t/m.chordLen) % len(m.chords)
	pos := math.Mod(t, m.chordLen) / m.chordLen
	env := 1.0
	if pos < 0.15 {
		env = pos / 0.15
	} else if pos > 0.85 {
		env = (1 - pos) / 0.15
	}
	pad := fmPad(t, m.chords[idx], env) * env * m.padGain

	// Chimes.
	if t >= g.nextChime {
		g.strike(m)
	}
	var cl, cr float64
	live := g.chimes[:0]
	for _, c := range g.chimes {
		age := t - c.start
		if age > 4 {
			continue
		}
		live = append(live, c)
		bell := fm(age, c.freq, 3.5, 1.8*math.Exp(-age*3)) * math.Exp(-age*1.6)
		bell *= m.chimeGain
		cl += bell * (1 - c.pan) * 0.5
		cr += bell * (1 + c.pan) * 0.5
	}
	g.chimes = live

	return wind + pad + cl, wind*0.9 + pad + cr
}

func (g *gardenReader) strike(m *mood) {
	g.nextChime = g.t + m.chimeMin + unit(&g.seed)*m.chimeSpan
	if len(g.chimes) >= maxChimes {
		return
	}
	k := int(unit(&g.seed) * float64(len(m.chimeScale)))
	if k >= len(m.chimeScale) {
		k = len(m.chimeScale) - 1
	}
	g.chimes = append(g.chimes, chime{
		start: g.t,
		freq:  m.chimeScale[k],
		pan:   lcg(&g.seed) * 0.7,
	})
}
