// Package audio plays a procedural garden ambience through oto.
package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"pagoda/internal/diorama"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// Ambience owns the audio context and the single looping player.
type Ambience struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	theme  atomic.Uint32

	mu     sync.Mutex
	player oto.Player
	done   chan struct{}
	closed bool
}

// Open creates the audio context. Nothing plays until Play.
func Open(volume float64, theme diorama.Theme) (*Ambience, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	a := &Ambience{
		ctx:    ctx,
		ready:  ready,
		volume: clampF(volume, 0, 1),
		done:   make(chan struct{}),
	}
	a.theme.Store(uint32(theme))
	return a, nil
}

// Play starts the ambience once the device is ready. It returns at once.
func (a *Ambience) Play() {
	go func() {
		select {
		case <-a.ready:
		case <-a.done:
			return
		}
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed || a.player != nil {
			return
		}
		reader := newGardenReader(&a.theme, uint64(time.Now().UnixNano()))
		a.player = a.ctx.NewPlayer(reader)
		a.player.SetVolume(a.volume)
		a.player.Play()
	}()
}

// SetTheme switches the voicing; the playing stream picks it up on its next read.
func (a *Ambience) SetTheme(t diorama.Theme) {
	a.theme.Store(uint32(t))
}

// Close stops playback. It may be called repeatedly.
func (a *Ambience) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	close(a.done)
	if a.player != nil {
		a.player.Close()
		a.player = nil
	}
	_ = a.ctx.Suspend()
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
