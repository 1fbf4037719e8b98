package stage

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"pagoda/internal/diorama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader tracks live "GPU" resources the way the GL renderer does:
// one buffer per batch plus one for petals.
type countingLoader struct {
	live     int
	opened   int
	closed   int
	synced   int
	drawn    int
	failNext bool
}

type countingSession struct {
	l         *countingLoader
	resources int
	petals    int
}

func (l *countingLoader) Open(sc *diorama.Scene) (Session, error) {
	if l.failNext {
		l.failNext = false
		return nil, errors.New("no context")
	}
	keys, _ := sc.Batches()
	s := &countingSession{l: l, resources: len(keys) + 1}
	l.live += s.resources
	l.opened++
	return s, nil
}

func (s *countingSession) SyncPetals(pf *diorama.PetalField) {
	s.petals = pf.Len()
	s.l.synced++
}

func (s *countingSession) Draw(*diorama.Camera, int, int) { s.l.drawn++ }

func (s *countingSession) Close() {
	if s.resources == 0 {
		return
	}
	s.l.live -= s.resources
	s.resources = 0
	s.l.closed++
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplyBuildsOnce(t *testing.T) {
	l := &countingLoader{}
	loop := NewFrameLoop()
	st := New(l, loop, quietLogger())

	cfg := diorama.SceneConfig{Theme: diorama.Day, BlossomDensity: 50, Seed: 3}
	require.NoError(t, st.Apply(cfg))
	require.NoError(t, st.Apply(cfg))
	assert.Equal(t, 1, l.opened)
	assert.Equal(t, 1, loop.Len())
	require.NotNil(t, st.Scene())
	assert.Equal(t, 50, st.Scene().Petals.Len())
}

func TestToggleDoesNotLeak(t *testing.T) {
	l := &countingLoader{}
	loop := NewFrameLoop()
	st := New(l, loop, quietLogger())

	require.NoError(t, st.Apply(diorama.SceneConfig{Theme: diorama.Day, BlossomDensity: 120, Seed: 1}))
	baseline := l.live

	themes := []diorama.Theme{diorama.Night, diorama.Day}
	for i := 0; i < 50; i++ {
		cfg := diorama.SceneConfig{Theme: themes[i%2], BlossomDensity: (i * 37) % 201, Seed: 1}
		require.NoError(t, st.Apply(cfg))
		assert.Equal(t, baseline, l.live, "toggle %d", i)
		assert.Equal(t, 1, loop.Len(), "toggle %d", i)
	}
	assert.Equal(t, l.opened-1, l.closed)

	st.Close()
	st.Close()
	assert.Equal(t, 0, l.live)
	assert.Equal(t, 0, loop.Len())
	assert.Equal(t, l.opened, l.closed)
}

func TestTickStepsPetals(t *testing.T) {
	l := &countingLoader{}
	loop := NewFrameLoop()
	st := New(l, loop, quietLogger())
	require.NoError(t, st.Apply(diorama.SceneConfig{BlossomDensity: 10, Seed: 8}))

	before := st.Scene().Petals.P[0].Pos
	loop.Run(diorama.MaxFrameDelta)
	loop.Run(diorama.MaxFrameDelta)
	assert.Equal(t, 2, l.synced)
	assert.NotEqual(t, before, st.Scene().Petals.P[0].Pos)

	st.Draw(diorama.NewCamera(st.Scene().Env.Camera), 800, 600)
	assert.Equal(t, 1, l.drawn)
}

func TestRegenerateRebuildsSameConfig(t *testing.T) {
	l := &countingLoader{}
	st := New(l, NewFrameLoop(), quietLogger())
	cfg := diorama.SceneConfig{Theme: diorama.Night, BlossomDensity: 20}
	require.NoError(t, st.Apply(cfg))
	require.NoError(t, st.Regenerate())
	assert.Equal(t, 2, l.opened)
	assert.Equal(t, 1, l.closed)
	assert.Equal(t, cfg, st.Config())
}

func TestOpenFailureLeavesStageEmpty(t *testing.T) {
	l := &countingLoader{}
	loop := NewFrameLoop()
	st := New(l, loop, quietLogger())
	require.NoError(t, st.Apply(diorama.SceneConfig{Seed: 1}))

	l.failNext = true
	err := st.Apply(diorama.SceneConfig{Theme: diorama.Night, Seed: 1})
	require.Error(t, err)
	assert.Nil(t, st.Scene())
	assert.Equal(t, 0, l.live)
	assert.Equal(t, 0, loop.Len())
	assert.NotPanics(t, func() {
		loop.Run(0.01)
		st.Draw(nil, 1, 1)
	})

	require.NoError(t, st.Apply(diorama.SceneConfig{Theme: diorama.Night, Seed: 1}))
	assert.NotNil(t, st.Scene())
}

func TestRebuildAfterCloseFails(t *testing.T) {
	st := New(&countingLoader{}, NewFrameLoop(), quietLogger())
	st.Close()
	assert.Error(t, st.Apply(diorama.DefaultSceneConfig()))
}

func TestFrameLoopCancel(t *testing.T) {
	loop := NewFrameLoop()
	var calls []string
	cancelA := loop.Register(func(float64) { calls = append(calls, "a") })
	loop.Register(func(float64) { calls = append(calls, "b") })

	loop.Run(0)
	cancelA()
	cancelA()
	loop.Run(0)

	assert.Equal(t, []string{"a", "b", "b"}, calls)
	assert.Equal(t, 1, loop.Len())
}

func TestFrameLoopCancelDuringRun(t *testing.T) {
	loop := NewFrameLoop()
	n := 0
	var cancel func()
	cancel = loop.Register(func(float64) {
		n++
		cancel()
	})
	loop.Run(0)
	loop.Run(0)
	assert.Equal(t, 1, n)
}
