// Package stage owns the lifecycle of the current diorama: it rebuilds the
// scene on every configuration change, hands it to the renderer, and drives
// petal updates from the frame loop.
package stage

import (
	"fmt"
	"log/slog"

	"pagoda/internal/diorama"
)

// Session is the GPU-side copy of one scene. Close releases everything the
// session acquired and must tolerate repeated calls.
type Session interface {
	SyncPetals(pf *diorama.PetalField)
	Draw(cam *diorama.Camera, fbW, fbH int)
	Close()
}

// Loader turns a built scene into a live Session.
type Loader interface {
	Open(sc *diorama.Scene) (Session, error)
}

// Stage holds at most one scene and one session at a time.
type Stage struct {
	loader Loader
	loop   *FrameLoop
	log    *slog.Logger

	cfg        diorama.SceneConfig
	scene      *diorama.Scene
	sess       Session
	cancelTick func()
	closed     bool
}

func New(loader Loader, loop *FrameLoop, log *slog.Logger) *Stage {
	if log == nil {
		log = slog.Default()
	}
	return &Stage{loader: loader, loop: loop, log: log}
}

// Apply rebuilds the scene if cfg differs from the live one, or if nothing
// is loaded yet.
func (s *Stage) Apply(cfg diorama.SceneConfig) error {
	if s.scene != nil && cfg == s.cfg {
		return nil
	}
	return s.rebuild(cfg)
}

// Regenerate rebuilds with the current config regardless of changes.
func (s *Stage) Regenerate() error {
	return s.rebuild(s.cfg)
}

func (s *Stage) rebuild(cfg diorama.SceneConfig) error {
	if s.closed {
		return fmt.Errorf("stage: rebuild after close")
	}
	s.release()

	sc := diorama.Build(cfg)
	sess, err := s.loader.Open(sc)
	if err != nil {
		return fmt.Errorf("open scene: %w", err)
	}
	s.cfg = cfg
	s.scene = sc
	s.sess = sess
	s.cancelTick = s.loop.Register(s.tick)

	s.log.Debug("scene rebuilt",
		"theme", cfg.Theme,
		"blossoms", cfg.BlossomDensity,
		"seed", sc.Seed,
		"voxels", len(sc.Voxels),
		"petals", sc.Petals.Len(),
	)
	return nil
}

func (s *Stage) tick(float64) {
	if s.scene == nil || s.sess == nil {
		return
	}
	s.scene.Petals.Step()
	s.sess.SyncPetals(s.scene.Petals)
}

// release drops the frame callback, then the session. Safe when empty.
func (s *Stage) release() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
	if s.sess != nil {
		s.sess.Close()
		s.sess = nil
	}
	s.scene = nil
}

// Draw renders the live session, if any.
func (s *Stage) Draw(cam *diorama.Camera, fbW, fbH int) {
	if s.sess == nil {
		return
	}
	s.sess.Draw(cam, fbW, fbH)
}

// Scene returns the live scene, or nil.
func (s *Stage) Scene() *diorama.Scene { return s.scene }

// Config returns the config of the last successful rebuild.
func (s *Stage) Config() diorama.SceneConfig { return s.cfg }

// Close releases the live scene. It may be called repeatedly.
func (s *Stage) Close() {
	s.release()
	s.closed = true
}
