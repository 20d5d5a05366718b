package posy

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStep = 1.0 / 30

func newTestSession(t *testing.T) *Session {
	t.Helper()
	SetLogger(log.New(io.Discard, "", 0))
	t.Cleanup(func() { SetLogger(nil) })

	cfg := DefaultConfig()
	cfg.Seed = 2024
	scene := NewScene()
	scene.SetInputSource(nil)
	s := NewSession(cfg, scene)
	t.Cleanup(s.Close)
	return s
}

// step advances s by secs seconds in fixed frames.
func step(s *Session, secs float64) {
	for i := 0; i < int(secs/testStep+0.5); i++ {
		s.Update(testStep)
	}
}

// stepUntil advances s until cond holds or limit seconds pass.
func stepUntil(s *Session, limit float64, cond func() bool) bool {
	for elapsed := 0.0; elapsed < limit; elapsed += testStep {
		if cond() {
			return true
		}
		s.Update(testStep)
	}
	return cond()
}

func reachInteractive(t *testing.T, s *Session) {
	t.Helper()
	s.SignalLoaded()
	require.True(t, stepUntil(s, 30, func() bool { return s.Phase() == PhaseInteractive }),
		"session stuck in %s", s.Phase())
}

func TestSessionStartsLoading(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Len(t, s.Targets(), 10)
	assert.Equal(t, "0 / 10 flowers", s.Counter())
	assert.Equal(t, 0, s.Bouquet().Count())
	w, h := s.Size()
	assert.Equal(t, 960.0, w)
	assert.Equal(t, 720.0, h)

	names := []string{}
	for _, sf := range s.Scene().Surfaces() {
		names = append(names, sf.Name)
	}
	assert.Equal(t, []string{"background", "bouquet", "overlay", "loading"}, names)
	assert.False(t, s.Scene().Surfaces()[0].Active, "background waits for the gate")
}

func TestSessionPlacementRespected(t *testing.T) {
	s := newTestSession(t)
	c := s.Config().Placement(s.Size())
	p := s.Placement()
	if !p.AnyExhausted() {
		assert.True(t, c.Satisfied(p.Points))
	}
	for i, tg := range s.Targets() {
		assert.Equal(t, i, tg.ID)
		assert.Equal(t, p.Points[i], tg.Pos)
		assert.Contains(t, s.Config().Field.Glyphs, tg.Glyph)
	}
}

func TestSessionGateWaitsForMinimumDuration(t *testing.T) {
	s := newTestSession(t)
	s.SignalLoaded()

	step(s, 10)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.False(t, s.Gate().Ready())
	assert.Greater(t, s.Progress(), 0.0)
	assert.LessOrEqual(t, s.Progress(), s.Config().Loading.ProgressCap)

	step(s, 8)
	assert.True(t, s.Gate().Ready())
	assert.Equal(t, 100.0, s.Progress())
	assert.True(t, s.Scene().Surfaces()[0].Active, "background shows once the gate opens")
}

func TestSessionGateWaitsForLoadSignal(t *testing.T) {
	s := newTestSession(t)

	step(s, 25)
	assert.True(t, s.Gate().MinTimeElapsed())
	assert.False(t, s.Gate().Ready())
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.LessOrEqual(t, s.Progress(), s.Config().Loading.ProgressCap, "progress caps until ready")

	s.SignalLoaded()
	assert.True(t, s.Gate().Ready())
	require.True(t, stepUntil(s, 5, func() bool { return s.Phase() == PhaseEntrance }))
}

func TestSessionLoadingSurfaceRemoved(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)

	for _, sf := range s.Scene().Surfaces() {
		assert.NotEqual(t, "loading", sf.Name)
	}
	assert.True(t, s.Phases().Resources(PhaseLoading).Released())
	assert.True(t, s.Effects().Raining(), "petal rain starts with the entrance")
}

func TestSessionGatherIgnoredOutsideInteractive(t *testing.T) {
	s := newTestSession(t)
	tg := s.Targets()[0]

	assert.False(t, s.Gather(tg), "loading ignores gathers")
	assert.False(t, tg.Collected())

	s.SignalLoaded()
	require.True(t, stepUntil(s, 25, func() bool { return s.Phase() == PhaseEntrance }))
	assert.False(t, s.Gather(tg), "entrance ignores gathers")
	assert.False(t, s.Gather(nil))
	assert.Equal(t, 0, s.Bouquet().Count())
}

func TestSessionGatherAll(t *testing.T) {
	s := newTestSession(t)
	store := &mockStore{}
	s.Scene().SetEntityStore(store)
	reachInteractive(t, s)

	for i, tg := range s.Targets() {
		require.True(t, s.Gather(tg))
		assert.Equal(t, i+1, s.Bouquet().Count())
		step(s, 0.1)
	}
	assert.Equal(t, "10 / 10 flowers", s.Counter())
	assert.True(t, s.Bouquet().Complete())
	assert.Equal(t, PhaseInteractive, s.Phase(), "showcase waits for its delay")

	step(s, 1.5)
	assert.Equal(t, PhaseShowcase, s.Phase())
	assert.True(t, s.Effects().Celebrated())

	step(s, 5)
	assert.Equal(t, 3, s.Phases().Transitions(), "exactly one transition into the showcase")

	require.Len(t, store.collects, 10)
	for i, e := range store.collects {
		assert.Equal(t, i+1, e.Count)
		assert.Equal(t, 10, e.Total)
		assert.Equal(t, i == 9, e.Complete)
	}
}

func TestSessionDuplicateGather(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)
	tg := s.Targets()[3]

	require.True(t, s.Gather(tg))
	assert.False(t, s.Gather(tg))
	assert.Equal(t, 1, s.Bouquet().Count())
	assert.Equal(t, "1 / 10 flowers", s.Counter())
}

func TestSessionFlightDisposesFieldFlower(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)
	tg := s.Targets()[0]
	node := tg.Node

	require.True(t, s.Gather(tg))
	assert.False(t, node.Interactable, "a flying flower cannot be gathered again")
	step(s, s.Config().Field.FlightDuration+0.2)
	assert.True(t, node.IsDisposed())
}

func TestSessionClickGathersFlower(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)
	tg := s.Targets()[5]

	s.Scene().InjectClick(tg.Pos.X, tg.Pos.Y)
	step(s, 0.1)

	assert.True(t, tg.Collected())
	assert.Equal(t, 1, s.Bouquet().Count(), "press and click gather the flower once")
	assert.Greater(t, s.Effects().Spawned(), 0, "the press sparkles")
}

func TestSessionNoSparklesWhileLoading(t *testing.T) {
	s := newTestSession(t)
	s.Scene().InjectClick(100, 100)
	s.Scene().InjectMove(200, 200)
	step(s, 0.2)
	assert.Equal(t, 0, s.Effects().Spawned())
}

func TestSessionBouquetTiltsTowardPointer(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)
	step(s, 2)
	vp := s.Scene().Surfaces()[1].Viewport()
	tilt := s.arrangement.tilt

	// Top-right of the bouquet surface.
	s.Scene().InjectMove(vp.X+vp.Width*0.9, vp.Y+vp.Height*0.1)
	step(s, 1)
	assert.InDelta(t, -0.8*tiltMax, tilt.RotX, 1e-3)
	assert.InDelta(t, 0.8*tiltMax, tilt.RotY, 1e-3)

	s.Scene().InjectMove(vp.X-50, vp.Y-50)
	step(s, 0.1)
	assert.True(t, s.Tweener().IsAnimating(tilt), "leaving springs the tilt back")
	step(s, 1.5)
	assert.InDelta(t, 0, tilt.RotX, 1e-3)
	assert.InDelta(t, 0, tilt.RotY, 1e-3)
	assert.False(t, s.Tweener().IsAnimating(tilt))
}

func TestSessionNoTiltWhileLoading(t *testing.T) {
	s := newTestSession(t)
	vp := s.Scene().Surfaces()[1].Viewport()
	s.Scene().InjectMove(vp.X+vp.Width/2+10, vp.Y+vp.Height/2)
	step(s, 1)
	assert.False(t, s.Tweener().IsAnimating(s.arrangement.tilt))
	assert.Equal(t, 0.0, s.arrangement.tilt.RotY)
}

func TestSessionShowcaseDolliesCamera(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)
	cam := s.arrangement.camera
	before := cam.Position

	for _, tg := range s.Targets() {
		require.True(t, s.Gather(tg))
	}
	step(s, 0.5)
	assert.Equal(t, before, cam.Position, "the camera holds until the showcase")
	require.True(t, stepUntil(s, 5, func() bool { return s.Phase() == PhaseShowcase }))

	step(s, expandDuration+0.3)
	assert.Less(t, cam.Position[2], before[2])
	assert.InDelta(t, showcaseCameraZ, cam.Position[2], 1e-3)
	assert.InDelta(t, showcaseCameraY, cam.Position[1], 1e-3)
}

func TestSessionEffectsSettle(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)
	fx := s.Effects()

	for i := 0; i < 30; i++ {
		x := float64(40 + i*10)
		s.Scene().InjectMove(x, 60)
		s.Scene().InjectClick(x, 60)
	}
	step(s, 4)
	assert.GreaterOrEqual(t, fx.Spawned(), 30, "every click sparkles")

	for _, tg := range s.Targets() {
		require.True(t, s.Gather(tg))
	}
	require.True(t, stepUntil(s, 5, func() bool { return s.Phase() == PhaseShowcase }))
	require.True(t, fx.Celebrated())
	assert.Greater(t, fx.Live(), 0)

	fx.StopRain()
	step(s, 15)
	assert.Equal(t, 0, fx.Live())
	assert.Equal(t, fx.Spawned(), fx.Removed())
}

func TestSessionClose(t *testing.T) {
	s := newTestSession(t)
	reachInteractive(t, s)
	require.True(t, s.Effects().Raining())

	s.Close()
	s.Close()
	assert.False(t, s.Effects().Raining())
	assert.Equal(t, 0, s.Tweener().Len())

	phase := s.Phase()
	spawned := s.Effects().Spawned()
	step(s, 10)
	assert.Equal(t, phase, s.Phase())
	assert.Equal(t, spawned, s.Effects().Spawned())
	assert.False(t, s.Gather(s.Targets()[0]))
}

func TestSessionResize(t *testing.T) {
	s := newTestSession(t)
	before := s.Targets()[0].Pos

	s.Resize(1280, 800)
	w, h := s.Size()
	assert.Equal(t, 1280.0, w)
	assert.Equal(t, 800.0, h)
	assert.Equal(t, before, s.Targets()[0].Pos, "flowers keep their positions")
	assert.Equal(t, Rect{Width: 1280, Height: 800}, s.Scene().Surfaces()[2].Viewport())

	s.Resize(0, 0)
	w, _ = s.Size()
	assert.Equal(t, 1280.0, w)
}

func TestSessionInvalidConfigFallsBack(t *testing.T) {
	buf := captureLog(t)
	cfg := DefaultConfig()
	cfg.Loading.Messages = nil
	scene := NewScene()
	scene.SetInputSource(nil)

	var s *Session
	require.NotPanics(t, func() { s = NewSession(cfg, scene) })
	defer s.Close()
	assert.NotSame(t, cfg, s.Config())
	assert.Len(t, s.Config().Loading.Messages, 11)
	assert.Contains(t, buf.String(), "loading.messages cannot be empty")
	assert.NotPanics(t, func() { step(s, 1) })
}

func TestSessionNilArguments(t *testing.T) {
	SetLogger(log.New(io.Discard, "", 0))
	defer SetLogger(nil)
	s := NewSession(nil, nil)
	defer s.Close()
	s.Scene().SetInputSource(nil)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.NotNil(t, s.Config())
	assert.NotPanics(t, func() { s.Update(-1) })
}
