package posy

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Session is one run of the greeting. It owns the clock, the tweener, the
// animator and the phase machine, and wires the loading screen, the
// floating background, the flower field and the particle layer onto a
// Scene. Everything runs on the caller's goroutine; Update is the only
// place time moves.
type Session struct {
	cfg    *Config
	scene  *Scene
	sched  *Scheduler
	tweens *Tweener
	anim   *Animator
	phases *PhaseMachine
	gate   *LoadGate
	rng    *rand.Rand

	backdrop    *backdrop
	arrangement *arrangement
	overlay     *Surface
	field       *flowerField
	loader      *loadingScreen
	fx          *Effects

	width, height float64
	handles       []CallbackHandle
	closed        bool
}

// NewSession builds a session for cfg on scene. A nil or invalid cfg uses
// DefaultConfig and a nil scene a fresh NewScene. The loading phase starts
// immediately; call SignalLoaded once the host has drawn its first frame.
func NewSession(cfg *Config, scene *Scene) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	} else if err := cfg.Validate(); err != nil {
		logf("session: %v; using the default config", err)
		cfg = DefaultConfig()
	}
	if scene == nil {
		scene = NewScene()
	}
	s := &Session{
		cfg:    cfg,
		scene:  scene,
		sched:  NewScheduler(),
		tweens: NewTweener(),
		anim:   NewAnimator(),
		phases: NewPhaseMachine(),
		rng:    cfg.Rand(),
		width:  float64(cfg.Window.Width),
		height: float64(cfg.Window.Height),
	}
	s.gate = NewLoadGate(s.sched, cfg.MinLoadDuration())

	// Surfaces are drawn in creation order.
	s.backdrop = newBackdrop(s)
	s.arrangement = newArrangement(s)
	s.overlay = scene.NewSurface("overlay", NewScreenCamera(), nil)
	s.field = newFlowerField(s)
	s.loader = newLoadingScreen(s)

	effectsLayer := NewContainer("effects")
	s.overlay.Root().AddChild(effectsLayer)
	s.fx = NewEffects(effectsLayer, s.tweens, s.sched, s.rng, cfg.EffectsConfig())

	s.arrangement.bouquet.OnCollect(s.collected)
	s.arrangement.bouquet.OnComplete(s.completed)

	s.phases.OnEnter(PhaseEntrance, s.enterEntrance)
	s.phases.OnEnter(PhaseInteractive, s.enterInteractive)
	s.phases.OnEnter(PhaseShowcase, s.enterShowcase)

	s.handles = append(s.handles,
		scene.OnPointerDown(s.pointerDown),
		scene.OnPointerMove(s.pointerMove),
	)

	s.Resize(cfg.Window.Width, cfg.Window.Height)
	s.loader.start()
	return s
}

// Config returns the session configuration.
func (s *Session) Config() *Config { return s.cfg }

// Scene returns the render scene.
func (s *Session) Scene() *Scene { return s.scene }

// Scheduler returns the session clock.
func (s *Session) Scheduler() *Scheduler { return s.sched }

// Tweener returns the session tweener.
func (s *Session) Tweener() *Tweener { return s.tweens }

// Animator returns the procedural motion driver.
func (s *Session) Animator() *Animator { return s.anim }

// Phases returns the phase machine.
func (s *Session) Phases() *PhaseMachine { return s.phases }

// Phase returns the active phase.
func (s *Session) Phase() Phase { return s.phases.Current() }

// Gate returns the load gate.
func (s *Session) Gate() *LoadGate { return s.gate }

// Bouquet returns the growing bouquet.
func (s *Session) Bouquet() *Bouquet { return s.arrangement.bouquet }

// Effects returns the particle manager.
func (s *Session) Effects() *Effects { return s.fx }

// Targets returns the flower targets in placement order.
func (s *Session) Targets() []*Target { return s.field.targets }

// Placement returns the placement result the field was built from.
func (s *Session) Placement() Placement { return s.field.placement }

// Progress returns the loading bar value in percent.
func (s *Session) Progress() float64 { return s.loader.progress }

// Counter returns the collection counter text.
func (s *Session) Counter() string { return s.field.counter.Label.Content }

// SignalLoaded tells the load gate the host finished loading.
func (s *Session) SignalLoaded() {
	s.gate.SignalLoaded()
}

// Update advances the session by dt seconds: the scheduler, then tweens,
// then procedural motion, then transforms and input.
func (s *Session) Update(dt float64) {
	if s.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.sched.Advance(dt)
	s.tweens.Update(float32(dt))
	s.anim.Tick(dt)
	s.scene.Update(float32(dt))
}

// Draw renders the scene onto screen.
func (s *Session) Draw(screen *ebiten.Image) {
	s.scene.Draw(screen)
}

// Resize rebroadcasts a window size to every surface and re-centers the
// overlay. Flower positions are kept.
func (s *Session) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.width, s.height = float64(w), float64(h)
	s.scene.Resize(w, h)
	s.fx.SetBounds(s.width, s.height)
	s.field.layout(s.width, s.height)
	s.loader.layout(s.width, s.height)
}

// Size returns the current window size.
func (s *Session) Size() (w, h float64) {
	return s.width, s.height
}

// Gather collects t into the bouquet. It only succeeds in the Interactive
// phase and at most once per target.
func (s *Session) Gather(t *Target) bool {
	if s.closed || t == nil || !s.phases.Is(PhaseInteractive) {
		return false
	}
	return s.arrangement.bouquet.Collect(t)
}

// Close stops the petal rain, cancels every tween and timer and detaches
// the session's scene handlers.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
	s.fx.StopRain()
	s.tweens.CancelAll()
	s.phases.Resources(s.phases.Current()).Release()
}

func (s *Session) advance(to Phase) {
	if err := s.phases.Advance(to); err != nil {
		logf("phase: %v", err)
	}
}

func (s *Session) enterEntrance(Phase) {
	s.fx.StartRain(s.cfg.Effects.RainInterval)
	s.field.enter(func() { s.advance(PhaseInteractive) })
}

func (s *Session) enterInteractive(Phase) {
	s.field.pulseTitle()
}

func (s *Session) enterShowcase(Phase) {
	s.arrangement.expand()
	s.field.showcase()
	s.fx.Celebrate(s.cfg.Effects.ConfettiCount)
}

func (s *Session) collected(t *Target, count int) {
	s.field.fly(t, s.arrangement.mouth())
	s.field.setCount(count)
	if store := s.scene.EntityStore(); store != nil {
		store.EmitCollect(CollectEvent{
			TargetID: t.ID,
			Glyph:    t.Glyph,
			Count:    count,
			Total:    s.arrangement.bouquet.Total(),
			Complete: count == s.arrangement.bouquet.Total(),
		})
	}
}

func (s *Session) completed() {
	s.phases.Own(s.sched.After(s.cfg.Showcase.Delay, func() {
		s.advance(PhaseShowcase)
	}))
}

func (s *Session) pointerDown(ctx PointerContext) {
	if s.phases.Is(PhaseLoading) {
		return
	}
	s.fx.Sparkle(ctx.GlobalX, ctx.GlobalY)
}

func (s *Session) pointerMove(ctx PointerContext) {
	s.backdrop.rig.SetPointerScreen(ctx.GlobalX, ctx.GlobalY, s.width, s.height)
	if s.phases.Is(PhaseLoading) {
		return
	}
	s.arrangement.pointerAt(ctx.GlobalX, ctx.GlobalY)
	s.fx.Trail(ctx.GlobalX, ctx.GlobalY)
}
