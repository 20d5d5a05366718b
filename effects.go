package posy

import (
	"math"
	"math/rand/v2"
)

// MotionSpec is the tween an effect plays from its spawn state: a
// displacement, final scale, alpha and rotation over a duration.
type MotionSpec struct {
	// Size is the glyph diameter in pixels.
	Size     float64
	Offset   Vec2
	Scale    float64
	Alpha    float64
	Rotation float64
	Duration float32
	Delay    float32
	Ease     Ease
}

// Effect is one transient decorative sprite. It is removed exactly once,
// when its tween completes or is cancelled.
type Effect struct {
	node    *Node
	tween   *Tween
	fx      *Effects
	removed bool
}

// Node returns the effect sprite.
func (e *Effect) Node() *Node {
	return e.node
}

// Removed reports whether the effect has been removed.
func (e *Effect) Removed() bool {
	return e.removed
}

// Cancel stops the effect early; it is removed through the same path as a
// completed one.
func (e *Effect) Cancel() {
	if e.tween != nil && e.tween.Active() {
		e.tween.Cancel()
		return
	}
	e.remove()
}

func (e *Effect) remove() {
	if e.removed {
		return
	}
	e.removed = true
	e.node.Dispose()
	e.fx.detach(e)
}

// EffectsConfig selects glyphs and rates for the built-in triggers.
type EffectsConfig struct {
	SparkleGlyphs  []Glyph
	ClickGlyphs    []Glyph
	PetalGlyphs    []Glyph
	ConfettiGlyphs []Glyph
	// TrailChance is the probability a pointer move emits a sparkle.
	TrailChance float64
}

// DefaultEffectsConfig returns the greeting's glyph sets and trail rate.
func DefaultEffectsConfig() EffectsConfig {
	return EffectsConfig{
		SparkleGlyphs:  []Glyph{GlyphSparkle, GlyphSparklingHeart, GlyphStar, GlyphBlossom},
		ClickGlyphs:    []Glyph{GlyphHeart, GlyphSparklingHeart, GlyphSparkle},
		PetalGlyphs:    []Glyph{GlyphBlossom, GlyphLeaf, GlyphWhiteHeart, GlyphSparklingHeart},
		ConfettiGlyphs: []Glyph{GlyphHeart, GlyphSparklingHeart, GlyphGiftHeart, GlyphBlossom, GlyphSparkle, GlyphTulip, GlyphRose},
		TrailChance:    0.25,
	}
}

// Effects manages transient sprites on an overlay layer: pointer trail
// sparkles, periodic petal rain and the one-shot confetti burst. Every
// spawned effect is removed exactly once, so Spawned() == Removed() + Live()
// always holds.
type Effects struct {
	layer  *Node
	tweens *Tweener
	sched  *Scheduler
	rng    *rand.Rand
	cfg    EffectsConfig

	width, height float64

	live       []*Effect
	spawned    int
	removed    int
	rain       *Timer
	celebrated bool
}

// NewEffects creates a manager that adds sprites under layer. Layer
// coordinates are pixels.
func NewEffects(layer *Node, tweens *Tweener, sched *Scheduler, rng *rand.Rand, cfg EffectsConfig) *Effects {
	if rng == nil {
		rng = NewRand()
	}
	return &Effects{layer: layer, tweens: tweens, sched: sched, rng: rng, cfg: cfg}
}

// SetBounds sets the window size used by rain and confetti.
func (fx *Effects) SetBounds(w, h float64) {
	fx.width, fx.height = w, h
}

// Spawned returns the number of effects ever spawned.
func (fx *Effects) Spawned() int {
	return fx.spawned
}

// Removed returns the number of effects removed.
func (fx *Effects) Removed() int {
	return fx.removed
}

// Live returns the number of effects on screen.
func (fx *Effects) Live() int {
	return len(fx.live)
}

// Spawn adds a glyph sprite at pos and tweens it by m. Both completion and
// cancellation remove it.
func (fx *Effects) Spawn(pos Vec2, glyph Glyph, m MotionSpec) *Effect {
	node := NewSprite("effect", glyph, m.Size)
	node.SetPosition(pos.X, pos.Y, 0)
	fx.layer.AddChild(node)

	e := &Effect{node: node, fx: fx}
	fx.live = append(fx.live, e)
	fx.spawned++

	e.tween = fx.tweens.Animate(node, Props{
		PropX:     pos.X + m.Offset.X,
		PropY:     pos.Y + m.Offset.Y,
		PropScale: m.Scale,
		PropAlpha: m.Alpha,
		PropRotZ:  m.Rotation,
	}, TweenConfig{
		Duration:   m.Duration,
		Delay:      m.Delay,
		Ease:       m.Ease,
		OnComplete: e.remove,
		OnCancel:   e.remove,
	})
	return e
}

func (fx *Effects) detach(e *Effect) {
	for i, l := range fx.live {
		if l == e {
			copy(fx.live[i:], fx.live[i+1:])
			fx.live[len(fx.live)-1] = nil
			fx.live = fx.live[:len(fx.live)-1]
			fx.removed++
			return
		}
	}
}

// Trail emits a sparkle at (x, y) with probability TrailChance. It reports
// whether one was spawned.
func (fx *Effects) Trail(x, y float64) bool {
	if fx.rng.Float64() >= fx.cfg.TrailChance {
		return false
	}
	fx.sparkle(x, y, fx.cfg.SparkleGlyphs)
	return true
}

// Sparkle always emits one click sparkle at (x, y).
func (fx *Effects) Sparkle(x, y float64) *Effect {
	return fx.sparkle(x, y, fx.cfg.ClickGlyphs)
}

func (fx *Effects) sparkle(x, y float64, set []Glyph) *Effect {
	return fx.Spawn(Vec2{x, y}, PickGlyph(set, fx.rng), MotionSpec{
		Size:     22,
		Offset:   Vec2{(fx.rng.Float64() - 0.5) * 120, (fx.rng.Float64() - 0.5) * 120},
		Scale:    0.2,
		Alpha:    0,
		Rotation: fx.rng.Float64() * 2 * math.Pi,
		Duration: float32(0.8 + fx.rng.Float64()*0.5),
		Ease:     EasePower2Out,
	})
}

// Petal drops one petal from above a random x across the window.
func (fx *Effects) Petal() *Effect {
	const top = -30
	return fx.Spawn(Vec2{fx.rng.Float64() * fx.width, top}, PickGlyph(fx.cfg.PetalGlyphs, fx.rng), MotionSpec{
		Size:     24,
		Offset:   Vec2{fx.rng.Float64()*200 - 100, fx.height + 60 - top},
		Scale:    1,
		Alpha:    1,
		Rotation: fx.rng.Float64() * 4 * math.Pi,
		Duration: float32(6 + fx.rng.Float64()*5),
		Ease:     EaseLinear,
	})
}

// StartRain drops a petal every interval seconds until StopRain. The timer
// is returned so a phase can own it. Starting twice keeps the first timer.
func (fx *Effects) StartRain(interval float64) *Timer {
	if fx.rain.Active() {
		return fx.rain
	}
	fx.rain = fx.sched.Every(interval, func() { fx.Petal() })
	return fx.rain
}

// StopRain stops the petal timer. Petals already falling finish normally.
func (fx *Effects) StopRain() {
	fx.rain.Stop()
}

// Raining reports whether the petal timer is running.
func (fx *Effects) Raining() bool {
	return fx.rain.Active()
}

// Celebrate drops count confetti glyphs with staggered delays. Only the
// first call has any effect; it reports whether the burst was emitted.
func (fx *Effects) Celebrate(count int) bool {
	if fx.celebrated {
		return false
	}
	fx.celebrated = true
	const top = -50
	for i := 0; i < count; i++ {
		fx.Spawn(Vec2{fx.rng.Float64() * fx.width, top}, PickGlyph(fx.cfg.ConfettiGlyphs, fx.rng), MotionSpec{
			Size:     16 * (1 + fx.rng.Float64()*1.8),
			Offset:   Vec2{(fx.rng.Float64() - 0.5) * 300, fx.height + 80 - top},
			Scale:    1,
			Alpha:    1,
			Rotation: fx.rng.Float64() * 4 * math.Pi,
			Duration: float32(2.5 + fx.rng.Float64()*3),
			Delay:    float32(fx.rng.Float64() * 2.5),
			Ease:     EaseLinear,
		})
	}
	return true
}

// Celebrated reports whether Celebrate has run.
func (fx *Effects) Celebrated() bool {
	return fx.celebrated
}

// Clear cancels every live effect.
func (fx *Effects) Clear() {
	live := append([]*Effect(nil), fx.live...)
	for _, e := range live {
		e.Cancel()
	}
}
