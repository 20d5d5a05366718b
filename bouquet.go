package posy

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Target is an interactive flower in the field. Collected is set at most
// once, by Bouquet.Collect.
type Target struct {
	ID    int
	Pos   Vec2
	Glyph Glyph
	// Node is the field sprite, if the target is on screen.
	Node *Node

	collected bool
}

// Collected reports whether the target was gathered.
func (t *Target) Collected() bool {
	return t.collected
}

// DomeVolume is the bounded region above the vase where collected flowers
// are arranged. The radius band widens with the collected index so early
// flowers do not pile up at the center.
type DomeVolume struct {
	Anchor    mgl64.Vec3
	MinRadius float64
	// RadiusSpread is the width of the radius band for the last flower.
	RadiusSpread float64
	MinHeight    float64
	HeightSpread float64
}

// DefaultDome matches the vase mouth at the origin of the bouquet surface.
var DefaultDome = DomeVolume{
	MinRadius:    0.15,
	RadiusSpread: 0.5,
	MinHeight:    0.2,
	HeightSpread: 1.0,
}

// Position returns the position of the index-th (0-based) of total flowers:
// a random angle, a radius drawn from a band that widens with index, and a
// random height inside the dome.
func (d DomeVolume) Position(rng *rand.Rand, index, total int) mgl64.Vec3 {
	angle := rng.Float64() * 2 * math.Pi
	frac := 1.0
	if total > 1 {
		frac = 0.4 + 0.6*float64(index)/float64(total-1)
	}
	radius := d.MinRadius + rng.Float64()*d.RadiusSpread*frac
	y := d.MinHeight + rng.Float64()*d.HeightSpread
	s, c := math.Sincos(angle)
	return d.Anchor.Add(mgl64.Vec3{c * radius, y, s * radius})
}

// Contains reports whether p lies inside the dome's bounds.
func (d DomeVolume) Contains(p mgl64.Vec3) bool {
	rel := p.Sub(d.Anchor)
	r := math.Hypot(rel[0], rel[2])
	const eps = 1e-9
	return r <= d.MinRadius+d.RadiusSpread+eps &&
		rel[1] >= d.MinHeight-eps && rel[1] <= d.MinHeight+d.HeightSpread+eps
}

// Bouquet tuning.
const (
	bloomSize      = 0.55 // flower sprite diameter in world units
	bloomPopTime   = 0.6
	bloomSwayRise  = 0.1
	stemColor      = 0x4a8c3f
	stemWidth      = 2
	stemMouthY     = -0.5
	stemBelowBloom = 0.15
)

// Bouquet is the growing composite: one flower sprite and stem per
// collected target, arranged in a dome. The count only grows and never
// passes Total.
type Bouquet struct {
	// Flowers and Stems are the containers the group spin rotates.
	Flowers *Node
	Stems   *Node
	Dome    DomeVolume

	tweens     *Tweener
	rng        *rand.Rand
	total      int
	count      int
	completed  bool
	onComplete []func()
	onCollect  []func(t *Target, count int)
	// PopDelay delays each new flower's pop-in, in seconds.
	PopDelay float32
}

// NewBouquet creates an empty bouquet of total flowers under parent.
func NewBouquet(parent *Node, total int, tweens *Tweener, rng *rand.Rand) *Bouquet {
	if rng == nil {
		rng = NewRand()
	}
	b := &Bouquet{
		Flowers: NewContainer("bouquet-flowers"),
		Stems:   NewContainer("bouquet-stems"),
		Dome:    DefaultDome,
		tweens:  tweens,
		rng:     rng,
		total:   total,
	}
	if parent != nil {
		parent.AddChild(b.Stems)
		parent.AddChild(b.Flowers)
	}
	return b
}

// Count returns the number of collected flowers.
func (b *Bouquet) Count() int {
	return b.count
}

// Total returns the number of flowers needed to complete the bouquet.
func (b *Bouquet) Total() int {
	return b.total
}

// Complete reports whether the bouquet reached Total.
func (b *Bouquet) Complete() bool {
	return b.completed
}

// OnCollect registers fn to run after every accepted collection.
func (b *Bouquet) OnCollect(fn func(t *Target, count int)) {
	b.onCollect = append(b.onCollect, fn)
}

// OnComplete registers fn to run once when the count reaches Total. If the
// bouquet is already complete, fn runs immediately.
func (b *Bouquet) OnComplete(fn func()) {
	if b.completed {
		fn()
		return
	}
	b.onComplete = append(b.onComplete, fn)
}

// Collect gathers t into the bouquet. It returns false and changes nothing
// if t is nil, already collected, or the bouquet is full.
func (b *Bouquet) Collect(t *Target) bool {
	if t == nil || t.collected || b.count >= b.total {
		return false
	}
	t.collected = true
	index := b.count
	b.count++
	b.addBloom(t.Glyph, b.Dome.Position(b.rng, index, b.total))

	for _, fn := range b.onCollect {
		fn(t, b.count)
	}
	if b.count == b.total && !b.completed {
		b.completed = true
		fns := b.onComplete
		b.onComplete = nil
		for _, fn := range fns {
			fn()
		}
	}
	return true
}

// addBloom attaches a flower sprite and its stem at pos with a pop-in and an
// endless sway.
func (b *Bouquet) addBloom(g Glyph, pos mgl64.Vec3) {
	bloom := NewSprite("bloom", g, bloomSize)
	bloom.SetPosition(pos[0], pos[1], pos[2])
	bloom.SetScale(0.01)
	b.Flowers.AddChild(bloom)

	stem := NewLine("stem",
		mgl64.Vec3{pos[0] * 0.3, stemMouthY, pos[2] * 0.3},
		mgl64.Vec3{pos[0], pos[1] - stemBelowBloom, pos[2]},
		Hex(stemColor), stemWidth)
	b.Stems.AddChild(stem)

	if b.tweens == nil {
		bloom.SetScale(1)
		return
	}
	b.tweens.Animate(bloom, Props{PropScale: 1}, TweenConfig{
		Duration: bloomPopTime,
		Delay:    b.PopDelay,
		Ease:     EaseElasticOut,
	})
	b.tweens.Animate(bloom, Props{PropY: pos[1] + bloomSwayRise}, TweenConfig{
		Duration: float32(1.5 + b.rng.Float64()*1.5),
		Delay:    b.PopDelay,
		Ease:     EaseSineInOut,
		Repeat:   -1,
		Yoyo:     true,
	})
}
