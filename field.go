package posy

import (
	"fmt"
	"math"
)

// Field tuning. Sizes are pixels on the overlay surface.
const (
	flowerSize       = 44
	titleY           = 50
	subtitleY        = 88
	counterY         = 118
	bannerY          = 80
	headerRise       = 30
	flowerPopTime    = 0.45
	flowerPopDelay   = 0.5
	flowerPopStagger = 0.06
	flightScale      = 0.15
)

// flowerField is the overlay half of the game: the header, the counter,
// the interactive flowers and the win banner.
type flowerField struct {
	s         *Session
	flowers   *Node
	header    *Node
	title     *Node
	subtitle  *Node
	counter   *Node
	banner    *Node
	targets   []*Target
	placement Placement
}

func newFlowerField(s *Session) *flowerField {
	cfg := s.cfg
	f := &flowerField{s: s}
	root := s.overlay.Root()

	f.flowers = NewContainer("flowers")
	f.flowers.Interactable = true
	root.AddChild(f.flowers)

	f.header = NewContainer("header")
	f.title = newLabel("title", cfg.Field.Title, 34, Hex(0xd6336c))
	f.title.Y = titleY
	f.subtitle = newLabel("subtitle", cfg.Field.Subtitle, 18, Hex(0x8a4f6a))
	f.subtitle.Y = subtitleY
	f.header.AddChild(f.title)
	f.header.AddChild(f.subtitle)
	root.AddChild(f.header)

	f.counter = newLabel("counter", "", 20, Hex(0xc2185b))
	f.counter.Y = counterY
	root.AddChild(f.counter)
	f.setCount(0)

	f.banner = newLabel("banner", cfg.Showcase.Banner, 40, Hex(0xe91e63))
	f.banner.Y = bannerY
	f.banner.Alpha = 0
	root.AddChild(f.banner)

	for _, n := range []*Node{f.title, f.subtitle, f.counter} {
		n.Alpha = 0
	}

	f.placement = Place(cfg.Field.Flowers, cfg.Placement(s.width, s.height), s.rng)
	if f.placement.AnyExhausted() {
		logf("placement: retry budget exhausted, some flowers overlap (%d candidates)", f.placement.TotalAttempts())
	}
	for i, p := range f.placement.Points {
		f.addTarget(i, p, PickGlyph(cfg.Field.Glyphs, s.rng))
	}
	return f
}

func newLabel(name, content string, size float64, c Color) *Node {
	n := NewText(name, content, DefaultFont(size))
	n.Color = c
	return n
}

func (f *flowerField) addTarget(id int, p Vec2, g Glyph) {
	t := &Target{ID: id, Pos: p, Glyph: g}
	n := NewSprite("flower", g, flowerSize)
	n.SetPosition(p.X, p.Y, 0)
	n.SetScale(0)
	n.Alpha = 0
	n.Interactable = true
	n.UserData = t
	n.EntityID = uint32(id + 1)
	// Press and click both gather; the second one is a no-op.
	n.OnPointerDown = func(PointerContext) { f.s.Gather(t) }
	n.OnClick = func(ClickContext) { f.s.Gather(t) }
	f.flowers.AddChild(n)
	t.Node = n
	f.targets = append(f.targets, t)
}

func (f *flowerField) layout(w, _ float64) {
	for _, n := range []*Node{f.header, f.counter, f.banner} {
		n.X = w / 2
	}
}

func (f *flowerField) setCount(count int) {
	f.counter.SetText(fmt.Sprintf("%d / %d flowers", count, len(f.targets)))
}

// enter plays the staggered entrance and calls done once every part of it
// has finished.
func (f *flowerField) enter(done func()) {
	s := f.s
	pending := 0
	finish := func() {
		pending--
		if pending == 0 {
			done()
		}
	}
	own := func(tws ...*Tween) {
		for _, tw := range tws {
			pending++
			s.phases.Own(tw)
		}
	}

	own(s.tweens.FromTo(f.title,
		Props{PropY: titleY - headerRise, PropAlpha: 0},
		Props{PropY: titleY, PropAlpha: 1},
		TweenConfig{Duration: 0.8, Ease: EasePower2Out, OnComplete: finish}))
	own(s.tweens.FromTo(f.subtitle,
		Props{PropY: subtitleY - headerRise, PropAlpha: 0},
		Props{PropY: subtitleY, PropAlpha: 1},
		TweenConfig{Duration: 0.8, Delay: 0.15, Ease: EasePower2Out, OnComplete: finish}))
	own(s.tweens.Animate(f.counter, Props{PropAlpha: 1},
		TweenConfig{Duration: 0.5, Delay: 0.3, Ease: EasePower2Out, OnComplete: finish}))
	own(s.arrangement.enter(TweenConfig{Duration: 1, Delay: 0.2, Ease: EasePower2Out, OnComplete: finish})...)

	for i, t := range f.targets {
		own(s.tweens.Animate(t.Node, Props{PropScale: 1, PropAlpha: 1}, TweenConfig{
			Duration:   flowerPopTime,
			Delay:      float32(flowerPopDelay + float64(i)*flowerPopStagger),
			Ease:       EaseBackOut,
			OnComplete: finish,
		}))
	}
}

// pulseTitle starts the endless title pulse, owned by the active phase.
func (f *flowerField) pulseTitle() {
	f.s.phases.Own(f.s.tweens.Animate(f.title, Props{PropScale: 1.05}, TweenConfig{
		Duration: 1.2,
		Ease:     EaseSineInOut,
		Repeat:   -1,
		Yoyo:     true,
	}))
}

// fly sends a collected flower to dest while it shrinks, fades and turns
// once. The sprite is disposed when the flight ends either way.
func (f *flowerField) fly(t *Target, dest Vec2) {
	n := t.Node
	if n == nil || n.IsDisposed() {
		return
	}
	n.Interactable = false
	f.s.tweens.CancelAnimationsOf(n)
	f.s.phases.Own(f.s.tweens.Animate(n, Props{
		PropX:     dest.X,
		PropY:     dest.Y,
		PropScale: flightScale,
		PropAlpha: 0,
		PropRotZ:  n.RotZ + 2*math.Pi,
	}, TweenConfig{
		Duration:   float32(f.s.cfg.Field.FlightDuration),
		Ease:       EasePower2In,
		OnComplete: n.Dispose,
		OnCancel:   n.Dispose,
	}))
}

// showcase fades the header and counter out and the banner in.
func (f *flowerField) showcase() {
	s := f.s
	s.phases.Own(s.tweens.Animate(f.header, Props{PropY: -headerRise, PropAlpha: 0},
		TweenConfig{Duration: 0.5, Ease: EasePower2In}))
	s.phases.Own(s.tweens.Animate(f.counter, Props{PropAlpha: 0},
		TweenConfig{Duration: 0.4}))
	s.phases.Own(s.tweens.FromTo(f.banner,
		Props{PropY: bannerY + headerRise, PropAlpha: 0},
		Props{PropY: bannerY, PropAlpha: 1},
		TweenConfig{Duration: 0.8, Delay: 0.5, Ease: EasePower2Out}))
}
