package posy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Arrangement tuning.
const (
	arrangementWidth  = 300
	arrangementHeight = 380
	arrangementMargin = 20
	arrangementSpin   = 0.24 // radians per second
	arrangementSlide  = 60
	expandDuration    = 1.2
	showcaseCameraZ   = 4.2
	showcaseCameraY   = 0.4

	tiltMax    = 12 * math.Pi / 180
	tiltFollow = 0.5
	tiltReturn = 1.0
)

// arrangement is the bouquet surface: a vase and the growing bouquet in a
// slowly spinning group. It sits at the bottom center of the window and
// grows to the middle for the showcase.
type arrangement struct {
	s       *Session
	surface *Surface
	camera  *Camera
	tilt    *Node
	group   *Node
	vase    *Node
	bouquet *Bouquet

	// slide offsets the viewport downward in pixels; expansion blends the
	// resting viewport with the showcase one.
	slide     float64
	expansion float64
	hovered   bool
}

func newArrangement(s *Session) *arrangement {
	a := &arrangement{s: s}
	cam := NewPerspectiveCamera(50, float64(arrangementWidth)/arrangementHeight, 0.1, 100)
	cam.SetPosition(0, 0.5, 5)
	cam.LookAt(0, 0.3, 0)
	a.camera = cam
	a.surface = s.scene.NewSurface("bouquet", cam, a.viewport)
	a.surface.Light = Light{Direction: mgl64.Vec3{3, 6, 4}, Ambient: 0.65, Diffuse: 0.5}

	// The tilt sits above the spinning group so pointer tilt and spin
	// drive different nodes.
	a.tilt = NewContainer("bouquet-tilt")
	a.surface.Root().AddChild(a.tilt)
	a.group = NewContainer("bouquet-group")
	a.tilt.AddChild(a.group)
	a.vase = newVase()
	a.group.AddChild(a.vase)

	a.bouquet = NewBouquet(a.group, s.cfg.Field.Flowers, s.tweens, s.rng)
	a.bouquet.PopDelay = float32(s.cfg.Field.FlightDuration)
	s.anim.Add(a.group, MotionProfile{SpinRate: mgl64.Vec3{0, arrangementSpin, 0}})

	// Hidden until the entrance slides it in.
	a.surface.Root().Alpha = 0
	a.slide = arrangementSlide
	return a
}

// newVase builds the vase: a truncated cone with a rim, a base disc and a
// ribbon band. Its mouth is at y = -0.5, where the stems start.
func newVase() *Node {
	vase := NewContainer("vase")
	vase.SetPosition(0, -1.3, 0)

	body := NewMesh("vase-body", NewConeMesh(0.55, 0.35, 1.6, 20), Hex(0xe8a0b5).WithAlpha(0.92))
	rim := NewMesh("vase-rim", NewRingMesh(0.56, 0.06, 24), Hex(0xd4758b))
	rim.SetPosition(0, 0.8, 0)
	base := NewMesh("vase-base", NewConeMesh(0.36, 0.36, 0.06, 20), Hex(0xd4758b))
	base.SetPosition(0, -0.8, 0)
	ribbon := NewMesh("vase-ribbon", NewRingMesh(0.58, 0.04, 24), Hex(0xff69b4))
	ribbon.SetPosition(0, 0.2, 0)

	vase.AddChild(body)
	vase.AddChild(rim)
	vase.AddChild(base)
	vase.AddChild(ribbon)
	return vase
}

// restingRect is the bottom-center slot the flower field keeps clear.
func restingRect(w, h float64) Rect {
	return Rect{
		X:      w/2 - arrangementWidth/2,
		Y:      h - arrangementHeight - arrangementMargin,
		Width:  arrangementWidth,
		Height: arrangementHeight,
	}
}

// showcaseRect is the centered slot the bouquet grows into.
func showcaseRect(w, h float64) Rect {
	rw := min(w*0.7, 560)
	rh := min(h*0.8, rw*arrangementHeight/arrangementWidth)
	return Rect{X: (w - rw) / 2, Y: (h-rh)/2 + 20, Width: rw, Height: rh}
}

func (a *arrangement) viewport(w, h float64) Rect {
	r := LerpRect(restingRect(w, h), showcaseRect(w, h), a.expansion)
	r.Y += a.slide
	return r
}

// mouth returns the screen point flowers fly to: the horizontal center of
// the viewport, 30% down from its top.
func (a *arrangement) mouth() Vec2 {
	vp := a.surface.Viewport()
	return Vec2{vp.X + vp.Width/2, vp.Y + vp.Height*0.3}
}

// enter slides the surface up while fading it in.
func (a *arrangement) enter(cfg TweenConfig) []*Tween {
	relayout := func() { a.s.scene.Relayout() }
	slideCfg := cfg
	slideCfg.OnUpdate = relayout
	return []*Tween{
		a.s.tweens.AnimateValue(&a.slide, 0, slideCfg),
		a.s.tweens.Animate(a.surface.Root(), Props{PropAlpha: 1}, cfg),
	}
}

// expand grows the surface into the showcase slot while the camera moves
// in on the bouquet.
func (a *arrangement) expand() {
	a.camera.DollyTo(0, showcaseCameraY, showcaseCameraZ, expandDuration, EasePower2InOut.Func())
	a.s.phases.Own(a.s.tweens.AnimateValue(&a.expansion, 1, TweenConfig{
		Duration: expandDuration,
		Ease:     EasePower2InOut,
		OnUpdate: func() { a.s.scene.Relayout() },
	}))
}

// pointerAt tilts the arrangement toward a pointer over its viewport, up to
// tiltMax on each axis. Leaving the viewport springs it back flat.
func (a *arrangement) pointerAt(x, y float64) {
	vp := a.surface.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 || !vp.Contains(x, y) {
		a.release()
		return
	}
	a.hovered = true
	rx := (y - vp.Y - vp.Height/2) / (vp.Height / 2) * tiltMax
	ry := (x - vp.X - vp.Width/2) / (vp.Width / 2) * tiltMax
	a.s.tweens.CancelAnimationsOf(a.tilt)
	a.s.tweens.Animate(a.tilt, Props{PropRotX: rx, PropRotY: ry}, TweenConfig{
		Duration: tiltFollow,
		Ease:     EasePower3Out,
	})
}

func (a *arrangement) release() {
	if !a.hovered {
		return
	}
	a.hovered = false
	a.s.tweens.CancelAnimationsOf(a.tilt)
	a.s.tweens.Animate(a.tilt, Props{PropRotX: 0, PropRotY: 0}, TweenConfig{
		Duration: tiltReturn,
		Ease:     EaseElasticOut,
	})
}
