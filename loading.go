package posy

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Loading screen tuning.
const (
	loaderHeartBox   = 260
	loaderMessageY   = 70
	loaderBarY       = 108
	loaderPercentY   = 132
	loaderBarHalf    = 120
	loaderBarWidth   = 8
	loaderMotes      = 20
	messageFadeOut   = 0.2
	messageFadeIn    = 0.3
	heartBeatAmp     = 0.12
	heartBeatRate    = 3.5
	heartSpinRate    = 0.8
	moteFloatAmp     = 0.3
	moteOrbitPerStep = 0.6
)

var moteColors = []uint32{0xff69b4, 0xffb6c1, 0xffffff, 0xff1493}

// loadingScreen shows a beating heart with orbiting motes, cycling
// messages and a progress bar until the load gate opens, then fades out
// and hands over to the entrance.
type loadingScreen struct {
	s       *Session
	surface *Surface
	heart   *Node

	root     *Node
	message  *Node
	percent  *Node
	barFill  *Node
	msgIndex int
	progress float64
	step     float64
}

func newLoadingScreen(s *Session) *loadingScreen {
	l := &loadingScreen{s: s}

	cam := NewPerspectiveCamera(45, 1, 0.1, 100)
	cam.SetPosition(0, 0.3, 3.2)
	cam.LookAt(0, 0, 0)
	l.surface = s.scene.NewSurface("loading", cam, func(w, h float64) Rect {
		return Rect{X: w/2 - loaderHeartBox/2, Y: h/2 - loaderHeartBox + 20, Width: loaderHeartBox, Height: loaderHeartBox}
	})
	l.surface.Light = Light{Direction: mgl64.Vec3{2, 3, 4}, Ambient: 0.55, Diffuse: 0.7}

	l.heart = NewMesh("loading-heart", NewHeartMesh(1.2, 0.35), Hex(0xff4081))
	l.surface.Root().AddChild(l.heart)
	s.anim.Add(l.heart, MotionProfile{
		SpinRate:  mgl64.Vec3{0, heartSpinRate, 0},
		BaseScale: 1,
		BeatAmp:   heartBeatAmp,
		BeatRate:  heartBeatRate,
	})

	rng := s.rng
	for i := 0; i < loaderMotes; i++ {
		mote := NewSprite("mote", GlyphWhiteHeart, 0.08)
		mote.Color = Hex(moteColors[rng.IntN(len(moteColors))])
		l.surface.Root().AddChild(mote)
		speed := 0.3 + rng.Float64()*0.5
		s.anim.Add(mote, MotionProfile{
			Base:        mgl64.Vec3{0, (rng.Float64() - 0.5) * 1.5, 0},
			Phase:       rng.Float64() * 2 * math.Pi,
			OrbitRadius: 0.6 + rng.Float64()*0.8,
			OrbitSpeed:  speed * moteOrbitPerStep,
			FloatAmp:    moteFloatAmp,
			FloatSpeed:  speed,
			AlphaBase:   0.3,
			AlphaAmp:    0.4,
			AlphaRate:   2,
		})
	}

	l.root = NewContainer("loader")
	l.message = newLabel("loading-message", s.cfg.Loading.Messages[0], 20, Hex(0xc2185b))
	l.message.Y = loaderMessageY
	l.percent = newLabel("loading-percent", "0%", 14, Hex(0x8a4f6a))
	l.percent.Y = loaderPercentY
	track := NewLine("loading-track",
		mgl64.Vec3{-loaderBarHalf, loaderBarY, 0}, mgl64.Vec3{loaderBarHalf, loaderBarY, 0},
		Hex(0xf8bbd0), loaderBarWidth)
	l.barFill = NewLine("loading-fill",
		mgl64.Vec3{-loaderBarHalf, loaderBarY, 0}, mgl64.Vec3{-loaderBarHalf, loaderBarY, 0},
		Hex(0xff4081), loaderBarWidth)
	l.root.AddChild(track)
	l.root.AddChild(l.barFill)
	l.root.AddChild(l.message)
	l.root.AddChild(l.percent)
	s.overlay.Root().AddChild(l.root)

	l.step = s.cfg.Loading.ProgressCap / (s.cfg.MinLoadDuration() / s.cfg.Loading.ProgressTick)
	return l
}

// start schedules the message cycle and the progress bar. Both timers stop
// when the gate opens; the loader nodes and heart surface belong to the
// loading phase and go away when it ends.
func (l *loadingScreen) start() {
	s := l.s
	msgTimer := s.sched.Every(s.cfg.Loading.MessageInterval, l.nextMessage)
	barTimer := s.sched.Every(s.cfg.Loading.ProgressTick, l.tick)
	s.gate.StopOnReady(msgTimer)
	s.gate.StopOnReady(barTimer)
	s.phases.Own(msgTimer)
	s.phases.Own(barTimer)
	s.phases.OwnNode(l.root)
	s.phases.Own(StopFunc(func() { s.scene.RemoveSurface(l.surface) }))
	s.gate.OnReady(l.ready)
}

func (l *loadingScreen) layout(w, h float64) {
	l.root.SetPosition(w/2, h/2, 0)
}

func (l *loadingScreen) nextMessage() {
	msgs := l.s.cfg.Loading.Messages
	if l.msgIndex+1 >= len(msgs) {
		return
	}
	tweens := l.s.tweens
	out := tweens.Animate(l.message, Props{PropAlpha: 0}, TweenConfig{
		Duration: messageFadeOut,
		OnComplete: func() {
			l.msgIndex++
			l.message.SetText(msgs[l.msgIndex])
			l.s.gate.StopOnReady(tweens.Animate(l.message, Props{PropAlpha: 1}, TweenConfig{Duration: messageFadeIn}))
		},
	})
	l.s.gate.StopOnReady(out)
}

func (l *loadingScreen) tick() {
	p := l.progress + l.step*(0.8+l.s.rng.Float64()*0.4)
	l.setProgress(min(p, l.s.cfg.Loading.ProgressCap))
}

func (l *loadingScreen) setProgress(p float64) {
	l.progress = p
	l.barFill.LineTo[0] = -loaderBarHalf + 2*loaderBarHalf*p/100
	l.percent.SetText(fmt.Sprintf("%d%%", int(p)))
}

// ready completes the bar, shows the ready message and fades the loader
// out. The entrance begins when the fade ends.
func (l *loadingScreen) ready() {
	s := l.s
	l.setProgress(100)
	l.message.SetText(s.cfg.Loading.ReadyMessage)
	l.message.Alpha = 1
	s.backdrop.show()

	fade := TweenConfig{
		Duration: float32(s.cfg.Loading.FadeDuration),
		Delay:    float32(s.cfg.Loading.FadeDelay),
		Ease:     EasePower2InOut,
	}
	s.phases.Own(s.tweens.Animate(l.surface.Root(), Props{PropAlpha: 0}, fade))
	fade.OnComplete = func() { s.advance(PhaseEntrance) }
	s.phases.Own(s.tweens.Animate(l.root, Props{PropAlpha: 0}, fade))
}
