package posy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MotionProfile describes procedural motion as a pure function of elapsed
// time. Each channel is only written when it is enabled, so a profile can
// spin a node without pinning its position.
type MotionProfile struct {
	// Base is the reference position; BaseRot the reference rotation.
	Base    mgl64.Vec3
	BaseRot mgl64.Vec3
	// Phase offsets the float, orbit and alpha waves.
	Phase float64

	// Float: y = Base.Y + FloatAmp*sin(FloatSpeed*t + Phase).
	FloatAmp   float64
	FloatSpeed float64

	// Spin: rot = BaseRot + SpinRate*t, in radians per second.
	SpinRate mgl64.Vec3

	// Orbit: a circle of OrbitRadius in the XZ plane around Base at angle
	// Phase + OrbitSpeed*t.
	OrbitRadius float64
	OrbitSpeed  float64

	// Heartbeat: scale = BaseScale*(1 + BeatAmp*sin(BeatRate*t)^12).
	BaseScale float64
	BeatAmp   float64
	BeatRate  float64

	// Alpha pulse: alpha = AlphaBase + AlphaAmp*sin(AlphaRate*t + Phase).
	AlphaBase float64
	AlphaAmp  float64
	AlphaRate float64
}

// Positioned reports whether the profile writes the node position.
func (p MotionProfile) Positioned() bool {
	return p.OrbitRadius > 0 || p.FloatAmp != 0
}

// PositionAt returns the profile position at time t.
func (p MotionProfile) PositionAt(t float64) mgl64.Vec3 {
	pos := p.Base
	if p.OrbitRadius > 0 {
		s, c := math.Sincos(p.Phase + p.OrbitSpeed*t)
		pos[0] += c * p.OrbitRadius
		pos[2] += s * p.OrbitRadius
	}
	if p.FloatAmp != 0 {
		pos[1] += p.FloatAmp * math.Sin(p.FloatSpeed*t+p.Phase)
	}
	return pos
}

// apply writes every enabled channel of p to n for time t.
func (p MotionProfile) apply(n *Node, t float64) {
	if p.Positioned() {
		pos := p.PositionAt(t)
		n.SetPosition(pos[0], pos[1], pos[2])
	}
	if p.SpinRate != (mgl64.Vec3{}) {
		rot := p.BaseRot.Add(p.SpinRate.Mul(t))
		n.SetRotation(rot[0], rot[1], rot[2])
	}
	if p.BeatAmp != 0 {
		base := p.BaseScale
		if base == 0 {
			base = 1
		}
		n.SetScale(base * (1 + p.BeatAmp*math.Pow(math.Sin(p.BeatRate*t), 12)))
	}
	if p.AlphaAmp != 0 {
		n.Alpha = clamp01(p.AlphaBase + p.AlphaAmp*math.Sin(p.AlphaRate*t+p.Phase))
	}
}

type animated struct {
	node    *Node
	profile MotionProfile
}

// Animator owns per-frame procedural motion. It is independent of the
// Tweener: nothing it drives is ever tweened, so the two never fight.
type Animator struct {
	objects []animated
	rigs    []*CameraRig
	elapsed float64
}

// NewAnimator returns an empty animator at time zero.
func NewAnimator() *Animator {
	return &Animator{}
}

// Add registers n with profile p and applies it at the current time.
func (a *Animator) Add(n *Node, p MotionProfile) {
	if n == nil {
		return
	}
	a.objects = append(a.objects, animated{node: n, profile: p})
	p.apply(n, a.elapsed)
}

// AddRig registers a camera rig updated on every Tick.
func (a *Animator) AddRig(r *CameraRig) {
	a.rigs = append(a.rigs, r)
}

// Remove unregisters n. It reports whether n was registered.
func (a *Animator) Remove(n *Node) bool {
	for i := range a.objects {
		if a.objects[i].node == n {
			a.objects = append(a.objects[:i], a.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered objects.
func (a *Animator) Len() int {
	return len(a.objects)
}

// Elapsed returns the accumulated animation time in seconds.
func (a *Animator) Elapsed() float64 {
	return a.elapsed
}

// Tick advances time by dt seconds, applies every profile and eases the
// camera rigs.
func (a *Animator) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	a.elapsed += dt
	a.Apply(a.elapsed)
	for _, r := range a.rigs {
		r.Update(dt)
	}
}

// Apply sets every registered object to its profile state at time t.
// Disposed nodes are dropped.
func (a *Animator) Apply(t float64) {
	kept := a.objects[:0]
	for _, o := range a.objects {
		if o.node.IsDisposed() {
			continue
		}
		o.profile.apply(o.node, t)
		kept = append(kept, o)
	}
	for i := len(kept); i < len(a.objects); i++ {
		a.objects[i] = animated{}
	}
	a.objects = kept
}

// CameraRig eases a camera toward a pointer-driven offset while keeping it
// aimed at LookAt.
type CameraRig struct {
	Camera *Camera
	// RangeX and RangeY are the offsets reached at the window edges.
	RangeX, RangeY float64
	// Smoothing is the fraction of the remaining distance covered per
	// 1/60 s; the rig stays frame-rate independent.
	Smoothing float64
	LookAt    mgl64.Vec3

	pointer Vec2
}

// NewCameraRig creates a rig with the background camera's defaults.
func NewCameraRig(cam *Camera) *CameraRig {
	return &CameraRig{Camera: cam, RangeX: 1.5, RangeY: 1.0, Smoothing: 0.02}
}

// SetPointer sets the normalized pointer position, each axis in [-1, 1]
// with +Y up.
func (r *CameraRig) SetPointer(nx, ny float64) {
	r.pointer = Vec2{nx, ny}
}

// SetPointerScreen normalizes a screen position within a w by h window.
func (r *CameraRig) SetPointerScreen(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	r.SetPointer(x/w*2-1, -(y/h*2 - 1))
}

// Update moves the camera toward its goal for a step of dt seconds.
func (r *CameraRig) Update(dt float64) {
	if r.Camera == nil {
		return
	}
	k := 1 - math.Pow(1-r.Smoothing, dt*60)
	pos := r.Camera.Position
	pos[0] += (r.pointer.X*r.RangeX - pos[0]) * k
	pos[1] += (r.pointer.Y*r.RangeY - pos[1]) * k
	r.Camera.SetPosition(pos[0], pos[1], pos[2])
	r.Camera.LookAt(r.LookAt[0], r.LookAt[1], r.LookAt[2])
}
