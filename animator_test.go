package posy

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotionProfileFloat(t *testing.T) {
	p := MotionProfile{Base: mgl64.Vec3{1, 2, 3}, FloatAmp: 0.5, FloatSpeed: 2}
	assert.True(t, p.Positioned())

	pos := p.PositionAt(math.Pi / 4)
	assert.InDelta(t, 1.0, pos[0], 1e-9)
	assert.InDelta(t, 2.5, pos[1], 1e-9)
	assert.InDelta(t, 3.0, pos[2], 1e-9)
}

func TestMotionProfileOrbit(t *testing.T) {
	p := MotionProfile{OrbitRadius: 2, OrbitSpeed: 1}
	for _, tm := range []float64{0, 0.7, 3} {
		pos := p.PositionAt(tm)
		assert.InDelta(t, 2.0, math.Hypot(pos[0], pos[2]), 1e-9)
		assert.InDelta(t, 0.0, pos[1], 1e-9)
	}
}

func TestMotionProfileIsPureFunctionOfTime(t *testing.T) {
	p := MotionProfile{
		FloatAmp: 0.3, FloatSpeed: 1.2, Phase: 0.4,
		SpinRate:  mgl64.Vec3{0, 0.8, 0},
		BeatAmp:   0.12, BeatRate: 3.5,
		AlphaBase: 0.6, AlphaAmp: 0.3, AlphaRate: 2,
	}
	a := NewContainer("a")
	b := NewContainer("b")
	p.apply(a, 2.5)
	p.apply(b, 1.0)
	p.apply(b, 2.5)

	assert.Equal(t, a.Position(), b.Position())
	assert.Equal(t, a.RotY, b.RotY)
	assert.Equal(t, a.ScaleX, b.ScaleX)
	assert.Equal(t, a.Alpha, b.Alpha)
}

func TestMotionProfileChannelsAreIndependent(t *testing.T) {
	n := NewContainer("spin-only")
	n.SetPosition(5, 6, 7)
	n.Alpha = 0.4

	MotionProfile{SpinRate: mgl64.Vec3{0, 0, 1}}.apply(n, 2)

	assert.Equal(t, mgl64.Vec3{5, 6, 7}, n.Position(), "spin must not pin the position")
	assert.InDelta(t, 0.4, n.Alpha, 1e-9)
	assert.InDelta(t, 2.0, n.RotZ, 1e-9)
}

func TestMotionProfileHeartbeat(t *testing.T) {
	p := MotionProfile{BeatAmp: 0.12, BeatRate: 3.5}
	n := NewContainer("heart")
	p.apply(n, 0)
	assert.InDelta(t, 1.0, n.ScaleX, 1e-9)

	p.apply(n, math.Pi/2/3.5)
	assert.InDelta(t, 1.12, n.ScaleX, 1e-9)
}

func TestMotionProfileAlphaClamped(t *testing.T) {
	n := NewContainer("mote")
	MotionProfile{AlphaBase: 0.9, AlphaAmp: 0.5, AlphaRate: 1}.apply(n, math.Pi/2)
	assert.Equal(t, 1.0, n.Alpha)
}

func TestAnimatorTickAndRemove(t *testing.T) {
	a := NewAnimator()
	n := NewContainer("float")
	a.Add(n, MotionProfile{FloatAmp: 1, FloatSpeed: 1})
	a.Add(nil, MotionProfile{})
	require.Equal(t, 1, a.Len())

	a.Tick(math.Pi / 2)
	assert.InDelta(t, math.Pi/2, a.Elapsed(), 1e-9)
	assert.InDelta(t, 1.0, n.Y, 1e-9)

	a.Tick(-1)
	assert.InDelta(t, math.Pi/2, a.Elapsed(), 1e-9, "negative steps are ignored")

	assert.True(t, a.Remove(n))
	assert.False(t, a.Remove(n))
	a.Tick(math.Pi / 2)
	assert.InDelta(t, 1.0, n.Y, 1e-9, "removed nodes are left alone")
}

func TestAnimatorDropsDisposed(t *testing.T) {
	a := NewAnimator()
	n := NewSprite("mote", GlyphWhiteHeart, 0.08)
	a.Add(n, MotionProfile{OrbitRadius: 1, OrbitSpeed: 1})
	n.Dispose()
	a.Tick(0.1)
	assert.Equal(t, 0, a.Len())
}

func TestCameraRigEasesTowardPointer(t *testing.T) {
	cam := NewPerspectiveCamera(60, 1, 0.1, 100)
	cam.SetPosition(0, 0, 8)
	rig := NewCameraRig(cam)
	rig.SetPointerScreen(800, 0, 800, 600) // right edge, top

	rig.Update(1.0 / 60)
	first := cam.Position
	assert.InDelta(t, 1.5*0.02, first[0], 1e-9)
	assert.InDelta(t, 1.0*0.02, first[1], 1e-9)
	assert.InDelta(t, 8.0, first[2], 1e-9)

	for i := 0; i < 2000; i++ {
		rig.Update(1.0 / 60)
	}
	assert.InDelta(t, 1.5, cam.Position[0], 1e-3)
	assert.InDelta(t, 1.0, cam.Position[1], 1e-3)
}

func TestCameraRigFrameRateIndependent(t *testing.T) {
	a := NewPerspectiveCamera(60, 1, 0.1, 100)
	b := NewPerspectiveCamera(60, 1, 0.1, 100)
	ra, rb := NewCameraRig(a), NewCameraRig(b)
	ra.SetPointer(1, -1)
	rb.SetPointer(1, -1)

	ra.Update(1.0 / 30)
	rb.Update(1.0 / 60)
	rb.Update(1.0 / 60)
	assert.InDelta(t, a.Position[0], b.Position[0], 1e-9)
	assert.InDelta(t, a.Position[1], b.Position[1], 1e-9)
}

func TestCameraRigIgnoresBadInput(t *testing.T) {
	rig := NewCameraRig(nil)
	assert.NotPanics(t, func() { rig.Update(1) })
	rig.SetPointerScreen(10, 10, 0, 0)
	assert.Equal(t, Vec2{}, rig.pointer)
}

func TestAnimatorUpdatesRigs(t *testing.T) {
	a := NewAnimator()
	cam := NewPerspectiveCamera(60, 1, 0.1, 100)
	rig := NewCameraRig(cam)
	rig.SetPointer(1, 0)
	a.AddRig(rig)
	a.Tick(1.0 / 60)
	assert.Greater(t, cam.Position[0], 0.0)
}
