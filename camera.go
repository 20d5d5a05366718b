package posy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// dollyAnim holds active move-to tweens for the camera position.
type dollyAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera projects world space onto a surface viewport. A perspective camera
// looks from Position toward Target; a screen camera maps X/Y straight to
// viewport pixels and uses -Z only for draw ordering.
type Camera struct {
	// Position is the eye point in world space.
	Position mgl64.Vec3
	// Target is the point the camera looks at.
	Target mgl64.Vec3
	// Up is the camera's up direction.
	Up mgl64.Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by height.
	Aspect float64
	// Near and Far bound the view frustum.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	screen bool

	proj  mgl64.Mat4
	view  mgl64.Mat4
	vp    mgl64.Mat4
	dirty bool

	dolly *dollyAnim
}

// NewPerspectiveCamera creates a perspective camera at (0, 0, 5) looking at
// the origin.
func NewPerspectiveCamera(fov, aspect, near, far float64) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		Position: mgl64.Vec3{0, 0, 5},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		dirty:    true,
	}
}

// NewScreenCamera creates a camera whose world units are viewport pixels.
func NewScreenCamera() *Camera {
	return &Camera{screen: true, Aspect: 1, dirty: true}
}

// IsScreen reports whether this is a pixel-space camera.
func (c *Camera) IsScreen() bool {
	return c.screen
}

// SetPosition moves the eye point.
func (c *Camera) SetPosition(x, y, z float64) {
	c.Position = mgl64.Vec3{x, y, z}
	c.dirty = true
}

// LookAt points the camera at (x, y, z).
func (c *Camera) LookAt(x, y, z float64) {
	c.Target = mgl64.Vec3{x, y, z}
	c.dirty = true
}

// SetViewport assigns the render rectangle and recomputes the aspect ratio.
func (c *Camera) SetViewport(vp Rect) {
	c.Viewport = vp
	if vp.Height > 0 {
		c.Aspect = vp.Width / vp.Height
	}
	c.dirty = true
}

// DollyTo animates the camera position to (x, y, z) over duration seconds.
func (c *Camera) DollyTo(x, y, z float64, duration float32, easeFn ease.TweenFunc) {
	c.dolly = &dollyAnim{
		tweens: [3]*gween.Tween{
			gween.New(float32(c.Position[0]), float32(x), duration, easeFn),
			gween.New(float32(c.Position[1]), float32(y), duration, easeFn),
			gween.New(float32(c.Position[2]), float32(z), duration, easeFn),
		},
	}
}

// update advances the dolly animation. Called from Scene.Update().
func (c *Camera) update(dt float32) {
	if c.dolly == nil {
		return
	}
	all := true
	for i, tw := range c.dolly.tweens {
		if c.dolly.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		c.Position[i] = float64(val)
		c.dolly.done[i] = done
		all = all && done
	}
	c.dirty = true
	if all {
		c.dolly = nil
	}
}

// computeMatrices recomputes the cached view-projection matrix if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false
	if c.screen {
		c.view = mgl64.Ident4()
		c.proj = mgl64.Ident4()
		c.vp = mgl64.Ident4()
		return
	}
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.vp = c.proj.Mul4(c.view)
}

// Project maps a world-space point to screen coordinates. depth grows with
// distance from the eye and is used for back-to-front ordering. ok is false
// when the point is behind the camera or outside the near/far range.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	if c.screen {
		return c.Viewport.X + p[0], c.Viewport.Y + p[1], -p[2], true
	}
	c.computeMatrices()
	clip := c.vp.Mul4x1(p.Vec4(1))
	w := clip[3]
	if w <= c.Near || w >= c.Far {
		return 0, 0, w, false
	}
	nx := clip[0] / w
	ny := clip[1] / w
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, w, true
}

// PixelsPerUnit returns how many screen pixels one world unit spans at the
// given depth (as returned by Project).
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if c.screen {
		return 1
	}
	if depth <= 0 {
		return 0
	}
	half := math.Tan(mgl64.DegToRad(c.FOV) / 2)
	return c.Viewport.Height / (2 * half * depth)
}
