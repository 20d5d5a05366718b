package posy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Background tuning.
const (
	backgroundFOV      = 60
	backgroundCameraZ  = 8
	backgroundFloatAmp = 0.5
	// backgroundSpin is the largest per-frame spin at 60 frames per second.
	backgroundSpin = 0.01
)

var backgroundColors = []uint32{0xff69b4, 0xffb6c1, 0xff1493, 0xffc0cb, 0xe8507a, 0xf5a0c0}

// backdrop is the full-window surface of translucent floating hearts. It
// stays hidden while loading and is shown once the load gate opens.
type backdrop struct {
	surface *Surface
	camera  *Camera
	rig     *CameraRig
	hearts  []*Node
}

func newBackdrop(s *Session) *backdrop {
	cam := NewPerspectiveCamera(backgroundFOV, s.width/s.height, 0.1, 100)
	cam.SetPosition(0, 0, backgroundCameraZ)
	sf := s.scene.NewSurface("background", cam, nil)
	sf.Active = false

	b := &backdrop{surface: sf, camera: cam, rig: NewCameraRig(cam)}
	s.anim.AddRig(b.rig)

	mesh := NewHeartMesh(1, 0.25)
	rng := s.rng
	for i := 0; i < s.cfg.Background.Hearts; i++ {
		c := Hex(backgroundColors[rng.IntN(len(backgroundColors))])
		heart := NewMesh("background-heart", mesh, c.WithAlpha(0.3+rng.Float64()*0.5))
		heart.SetScale(0.2 + rng.Float64()*0.6)

		base := mgl64.Vec3{
			(rng.Float64() - 0.5) * 14,
			(rng.Float64() - 0.5) * 10,
			(rng.Float64() - 0.5) * 8,
		}
		rot := mgl64.Vec3{
			rng.Float64() * 2 * math.Pi,
			rng.Float64() * 2 * math.Pi,
			rng.Float64() * 2 * math.Pi,
		}
		spin := (rng.Float64() - 0.5) * 2 * backgroundSpin * 60
		sf.Root().AddChild(heart)
		s.anim.Add(heart, MotionProfile{
			Base:       base,
			BaseRot:    rot,
			Phase:      rng.Float64() * 2 * math.Pi,
			FloatAmp:   backgroundFloatAmp,
			FloatSpeed: 0.2 + rng.Float64()*0.5,
			SpinRate:   mgl64.Vec3{0, spin, spin / 2},
		})
		b.hearts = append(b.hearts, heart)
	}
	return b
}

// show makes the hearts visible.
func (b *backdrop) show() {
	b.surface.Active = true
}
