package posy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// helper to build commands for one surface without Draw (no ebiten.Image
// needed): world transforms first, then traverse and sort.
func traverseSurface(s *Scene, sf *Surface) debugStats {
	var stats debugStats
	s.updateTransforms()
	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(sf, sf.root, &treeOrder, &stats)
	return stats
}

func newScreenSurface(s *Scene) *Surface {
	sf := s.NewSurface("ui", NewScreenCamera(), nil)
	s.Resize(400, 300)
	return sf
}

// --- Command emission ---

func TestSingleSpriteEmitsOneCommand(t *testing.T) {
	s := NewScene()
	sf := newScreenSurface(s)
	sprite := NewSprite("s", GlyphRose, 32)
	sprite.SetPosition(100, 50, 0)
	sf.Root().AddChild(sprite)

	traverseSurface(s, sf)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if cmd.Type != CommandSprite {
		t.Errorf("Type = %d, want CommandSprite", cmd.Type)
	}
	assertNear(t, "x", cmd.x, 100)
	assertNear(t, "y", cmd.y, 50)
	assertNear(t, "size", cmd.size, 32)
}

func TestInvisibleSubtreeNoCommands(t *testing.T) {
	s := NewScene()
	sf := newScreenSurface(s)
	parent := NewContainer("parent")
	parent.Visible = false
	parent.AddChild(NewSprite("child", GlyphRose, 10))
	sf.Root().AddChild(parent)

	traverseSurface(s, sf)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for invisible subtree", len(s.commands))
	}
}

func TestZeroAlphaNoCommand(t *testing.T) {
	s := NewScene()
	sf := newScreenSurface(s)
	parent := NewContainer("parent")
	parent.Alpha = 0
	parent.AddChild(NewSprite("child", GlyphRose, 10))
	sf.Root().AddChild(parent)

	traverseSurface(s, sf)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for transparent subtree", len(s.commands))
	}
}

func TestOffscreenSpriteCulled(t *testing.T) {
	s := NewScene()
	sf := newScreenSurface(s)
	off := NewSprite("off", GlyphRose, 10)
	off.SetPosition(-100, -100, 0)
	sf.Root().AddChild(off)
	edge := NewSprite("edge", GlyphRose, 20)
	edge.SetPosition(-5, 10, 0) // circle still overlaps the viewport
	sf.Root().AddChild(edge)

	stats := traverseSurface(s, sf)

	if len(s.commands) != 1 || s.commands[0].node != edge {
		t.Fatalf("commands = %d, want only the edge sprite", len(s.commands))
	}
	if stats.culled != 1 {
		t.Errorf("culled = %d, want 1", stats.culled)
	}
}

func TestMeshEmitsShadedTriangles(t *testing.T) {
	s := NewScene()
	cam := NewPerspectiveCamera(60, 1, 0.1, 100)
	sf := s.NewSurface("3d", cam, nil)
	s.Resize(200, 200)
	base := Hex(0x808080)
	n := NewMesh("heart", NewHeartMesh(1, 0.3), base)
	sf.Root().AddChild(n)

	stats := traverseSurface(s, sf)

	if stats.triangles != n.Mesh.TriangleCount() {
		t.Fatalf("triangles = %d, want %d", stats.triangles, n.Mesh.TriangleCount())
	}
	lo := base.Scale(sf.Light.Ambient).R
	hi := base.Scale(sf.Light.Ambient + sf.Light.Diffuse).R
	for _, cmd := range s.commands {
		if cmd.Type != CommandTriangle {
			t.Fatalf("Type = %d, want CommandTriangle", cmd.Type)
		}
		if cmd.color.R < lo-epsilon || cmd.color.R > hi+epsilon {
			t.Fatalf("shade %v outside [%v, %v]", cmd.color.R, lo, hi)
		}
	}
}

func TestMeshAlphaMultipliesColorAlpha(t *testing.T) {
	s := NewScene()
	sf := s.NewSurface("3d", NewPerspectiveCamera(60, 1, 0.1, 100), nil)
	s.Resize(200, 200)
	n := NewMesh("heart", NewHeartMesh(1, 0.3), ColorWhite.WithAlpha(0.5))
	n.Alpha = 0.5
	sf.Root().AddChild(n)

	traverseSurface(s, sf)

	if len(s.commands) == 0 {
		t.Fatal("no commands")
	}
	assertNear(t, "alpha", s.commands[0].color.A, 0.25)
}

func TestLineCommandProjectsEndpoints(t *testing.T) {
	s := NewScene()
	sf := newScreenSurface(s)
	parent := NewContainer("bar")
	parent.SetPosition(100, 100, 0)
	parent.AddChild(NewLine("fill", mgl64.Vec3{-10, 0, 0}, mgl64.Vec3{10, 0, 0}, ColorWhite, 4))
	sf.Root().AddChild(parent)

	traverseSurface(s, sf)

	if len(s.commands) != 1 || s.commands[0].Type != CommandLine {
		t.Fatalf("commands = %+v", s.commands)
	}
	pts := s.commands[0].pts
	assertNear(t, "from.x", pts[0].X, 90)
	assertNear(t, "to.x", pts[1].X, 110)
	assertNear(t, "y", pts[0].Y, 100)
}

func TestTextCommandCarriesScale(t *testing.T) {
	s := NewScene()
	sf := newScreenSurface(s)
	n := NewText("title", "hi", nil)
	n.SetPosition(200, 40, 0)
	n.SetScale(1.05)
	sf.Root().AddChild(n)

	traverseSurface(s, sf)

	if len(s.commands) != 1 || s.commands[0].Type != CommandText {
		t.Fatalf("commands = %+v", s.commands)
	}
	assertNear(t, "scale", s.commands[0].scale, 1.05)
}

func TestDisposedNodeSkipped(t *testing.T) {
	s := NewScene()
	sf := newScreenSurface(s)
	n := NewSprite("s", GlyphRose, 10)
	n.SetPosition(50, 50, 0)
	sf.Root().AddChild(n)
	n.Dispose()

	traverseSurface(s, sf)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(s.commands))
	}
}

// --- Projection ---

func TestProjectNodePerspectiveScale(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 100)
	cam.SetViewport(Rect{Width: 200, Height: 200})
	n := NewSprite("s", GlyphRose, 0.5)
	updateWorldTransform(n, mgl64.Ident4(), 1)

	p, ok := projectNode(cam, n)
	if !ok {
		t.Fatal("origin should project")
	}
	// Depth 5, tan(45°)=1: 200 / (2*5) = 20 pixels per unit.
	assertNear(t, "scale", p.scale, 20)
	assertNear(t, "size", p.size, 10)
}

func TestWorldRotZ(t *testing.T) {
	n := NewContainer("n")
	n.RotZ = 0.5
	updateWorldTransform(n, mgl64.Ident4(), 1)
	assertNear(t, "rotZ", worldRotZ(n.world), 0.5)
}

func TestCircleInRect(t *testing.T) {
	r := Rect{0, 0, 100, 100}
	if !circleInRect(-5, 50, 10, r) {
		t.Error("overlapping circle should be inside")
	}
	if circleInRect(-20, 50, 10, r) {
		t.Error("distant circle should be outside")
	}
}
