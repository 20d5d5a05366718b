package posy

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Heart ---

func TestHeartOutlinePointCount(t *testing.T) {
	pts := HeartOutline(1, 6)
	if len(pts) != len(heartCurves)*6 {
		t.Errorf("len = %d, want %d", len(pts), len(heartCurves)*6)
	}
	if got := HeartOutline(1, 0); len(got) != len(heartCurves) {
		t.Errorf("steps < 1 should clamp to 1, got %d points", len(got))
	}
}

func TestHeartOutlineSymmetric(t *testing.T) {
	pts := HeartOutline(2, 6)
	var minX, maxX float64
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	assertNear(t, "width symmetry", minX+maxX, 0)
	assertNear(t, "half width", maxX, 1.1)
}

func TestHeartMeshCentered(t *testing.T) {
	m := NewHeartMesh(1, 0.4)
	lo, hi := m.Bounds()
	c := lo.Add(hi).Mul(0.5)
	assertVec3(t, "center", c, mgl64.Vec3{})
	assertNear(t, "depth", hi[2]-lo[2], 0.4)
	n := len(heartCurves) * 6
	if m.TriangleCount() != 4*n {
		t.Errorf("TriangleCount = %d, want %d", m.TriangleCount(), 4*n)
	}
}

func TestExtrudedMeshDegenerate(t *testing.T) {
	m := NewExtrudedMesh([]Vec2{{0, 0}, {1, 0}}, 1)
	if m.TriangleCount() != 0 || len(m.Vertices) != 0 {
		t.Errorf("degenerate outline should give an empty mesh, got %d tris", m.TriangleCount())
	}
}

func TestExtrudedMeshIndicesInRange(t *testing.T) {
	m := NewExtrudedMesh([]Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1)
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, idx, len(m.Vertices))
		}
	}
}

// --- Cone ---

func TestConeMesh(t *testing.T) {
	m := NewConeMesh(0.55, 0.35, 1.6, 20)
	if len(m.Vertices) != 41 {
		t.Errorf("vertices = %d, want 41", len(m.Vertices))
	}
	if m.TriangleCount() != 60 {
		t.Errorf("triangles = %d, want 60", m.TriangleCount())
	}
	lo, hi := m.Bounds()
	assertNear(t, "top", hi[1], 0.8)
	assertNear(t, "bottom", lo[1], -0.8)
	assertNear(t, "max x", hi[0], 0.55)

	top := m.Vertices[0]
	assertNear(t, "top radius", math.Hypot(top[0], top[2]), 0.55)
	bottom := m.Vertices[1]
	assertNear(t, "bottom radius", math.Hypot(bottom[0], bottom[2]), 0.35)
}

func TestConeMeshMinimumSegments(t *testing.T) {
	m := NewConeMesh(1, 1, 1, 1)
	if m.TriangleCount() != 9 {
		t.Errorf("triangles = %d, want 9 (3 segments)", m.TriangleCount())
	}
}

// --- Ring ---

func TestRingMeshFlatInXZ(t *testing.T) {
	m := NewRingMesh(0.56, 0.06, 24)
	if m.TriangleCount() != 48 {
		t.Errorf("triangles = %d, want 48", m.TriangleCount())
	}
	for _, v := range m.Vertices {
		if v[1] != 0 {
			t.Fatalf("vertex %v not in XZ plane", v)
		}
		r := math.Hypot(v[0], v[2])
		if r < 0.5-epsilon || r > 0.62+epsilon {
			t.Fatalf("vertex radius %v outside [0.5, 0.62]", r)
		}
	}
}

func TestMeshBoundsEmpty(t *testing.T) {
	lo, hi := (&Mesh{}).Bounds()
	if lo != (mgl64.Vec3{}) || hi != (mgl64.Vec3{}) {
		t.Errorf("empty bounds = %v, %v", lo, hi)
	}
}
