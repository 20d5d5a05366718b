package posy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is indexed triangle geometry in local space.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint16
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the local-space axis-aligned bounding box corners.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	return lo, hi
}

// Center translates the vertices so the bounding box is centered on the origin.
func (m *Mesh) Center() {
	lo, hi := m.Bounds()
	c := lo.Add(hi).Mul(0.5)
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Sub(c)
	}
}

// heartCurves are the cubic segments of the heart outline in a unit box,
// point of the heart at y=0.35, lobes reaching y=1.
var heartCurves = [][4]Vec2{
	{{0, 0.35}, {0, 0.35}, {-0.05, 0.25}, {-0.25, 0.25}},
	{{-0.25, 0.25}, {-0.55, 0.25}, {-0.55, 0.525}, {-0.55, 0.525}},
	{{-0.55, 0.525}, {-0.55, 0.65}, {-0.475, 0.775}, {-0.25, 0.85}},
	{{-0.25, 0.85}, {-0.1, 0.9}, {0, 1.0}, {0, 1.0}},
	{{0, 1.0}, {0, 1.0}, {0.1, 0.9}, {0.25, 0.85}},
	{{0.25, 0.85}, {0.475, 0.775}, {0.55, 0.65}, {0.55, 0.525}},
	{{0.55, 0.525}, {0.55, 0.525}, {0.55, 0.25}, {0.25, 0.25}},
	{{0.25, 0.25}, {0.05, 0.25}, {0, 0.35}, {0, 0.35}},
}

// HeartOutline flattens the heart curves into a closed polygon scaled by
// scale, with steps samples per curve. The first point is not repeated.
func HeartOutline(scale float64, steps int) []Vec2 {
	if steps < 1 {
		steps = 1
	}
	pts := make([]Vec2, 0, len(heartCurves)*steps)
	for _, c := range heartCurves {
		for i := 0; i < steps; i++ {
			t := float64(i) / float64(steps)
			p := cubicBezier(c[0], c[1], c[2], c[3], t)
			pts = append(pts, Vec2{p.X * scale, p.Y * scale})
		}
	}
	return pts
}

func cubicBezier(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Vec2{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// NewExtrudedMesh extrudes a star-shaped polygon along Z by depth: a front
// and back cap fanned from the centroid plus side quads. The result is
// centered on the origin.
func NewExtrudedMesh(outline []Vec2, depth float64) *Mesh {
	n := len(outline)
	if n < 3 {
		return &Mesh{}
	}
	var cx, cy float64
	for _, p := range outline {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	hz := depth / 2
	m := &Mesh{}
	// 0: front center, 1..n: front ring, n+1: back center, n+2..2n+1: back ring
	m.Vertices = append(m.Vertices, mgl64.Vec3{cx, cy, hz})
	for _, p := range outline {
		m.Vertices = append(m.Vertices, mgl64.Vec3{p.X, p.Y, hz})
	}
	m.Vertices = append(m.Vertices, mgl64.Vec3{cx, cy, -hz})
	for _, p := range outline {
		m.Vertices = append(m.Vertices, mgl64.Vec3{p.X, p.Y, -hz})
	}
	front := func(i int) uint16 { return uint16(1 + i%n) }
	back := func(i int) uint16 { return uint16(n + 2 + i%n) }
	for i := 0; i < n; i++ {
		m.Indices = append(m.Indices, 0, front(i), front(i+1))
		m.Indices = append(m.Indices, uint16(n+1), back(i+1), back(i))
		m.Indices = append(m.Indices, front(i), back(i), back(i+1))
		m.Indices = append(m.Indices, front(i), back(i+1), front(i+1))
	}
	m.Center()
	return m
}

// NewHeartMesh builds the extruded heart used for floating and loading hearts.
func NewHeartMesh(scale, depth float64) *Mesh {
	return NewExtrudedMesh(HeartOutline(scale, 6), depth)
}

// NewConeMesh builds an open-ended truncated cone along Y centered on the
// origin, topRadius at +height/2. With equal radii it is a cylinder.
func NewConeMesh(topRadius, bottomRadius, height float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	hy := height / 2
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		s, c := math.Sincos(a)
		m.Vertices = append(m.Vertices,
			mgl64.Vec3{c * topRadius, hy, s * topRadius},
			mgl64.Vec3{c * bottomRadius, -hy, s * bottomRadius},
		)
	}
	// bottom cap center
	m.Vertices = append(m.Vertices, mgl64.Vec3{0, -hy, 0})
	bc := uint16(len(m.Vertices) - 1)
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		t0, b0 := uint16(2*i), uint16(2*i+1)
		t1, b1 := uint16(2*j), uint16(2*j+1)
		m.Indices = append(m.Indices, t0, b0, b1, t0, b1, t1, bc, b1, b0)
	}
	return m
}

// NewRingMesh builds a flat annulus in the XZ plane, the stand-in for a thin
// torus seen at the angles the bouquet is viewed from.
func NewRingMesh(radius, tube float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	inner, outer := radius-tube, radius+tube
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		s, c := math.Sincos(a)
		m.Vertices = append(m.Vertices,
			mgl64.Vec3{c * inner, 0, s * inner},
			mgl64.Vec3{c * outer, 0, s * outer},
		)
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		i0, o0 := uint16(2*i), uint16(2*i+1)
		i1, o1 := uint16(2*j), uint16(2*j+1)
		m.Indices = append(m.Indices, i0, o0, o1, i0, o1, i1)
	}
	return m
}
