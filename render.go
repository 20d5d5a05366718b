package posy

import (
	"image"
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandSprite   CommandType = iota // glyph billboard
	CommandTriangle                    // one shaded mesh triangle
	CommandLine                        // stroked segment
	CommandText                        // label
)

// drawCommand is a single draw instruction emitted during traversal. Commands
// are depth sorted back to front before submission.
type drawCommand struct {
	Type      CommandType
	node      *Node
	depth     float64
	treeOrder int

	// Sprite and text: projected origin, scale and rotation.
	x, y, scale, size, rot float64
	alpha                  float64

	// Triangle and line: screen-space points and shaded color.
	pts   [3]Vec2
	color Color
}

// projection is a node origin mapped through a camera.
type projection struct {
	x, y, depth float64
	// scale is pixels per local unit at the node's depth.
	scale float64
	// size is the sprite diameter in pixels.
	size float64
}

// projectNode maps a node's world origin through cam using the last
// computed world transform.
func projectNode(cam *Camera, n *Node) (projection, bool) {
	sx, sy, depth, ok := cam.Project(n.WorldPosition())
	if !ok {
		return projection{}, false
	}
	scale := n.worldScale() * cam.PixelsPerUnit(depth)
	return projection{x: sx, y: sy, depth: depth, scale: scale, size: n.Size * scale}, true
}

// worldRotZ extracts the screen-plane rotation from a world matrix.
func worldRotZ(m mgl64.Mat4) float64 {
	return math.Atan2(m.At(1, 0), m.At(0, 0))
}

// drawSurface traverses one surface, sorts its commands and submits them
// into the surface viewport.
func (s *Scene) drawSurface(screen *ebiten.Image, sf *Surface) {
	cam := sf.Camera
	vp := cam.Viewport
	if vp.Empty() {
		return
	}
	target := screen.SubImage(image.Rect(
		int(vp.X), int(vp.Y),
		int(vp.X+vp.Width), int(vp.Y+vp.Height),
	)).(*ebiten.Image)

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(sf, sf.root, &treeOrder, &stats)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	// Far to near; tree order breaks ties so siblings keep painter order.
	sort.SliceStable(s.commands, func(i, j int) bool {
		a, b := &s.commands[i], &s.commands[j]
		if a.depth != b.depth {
			return a.depth > b.depth
		}
		return a.treeOrder < b.treeOrder
	})

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	stats.drawCalls = s.submit(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(sf.Name, stats)
	}
	s.stats = stats
}

// traverse emits commands for visible nodes under n. Culling suppresses a
// node's own command only; children are always visited.
func (s *Scene) traverse(sf *Surface, n *Node, treeOrder *int, stats *debugStats) {
	if !n.Visible || n.disposed {
		return
	}
	cam := sf.Camera
	alpha := n.worldAlpha
	if alpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			p, ok := projectNode(cam, n)
			if !ok || !circleInRect(p.x, p.y, p.size/2, cam.Viewport) {
				stats.culled++
				break
			}
			*treeOrder++
			s.commands = append(s.commands, drawCommand{
				Type: CommandSprite, node: n, depth: p.depth, treeOrder: *treeOrder,
				x: p.x, y: p.y, size: p.size, rot: worldRotZ(n.world), alpha: alpha,
			})
		case NodeTypeText:
			p, ok := projectNode(cam, n)
			if !ok {
				stats.culled++
				break
			}
			*treeOrder++
			s.commands = append(s.commands, drawCommand{
				Type: CommandText, node: n, depth: p.depth, treeOrder: *treeOrder,
				x: p.x, y: p.y, scale: p.scale, alpha: alpha,
			})
		case NodeTypeLine:
			a, b := n.LocalToWorld(n.LineFrom), n.LocalToWorld(n.LineTo)
			ax, ay, ad, okA := cam.Project(a)
			bx, by, bd, okB := cam.Project(b)
			if !okA || !okB {
				stats.culled++
				break
			}
			*treeOrder++
			s.commands = append(s.commands, drawCommand{
				Type: CommandLine, node: n, depth: (ad + bd) / 2, treeOrder: *treeOrder,
				pts: [3]Vec2{{ax, ay}, {bx, by}}, color: n.Color.WithAlpha(n.Color.A * alpha),
			})
		case NodeTypeMesh:
			s.emitTriangles(sf, n, alpha, treeOrder, stats)
		}
	}
	for _, child := range n.children {
		s.traverse(sf, child, treeOrder, stats)
	}
}

// emitTriangles projects every triangle of a mesh node, flat shading each
// from its world-space normal. Lighting is two-sided so winding does not
// matter; painter sorting handles occlusion.
func (s *Scene) emitTriangles(sf *Surface, n *Node, alpha float64, treeOrder *int, stats *debugStats) {
	m := n.Mesh
	if m == nil || len(m.Indices) < 3 {
		return
	}
	cam := sf.Camera
	light := sf.Light.Direction
	if light.Len() > 0 {
		light = light.Normalize()
	}
	*treeOrder++
	for i := 0; i+2 < len(m.Indices); i += 3 {
		var world [3]mgl64.Vec3
		var pts [3]Vec2
		depth := 0.0
		visible := true
		for k := 0; k < 3; k++ {
			world[k] = n.LocalToWorld(m.Vertices[m.Indices[i+k]])
			x, y, d, ok := cam.Project(world[k])
			if !ok {
				visible = false
				break
			}
			pts[k] = Vec2{x, y}
			depth += d
		}
		if !visible {
			stats.culled++
			continue
		}
		normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
		shade := sf.Light.Ambient
		if l := normal.Len(); l > 0 {
			shade += sf.Light.Diffuse * math.Abs(normal.Mul(1/l).Dot(light))
		}
		stats.triangles++
		s.commands = append(s.commands, drawCommand{
			Type: CommandTriangle, node: n, depth: depth / 3, treeOrder: *treeOrder,
			pts: pts, color: n.Color.Scale(shade).WithAlpha(n.Color.A * alpha),
		})
	}
}

// submit draws the sorted commands. Consecutive triangles are batched into a
// single DrawTriangles call. Returns the number of draw calls issued.
func (s *Scene) submit(target *ebiten.Image) int {
	calls := 0
	s.verts = s.verts[:0]
	s.indices = s.indices[:0]
	flush := func() {
		if len(s.indices) == 0 {
			return
		}
		target.DrawTriangles(s.verts, s.indices, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
		calls++
		s.verts = s.verts[:0]
		s.indices = s.indices[:0]
	}

	for i := range s.commands {
		cmd := &s.commands[i]
		if cmd.Type != CommandTriangle {
			flush()
		}
		switch cmd.Type {
		case CommandTriangle:
			if len(s.verts)+3 > math.MaxUint16 {
				flush()
			}
			base := uint16(len(s.verts))
			c := cmd.color
			for _, p := range cmd.pts {
				s.verts = append(s.verts, ebiten.Vertex{
					DstX: float32(p.X), DstY: float32(p.Y),
					SrcX: 1, SrcY: 1,
					ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
				})
			}
			s.indices = append(s.indices, base, base+1, base+2)
		case CommandSprite:
			drawGlyph(target, cmd.node.Glyph, cmd.x, cmd.y, cmd.size, cmd.rot, cmd.node.Color, cmd.alpha)
			calls++
		case CommandLine:
			w := cmd.node.LineWidth
			if w <= 0 {
				w = 1
			}
			vector.StrokeLine(target, float32(cmd.pts[0].X), float32(cmd.pts[0].Y),
				float32(cmd.pts[1].X), float32(cmd.pts[1].Y), float32(w), cmd.color.RGBA(), true)
			calls++
		case CommandText:
			drawLabel(target, cmd.node.Label, cmd.x, cmd.y, cmd.scale, cmd.node.Color, cmd.alpha)
			calls++
		}
	}
	flush()
	return calls
}

func circleInRect(x, y, r float64, rect Rect) bool {
	return x+r >= rect.X && x-r <= rect.X+rect.Width &&
		y+r >= rect.Y && y-r <= rect.Y+rect.Height
}
