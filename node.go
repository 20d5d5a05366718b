package posy

import (
	"github.com/go-gl/mathgl/mgl64"
)

// HitShape is a custom hit region in the node's screen-local pixel space,
// centered on the node's projected position.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	PointerID int
	Touch     bool
}

// ClickContext carries click event data.
type ClickContext struct {
	Node      *Node
	UserData  any
	GlobalX   float64
	GlobalY   float64
	PointerID int
	Touch     bool
}

// nodeIDCounter is a plain counter (no atomic; posy is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for all node
// types, as in a retained 2D graph, but transforms are full 3D: a node sits at
// (X, Y, Z), rotates with XYZ Euler angles in radians and scales per axis.
// Nodes under a screen-camera surface use X/Y as pixels.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y, Z                float64
	RotX, RotY, RotZ       float64
	ScaleX, ScaleY, ScaleZ float64

	// Computed during traversal.
	world      mgl64.Mat4
	worldAlpha float64

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Metadata
	UserData any
	EntityID uint32

	// Sprite fields (NodeTypeSprite). Size is the glyph diameter in world
	// units (pixels under a screen camera).
	Glyph Glyph
	Size  float64
	Color Color

	// Mesh fields (NodeTypeMesh)
	Mesh *Mesh

	// Line fields (NodeTypeLine)
	LineFrom, LineTo mgl64.Vec3
	LineWidth        float64

	// Text fields (NodeTypeText)
	Label *Label

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default)
	OnPointerDown func(PointerContext)
	OnClick       func(ClickContext)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.ScaleZ = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.world = mgl64.Ident4()
	n.worldAlpha = 1
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a camera-facing glyph of the given diameter.
func NewSprite(name string, glyph Glyph, size float64) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Glyph: glyph, Size: size}
	nodeDefaults(n)
	return n
}

// NewMesh creates a node that renders mesh triangles with flat shading.
func NewMesh(name string, mesh *Mesh, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Mesh: mesh}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewLine creates a line segment between two local-space points.
func NewLine(name string, from, to mgl64.Vec3, c Color, width float64) *Node {
	n := &Node{Name: name, Type: NodeTypeLine, LineFrom: from, LineTo: to, LineWidth: width}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font *Font) *Node {
	n := &Node{
		Name:  name,
		Type:  NodeTypeText,
		Label: &Label{Content: content, Font: font},
	}
	nodeDefaults(n)
	return n
}

// SetPosition sets the local position.
func (n *Node) SetPosition(x, y, z float64) {
	n.X, n.Y, n.Z = x, y, z
}

// Position returns the local position.
func (n *Node) Position() mgl64.Vec3 {
	return mgl64.Vec3{n.X, n.Y, n.Z}
}

// SetScale sets a uniform scale on all three axes.
func (n *Node) SetScale(s float64) {
	n.ScaleX, n.ScaleY, n.ScaleZ = s, s, s
}

// SetRotation sets the XYZ Euler rotation in radians.
func (n *Node) SetRotation(x, y, z float64) {
	n.RotX, n.RotY, n.RotZ = x, y, z
}

// SetText replaces a text node's content. No-op for other node types.
func (n *Node) SetText(content string) {
	if n.Label != nil {
		n.Label.Content = content
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("posy: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("posy: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("posy: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Mesh = nil
	n.Label = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnClick = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
