package posy

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS, and the
// session forwards bouquet collections through it as well.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
	EmitCollect(event CollectEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	PointerID int
	Touch     bool
}

// CollectEvent reports one accepted bouquet collection.
type CollectEvent struct {
	TargetID int
	Glyph    Glyph
	Count    int
	Total    int
	Complete bool
}

// Light is a single directional light plus an ambient term used for flat
// shading of mesh triangles.
type Light struct {
	Direction mgl64.Vec3
	Ambient   float64
	Diffuse   float64
}

// DefaultLight is a soft key light from the upper front right.
var DefaultLight = Light{Direction: mgl64.Vec3{5, 5, 5}, Ambient: 0.6, Diffuse: 0.6}

// Surface is one render layer: its own node tree, camera and viewport. The
// greeting stacks a background surface, a bouquet surface and a screen-space
// overlay; a resize is rebroadcast to all of them.
type Surface struct {
	Name string
	// Camera projects this surface's tree. A nil camera makes Draw a no-op.
	Camera *Camera
	// Layout computes the viewport for a window of w by h pixels. Nil means
	// the whole window.
	Layout func(w, h float64) Rect
	// Light shades mesh triangles.
	Light Light
	// Active surfaces are updated, drawn and hit tested.
	Active bool

	root  *Node
	scene *Scene
}

// Root returns the surface's root container.
func (sf *Surface) Root() *Node {
	return sf.root
}

// Viewport returns the camera viewport, or an empty rect without a camera.
func (sf *Surface) Viewport() Rect {
	if sf.Camera == nil {
		return Rect{}
	}
	return sf.Camera.Viewport
}

// SetViewport assigns a viewport directly, bypassing Layout until the next
// resize.
func (sf *Surface) SetViewport(r Rect) {
	if sf.Camera != nil {
		sf.Camera.SetViewport(r)
	}
}

func (sf *Surface) relayout(w, h float64) {
	if sf.Camera == nil {
		return
	}
	r := Rect{Width: w, Height: h}
	if sf.Layout != nil {
		r = sf.Layout(w, h)
	}
	sf.Camera.SetViewport(r)
}

const defaultCommandCap = 1024

// Scene is the top-level object that owns the render surfaces, input state
// and render buffers.
type Scene struct {
	surfaces []*Surface
	width    float64
	height   float64
	store    EntityStore
	debug    bool

	// Render state
	commands []drawCommand
	verts    []ebiten.Vertex
	indices  []uint16
	stats    debugStats

	// Input state
	input       InputSource
	handlers    handlerRegistry
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	touchBuf    []TouchPoint
	touchMap    [maxPointers]int
	touchUsed   [maxPointers]bool
	injectQueue []syntheticPointerEvent
}

// NewScene creates a scene that polls ebiten for mouse and touch input.
func NewScene() *Scene {
	return &Scene{
		commands: make([]drawCommand, 0, defaultCommandCap),
		input:    ebitenInput{},
	}
}

// NewSurface adds a render layer drawn above every existing one. If the
// scene already has a size the layout is applied immediately.
func (s *Scene) NewSurface(name string, cam *Camera, layout func(w, h float64) Rect) *Surface {
	root := NewContainer(name)
	root.Interactable = true
	sf := &Surface{
		Name:   name,
		Camera: cam,
		Layout: layout,
		Light:  DefaultLight,
		Active: true,
		root:   root,
		scene:  s,
	}
	s.surfaces = append(s.surfaces, sf)
	if s.width > 0 && s.height > 0 {
		sf.relayout(s.width, s.height)
	}
	return sf
}

// RemoveSurface detaches sf from the scene and disposes its tree.
func (s *Scene) RemoveSurface(sf *Surface) {
	for i, c := range s.surfaces {
		if c == sf {
			copy(s.surfaces[i:], s.surfaces[i+1:])
			s.surfaces[len(s.surfaces)-1] = nil
			s.surfaces = s.surfaces[:len(s.surfaces)-1]
			sf.root.Dispose()
			sf.Active = false
			sf.scene = nil
			return
		}
	}
}

// Surfaces returns the surfaces in draw order. The returned slice MUST NOT be mutated.
func (s *Scene) Surfaces() []*Surface {
	return s.surfaces
}

// Resize records the window size and recomputes every surface's viewport and
// camera aspect. Inactive surfaces are resized too so they are correct when
// reactivated.
func (s *Scene) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	fw, fh := float64(w), float64(h)
	if fw == s.width && fh == s.height {
		return
	}
	s.width, s.height = fw, fh
	for _, sf := range s.surfaces {
		sf.relayout(fw, fh)
	}
}

// Relayout reapplies every surface's Layout at the current size. Call it
// after changing a Layout function.
func (s *Scene) Relayout() {
	for _, sf := range s.surfaces {
		sf.relayout(s.width, s.height)
	}
}

// Size returns the last size passed to Resize.
func (s *Scene) Size() (w, h float64) {
	return s.width, s.height
}

// Update refreshes world transforms, advances camera dollies and processes
// input. dt is the frame step in seconds.
func (s *Scene) Update(dt float32) {
	s.updateTransforms()
	for _, sf := range s.surfaces {
		if sf.Active && sf.Camera != nil {
			sf.Camera.update(dt)
		}
	}
	s.processInput()
}

func (s *Scene) updateTransforms() {
	for _, sf := range s.surfaces {
		if sf.Active {
			updateWorldTransform(sf.root, mgl64.Ident4(), 1)
		}
	}
}

// Draw renders every active surface into its viewport on screen. A nil
// screen is logged once and ignored.
func (s *Scene) Draw(screen *ebiten.Image) {
	if screen == nil {
		logOnce("draw-nil-screen", "render surface unavailable; drawing disabled")
		return
	}
	s.updateTransforms()
	for _, sf := range s.surfaces {
		if !sf.Active {
			continue
		}
		if sf.Camera == nil {
			logOnce("surface-no-camera:"+sf.Name, "surface %q has no camera; skipped", sf.Name)
			continue
		}
		s.drawSurface(screen, sf)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// EntityStore returns the ECS bridge, or nil.
func (s *Scene) EntityStore() EntityStore {
	return s.store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-surface draw stats are logged every frame.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
