package posy

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in pixels relative to the
// node's projected origin.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in pixels relative to the node's
// projected origin.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Input source ---

// TouchPoint is one active touch in screen pixels.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// InputSource supplies raw pointer state once per frame.
type InputSource interface {
	// Cursor returns the mouse position and whether the primary button is held.
	Cursor() (x, y float64, pressed bool)
	// AppendTouches appends every active touch to buf.
	AppendTouches(buf []TouchPoint) []TouchPoint
}

// ebitenInput polls ebiten's mouse and touch state.
type ebitenInput struct{}

func (ebitenInput) Cursor() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) AppendTouches(buf []TouchPoint) []TouchPoint {
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		buf = append(buf, TouchPoint{ID: int(id), X: float64(x), Y: float64(y)})
	}
	return buf
}

// SetInputSource replaces the hardware input source. Nil disables polling;
// injected events still work.
func (s *Scene) SetInputSource(src InputSource) {
	s.input = src
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	pointerMove []pointerHandler
	click       []clickHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventClick:
		for i := range h.reg.click {
			if h.reg.click[i].id == h.id {
				h.reg.click = append(h.reg.click[:i], h.reg.click[i+1:]...)
				return
			}
		}
	}
}

// Stop is Remove; it lets a handle be released with a phase.
func (h CallbackHandle) Stop() {
	h.Remove()
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
// It fires for presses anywhere, with a nil Node over empty space.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a scene-level callback for pointer and touch moves.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pointerMove = append(s.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// --- Hit testing ---

// nodeContainsScreen tests whether screen point (x, y) falls inside a node's
// hit region around its projection p. HitShape wins; otherwise sprites hit
// as a circle of their projected diameter and text as its measured box.
func nodeContainsScreen(n *Node, p projection, x, y float64) bool {
	lx, ly := x-p.x, y-p.y
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Type {
	case NodeTypeSprite:
		r := p.size / 2
		return lx*lx+ly*ly <= r*r
	case NodeTypeText:
		if n.Label == nil || n.Label.Font == nil {
			return false
		}
		w, h := n.Label.Font.MeasureString(n.Label.Content)
		w *= p.scale
		h *= p.scale
		left := -w / 2
		switch n.Label.Align {
		case TextAlignLeft:
			left = 0
		case TextAlignRight:
			left = -w
		}
		return lx >= left && lx <= left+w && ly >= -h/2 && ly <= h/2
	}
	return false
}

// collectInteractable walks the tree in painter order, appending
// hit-testable nodes to buf. Skips Visible=false or Interactable=false
// subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable || n.disposed {
		return buf
	}
	if n.HitShape != nil || n.Type == NodeTypeSprite || n.Type == NodeTypeText {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the nearest interactable node under screen point (x, y).
// Surfaces are searched top to bottom; within a surface the smallest depth
// wins and later nodes win ties.
func (s *Scene) hitTest(x, y float64) *Node {
	for i := len(s.surfaces) - 1; i >= 0; i-- {
		sf := s.surfaces[i]
		if !sf.Active || sf.Camera == nil || !sf.Camera.Viewport.Contains(x, y) {
			continue
		}
		s.hitBuf = collectInteractable(sf.root, s.hitBuf[:0])
		var best *Node
		bestDepth := math.Inf(1)
		for _, n := range s.hitBuf {
			p, ok := projectNode(sf.Camera, n)
			if !ok || !nodeContainsScreen(n, p, x, y) {
				continue
			}
			if p.depth <= bestDepth {
				best = n
				bestDepth = p.depth
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle all mouse and touch
// input. A queued synthetic event replaces hardware input for the frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.input == nil {
		return
	}
	x, y, pressed := s.input.Cursor()
	s.processPointer(0, x, y, pressed, false)
	s.processTouchPointers()
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	s.touchBuf = s.input.AppendTouches(s.touchBuf[:0])

	var activeSlots [maxPointers]bool
	for _, tp := range s.touchBuf {
		slot := s.touchSlot(tp.ID)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		s.processPointer(slot, tp.X, tp.Y, true, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, true)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps a touch ID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(id int) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == id {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = id
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed, touch bool) {
	ps := &s.pointers[pointerID]
	moved := x != ps.lastX || y != ps.lastY
	target := s.hitTest(x, y)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.hitNode = target
		s.firePointerDown(target, pointerID, x, y, touch)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target && !ps.hitNode.disposed {
			s.fireClick(target, pointerID, x, y, touch)
		}
		s.firePointerUp(target, pointerID, x, y, touch)
		ps.down = false
		ps.hitNode = nil
	case moved:
		s.firePointerMove(target, pointerID, x, y, touch)
	}
	ps.lastX = x
	ps.lastY = y
}

// --- Event dispatch ---

func pointerContext(node *Node, pointerID int, x, y float64, touch bool) PointerContext {
	ctx := PointerContext{Node: node, GlobalX: x, GlobalY: y, PointerID: pointerID, Touch: touch}
	if node != nil {
		ctx.UserData = node.UserData
	}
	return ctx
}

func (s *Scene) firePointerDown(node *Node, pointerID int, x, y float64, touch bool) {
	ctx := pointerContext(node, pointerID, x, y, touch)
	// Scene-level handlers first.
	for _, h := range s.handlers.pointerDown {
		h.fn(ctx)
	}
	// Per-node callback.
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
	s.emitInteractionEvent(EventPointerDown, node, x, y, pointerID, touch)
}

func (s *Scene) firePointerUp(node *Node, pointerID int, x, y float64, touch bool) {
	ctx := pointerContext(node, pointerID, x, y, touch)
	for _, h := range s.handlers.pointerUp {
		h.fn(ctx)
	}
	s.emitInteractionEvent(EventPointerUp, node, x, y, pointerID, touch)
}

func (s *Scene) firePointerMove(node *Node, pointerID int, x, y float64, touch bool) {
	ctx := pointerContext(node, pointerID, x, y, touch)
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
	s.emitInteractionEvent(EventPointerMove, node, x, y, pointerID, touch)
}

func (s *Scene) fireClick(node *Node, pointerID int, x, y float64, touch bool) {
	ctx := ClickContext{Node: node, GlobalX: x, GlobalY: y, PointerID: pointerID, Touch: touch}
	if node != nil {
		ctx.UserData = node.UserData
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(EventClick, node, x, y, pointerID, touch)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, x, y float64, pointerID int, touch bool) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      eventType,
		EntityID:  node.EntityID,
		GlobalX:   x,
		GlobalY:   y,
		PointerID: pointerID,
		Touch:     touch,
	})
}
